package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/brokerdesk/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
	tx dbx.TxBeginner
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db, tx: db}
}

func (r *SQLiteRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, `SELECT value FROM session_slot WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get slot[%s]: %w", key, err)
	}
	return value, nil
}

func (r *SQLiteRepository) Set(ctx context.Context, key string, value []byte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO session_slot (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set slot[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM session_slot`); err != nil {
		return fmt.Errorf("failed to clear slot: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Replace(ctx context.Context, values map[string][]byte) error {
	if r.tx == nil {
		return errors.New("replace requires a transactional handle")
	}
	return dbx.WithTx(ctx, r.tx, nil, func(ctx context.Context, tx dbx.DBTX) error {
		inner := &SQLiteRepository{db: tx}
		if err := inner.Clear(ctx); err != nil {
			return err
		}
		for k, v := range values {
			if err := inner.Set(ctx, k, v); err != nil {
				return err
			}
		}
		return nil
	})
}
