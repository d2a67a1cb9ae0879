package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/brokerdesk/internal/client/cli"
	"github.com/dmitrijs2005/brokerdesk/internal/client/client"
	"github.com/dmitrijs2005/brokerdesk/internal/client/config"
	"github.com/dmitrijs2005/brokerdesk/internal/client/session"
	"github.com/dmitrijs2005/brokerdesk/internal/client/storage"
	"github.com/dmitrijs2005/brokerdesk/internal/filex"
	"github.com/dmitrijs2005/brokerdesk/internal/logging"
)

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	logger, flush := logging.New(logging.Config{Level: cfg.LogLevel, Encoding: cfg.LogEncoding})
	defer func() { _ = flush() }()

	dbPath, err := filex.EnsureParentDir(cfg.SessionDBPath)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	db, err := storage.InitDatabase(ctx, dbPath)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}
	defer db.Close()

	store := session.NewStore(storage.NewSQLiteRepository(db), logger)
	if err := store.Load(ctx); err != nil {
		logger.Warn(ctx, "restore session", "error", err)
	}

	opts := []client.Option{
		client.WithTimeout(cfg.RequestTimeout),
		client.WithRateLimit(cfg.RateLimit, cfg.RateBurst),
		client.WithLogger(logger),
	}
	if cfg.ForceLogoutOnUnauthorized {
		opts = append(opts, client.WithUnauthorizedHandler(func(ctx context.Context) {
			if err := store.Clear(ctx); err != nil {
				logger.Warn(ctx, "clear session", "error", err)
			}
		}))
	}

	api, err := client.New(cfg.APIBaseURL, store, opts...)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app := cli.NewApp(ctx, cfg, api, store, logger, os.Stdin, os.Stdout)
	app.Run(ctx)

}
