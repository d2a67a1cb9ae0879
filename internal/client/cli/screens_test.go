package cli

import (
	"bytes"
	"context"
	"net/url"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/brokerdesk/internal/client/client"
	"github.com/dmitrijs2005/brokerdesk/internal/client/models"
	"github.com/dmitrijs2005/brokerdesk/internal/client/router"
	"github.com/dmitrijs2005/brokerdesk/internal/client/session"
	"github.com/dmitrijs2005/brokerdesk/internal/client/storage"
	"github.com/dmitrijs2005/brokerdesk/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// offlineApp has an empty session and an API nobody listens on.
func offlineApp(t *testing.T) *App {
	t.Helper()
	db, err := storage.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	store := session.NewStore(storage.NewSQLiteRepository(db), logging.NewNop())

	api, err := client.New("http://127.0.0.1:1", store)
	require.NoError(t, err)
	return &App{api: api, session: store, log: logging.NewNop(), out: &bytes.Buffer{}}
}

func TestFactories_CoverEveryRoute(t *testing.T) {
	a := offlineApp(t)
	factories := a.factories()

	for _, p := range router.Paths() {
		build, ok := factories[p]
		require.True(t, ok, "no screen for %s", p)

		v, ok := build(router.Params{Values: url.Values{}}).(view)
		require.True(t, ok, "%s does not build a view", p)
		assert.NotEmpty(t, v.title(), p)
		assert.NotEmpty(t, v.commands(), p)

		var out bytes.Buffer
		v.render(&out)
		assert.NotEmpty(t, out.String(), p)
	}
	assert.Len(t, router.Table(factories), len(router.Paths()))
}

func TestFlowFor(t *testing.T) {
	a := offlineApp(t)

	tests := []struct {
		typ  string
		want models.ProductKind
	}{
		{"bike", models.KindBike},
		{"CAR", models.KindCar},
		{"health", models.KindHealth},
		{"life", models.KindLife},
		{"", models.KindBike},
		{"boat", models.KindBike},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, a.flowFor(tt.typ).Kind(), tt.typ)
	}
}

func TestPurchaseView_Title(t *testing.T) {
	a := offlineApp(t)

	assert.Equal(t, "Buy bike insurance", (&purchaseView{productFlow: a.flowFor("bike"), app: a}).title())
	assert.Equal(t, "Buy health insurance", (&purchaseView{productFlow: a.flowFor("health"), app: a}).title())
	assert.Equal(t, "Buy life insurance", (&purchaseView{productFlow: a.flowFor("life"), app: a}).title())
}
