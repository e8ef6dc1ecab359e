package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"pizzaria-veneza/pos-svc/internal/domain"
	"pizzaria-veneza/pos-svc/internal/menu"
	"pizzaria-veneza/pos-svc/internal/pricing"
	"pizzaria-veneza/pos-svc/internal/service"
	"pizzaria-veneza/pos-svc/internal/storage"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func useTempStorage(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	chdir(t, dir)
	path := filepath.Join(dir, "pos.db")
	t.Setenv("POS_STORAGE", "sqlite")
	t.Setenv("POS_SQLITE_PATH", path)
	t.Setenv("POS_LOG_LEVEL", "error")
	return path
}

func seedOrder(t *testing.T, path string) string {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	kv, err := storage.NewSQLiteStore(db)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	defer sqlDB.Close()

	log, _ := test.NewNullLogger()
	calc := pricing.NewCalculator(menu.Default())
	session := service.NewSession(calc, storage.NewSnapshotStore(kv, time.Second, log), log)
	session.Load(context.Background())

	item, err := calc.Build(pricing.Selection{Kind: domain.KindPizza, PizzaID: "05", Size: domain.SizeMedium, Quantity: 1})
	require.NoError(t, err)
	_, err = session.Cart.AddItem(item)
	require.NoError(t, err)
	order, ok := session.Orders.CreateFromCart(session.Cart)
	require.True(t, ok)
	return order.ID
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	app := newApp()
	var out bytes.Buffer
	app.Writer = &out
	app.ErrWriter = &out
	app.ExitErrHandler = func(*cli.Context, error) {}
	err := app.Run(append([]string{"pos-svc"}, args...))
	return out.String(), err
}

func TestMenuCommand(t *testing.T) {
	out, err := run(t, "menu")
	require.NoError(t, err)
	assert.Contains(t, out, "Mussarela")
	assert.Contains(t, out, "Catupiry")

	out, err = run(t, "menu", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"crusts"`)
}

func TestOrdersCommands(t *testing.T) {
	path := useTempStorage(t)
	id := seedOrder(t, path)

	out, err := run(t, "orders", "list")
	require.NoError(t, err)
	assert.Contains(t, out, id)
	assert.Contains(t, out, "63.00")

	out, err = run(t, "orders", "advance", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Em preparo")

	out, err = run(t, "orders", "list", "--status", "preparing")
	require.NoError(t, err)
	assert.Contains(t, out, id)

	_, err = run(t, "orders", "status", id, "delivered")
	require.NoError(t, err)
	out, err = run(t, "orders", "list", "--status", "delivered")
	require.NoError(t, err)
	assert.Contains(t, out, id)

	_, err = run(t, "orders", "status", id, "eaten")
	assert.ErrorIs(t, err, domain.ErrUnknownStatus)

	out, err = run(t, "orders", "delete", id)
	require.NoError(t, err)
	assert.Contains(t, out, "deleted")

	_, err = run(t, "orders", "advance", id)
	assert.Error(t, err)
}
