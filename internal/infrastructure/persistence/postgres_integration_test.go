//go:build integration

package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/libreria/backend/internal/domain/partner"
	"github.com/libreria/backend/internal/domain/shared"
	"github.com/libreria/backend/internal/domain/trade"
	"github.com/libreria/backend/internal/infrastructure/config"
	"github.com/libreria/backend/internal/infrastructure/migration"
	"github.com/libreria/backend/migrations"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

// newPostgresDatabase starts a postgres container, applies the versioned
// migrations and connects through NewDatabase.
func newPostgresDatabase(t *testing.T) *Database {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("libreria_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	sqlDB, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	m, err := migration.New(sqlDB, migrations.FS, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, m.Up())
	require.NoError(t, m.Close())

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	db, err := NewDatabase(&config.DatabaseConfig{
		Driver:   "postgres",
		Host:     host,
		Port:     port.Int(),
		User:     "postgres",
		Password: "postgres",
		DBName:   "libreria_test",
		SSLMode:  "disable",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestPostgresRepositories(t *testing.T) {
	db := newPostgresDatabase(t)
	ctx := context.Background()
	tenantID := uuid.New()

	products := NewGormProductRepository(db.DB)
	suppliers := NewGormSupplierRepository(db.DB)
	orders := NewGormOrderRepository(db.DB)
	sales := NewGormSaleRepository(db.DB)

	t.Run("product round trip", func(t *testing.T) {
		book := newBook(t, tenantID, "Rayuela", 4)
		require.NoError(t, products.Save(ctx, book))

		found, err := products.FindByIDForTenant(ctx, tenantID, book.ID)
		require.NoError(t, err)
		require.NotNil(t, found.Book)
		assert.Equal(t, 4, found.Stock)

		require.NoError(t, products.DeleteForTenant(ctx, tenantID, book.ID))
		_, err = products.FindByIDForTenant(ctx, tenantID, book.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	supplier, err := partner.NewSupplier(tenantID, partner.SupplierInput{
		Name:        "Editorial Norte",
		PhoneNumber: "912345678",
		Email:       "pedidos@norte.es",
		Category:    "Libro",
		Catalog:     []shared.Attributes{{"id": "EN-1", "title": "Rayuela", "price": 15.5}},
	})
	require.NoError(t, err)
	require.NoError(t, suppliers.Save(ctx, supplier))

	t.Run("supplier catalog is stored as jsonb", func(t *testing.T) {
		found, err := suppliers.FindByCategory(ctx, tenantID, "libro")
		require.NoError(t, err)
		require.Len(t, found, 1)
		require.Len(t, found[0].Catalog(), 1)
		assert.Equal(t, 15.5, found[0].Catalog()[0]["price"])
	})

	t.Run("order status filter", func(t *testing.T) {
		o, err := trade.NewOrder(tenantID, trade.OrderInput{
			SupplierID: supplier.ID,
			Product:    shared.Attributes{"id": "EN-1", "name": "Rayuela"},
			Date:       time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC),
			Category:   "libro",
			Price:      decimal.NewFromInt(12),
			Quantity:   3,
		})
		require.NoError(t, err)
		require.NoError(t, orders.Save(ctx, o))

		f := shared.DefaultFilter()
		f.Filters["status"] = trade.OrderStatusPending
		f.Filters["supplier_id"] = supplier.ID.String()
		found, err := orders.FindAllForTenant(ctx, tenantID, f)
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.True(t, decimal.NewFromInt(36).Equal(found[0].Total))
	})

	t.Run("sales window", func(t *testing.T) {
		now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
		for i, qty := range []int{2, 5} {
			s, err := trade.NewSale(tenantID, trade.SaleInput{
				Product:  shared.Attributes{"id": "EN-1"},
				Date:     now.AddDate(0, 0, -(i*20 + 1)),
				Category: "libro",
				Price:    decimal.NewFromInt(10),
				Quantity: qty,
			})
			require.NoError(t, err)
			require.NoError(t, sales.Save(ctx, s))
		}

		recent, err := sales.FindBetween(ctx, tenantID, now.AddDate(0, 0, -7), now)
		require.NoError(t, err)
		require.Len(t, recent, 1)
		assert.Equal(t, 2, recent[0].Quantity)
	})
}
