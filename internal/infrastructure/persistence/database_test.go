package persistence

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/libreria/backend/internal/domain/shared"
	"github.com/libreria/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockDatabase wraps a sqlmock connection in the postgres dialector
func newMockDatabase(t *testing.T) (*Database, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)

	// gorm pings the pool once while opening
	mock.ExpectPing()
	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	return &Database{DB: gormDB, Driver: "postgres"}, mock, mockDB
}

func TestDialector(t *testing.T) {
	pg, err := Dialector(&config.DatabaseConfig{Driver: "postgres", Host: "h", Port: 5432, User: "u", DBName: "d", SSLMode: "disable"})
	require.NoError(t, err)
	assert.Equal(t, "postgres", pg.Name())

	lite, err := Dialector(&config.DatabaseConfig{Driver: "SQLite"})
	require.NoError(t, err)
	assert.Equal(t, "sqlite", lite.Name())

	_, err = Dialector(&config.DatabaseConfig{Driver: "mysql"})
	assert.Error(t, err)
}

func TestDatabase_OpenPingsConnection(t *testing.T) {
	_, mock, mockDB := newMockDatabase(t)
	defer mockDB.Close()

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDatabase_Ping(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		db, mock, mockDB := newMockDatabase(t)
		defer mockDB.Close()

		mock.ExpectPing()
		assert.NoError(t, db.Ping(context.Background()))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failure is reported", func(t *testing.T) {
		db, mock, mockDB := newMockDatabase(t)
		defer mockDB.Close()

		mock.ExpectPing().WillReturnError(errors.New("connection refused"))
		assert.Error(t, db.Ping(context.Background()))
	})
}

func TestDatabase_Stats(t *testing.T) {
	db, _, mockDB := newMockDatabase(t)
	defer mockDB.Close()

	stats, err := db.Stats()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, stats.OpenConnections, 0)
}

func TestGormSupplierRepository_PostgresQueries(t *testing.T) {
	t.Run("category lookup is case-insensitive and tenant scoped", func(t *testing.T) {
		db, mock, mockDB := newMockDatabase(t)
		defer mockDB.Close()
		repo := NewGormSupplierRepository(db.DB)
		tenantID := uuid.New()
		supplierID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "tenant_id", "version", "name", "phone_number", "email", "category", "catalog"}).
			AddRow(supplierID, tenantID, 1, "Papelera Sur", "600111222", "info@sur.es", "Util Escolar", `[{"id":"X1"}]`)
		mock.ExpectQuery(`SELECT \* FROM "suppliers" WHERE tenant_id = \$1 AND LOWER\(category\) = \$2 ORDER BY name ASC`).
			WithArgs(tenantID, "util escolar").
			WillReturnRows(rows)

		suppliers, err := repo.FindByCategory(context.Background(), tenantID, "  UTIL escolar ")
		require.NoError(t, err)
		require.Len(t, suppliers, 1)
		assert.Equal(t, supplierID, suppliers[0].ID)
		require.Len(t, suppliers[0].Catalog(), 1)
		assert.Equal(t, "X1", suppliers[0].Catalog()[0].ID())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row maps to not found", func(t *testing.T) {
		db, mock, mockDB := newMockDatabase(t)
		defer mockDB.Close()
		repo := NewGormSupplierRepository(db.DB)
		tenantID, id := uuid.New(), uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "suppliers" WHERE tenant_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(tenantID, id, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		_, err := repo.FindByIDForTenant(context.Background(), tenantID, id)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("delete without match maps to not found", func(t *testing.T) {
		db, mock, mockDB := newMockDatabase(t)
		defer mockDB.Close()
		repo := NewGormSupplierRepository(db.DB)
		tenantID, id := uuid.New(), uuid.New()

		mock.ExpectExec(`DELETE FROM "suppliers" WHERE tenant_id = \$1 AND id = \$2`).
			WithArgs(tenantID, id).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.DeleteForTenant(context.Background(), tenantID, id), shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
