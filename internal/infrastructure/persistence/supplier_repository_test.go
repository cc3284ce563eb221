package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/libreria/backend/internal/domain/partner"
	"github.com/libreria/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormSupplierRepository(t *testing.T) {
	repo := NewGormSupplierRepository(newTestDatabase(t).DB)
	ctx := context.Background()
	tenantID := uuid.New()

	save := func(name, category string) *partner.Supplier {
		s, err := partner.NewSupplier(tenantID, partner.SupplierInput{
			Name:        name,
			PhoneNumber: "912345678",
			Email:       "contacto@" + uuid.NewString()[:8] + ".es",
			Category:    category,
		})
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, s))
		return s
	}

	books := save("Editorial Planeta", "Libro")
	save("Papelería Central", "util escolar")

	t.Run("exists", func(t *testing.T) {
		ok, err := repo.ExistsByID(ctx, tenantID, books.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = repo.ExistsByID(ctx, uuid.New(), books.ID)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("by category ignores case", func(t *testing.T) {
		found, err := repo.FindByCategory(ctx, tenantID, "LIBRO")
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, books.ID, found[0].ID)

		none, err := repo.FindByCategory(ctx, tenantID, "revista")
		require.NoError(t, err)
		assert.Empty(t, none)
		assert.NotNil(t, none)
	})

	t.Run("catalog survives a round trip", func(t *testing.T) {
		s, err := repo.FindByIDForTenant(ctx, tenantID, books.ID)
		require.NoError(t, err)
		require.NoError(t, s.AddToCatalog(shared.Attributes{"id": "isbn-1", "title": "Rayuela", "price": 21.5}))
		require.NoError(t, repo.Save(ctx, s))

		s, err = repo.FindByIDForTenant(ctx, tenantID, books.ID)
		require.NoError(t, err)
		require.Len(t, s.Catalog(), 1)
		assert.Equal(t, 21.5, s.Catalog()[0]["price"])
	})

	t.Run("list and count", func(t *testing.T) {
		all, err := repo.FindAllForTenant(ctx, tenantID, shared.DefaultFilter())
		require.NoError(t, err)
		assert.Len(t, all, 2)

		n, err := repo.CountForTenant(ctx, tenantID, shared.Filter{Search: "papel"})
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)
	})
}
