package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/libreria/backend/internal/domain/catalog"
	"github.com/libreria/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBook(t *testing.T, tenantID uuid.UUID, name string, stock int) *catalog.Product {
	t.Helper()
	p, err := catalog.NewBook(tenantID, catalog.BookInput{
		Name:   name,
		Price:  decimal.NewFromFloat(19.9),
		Stock:  stock,
		ISBN:   "978-84-376-0494-7",
		Author: "Gabriel García Márquez",
	})
	require.NoError(t, err)
	return p
}

func TestGormProductRepository_SaveAndFind(t *testing.T) {
	repo := NewGormProductRepository(newTestDatabase(t).DB)
	ctx := context.Background()
	tenantID := uuid.New()

	book := newBook(t, tenantID, "Cien años de soledad", 5)
	require.NoError(t, repo.Save(ctx, book))

	found, err := repo.FindByIDForTenant(ctx, tenantID, book.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cien años de soledad", found.Name)
	assert.Equal(t, "libro", found.Category)
	require.NotNil(t, found.Book)
	assert.Equal(t, "Gabriel García Márquez", found.Book.Author)
	assert.True(t, decimal.NewFromFloat(19.9).Equal(found.Price))

	t.Run("other tenant cannot see it", func(t *testing.T) {
		_, err := repo.FindByIDForTenant(ctx, uuid.New(), book.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("save updates in place", func(t *testing.T) {
		require.NoError(t, found.AdjustStock(-2, "sale"))
		require.NoError(t, repo.Save(ctx, found))

		again, err := repo.FindByIDForTenant(ctx, tenantID, book.ID)
		require.NoError(t, err)
		assert.Equal(t, 3, again.Stock)
		assert.Equal(t, 2, again.Version)
	})
}

func TestGormProductRepository_FindByKind(t *testing.T) {
	repo := NewGormProductRepository(newTestDatabase(t).DB)
	ctx := context.Background()
	tenantID := uuid.New()

	for i, name := range []string{"Rayuela", "Ficciones", "Pedro Páramo"} {
		require.NoError(t, repo.Save(ctx, newBook(t, tenantID, name, i)))
	}
	supply, err := catalog.NewSchoolSupply(tenantID, catalog.SchoolSupplyInput{
		Name:  "Lápiz HB",
		Price: decimal.NewFromFloat(0.5),
		Stock: 100,
		Brand: "Staedtler",
	})
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, supply))
	mag, err := catalog.NewMagazine(tenantID, catalog.MagazineInput{
		Name: "National Geographic", Price: decimal.NewFromInt(6), ISSN: "0027-9358",
		Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Number: 1, IssueNumber: 1,
	})
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, mag))

	filter := shared.DefaultFilter()
	filter.OrderBy = "name"
	filter.OrderDir = "asc"

	books, err := repo.FindByKind(ctx, tenantID, catalog.KindBook, filter)
	require.NoError(t, err)
	require.Len(t, books, 3)
	assert.Equal(t, "Ficciones", books[0].Name)

	total, err := repo.CountByKind(ctx, tenantID, catalog.KindBook, filter)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)

	filter.Search = "rayu"
	books, err = repo.FindByKind(ctx, tenantID, catalog.KindBook, filter)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Rayuela", books[0].Name)

	filter = shared.DefaultFilter()
	filter.Filters["in_stock"] = false
	books, err = repo.FindByKind(ctx, tenantID, catalog.KindBook, filter)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, 0, books[0].Stock)

	supplies, err := repo.FindByKind(ctx, tenantID, catalog.KindSchoolSupply, shared.DefaultFilter())
	require.NoError(t, err)
	require.Len(t, supplies, 1)
	assert.Equal(t, "Staedtler", supplies[0].SchoolSupply.Brand)

	mags, err := repo.FindByKind(ctx, tenantID, catalog.KindMagazine, shared.DefaultFilter())
	require.NoError(t, err)
	require.Len(t, mags, 1)
	assert.Equal(t, "0027-9358", mags[0].Magazine.ISSN)
}

func TestGormProductRepository_Pagination(t *testing.T) {
	repo := NewGormProductRepository(newTestDatabase(t).DB)
	ctx := context.Background()
	tenantID := uuid.New()
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Save(ctx, newBook(t, tenantID, "Libro "+string(rune('A'+i)), 1)))
	}

	filter := shared.Filter{Page: 2, PageSize: 2, OrderBy: "name", OrderDir: "asc"}
	page, err := repo.FindByKind(ctx, tenantID, catalog.KindBook, filter)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "Libro C", page[0].Name)
	assert.Equal(t, "Libro D", page[1].Name)
}

func TestGormProductRepository_Delete(t *testing.T) {
	repo := NewGormProductRepository(newTestDatabase(t).DB)
	ctx := context.Background()
	tenantID := uuid.New()
	book := newBook(t, tenantID, "Rayuela", 1)
	require.NoError(t, repo.Save(ctx, book))

	assert.ErrorIs(t, repo.DeleteForTenant(ctx, uuid.New(), book.ID), shared.ErrNotFound)
	require.NoError(t, repo.DeleteForTenant(ctx, tenantID, book.ID))
	assert.ErrorIs(t, repo.DeleteForTenant(ctx, tenantID, book.ID), shared.ErrNotFound)
}
