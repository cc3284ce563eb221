package partner

import (
	"testing"

	"github.com/google/uuid"
	"github.com/libreria/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalogIDs(s *Supplier) []string {
	var ids []string
	for _, item := range s.Catalog() {
		ids = append(ids, item.ID())
	}
	return ids
}

func validSupplierInput() SupplierInput {
	return SupplierInput{
		Name:        "Distribuidora Norte",
		PhoneNumber: "(123) 456-7890",
		Email:       "ventas@norte.com",
		Category:    "Libros",
	}
}

func TestNewSupplier(t *testing.T) {
	tenantID := uuid.New()

	t.Run("creates supplier with formatted phone", func(t *testing.T) {
		s, err := NewSupplier(tenantID, validSupplierInput())
		require.NoError(t, err)
		assert.Equal(t, "(123) 456-7890", s.PhoneNumber)
		assert.Empty(t, s.Catalog())
		require.Len(t, s.PendingEvents(), 1)
		assert.Equal(t, EventTypeSupplierCreated, s.PendingEvents()[0].EventType())
	})

	tests := []struct {
		name    string
		mutate  func(in *SupplierInput)
		message string
	}{
		{"short phone", func(in *SupplierInput) { in.PhoneNumber = "123-456" }, "Phone number must have at least 9 digits"},
		{"bad email", func(in *SupplierInput) { in.Email = "ventas@norte" }, "Invalid email format"},
		{"email with space", func(in *SupplierInput) { in.Email = "ven tas@norte.com" }, "Invalid email format"},
		{"missing name", func(in *SupplierInput) { in.Name = "" }, "Supplier must have all required properties"},
		{"missing category", func(in *SupplierInput) { in.Category = "" }, "Supplier must have all required properties"},
		{"duplicate catalog ids", func(in *SupplierInput) {
			in.Catalog = []shared.Attributes{{"id": "a"}, {"id": "a"}}
		}, "Item with this ID already exists in catalog"},
		{"catalog item without id", func(in *SupplierInput) {
			in.Catalog = []shared.Attributes{{"name": "x"}}
		}, "Invalid catalog item"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validSupplierInput()
			tt.mutate(&in)
			s, err := NewSupplier(tenantID, in)
			require.Error(t, err)
			assert.Nil(t, s)
			assert.Equal(t, tt.message, err.Error())
		})
	}

	t.Run("initial catalog is copied", func(t *testing.T) {
		in := validSupplierInput()
		item := shared.Attributes{"id": "b1", "title": "Ficciones"}
		in.Catalog = []shared.Attributes{item}
		s, err := NewSupplier(tenantID, in)
		require.NoError(t, err)
		item["title"] = "changed"
		assert.Equal(t, "Ficciones", s.Catalog()[0]["title"])
	})
}

func TestSupplier_Catalog(t *testing.T) {
	s, err := NewSupplier(uuid.New(), validSupplierInput())
	require.NoError(t, err)
	s.ClearEvents()

	require.NoError(t, s.AddToCatalog(shared.Attributes{"id": "X", "title": "El Aleph"}))
	err = s.AddToCatalog(shared.Attributes{"id": "X"})
	require.Error(t, err)
	assert.Equal(t, "Item with this ID already exists in catalog", err.Error())

	err = s.AddToCatalog(nil)
	require.Error(t, err)
	assert.Equal(t, "Invalid catalog item", err.Error())

	assert.Equal(t, []string{"X"}, catalogIDs(s))
	require.NoError(t, s.RemoveFromCatalog("X"))
	assert.Empty(t, catalogIDs(s))

	err = s.RemoveFromCatalog("X")
	require.Error(t, err)
	assert.Equal(t, "Item not found in catalog", err.Error())

	events := s.PendingEvents()
	require.Len(t, events, 2)
	assert.Equal(t, CatalogItemAdded, events[0].(*SupplierCatalogChangedEvent).Change)
	assert.Equal(t, CatalogItemRemoved, events[1].(*SupplierCatalogChangedEvent).Change)
}

func TestSupplier_CatalogAccessorReturnsCopies(t *testing.T) {
	s, err := NewSupplier(uuid.New(), validSupplierInput())
	require.NoError(t, err)
	require.NoError(t, s.AddToCatalog(shared.Attributes{"id": "1", "tags": []any{"a"}}))

	list := s.Catalog()
	list[0]["id"] = "2"
	list[0]["tags"].([]any)[0] = "z"
	list = append(list, shared.Attributes{"id": "3"})

	fresh := s.Catalog()
	require.Len(t, fresh, 1)
	assert.Equal(t, "1", fresh[0].ID())
	assert.Equal(t, "a", fresh[0]["tags"].([]any)[0])
}

func TestSupplier_Revise(t *testing.T) {
	s, err := NewSupplier(uuid.New(), validSupplierInput())
	require.NoError(t, err)
	require.NoError(t, s.AddToCatalog(shared.Attributes{"id": "k"}))

	in := validSupplierInput()
	in.Email = "nuevo@norte.com"
	next, err := NewSupplier(s.TenantID, in)
	require.NoError(t, err)

	s.Revise(next)
	assert.Equal(t, "nuevo@norte.com", s.Email)
	assert.Equal(t, []string{"k"}, catalogIDs(s))
}

func TestSupplier_CatalogIDsKeepTheirType(t *testing.T) {
	s, err := NewSupplier(uuid.New(), validSupplierInput())
	require.NoError(t, err)

	require.NoError(t, s.AddToCatalog(shared.Attributes{"id": float64(1), "title": "numeric"}))
	require.NoError(t, s.AddToCatalog(shared.Attributes{"id": "1", "title": "text"}))

	err = s.AddToCatalog(shared.Attributes{"id": 1})
	require.Error(t, err)
	assert.Equal(t, "Item with this ID already exists in catalog", err.Error())
	err = s.AddToCatalog(shared.Attributes{"id": "1"})
	require.Error(t, err)

	// the text id is removed before the numeric one
	require.NoError(t, s.RemoveFromCatalog("1"))
	left := s.Catalog()
	require.Len(t, left, 1)
	assert.Equal(t, "numeric", left[0]["title"])

	require.NoError(t, s.RemoveFromCatalog("1"))
	assert.Empty(t, s.Catalog())
}
