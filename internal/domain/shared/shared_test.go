package shared

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainError_IsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("load book: %w", ErrNotFound)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrValidation))

	v := NewValidationError("Price must be a positive number")
	assert.True(t, errors.Is(v, ErrValidation))
	assert.Equal(t, "Price must be a positive number", v.Error())
}

func TestNewID_IsTimeOrdered(t *testing.T) {
	a := NewID()
	b := NewID()
	assert.Equal(t, 7, int(a.Version()))
	assert.Less(t, a.String(), b.String())
}

func TestAttributes_CloneIsDeep(t *testing.T) {
	orig := Attributes{
		"id":   "p1",
		"tags": []any{"a", map[string]any{"k": "v"}},
		"meta": map[string]any{"color": "red"},
	}
	cp := orig.Clone()
	cp["meta"].(map[string]any)["color"] = "blue"
	cp["tags"].([]any)[1].(map[string]any)["k"] = "x"
	cp["id"] = "p2"

	assert.Equal(t, "red", orig["meta"].(map[string]any)["color"])
	assert.Equal(t, "v", orig["tags"].([]any)[1].(map[string]any)["k"])
	assert.Equal(t, "p1", orig.ID())
	assert.Nil(t, Attributes(nil).Clone())
}

func TestAttributes_ID(t *testing.T) {
	tests := []struct {
		name  string
		attrs Attributes
		want  string
	}{
		{"string", Attributes{"id": "abc"}, "abc"},
		{"json number", Attributes{"id": float64(42)}, "42"},
		{"fractional number", Attributes{"id": 1.5}, ""},
		{"int", Attributes{"id": 7}, "7"},
		{"missing", Attributes{"name": "x"}, ""},
		{"bool", Attributes{"id": true}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.attrs.ID())
		})
	}
}

func TestAttributes_SameID(t *testing.T) {
	tests := []struct {
		name string
		a, b Attributes
		same bool
	}{
		{"equal strings", Attributes{"id": "7"}, Attributes{"id": "7"}, true},
		{"json and go numbers", Attributes{"id": float64(7)}, Attributes{"id": 7}, true},
		{"number vs string", Attributes{"id": float64(7)}, Attributes{"id": "7"}, false},
		{"different strings", Attributes{"id": "7"}, Attributes{"id": "8"}, false},
		{"missing ids", Attributes{}, Attributes{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.same, tt.a.SameID(tt.b))
			assert.Equal(t, tt.same, tt.b.SameID(tt.a))
		})
	}
}

func TestFilter_Normalize(t *testing.T) {
	f := Filter{Search: "x"}.Normalize("name", "asc")
	assert.Equal(t, DefaultPage, f.Page)
	assert.Equal(t, DefaultPageSize, f.PageSize)
	assert.Equal(t, "name", f.OrderBy)
	assert.Equal(t, "asc", f.OrderDir)
	assert.NotNil(t, f.Filters)
	assert.Equal(t, 0, f.Offset())

	kept := Filter{Page: 3, PageSize: 10, OrderBy: "price", OrderDir: "desc"}.Normalize("name", "asc")
	assert.Equal(t, "price", kept.OrderBy)
	assert.Equal(t, "desc", kept.OrderDir)
	assert.Equal(t, 20, kept.Offset())
}

func TestFilter_Where(t *testing.T) {
	var f Filter
	f.Where("category", "")
	assert.Nil(t, f.Filters)

	f.Where("category", "libro")
	f.Where("in_stock", false)
	assert.Equal(t, map[string]any{"category": "libro", "in_stock": false}, f.Filters)
}

func TestAggregate_Lifecycle(t *testing.T) {
	tenantID := NewID()
	a := NewAggregate(tenantID)
	assert.Equal(t, 1, a.Version)
	assert.Equal(t, tenantID, a.TenantID)
	assert.Equal(t, a.CreatedAt, a.UpdatedAt)

	a.MarkModified()
	assert.Equal(t, 2, a.Version)
	assert.False(t, a.UpdatedAt.Before(a.CreatedAt))

	meta := NewEventMeta("Touched", "Thing", a.ID, tenantID)
	a.Record(meta)
	require.Len(t, a.PendingEvents(), 1)
	ev := a.PendingEvents()[0]
	assert.Equal(t, "Touched", ev.EventType())
	assert.Equal(t, "Thing", ev.AggregateType())
	assert.Equal(t, a.ID, ev.AggregateID())
	assert.Equal(t, tenantID, ev.TenantID())

	a.ClearEvents()
	assert.Empty(t, a.PendingEvents())
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-03-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), d)

	ts, err := ParseDate("2024-03-15T10:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, 10, ts.Hour())

	_, err = ParseDate("15/03/2024")
	assert.ErrorIs(t, err, ErrValidation)
	assert.EqualError(t, err, "Date must be a valid Date object")
}
