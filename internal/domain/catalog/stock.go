package catalog

import (
	"encoding/json"
	"math"

	"github.com/libreria/backend/internal/domain/shared"
)

// UpdateStock returns current+delta. Reaching zero is fine; going below
// zero is not.
func UpdateStock(current, delta int) (int, error) {
	next := current + delta
	if next < 0 {
		return 0, shared.NewValidationError("Stock cannot be negative")
	}
	return next, nil
}

// ParseStockDelta converts a decoded JSON value into a stock delta.
// Only integral numbers are accepted.
func ParseStockDelta(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int32:
		return int(n), nil
	case int64:
		return int(n), nil
	case float64:
		if n == math.Trunc(n) && !math.IsInf(n, 0) {
			return int(n), nil
		}
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), nil
		}
	}
	return 0, shared.NewTypeError("Quantity must be a number")
}
