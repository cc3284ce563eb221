package shared

import (
	"strconv"
)

// Attributes is a free-form JSON object, used for product snapshots and
// supplier catalog entries. Callers never share the underlying map: use
// Clone whenever a value crosses an aggregate boundary.
type Attributes map[string]any

// Clone returns a deep copy of nested maps and slices.
func (a Attributes) Clone() Attributes {
	if a == nil {
		return nil
	}
	out := make(Attributes, len(a))
	for k, v := range a {
		out[k] = cloneValue(v)
	}
	return out
}

// ID returns the "id" attribute as a string. Integral JSON numbers are
// accepted; anything else yields "".
func (a Attributes) ID() string {
	switch v := a["id"].(type) {
	case string:
		return v
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	}
	return ""
}

// SameID reports whether a and b carry the same "id". A number and a
// string never match, even when they print alike.
func (a Attributes) SameID(b Attributes) bool {
	x, y := a["id"], b["id"]
	if xs, ok := x.(string); ok {
		ys, ok := y.(string)
		return ok && xs == ys
	}
	xf, xok := numericID(x)
	yf, yok := numericID(y)
	return xok && yok && xf == yf
}

func numericID(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return map[string]any(Attributes(t).Clone())
	case Attributes:
		return t.Clone()
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}
