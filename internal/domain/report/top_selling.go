// Package report holds read-side calculations over recorded sales.
package report

import (
	"sort"
	"strings"
	"time"
)

// RangeKeyword names a window of time ending now
type RangeKeyword string

const (
	RangeWeek      RangeKeyword = "week"
	RangeMonth     RangeKeyword = "month"
	RangeQuarter   RangeKeyword = "quarter"
	RangeSixMonths RangeKeyword = "sixmonths"
	RangeYear      RangeKeyword = "year"
)

// ParseRange maps a query value to a keyword. Unknown values mean week.
func ParseRange(s string) RangeKeyword {
	switch r := RangeKeyword(strings.ToLower(strings.TrimSpace(s))); r {
	case RangeWeek, RangeMonth, RangeQuarter, RangeSixMonths, RangeYear:
		return r
	}
	return RangeWeek
}

// From returns the inclusive start of the window ending at now. Month-based
// windows start at midnight on the first day of the month, in now's location.
func (r RangeKeyword) From(now time.Time) time.Time {
	y, m, _ := now.Date()
	loc := now.Location()
	switch r {
	case RangeMonth:
		return time.Date(y, m, 1, 0, 0, 0, 0, loc)
	case RangeQuarter:
		return time.Date(y, m-2, 1, 0, 0, 0, 0, loc)
	case RangeSixMonths:
		return time.Date(y, m-5, 1, 0, 0, 0, 0, loc)
	case RangeYear:
		return time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
	}
	return now.AddDate(0, 0, -7)
}

// SaleLine is the part of a sale the ranking needs
type SaleLine struct {
	ProductID string
	Quantity  int
	Date      time.Time
}

// ProductQuantity is one row of the ranking
type ProductQuantity struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// TopSellingProducts sums quantities per product over the sales dated
// within [r.From(now), now] and ranks them by descending quantity. Products
// with equal totals keep the order in which they were first seen.
func TopSellingProducts(lines []SaleLine, r RangeKeyword, now time.Time) []ProductQuantity {
	from := r.From(now)

	result := make([]ProductQuantity, 0)
	index := make(map[string]int)
	for _, l := range lines {
		if l.Date.Before(from) || l.Date.After(now) {
			continue
		}
		if i, ok := index[l.ProductID]; ok {
			result[i].Quantity += l.Quantity
			continue
		}
		index[l.ProductID] = len(result)
		result = append(result, ProductQuantity{ProductID: l.ProductID, Quantity: l.Quantity})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Quantity > result[j].Quantity
	})
	return result
}
