package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/libreria/backend/internal/domain/shared"
	"github.com/libreria/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// ==================== Order DTOs ====================

// OrderRequest carries order fields. On create an absent field stays empty;
// on update it keeps the stored value.
type OrderRequest struct {
	SupplierID  *uuid.UUID        `json:"supplierId"`
	Product     shared.Attributes `json:"product"`
	Date        *string           `json:"date"`
	Description *string           `json:"description" binding:"omitempty,max=2000"`
	Category    *string           `json:"category" binding:"omitempty,max=100"`
	Price       *decimal.Decimal  `json:"price"`
	Quantity    *int              `json:"quantityProduct"`
	Status      *string           `json:"status"`
}

// OrderStatusRequest changes an order's status
type OrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// OrderListFilter holds order list query parameters
type OrderListFilter struct {
	Search     string `form:"search"`
	Status     string `form:"status"`
	SupplierID string `form:"supplier_id" binding:"omitempty,uuid"`
	Category   string `form:"category"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string `form:"order_by"`
	OrderDir   string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID          uuid.UUID         `json:"id"`
	SupplierID  uuid.UUID         `json:"supplierId"`
	Product     shared.Attributes `json:"product"`
	Date        time.Time         `json:"date"`
	Description string            `json:"description"`
	Category    string            `json:"category"`
	Price       decimal.Decimal   `json:"price"`
	Quantity    int               `json:"quantityProduct"`
	Status      string            `json:"status"`
	Total       decimal.Decimal   `json:"total"`
	Version     int               `json:"version"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// ToOrderResponse converts a domain Order to OrderResponse
func ToOrderResponse(o *trade.Order) OrderResponse {
	return OrderResponse{
		ID:          o.ID,
		SupplierID:  o.SupplierID,
		Product:     o.Product(),
		Date:        o.Date,
		Description: o.Description,
		Category:    o.Category,
		Price:       o.Price,
		Quantity:    o.Quantity,
		Status:      o.Status.String(),
		Total:       o.Total,
		Version:     o.Version,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

// ToOrderResponses converts a slice of orders
func ToOrderResponses(orders []trade.Order) []OrderResponse {
	out := make([]OrderResponse, len(orders))
	for i := range orders {
		out[i] = ToOrderResponse(&orders[i])
	}
	return out
}

func (r OrderRequest) input(base *trade.Order) (trade.OrderInput, error) {
	var in trade.OrderInput
	if base != nil {
		in = trade.OrderInput{
			SupplierID:  base.SupplierID,
			Product:     base.Product(),
			Date:        base.Date,
			Description: base.Description,
			Category:    base.Category,
			Price:       base.Price,
			Quantity:    base.Quantity,
			Status:      base.Status,
		}
	}
	override(&in.SupplierID, r.SupplierID)
	override(&in.Description, r.Description)
	override(&in.Category, r.Category)
	override(&in.Price, r.Price)
	override(&in.Quantity, r.Quantity)
	if r.Product != nil {
		in.Product = r.Product
	}
	if r.Date != nil {
		d, err := shared.ParseDate(*r.Date)
		if err != nil {
			return in, err
		}
		in.Date = d
	}
	return in, nil
}

// ==================== Sale DTOs ====================

// SaleRequest carries sale fields with the same merge rules as OrderRequest
type SaleRequest struct {
	Product     shared.Attributes `json:"product"`
	Date        *string           `json:"date"`
	Description *string           `json:"description" binding:"omitempty,max=2000"`
	Category    *string           `json:"category" binding:"omitempty,max=100"`
	Price       *decimal.Decimal  `json:"price"`
	Quantity    *int              `json:"quantityProduct"`
}

// SaleListFilter holds sale list query parameters
type SaleListFilter struct {
	Search    string `form:"search"`
	ProductID string `form:"product_id"`
	Category  string `form:"category"`
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy   string `form:"order_by"`
	OrderDir  string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// SaleResponse represents a sale in API responses
type SaleResponse struct {
	ID          uuid.UUID         `json:"id"`
	ProductID   string            `json:"productId"`
	Product     shared.Attributes `json:"product"`
	Date        time.Time         `json:"date"`
	Description string            `json:"description"`
	Category    string            `json:"category"`
	Price       decimal.Decimal   `json:"price"`
	Quantity    int               `json:"quantityProduct"`
	Total       decimal.Decimal   `json:"total"`
	Version     int               `json:"version"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// ToSaleResponse converts a domain Sale to SaleResponse
func ToSaleResponse(s *trade.Sale) SaleResponse {
	return SaleResponse{
		ID:          s.ID,
		ProductID:   s.ProductID,
		Product:     s.Product(),
		Date:        s.Date,
		Description: s.Description,
		Category:    s.Category,
		Price:       s.Price,
		Quantity:    s.Quantity,
		Total:       s.Total,
		Version:     s.Version,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// ToSaleResponses converts a slice of sales
func ToSaleResponses(sales []trade.Sale) []SaleResponse {
	out := make([]SaleResponse, len(sales))
	for i := range sales {
		out[i] = ToSaleResponse(&sales[i])
	}
	return out
}

func (r SaleRequest) input(base *trade.Sale) (trade.SaleInput, error) {
	var in trade.SaleInput
	if base != nil {
		in = trade.SaleInput{
			Product:     base.Product(),
			Date:        base.Date,
			Description: base.Description,
			Category:    base.Category,
			Price:       base.Price,
			Quantity:    base.Quantity,
		}
	}
	override(&in.Description, r.Description)
	override(&in.Category, r.Category)
	override(&in.Price, r.Price)
	override(&in.Quantity, r.Quantity)
	if r.Product != nil {
		in.Product = r.Product
	}
	if r.Date != nil {
		d, err := shared.ParseDate(*r.Date)
		if err != nil {
			return in, err
		}
		in.Date = d
	}
	return in, nil
}

// TopProductsQuery selects the ranking window
type TopProductsQuery struct {
	Range string `form:"range"`
}

func override[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
