package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/libreria/backend/internal/application/catalog"
	"github.com/libreria/backend/internal/domain/catalog"
	"github.com/libreria/backend/internal/interfaces/http/middleware"
)

// ProductHandler serves one product kind. Books, magazines and school
// supplies each get their own instance under their own path.
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
	kind           catalog.ProductKind
}

// NewProductHandler creates a handler for the given kind
func NewProductHandler(productService *catalogapp.ProductService, kind catalog.ProductKind) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		kind:           kind,
	}
}

// Kind returns the product kind this handler serves
func (h *ProductHandler) Kind() catalog.ProductKind {
	return h.kind
}

// List handles GET /{kind}
func (h *ProductHandler) List(c *gin.Context) {
	var filter catalogapp.ProductListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	products, total, err := h.productService.List(c.Request.Context(), middleware.GetTenantID(c), h.kind, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	page, pageSize := pageOf(filter.Page, filter.PageSize)
	h.SuccessWithMeta(c, products, total, page, pageSize)
}

// Create handles POST /{kind}
func (h *ProductHandler) Create(c *gin.Context) {
	var req catalogapp.ProductRequest
	if !h.bindJSON(c, &req) {
		return
	}

	product, err := h.productService.Create(c.Request.Context(), middleware.GetTenantID(c), h.kind, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, product)
}

// GetByID handles GET /{kind}/:id
func (h *ProductHandler) GetByID(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	product, err := h.productService.GetByID(c.Request.Context(), middleware.GetTenantID(c), h.kind, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Update handles PUT /{kind}/:id. Absent fields keep their stored value.
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req catalogapp.ProductRequest
	if !h.bindJSON(c, &req) {
		return
	}

	product, err := h.productService.Update(c.Request.Context(), middleware.GetTenantID(c), h.kind, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// AdjustStock handles POST /{kind}/:id/stock with a signed quantity
func (h *ProductHandler) AdjustStock(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req catalogapp.StockRequest
	if !h.bindJSON(c, &req) {
		return
	}

	product, err := h.productService.AdjustStock(c.Request.Context(), middleware.GetTenantID(c), h.kind, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Delete handles DELETE /{kind}/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.productService.Delete(c.Request.Context(), middleware.GetTenantID(c), h.kind, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
