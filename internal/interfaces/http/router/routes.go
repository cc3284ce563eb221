package router

import (
	"github.com/libreria/backend/internal/domain/catalog"
	"github.com/libreria/backend/internal/interfaces/http/handler"
)

var productPrefixes = map[catalog.ProductKind]string{
	catalog.KindBook:         "/books",
	catalog.KindMagazine:     "/magazines",
	catalog.KindSchoolSupply: "/school-supplies",
}

// ProductRoutes builds the routes of the handler's product kind
func ProductRoutes(h *handler.ProductHandler) *ResourceGroup {
	return NewResourceGroup(string(h.Kind()), productPrefixes[h.Kind()]).
		CRUD(h).
		POST("/:id/stock", h.AdjustStock)
}

func OrderRoutes(h *handler.OrderHandler) *ResourceGroup {
	return NewResourceGroup("orders", "/orders").
		CRUD(h).
		PATCH("/:id/status", h.UpdateStatus)
}

// SaleRoutes adds the ranking next to the CRUD routes; gin resolves the
// static segment ahead of /:id.
func SaleRoutes(h *handler.SaleHandler) *ResourceGroup {
	return NewResourceGroup("sales", "/sales").
		CRUD(h).
		GET("/top-products", h.TopProducts)
}

func SupplierRoutes(h *handler.SupplierHandler) *ResourceGroup {
	return NewResourceGroup("suppliers", "/suppliers").
		CRUD(h).
		GET("/category/:category", h.ByCategory).
		POST("/:id/catalog", h.AddCatalogItem).
		DELETE("/:id/catalog/:itemId", h.RemoveCatalogItem)
}
