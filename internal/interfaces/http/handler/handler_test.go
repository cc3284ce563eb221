package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	catalogapp "github.com/libreria/backend/internal/application/catalog"
	"github.com/libreria/backend/internal/application/inventory"
	partnerapp "github.com/libreria/backend/internal/application/partner"
	tradeapp "github.com/libreria/backend/internal/application/trade"
	"github.com/libreria/backend/internal/domain/catalog"
	"github.com/libreria/backend/internal/infrastructure/config"
	"github.com/libreria/backend/internal/infrastructure/event"
	"github.com/libreria/backend/internal/infrastructure/persistence"
	"github.com/libreria/backend/internal/interfaces/http/dto"
	"github.com/libreria/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

var testTenant = uuid.MustParse("00000000-0000-0000-0000-0000000000aa")

type testAPI struct {
	t      *testing.T
	engine *gin.Engine
	sales  *tradeapp.SaleService
}

// newTestAPI wires the real services and repositories over an in-memory
// sqlite database, with the inventory handlers subscribed.
func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	db, err := persistence.NewDatabase(&config.DatabaseConfig{
		Driver:     "sqlite",
		SQLitePath: "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared",
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate())
	t.Cleanup(func() { _ = db.Close() })

	log := zap.NewNop()
	bus := event.NewInMemoryEventBus(log)

	productRepo := persistence.NewGormProductRepository(db.DB)
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)

	products := catalogapp.NewProductService(productRepo, nil)
	orders := tradeapp.NewOrderService(persistence.NewGormOrderRepository(db.DB), supplierRepo, nil)
	sales := tradeapp.NewSaleService(persistence.NewGormSaleRepository(db.DB), nil)
	suppliers := partnerapp.NewSupplierService(supplierRepo, nil)
	products.SetEventPublisher(bus)
	orders.SetEventPublisher(bus)
	sales.SetEventPublisher(bus)
	suppliers.SetEventPublisher(bus)

	bus.Subscribe(inventory.NewSaleRecordedHandler(products, log))
	bus.Subscribe(inventory.NewOrderDeliveredHandler(products, log))

	engine := gin.New()
	engine.Use(middleware.RequestID(), middleware.Tenant(testTenant))
	api := engine.Group("/api/v1")

	for kind, prefix := range map[catalog.ProductKind]string{
		catalog.KindBook:         "/books",
		catalog.KindMagazine:     "/magazines",
		catalog.KindSchoolSupply: "/school-supplies",
	} {
		h := NewProductHandler(products, kind)
		g := api.Group(prefix)
		g.GET("", h.List)
		g.POST("", h.Create)
		g.GET("/:id", h.GetByID)
		g.PUT("/:id", h.Update)
		g.DELETE("/:id", h.Delete)
		g.POST("/:id/stock", h.AdjustStock)
	}

	oh := NewOrderHandler(orders)
	og := api.Group("/orders")
	og.GET("", oh.List)
	og.POST("", oh.Create)
	og.GET("/:id", oh.GetByID)
	og.PUT("/:id", oh.Update)
	og.DELETE("/:id", oh.Delete)
	og.PATCH("/:id/status", oh.UpdateStatus)

	sh := NewSaleHandler(sales)
	sg := api.Group("/sales")
	sg.GET("", sh.List)
	sg.POST("", sh.Create)
	sg.GET("/top-products", sh.TopProducts)
	sg.GET("/:id", sh.GetByID)
	sg.DELETE("/:id", sh.Delete)

	uh := NewSupplierHandler(suppliers)
	ug := api.Group("/suppliers")
	ug.GET("", uh.List)
	ug.POST("", uh.Create)
	ug.GET("/category/:category", uh.ByCategory)
	ug.GET("/:id", uh.GetByID)
	ug.PUT("/:id", uh.Update)
	ug.DELETE("/:id", uh.Delete)
	ug.POST("/:id/catalog", uh.AddCatalogItem)
	ug.DELETE("/:id/catalog/:itemId", uh.RemoveCatalogItem)

	engine.GET("/health", NewHealthHandler(HealthCheck{Name: "database", Ping: db.Ping}).Health)

	return &testAPI{t: t, engine: engine, sales: sales}
}

func (a *testAPI) do(method, path string, body any) (*httptest.ResponseRecorder, dto.Response) {
	a.t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)

	var resp dto.Response
	if w.Body.Len() > 0 {
		require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	}
	return w, resp
}

func dataMap(t *testing.T, resp dto.Response) map[string]any {
	t.Helper()
	m, ok := resp.Data.(map[string]any)
	require.True(t, ok, "data is %T", resp.Data)
	return m
}

func (a *testAPI) createBook(stock int) string {
	a.t.Helper()
	w, resp := a.do(http.MethodPost, "/api/v1/books", map[string]any{
		"name":   "Cien años de soledad",
		"price":  "18.90",
		"stock":  stock,
		"isbn":   "978-0307474728",
		"author": "Gabriel García Márquez",
	})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	return dataMap(a.t, resp)["id"].(string)
}

func (a *testAPI) createSupplier() string {
	a.t.Helper()
	w, resp := a.do(http.MethodPost, "/api/v1/suppliers", map[string]any{
		"name":        "Distribuciones Atlas",
		"phoneNumber": "+34 912 345 678",
		"email":       "pedidos@atlas.es",
		"category":    "Libro",
		"catalog":     []map[string]any{{"id": "p-1", "name": "Rayuela"}},
	})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	return dataMap(a.t, resp)["id"].(string)
}

func TestProductEndpoints(t *testing.T) {
	api := newTestAPI(t)
	id := api.createBook(5)

	w, resp := api.do(http.MethodGet, "/api/v1/books/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	book := dataMap(t, resp)
	assert.Equal(t, "libro", book["category"])
	assert.Equal(t, "Gabriel García Márquez", book["author"])
	assert.NotContains(t, book, "issn")

	w, resp = api.do(http.MethodPut, "/api/v1/books/"+id, map[string]any{"section": "Clásicos"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Clásicos", dataMap(t, resp)["section"])
	assert.Equal(t, "Cien años de soledad", dataMap(t, resp)["name"])

	w, resp = api.do(http.MethodGet, "/api/v1/books?page_size=10", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(1), resp.Meta.Total)

	// the same id under another kind does not exist
	w, resp = api.do(http.MethodGet, "/api/v1/magazines/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, dto.ErrCodeNotFound, resp.Error.Code)
	assert.NotEmpty(t, resp.Error.RequestID)

	w, _ = api.do(http.MethodDelete, "/api/v1/books/"+id, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w, _ = api.do(http.MethodGet, "/api/v1/books/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProductEndpoints_Validation(t *testing.T) {
	api := newTestAPI(t)

	t.Run("negative price", func(t *testing.T) {
		w, resp := api.do(http.MethodPost, "/api/v1/books", map[string]any{
			"name": "X", "price": -1, "stock": 1, "isbn": "1", "author": "Y",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
	})

	t.Run("magazine with a bad date", func(t *testing.T) {
		w, resp := api.do(http.MethodPost, "/api/v1/magazines", map[string]any{
			"name": "Muy Interesante", "price": 4, "stock": 1, "issn": "0212-2834",
			"date": "not a date", "number": 3, "issueNumber": 1,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Date must be a valid Date object", resp.Error.Message)
	})

	t.Run("malformed body", func(t *testing.T) {
		w, resp := api.do(http.MethodPost, "/api/v1/books", `{"name":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeInvalidJSON, resp.Error.Code)
	})

	t.Run("bad id", func(t *testing.T) {
		w, _ := api.do(http.MethodGet, "/api/v1/books/abc", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("page size over the limit", func(t *testing.T) {
		w, resp := api.do(http.MethodGet, "/api/v1/books?page_size=500", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		require.NotEmpty(t, resp.Error.Details)
		assert.Equal(t, "page_size", resp.Error.Details[0].Field)
	})
}

func TestStockEndpoint(t *testing.T) {
	api := newTestAPI(t)
	id := api.createBook(2)

	w, resp := api.do(http.MethodPost, "/api/v1/books/"+id+"/stock", map[string]any{"quantity": 3})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(5), dataMap(t, resp)["stock"])

	w, resp = api.do(http.MethodPost, "/api/v1/books/"+id+"/stock", map[string]any{"quantity": -6})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Stock cannot be negative", resp.Error.Message)

	w, resp = api.do(http.MethodPost, "/api/v1/books/"+id+"/stock", map[string]any{"quantity": "three"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrCodeInvalidType, resp.Error.Code)
}

func TestOrderEndpoints(t *testing.T) {
	api := newTestAPI(t)
	bookID := api.createBook(1)
	supplierID := api.createSupplier()

	w, resp := api.do(http.MethodPost, "/api/v1/orders", map[string]any{
		"supplierId":      uuid.NewString(),
		"product":         map[string]any{"id": bookID},
		"date":            "2024-05-10",
		"category":        "libro",
		"price":           "7.5",
		"quantityProduct": 4,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Supplier not found", resp.Error.Message)

	w, resp = api.do(http.MethodPost, "/api/v1/orders", map[string]any{
		"supplierId":      supplierID,
		"product":         map[string]any{"id": bookID, "name": "Cien años de soledad"},
		"date":            "2024-05-10",
		"category":        "libro",
		"price":           "7.5",
		"quantityProduct": 4,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	order := dataMap(t, resp)
	assert.Equal(t, "PENDING", order["status"])
	assert.Equal(t, "30", order["total"])
	assert.Equal(t, float64(4), order["quantityProduct"])
	orderID := order["id"].(string)

	w, resp = api.do(http.MethodPatch, "/api/v1/orders/"+orderID+"/status", map[string]any{"status": "delivered"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "DELIVERED", dataMap(t, resp)["status"])

	// delivery restocks the ordered product
	_, resp = api.do(http.MethodGet, "/api/v1/books/"+bookID, nil)
	assert.Equal(t, float64(5), dataMap(t, resp)["stock"])

	w, resp = api.do(http.MethodPatch, "/api/v1/orders/"+orderID+"/status", map[string]any{"status": "PENDING"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Delivered order can only be cancelled", resp.Error.Message)

	w, _ = api.do(http.MethodPatch, "/api/v1/orders/"+orderID+"/status", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, resp = api.do(http.MethodGet, "/api/v1/orders?status=delivered", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1), resp.Meta.Total)
}

func TestSaleEndpoints(t *testing.T) {
	api := newTestAPI(t)
	now := time.Date(2024, time.May, 15, 12, 0, 0, 0, time.UTC)
	api.sales.SetClock(func() time.Time { return now })
	bookID := api.createBook(10)

	for _, line := range []struct {
		product  string
		quantity int
		date     string
	}{
		{bookID, 3, "2024-05-14"},
		{"external-1", 5, "2024-05-13"},
		{bookID, 4, "2024-05-12"},
		{bookID, 9, "2023-01-01"},
	} {
		w, _ := api.do(http.MethodPost, "/api/v1/sales", map[string]any{
			"product":         map[string]any{"id": line.product},
			"date":            line.date,
			"category":        "libro",
			"price":           "2",
			"quantityProduct": line.quantity,
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	// catalog products lose stock and the external reference is ignored.
	// The last sale exceeds the remaining stock: it is recorded, the
	// deduction is not.
	_, resp := api.do(http.MethodGet, "/api/v1/books/"+bookID, nil)
	assert.Equal(t, float64(3), dataMap(t, resp)["stock"])

	w, resp := api.do(http.MethodGet, "/api/v1/sales/top-products?range=month", nil)
	require.Equal(t, http.StatusOK, w.Code)
	ranking, ok := resp.Data.([]any)
	require.True(t, ok)
	require.Len(t, ranking, 2)
	first := ranking[0].(map[string]any)
	assert.Equal(t, bookID, first["productId"])
	assert.Equal(t, float64(7), first["quantity"])

	w, resp = api.do(http.MethodGet, "/api/v1/sales?product_id="+bookID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(3), resp.Meta.Total)

	w, resp = api.do(http.MethodPost, "/api/v1/sales", map[string]any{
		"product": map[string]any{"name": "no id"}, "date": "2024-05-14", "category": "libro", "price": 1, "quantityProduct": 1,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Product must have a valid ID", resp.Error.Message)
}

func TestSupplierEndpoints(t *testing.T) {
	api := newTestAPI(t)
	id := api.createSupplier()

	w, resp := api.do(http.MethodGet, "/api/v1/suppliers/category/libro", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, resp.Data, 1)

	w, resp = api.do(http.MethodPost, "/api/v1/suppliers/"+id+"/catalog", map[string]any{"id": "p-2", "name": "Ficciones"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Len(t, dataMap(t, resp)["catalog"], 2)

	w, resp = api.do(http.MethodPost, "/api/v1/suppliers/"+id+"/catalog", map[string]any{"id": "p-2"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Item with this ID already exists in catalog", resp.Error.Message)

	w, resp = api.do(http.MethodDelete, "/api/v1/suppliers/"+id+"/catalog/p-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, dataMap(t, resp)["catalog"], 1)

	w, resp = api.do(http.MethodPut, "/api/v1/suppliers/"+id, map[string]any{"email": "broken"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid email format", resp.Error.Message)

	w, _ = api.do(http.MethodDelete, "/api/v1/suppliers/"+id, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestHealth(t *testing.T) {
	api := newTestAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	api.engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "ok", body["components"].(map[string]any)["database"])
}
