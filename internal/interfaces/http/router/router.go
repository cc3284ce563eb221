// Package router groups the API routes by resource and mounts them under a
// versioned prefix.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RouteRegistrar is anything that can add routes to a group
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router mounts registrars under /api/{version}
type Router struct {
	engine     *gin.Engine
	apiVersion string
	registrars []RouteRegistrar
}

type RouterOption func(*Router)

// WithAPIVersion replaces the default "v1" prefix
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) { r.apiVersion = version }
}

func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{engine: engine, apiVersion: "v1"}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Router) Register(registrars ...RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrars...)
	return r
}

// Setup mounts every registrar and returns the API group
func (r *Router) Setup() *gin.RouterGroup {
	api := r.engine.Group("/api/" + r.apiVersion)
	for _, reg := range r.registrars {
		reg.RegisterRoutes(api)
	}
	return api
}

// CRUDHandler serves the five routes every resource shares
type CRUDHandler interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	GetByID(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

type Route struct {
	Method   string
	Path     string
	handlers []gin.HandlerFunc
}

// ResourceGroup collects the routes of one resource under a prefix
type ResourceGroup struct {
	name       string
	prefix     string
	routes     []Route
	middleware []gin.HandlerFunc
}

func NewResourceGroup(name, prefix string) *ResourceGroup {
	return &ResourceGroup{name: name, prefix: prefix}
}

func (g *ResourceGroup) Name() string   { return g.name }
func (g *ResourceGroup) Prefix() string { return g.prefix }

// Routes lists the registered routes in registration order
func (g *ResourceGroup) Routes() []Route {
	return append([]Route(nil), g.routes...)
}

// Use adds middleware that runs before every route of the group
func (g *ResourceGroup) Use(middleware ...gin.HandlerFunc) *ResourceGroup {
	g.middleware = append(g.middleware, middleware...)
	return g
}

func (g *ResourceGroup) Handle(method, path string, handlers ...gin.HandlerFunc) *ResourceGroup {
	g.routes = append(g.routes, Route{Method: method, Path: path, handlers: handlers})
	return g
}

func (g *ResourceGroup) GET(path string, h ...gin.HandlerFunc) *ResourceGroup {
	return g.Handle(http.MethodGet, path, h...)
}

func (g *ResourceGroup) POST(path string, h ...gin.HandlerFunc) *ResourceGroup {
	return g.Handle(http.MethodPost, path, h...)
}

func (g *ResourceGroup) PATCH(path string, h ...gin.HandlerFunc) *ResourceGroup {
	return g.Handle(http.MethodPatch, path, h...)
}

func (g *ResourceGroup) DELETE(path string, h ...gin.HandlerFunc) *ResourceGroup {
	return g.Handle(http.MethodDelete, path, h...)
}

// CRUD adds the collection routes ("" for list and create) and the
// item routes ("/:id" for get, update and delete).
func (g *ResourceGroup) CRUD(h CRUDHandler) *ResourceGroup {
	return g.
		GET("", h.List).
		POST("", h.Create).
		GET("/:id", h.GetByID).
		Handle(http.MethodPut, "/:id", h.Update).
		DELETE("/:id", h.Delete)
}

func (g *ResourceGroup) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group(g.prefix, g.middleware...)
	for _, route := range g.routes {
		group.Handle(route.Method, route.Path, route.handlers...)
	}
}
