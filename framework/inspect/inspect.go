// Package inspect serves a read-only JSON view of a container's bindings.
//
//	GET /bindings        → {"data": [Binding, ...]}
//	GET /bindings/{id}   → {"data": Binding} or 404
//
// Nothing here resolves services; listing a binding never constructs it.
package inspect

import (
	"net/http"

	"github.com/km-arc/go-inject/framework/container"
	gohttp "github.com/km-arc/go-inject/framework/http"
	"github.com/km-arc/go-inject/framework/routing"
)

// Handler serves the inspection endpoints for one container.
type Handler struct {
	c *container.Container
}

// New returns a Handler for c.
func New(c *container.Container) *Handler { return &Handler{c: c} }

// Routes mounts the endpoints on r under /bindings.
func (h *Handler) Routes(r *routing.Router) {
	r.Prefix("/bindings", func(b *routing.Router) {
		b.Get("/", h.List)
		b.Get("/{id}", h.Show)
	})
}

// List writes every binding.
func (h *Handler) List(w http.ResponseWriter, _ *http.Request) {
	gohttp.NewResponse(w).Success(h.c.Bindings())
}

// Show writes one binding or 404.
func (h *Handler) Show(w http.ResponseWriter, req *http.Request) {
	res := gohttp.NewResponse(w)
	id := routing.Param(req, "id")
	b, ok := h.c.Describe(id)
	if !ok {
		res.NotFound("no binding for " + id)
		return
	}
	res.Success(b)
}
