// Package routes maps page paths to the functions that render them.
package routes

import (
	"context"
	"errors"
	"fmt"
)

// Path identifies a page of the application.
type Path string

const (
	Login     Path = "/"
	Bills     Path = "/employee/bills"
	NewBill   Path = "/employee/bill/new"
	Dashboard Path = "/admin/dashboard"
)

// ErrUnknownPath is returned by Navigate for paths missing from the table.
var ErrUnknownPath = errors.New("unknown path")

// Page renders one path into the current document.
type Page func(ctx context.Context)

// Navigator switches the document to another page.
type Navigator func(ctx context.Context, path Path)

// Router dispatches paths to pages.
type Router struct {
	pages   map[Path]Page
	current Path
}

// NewRouter creates a router over the given dispatch table.
func NewRouter(pages map[Path]Page) *Router {
	return &Router{pages: pages}
}

// Navigate renders path synchronously.
func (r *Router) Navigate(ctx context.Context, path Path) error {
	page, ok := r.pages[path]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownPath, path)
	}
	r.current = path
	page(ctx)
	return nil
}

// Current returns the last path rendered.
func (r *Router) Current() Path {
	return r.current
}

// Has reports whether path has a page.
func (r *Router) Has(path Path) bool {
	_, ok := r.pages[path]
	return ok
}
