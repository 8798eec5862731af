package views

import (
	"html/template"
	"sync"
)

// Document is the body a request renders into. Each Replace swaps the
// whole body; History keeps every body in order.
type Document struct {
	mu      sync.Mutex
	body    template.HTML
	history []template.HTML
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{}
}

// Replace sets the document body.
func (d *Document) Replace(body template.HTML) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.body = body
	d.history = append(d.history, body)
}

// Body returns the current body.
func (d *Document) Body() template.HTML {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.body
}

// History returns every body the document held, oldest first.
func (d *Document) History() []template.HTML {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]template.HTML(nil), d.history...)
}
