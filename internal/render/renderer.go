// Package render turns a computed invoice into a self-contained printable
// document. Renderers are pure: no file or network I/O.
package render

import (
	"gstdesk/internal/domain"
)

// Renderer produces one document format from a computed invoice.
type Renderer interface {
	Format() domain.DocumentFormat
	Render(ci *domain.ComputedInvoice) (*domain.Document, error)
}

// Registry selects a Renderer by format.
type Registry struct {
	renderers map[domain.DocumentFormat]Renderer
}

// NewRegistry indexes renderers by their format. Later entries win.
func NewRegistry(renderers ...Renderer) *Registry {
	r := &Registry{renderers: make(map[domain.DocumentFormat]Renderer, len(renderers))}
	for _, rr := range renderers {
		r.renderers[rr.Format()] = rr
	}
	return r
}

// Get returns the renderer for format or domain.ErrUnsupportedFormat.
func (r *Registry) Get(format domain.DocumentFormat) (Renderer, error) {
	rr, ok := r.renderers[format]
	if !ok {
		return nil, domain.ErrUnsupportedFormat
	}
	return rr, nil
}
