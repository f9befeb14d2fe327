package render

import (
	"fmt"

	"github.com/de-tools/legal-atlas/pkg/models/domain"
)

// Renderer turns a ReportModel into one output encoding. Implementations must treat the
// model as read-only and produce identical bytes for identical input.
type Renderer interface {
	Format() domain.Format
	Render(model domain.ReportModel) ([]byte, error)
}

// Func adapts a plain function to the Renderer interface.
type Func struct {
	F  domain.Format
	Fn func(model domain.ReportModel) ([]byte, error)
}

func (f Func) Format() domain.Format { return f.F }

func (f Func) Render(model domain.ReportModel) ([]byte, error) { return f.Fn(model) }

var mimeTypes = map[domain.Format]string{
	domain.FormatTXT:  "text/plain",
	domain.FormatDOCX: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	domain.FormatPDF:  "application/pdf",
}

// MIMEType returns the content type for a format.
func MIMEType(f domain.Format) string {
	return mimeTypes[f]
}

// Filename joins a stem with the format extension.
func Filename(stem string, f domain.Format) string {
	if stem == "" {
		stem = domain.DefaultFileStem
	}
	return fmt.Sprintf("%s.%s", stem, f)
}

// Registry resolves renderers by format. It is not modified after construction.
type Registry struct {
	renderers map[domain.Format]Renderer
}

func NewRegistry(renderers ...Renderer) *Registry {
	r := &Registry{renderers: make(map[domain.Format]Renderer, len(renderers))}
	for _, rd := range renderers {
		r.renderers[rd.Format()] = rd
	}
	return r
}

func (r *Registry) Get(f domain.Format) (Renderer, error) {
	rd, ok := r.renderers[f]
	if !ok {
		return nil, fmt.Errorf("no renderer registered for format %q", f)
	}
	return rd, nil
}
