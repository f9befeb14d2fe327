package report

import (
	"github.com/de-tools/legal-atlas/pkg/render"
	"github.com/de-tools/legal-atlas/pkg/render/docx"
	"github.com/de-tools/legal-atlas/pkg/render/pdf"
	"github.com/de-tools/legal-atlas/pkg/render/text"
)

// DefaultRenderers registers the plain text, docx and pdf renderers.
func DefaultRenderers(pdfConfig pdf.Config) *render.Registry {
	return render.NewRegistry(
		text.NewRenderer(),
		docx.NewRenderer(),
		pdf.NewRenderer(pdfConfig),
	)
}
