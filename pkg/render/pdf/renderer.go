package pdf

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/de-tools/legal-atlas/pkg/models/domain"
	"github.com/de-tools/legal-atlas/pkg/render"
)

type Config struct {
	PageSize string
	// Compress deflates page content streams.
	Compress bool
	// BottomMargin is the distance from the page bottom that triggers a page break, in mm.
	BottomMargin float64
	FontFamily   string
}

func DefaultConfig() Config {
	return Config{
		PageSize:     "A4",
		Compress:     true,
		BottomMargin: 15,
		FontFamily:   "Arial",
	}
}

// Renderer lays the report out as a paginated PDF with a running header and footer.
type Renderer struct {
	config Config
}

func NewRenderer(config Config) *Renderer {
	def := DefaultConfig()
	if config.PageSize == "" {
		config.PageSize = def.PageSize
	}
	if config.BottomMargin <= 0 {
		config.BottomMargin = def.BottomMargin
	}
	if config.FontFamily == "" {
		config.FontFamily = def.FontFamily
	}
	return &Renderer{config: config}
}

func (r *Renderer) Format() domain.Format {
	return domain.FormatPDF
}

func (r *Renderer) Render(model domain.ReportModel) ([]byte, error) {
	doc := r.newDocument(model)
	doc.pdf.AddPage()
	doc.body()

	for _, s := range model.Sections {
		switch sec := s.(type) {
		case domain.SummarySection:
			doc.heading(render.SummaryHeading)
			for _, line := range render.Paragraphs(sec.Text) {
				doc.paragraph(line)
			}
		case domain.ScoreSection:
			doc.heading(render.ScoreHeading)
			doc.score(sec.Assessment)
		case domain.FindingsSection:
			doc.heading(render.FindingsHeading)
			doc.findings(sec)
		}
		doc.pdf.Ln(5)
	}

	if doc.pdf.Err() {
		return nil, fmt.Errorf("pdf layout failed: %w", doc.pdf.Error())
	}

	var buf bytes.Buffer
	if err := doc.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

type document struct {
	pdf    *fpdf.Fpdf
	tr     func(string) string
	family string
}

func (r *Renderer) newDocument(model domain.ReportModel) *document {
	pdf := fpdf.New("P", "mm", r.config.PageSize, "")
	d := &document{
		pdf:    pdf,
		tr:     pdf.UnicodeTranslatorFromDescriptor(""),
		family: r.config.FontFamily,
	}

	title := model.Title
	if title == "" {
		title = domain.DefaultReportTitle
	}
	author := model.Author
	if author == "" {
		author = domain.DefaultAuthor
	}
	generated := "Generated on " + model.GeneratedAt.Format(render.DateLayout)

	pdf.SetTitle(title, true)
	pdf.SetAuthor(author, true)
	pdf.SetCreator("legal-atlas", true)
	pdf.SetCreationDate(model.GeneratedAt)
	pdf.SetModificationDate(model.GeneratedAt)
	pdf.SetCatalogSort(true)
	pdf.SetCompression(r.config.Compress)
	pdf.AliasNbPages("")
	pdf.SetAutoPageBreak(true, r.config.BottomMargin)

	pdf.SetHeaderFunc(func() {
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont(d.family, "B", 16)
		pdf.CellFormat(0, 10, d.tr(title), "", 1, "C", false, 0, "")
		pdf.SetFont(d.family, "I", 10)
		pdf.CellFormat(0, 5, d.tr(generated), "", 1, "C", false, 0, "")
		pdf.Ln(5)
		left, _, right, _ := pdf.GetMargins()
		width, _ := pdf.GetPageSize()
		pdf.Line(left, 25, width-right, 25)
		pdf.Ln(10)
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(d.family, "I", 8)
		pdf.SetTextColor(0, 0, 0)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	return d
}

func (d *document) body() {
	d.pdf.SetFont(d.family, "", 11)
	d.pdf.SetTextColor(0, 0, 0)
}

func (d *document) heading(text string) {
	d.pdf.SetFont(d.family, "B", 14)
	d.pdf.CellFormat(0, 10, d.tr(text), "", 1, "L", false, 0, "")
	d.body()
}

func (d *document) paragraph(text string) {
	d.pdf.MultiCell(0, 7, d.tr(text), "", "L", false)
}

func (d *document) score(a domain.RiskAssessment) {
	for i, line := range render.ScoreLines(a) {
		// score and level lines are emphasised
		if i < 2 {
			d.pdf.SetFont(d.family, "B", 11)
		}
		d.pdf.CellFormat(0, 7, d.tr(line), "", 1, "L", false, 0, "")
		d.body()
	}
	if indicators := render.IndicatorLines(a); len(indicators) > 0 {
		d.pdf.Ln(3)
		d.pdf.SetFont(d.family, "B", 11)
		d.pdf.CellFormat(0, 7, d.tr(indicators[0]), "", 1, "L", false, 0, "")
		d.body()
		for _, line := range indicators[1:] {
			d.paragraph(line)
		}
	}
	d.pdf.Ln(3)
	d.pdf.SetFont(d.family, "B", 11)
	d.pdf.CellFormat(0, 7, "Recommendations:", "", 1, "L", false, 0, "")
	d.body()
	for _, rec := range a.Recommendations() {
		d.paragraph("- " + rec)
	}
}

func (d *document) findings(sec domain.FindingsSection) {
	if fallback := render.FindingsFallback(sec); fallback != nil {
		for _, line := range fallback {
			d.paragraph(line)
		}
		return
	}
	for _, sev := range domain.Severities {
		group := sec.Assessment.FindingsBySeverity(sev)
		if len(group) == 0 || !domain.Visible(sec.Priorities, sev) {
			continue
		}
		color := render.StyleFor(sev).Heading
		d.pdf.SetFont(d.family, "B", 12)
		d.pdf.SetTextColor(color.R, color.G, color.B)
		d.pdf.CellFormat(0, 10, d.tr(sev.Title()+" Priority Risks"), "", 1, "L", false, 0, "")
		d.body()
		for i, f := range group {
			d.paragraph(fmt.Sprintf("%d. %s", i+1, f.Text))
		}
	}
}
