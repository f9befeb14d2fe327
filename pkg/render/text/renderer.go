package text

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/de-tools/legal-atlas/pkg/models/domain"
	"github.com/de-tools/legal-atlas/pkg/render"
)

const (
	bannerWidth = 80

	summaryTitle  = "DOCUMENT SUMMARY"
	scoreTitle    = "RISK SCORE"
	findingsTitle = "RISK ANALYSIS"
)

const reportTemplate = `{{banner}}
{{upper .Title}}
Generated on: {{.GeneratedAt.Format "2006-01-02 15:04"}}
{{banner}}
{{range .Sections}}
{{.Heading}}
{{underline .Heading}}
{{range .Lines}}{{.}}
{{end}}{{range .Groups}}
{{.Label}}
{{range $i, $item := .Items}}{{inc $i}}. {{$item}}
{{end}}{{end}}{{end}}
{{rule}}
{{.Footer}}
`

var tmpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"banner":    func() string { return strings.Repeat("=", bannerWidth) },
	"rule":      func() string { return strings.Repeat("-", bannerWidth) },
	"underline": func(s string) string { return strings.Repeat("-", len(s)) },
	"upper":     strings.ToUpper,
	"inc":       func(i int) int { return i + 1 },
}).Parse(reportTemplate))

type view struct {
	Title       string
	GeneratedAt time.Time
	Sections    []sectionView
	Footer      string
}

type sectionView struct {
	Heading string
	Lines   []string
	Groups  []groupView
}

type groupView struct {
	Label string
	Items []string
}

// Renderer writes the report as plain text with banner and underlined section titles.
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

func (r *Renderer) Format() domain.Format {
	return domain.FormatTXT
}

func (r *Renderer) Render(model domain.ReportModel) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, buildView(model)); err != nil {
		return nil, fmt.Errorf("failed to execute text template: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderString is Render for callers that want the text directly.
func (r *Renderer) RenderString(model domain.ReportModel) (string, error) {
	out, err := r.Render(model)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func buildView(model domain.ReportModel) view {
	title := model.Title
	if title == "" {
		title = domain.DefaultReportTitle
	}
	v := view{
		Title:       title,
		GeneratedAt: model.GeneratedAt,
		Footer:      render.EndOfReport,
	}
	for _, s := range model.Sections {
		switch sec := s.(type) {
		case domain.SummarySection:
			v.Sections = append(v.Sections, sectionView{
				Heading: summaryTitle,
				Lines:   render.Paragraphs(sec.Text),
			})
		case domain.ScoreSection:
			lines := render.ScoreLines(sec.Assessment)
			if indicators := render.IndicatorLines(sec.Assessment); len(indicators) > 0 {
				lines = append(lines, "")
				lines = append(lines, indicators...)
			}
			lines = append(lines, "", "Recommendations:")
			for _, rec := range sec.Assessment.Recommendations() {
				lines = append(lines, "- "+rec)
			}
			v.Sections = append(v.Sections, sectionView{Heading: scoreTitle, Lines: lines})
		case domain.FindingsSection:
			v.Sections = append(v.Sections, findingsView(sec))
		}
	}
	return v
}

func findingsView(sec domain.FindingsSection) sectionView {
	sv := sectionView{Heading: findingsTitle}
	if fallback := render.FindingsFallback(sec); fallback != nil {
		sv.Lines = fallback
		return sv
	}
	for _, sev := range domain.Severities {
		findings := sec.Assessment.FindingsBySeverity(sev)
		if len(findings) == 0 || !domain.Visible(sec.Priorities, sev) {
			continue
		}
		g := groupView{Label: sev.String() + " PRIORITY RISKS:"}
		for _, f := range findings {
			g.Items = append(g.Items, f.Text)
		}
		sv.Groups = append(sv.Groups, g)
	}
	return sv
}
