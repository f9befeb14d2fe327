package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/de-tools/legal-atlas/pkg/models/domain"
	"github.com/de-tools/legal-atlas/pkg/render"
)

const ruleWidth = 60

// Renderer produces a WordprocessingML (.docx) package.
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

func (r *Renderer) Format() domain.Format {
	return domain.FormatDOCX
}

func (r *Renderer) Render(model domain.ReportModel) ([]byte, error) {
	docXML, err := marshalPart(document{
		NS: wordNamespace,
		Body: body{
			Paragraphs: buildParagraphs(model),
			Section:    a4Section(),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode document part: %w", err)
	}

	coreXML, err := marshalPart(core(model))
	if err != nil {
		return nil, fmt.Errorf("failed to encode core properties: %w", err)
	}

	parts := []struct {
		name string
		data []byte
	}{
		{"[Content_Types].xml", []byte(contentTypesXML)},
		{"_rels/.rels", []byte(packageRelsXML)},
		{"word/document.xml", docXML},
		{"word/styles.xml", []byte(stylesXML)},
		{"word/_rels/document.xml.rels", []byte(documentRelsXML)},
		{"docProps/core.xml", coreXML},
		{"docProps/app.xml", []byte(appXML)},
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, p := range parts {
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     p.name,
			Method:   zip.Deflate,
			Modified: model.GeneratedAt.UTC(),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to add %s: %w", p.name, err)
		}
		if _, err := w.Write(p.data); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", p.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize docx package: %w", err)
	}
	return buf.Bytes(), nil
}

func marshalPart(v interface{}) ([]byte, error) {
	out, err := xml.Marshal(v)
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), out...), nil
}

func core(model domain.ReportModel) coreProperties {
	stamp := w3cDate{Type: "dcterms:W3CDTF", Value: model.GeneratedAt.UTC().Format(time.RFC3339)}
	return coreProperties{
		NSCP:     "http://schemas.openxmlformats.org/package/2006/metadata/core-properties",
		NSDC:     "http://purl.org/dc/elements/1.1/",
		NSTerms:  "http://purl.org/dc/terms/",
		NSXSI:    "http://www.w3.org/2001/XMLSchema-instance",
		Title:    titleOf(model),
		Creator:  authorOf(model),
		Created:  stamp,
		Modified: stamp,
	}
}

func buildParagraphs(model domain.ReportModel) []paragraph {
	ps := []paragraph{
		styled("Heading1", "center", plain(titleOf(model))),
		styled("", "center", run{
			Props: &runProps{Italic: &flag{}},
			Text:  runText{Value: "Generated on: " + model.GeneratedAt.Format(render.DateLayout)},
		}),
		styled("", "", plain(strings.Repeat("_", ruleWidth))),
	}

	for _, s := range model.Sections {
		switch sec := s.(type) {
		case domain.SummarySection:
			ps = append(ps, paragraph{}, styled("Heading2", "", plain(render.SummaryHeading)))
			for _, line := range render.Paragraphs(sec.Text) {
				ps = append(ps, styled("", "", plain(line)))
			}
		case domain.ScoreSection:
			ps = append(ps, paragraph{}, styled("Heading2", "", plain(render.ScoreHeading)))
			ps = append(ps, scoreParagraphs(sec.Assessment)...)
		case domain.FindingsSection:
			ps = append(ps, paragraph{}, styled("Heading2", "", plain(render.FindingsHeading)))
			ps = append(ps, findingParagraphs(sec)...)
		}
	}

	return append(ps, paragraph{}, styled("", "center", plain(render.EndOfReport)))
}

func scoreParagraphs(a domain.RiskAssessment) []paragraph {
	var ps []paragraph
	for i, line := range render.ScoreLines(a) {
		r := plain(line)
		// score and level lines are emphasised
		if i < 2 {
			r.Props = &runProps{Bold: &flag{}}
		}
		ps = append(ps, styled("", "", r))
	}
	for i, line := range render.IndicatorLines(a) {
		r := plain(line)
		if i == 0 {
			r.Props = &runProps{Bold: &flag{}}
		}
		ps = append(ps, styled("", "", r))
	}
	ps = append(ps, styled("", "", run{Props: &runProps{Bold: &flag{}}, Text: runText{Value: "Recommendations:"}}))
	for _, rec := range a.Recommendations() {
		ps = append(ps, styled("", "", plain("• "+rec)))
	}
	return ps
}

func findingParagraphs(sec domain.FindingsSection) []paragraph {
	if fallback := render.FindingsFallback(sec); fallback != nil {
		ps := make([]paragraph, 0, len(fallback))
		for _, line := range fallback {
			ps = append(ps, styled("", "", plain(line)))
		}
		return ps
	}
	visible := sec.Visible()
	ps := make([]paragraph, 0, len(visible))
	for _, f := range visible {
		ps = append(ps, paragraph{Runs: []run{labelRun(f.Severity), plain(f.Text)}})
	}
	return ps
}

// labelRun renders "HIGH: " with the severity's emphasis.
func labelRun(sev domain.Severity) run {
	style := render.StyleFor(sev)
	r := run{Text: runText{Space: "preserve", Value: sev.String() + ": "}}
	if style.Bold || style.Inline != nil {
		r.Props = &runProps{}
		if style.Bold {
			r.Props.Bold = &flag{}
		}
		if style.Inline != nil {
			r.Props.Color = &val{Val: style.Inline.Hex()}
		}
	}
	return r
}

func plain(s string) run {
	return run{Text: runText{Value: s}}
}

func styled(style, justify string, runs ...run) paragraph {
	p := paragraph{Runs: runs}
	if style != "" || justify != "" {
		p.Props = &paragraphProps{}
		if style != "" {
			p.Props.Style = &val{Val: style}
		}
		if justify != "" {
			p.Props.Justify = &val{Val: justify}
		}
	}
	return p
}

func titleOf(model domain.ReportModel) string {
	if model.Title == "" {
		return domain.DefaultReportTitle
	}
	return model.Title
}

func authorOf(model domain.ReportModel) string {
	if model.Author == "" {
		return domain.DefaultAuthor
	}
	return model.Author
}
