package terminal

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/de-tools/legal-atlas/pkg/models/domain"
	"github.com/de-tools/legal-atlas/pkg/render"
)

// Reporter prints a risk assessment to the console with severity colours.
type Reporter struct {
	writer   io.Writer
	heading  lipgloss.Style
	muted    lipgloss.Style
	severity map[domain.Severity]lipgloss.Style
}

// NewReporter creates a new console reporter. Colours are dropped when writer is not a terminal.
func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	r := lipgloss.NewRenderer(writer)
	return &Reporter{
		writer:  writer,
		heading: r.NewStyle().Bold(true).Underline(true),
		muted:   r.NewStyle().Faint(true),
		severity: map[domain.Severity]lipgloss.Style{
			domain.SeverityHigh:   r.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
			domain.SeverityMedium: r.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
			domain.SeverityLow:    r.NewStyle().Foreground(lipgloss.Color("34")),
		},
	}
}

func (c *Reporter) Handle(a domain.RiskAssessment, priorities []domain.Severity) error {
	var b strings.Builder
	level := a.Level()

	fmt.Fprintf(&b, "%s\n", c.heading.Render("Risk Assessment"))
	fmt.Fprintf(&b, "Overall Risk Score: %d/100\n", a.Score)
	fmt.Fprintf(&b, "Risk Level: %s\n", c.severity[level].Render(level.Title()))
	for _, sev := range domain.Severities {
		fmt.Fprintf(&b, "%s Priority Issues: %d\n", sev.Title(), a.Counts.Of(sev))
	}
	if a.Counts.Total() > 0 {
		d := a.Counts.Distribution()
		fmt.Fprintf(&b, "Risk Distribution: High %d%%, Medium %d%%, Low %d%%\n", d.High, d.Medium, d.Low)
	}

	if len(a.Indicators) > 0 {
		fmt.Fprintf(&b, "\n%s\n", c.heading.Render("Key Risk Indicators"))
		for _, ind := range a.Indicators {
			fmt.Fprintf(&b, "- %s: %d\n", ind.Label, ind.Mentions)
		}
	}

	visible := a.FilterFindings(priorities)
	switch {
	case len(visible) > 0:
		fmt.Fprintf(&b, "\n%s\n", c.heading.Render("Findings"))
		for _, f := range visible {
			fmt.Fprintf(&b, "%s %s\n", c.severity[f.Severity].Render(fmt.Sprintf("[%s]", f.Severity)), f.Text)
		}
	case len(a.Findings) > 0:
		fmt.Fprintf(&b, "\n%s\n", c.muted.Render(render.NoMatches))
	default:
		fmt.Fprintf(&b, "\n%s\n", c.muted.Render(render.NoFindings))
	}

	fmt.Fprintf(&b, "\n%s\n", c.heading.Render("Recommendations"))
	for _, rec := range a.Recommendations() {
		fmt.Fprintf(&b, "- %s\n", rec)
	}

	_, err := io.WriteString(c.writer, b.String())
	return err
}
