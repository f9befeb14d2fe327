package render

import (
	"fmt"
	"strings"

	"github.com/de-tools/legal-atlas/pkg/models/domain"
)

type RGB struct {
	R, G, B int
}

// Hex formats the colour the way WordprocessingML expects it, e.g. "FF0000".
func (c RGB) Hex() string {
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
}

var Black = RGB{0, 0, 0}

// SeverityStyle describes how a severity is emphasised.
// Inline applies to the label run in front of a finding; Heading colours the
// per-severity block header in paginated output.
type SeverityStyle struct {
	Bold    bool
	Inline  *RGB
	Heading RGB
}

var severityStyles = map[domain.Severity]SeverityStyle{
	domain.SeverityHigh:   {Bold: true, Inline: &RGB{255, 0, 0}, Heading: RGB{255, 0, 0}},
	domain.SeverityMedium: {Bold: true, Inline: &RGB{255, 165, 0}, Heading: RGB{255, 165, 0}},
	domain.SeverityLow:    {Heading: RGB{0, 128, 0}},
}

func StyleFor(s domain.Severity) SeverityStyle {
	return severityStyles[s]
}

// Section titles shared by the renderers.
const (
	SummaryHeading  = "Document Summary"
	ScoreHeading    = "Risk Assessment Score"
	FindingsHeading = "Detailed Risk Analysis"
	EndOfReport     = "End of Report"
	NoFindings      = "No risk statements identified."
	NoMatches       = "No risk statements match the selected priorities."
	IndicatorsLabel = "Key Risk Indicators:"
	DateLayout      = "2006-01-02 15:04"
)

// ScoreLines is the textual body of a score section, shared so every format reports the
// same numbers in the same order.
func ScoreLines(a domain.RiskAssessment) []string {
	lines := []string{
		fmt.Sprintf("Overall Risk Score: %d/100", a.Score),
		fmt.Sprintf("Risk Level: %s", a.Level().Title()),
		fmt.Sprintf("High Priority Issues: %d", a.Counts.High),
		fmt.Sprintf("Medium Priority Issues: %d", a.Counts.Medium),
		fmt.Sprintf("Low Priority Issues: %d", a.Counts.Low),
	}
	if a.Counts.Total() > 0 {
		d := a.Counts.Distribution()
		lines = append(lines, fmt.Sprintf("Risk Distribution: High %d%%, Medium %d%%, Low %d%%", d.High, d.Medium, d.Low))
	}
	return lines
}

// IndicatorLines lists the key risk indicators under IndicatorsLabel, or nothing when the
// narrative mentions none.
func IndicatorLines(a domain.RiskAssessment) []string {
	if len(a.Indicators) == 0 {
		return nil
	}
	lines := []string{IndicatorsLabel}
	for _, ind := range a.Indicators {
		lines = append(lines, fmt.Sprintf("- %s: %d", ind.Label, ind.Mentions))
	}
	return lines
}

// FindingsFallback returns what a findings section shows instead of severity groups.
// It is nil when some finding passes the priority filter. A narrative in which no clause
// classified is shown as written.
func FindingsFallback(sec domain.FindingsSection) []string {
	if len(sec.Visible()) > 0 {
		return nil
	}
	if len(sec.Assessment.Findings) > 0 {
		return []string{NoMatches}
	}
	if lines := Paragraphs(sec.Source); len(lines) > 0 {
		return lines
	}
	return []string{NoFindings}
}

// Paragraphs splits a free-text block into its non-blank lines.
func Paragraphs(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimRight(line, " \t\r"); strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return out
}
