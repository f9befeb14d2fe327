package domain

import (
	"fmt"
	"strings"
)

type Severity int

const (
	SeverityLow Severity = iota
	SeverityMedium
	SeverityHigh
)

// Severities lists severities in report order, highest first.
var Severities = []Severity{SeverityHigh, SeverityMedium, SeverityLow}

func (s Severity) String() string {
	switch s {
	case SeverityHigh:
		return "HIGH"
	case SeverityMedium:
		return "MEDIUM"
	default:
		return "LOW"
	}
}

// Title returns the capitalised label used in headings, e.g. "High".
func (s Severity) Title() string {
	switch s {
	case SeverityHigh:
		return "High"
	case SeverityMedium:
		return "Medium"
	default:
		return "Low"
	}
}

// RiskFinding is a single clause of a risk narrative with its classified severity.
type RiskFinding struct {
	Text     string
	Severity Severity
}

type SeverityCounts struct {
	High   int
	Medium int
	Low    int
}

func (c SeverityCounts) Total() int {
	return c.High + c.Medium + c.Low
}

func (c SeverityCounts) Of(s Severity) int {
	switch s {
	case SeverityHigh:
		return c.High
	case SeverityMedium:
		return c.Medium
	default:
		return c.Low
	}
}

// Distribution is the share of findings per severity in whole percent. Medium and high
// are truncated and low takes the remainder, so a non-empty distribution sums to 100.
type Distribution struct {
	High   int
	Medium int
	Low    int
}

// Distribution returns the zero Distribution when there are no findings.
func (c SeverityCounts) Distribution() Distribution {
	total := c.Total()
	if total == 0 {
		return Distribution{}
	}
	d := Distribution{
		High:   c.High * 100 / total,
		Medium: c.Medium * 100 / total,
	}
	d.Low = 100 - d.High - d.Medium
	return d
}

// RiskIndicator is a keyword family and how often the narrative mentions it.
type RiskIndicator struct {
	Label    string
	Mentions int
}

// RiskAssessment is the result of scoring a risk narrative. Counts always sum to len(Findings)
// and Score stays within [0, 100]. Indicators are ordered by Mentions, most first.
type RiskAssessment struct {
	Score      int
	Counts     SeverityCounts
	Findings   []RiskFinding
	Indicators []RiskIndicator
}

func (a RiskAssessment) IsZero() bool {
	return a.Score == 0 && a.Counts.Total() == 0 && len(a.Findings) == 0 && len(a.Indicators) == 0
}

// Level bands the numeric score: 70 and above is high, 40 and above is medium.
func (a RiskAssessment) Level() Severity {
	switch {
	case a.Score >= 70:
		return SeverityHigh
	case a.Score >= 40:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// FindingsBySeverity returns the findings of one severity in their original order.
func (a RiskAssessment) FindingsBySeverity(s Severity) []RiskFinding {
	var out []RiskFinding
	for _, f := range a.Findings {
		if f.Severity == s {
			out = append(out, f)
		}
	}
	return out
}

// Visible reports whether findings of severity s pass the priority filter.
// An empty filter shows every severity.
func Visible(priorities []Severity, s Severity) bool {
	if len(priorities) == 0 {
		return true
	}
	for _, p := range priorities {
		if p == s {
			return true
		}
	}
	return false
}

// FilterFindings keeps the findings whose severity passes the priority filter.
func (a RiskAssessment) FilterFindings(priorities []Severity) []RiskFinding {
	var out []RiskFinding
	for _, f := range a.Findings {
		if Visible(priorities, f.Severity) {
			out = append(out, f)
		}
	}
	return out
}

// ParseSeverity accepts "high", "medium" or "low" in any case.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high":
		return SeverityHigh, nil
	case "medium":
		return SeverityMedium, nil
	case "low":
		return SeverityLow, nil
	default:
		return SeverityLow, fmt.Errorf("unknown priority %q", s)
	}
}

// ParsePriorities reads a list of severities such as ["high", "medium"]. Items may themselves
// be comma separated. Duplicates collapse and the result is in report order.
func ParsePriorities(items ...string) ([]Severity, error) {
	seen := map[Severity]bool{}
	for _, item := range items {
		for _, part := range strings.Split(item, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			sev, err := ParseSeverity(part)
			if err != nil {
				return nil, err
			}
			seen[sev] = true
		}
	}
	var out []Severity
	for _, sev := range Severities {
		if seen[sev] {
			out = append(out, sev)
		}
	}
	return out, nil
}

// Recommendations returns the review guidance for the assessment's risk level.
func (a RiskAssessment) Recommendations() []string {
	switch a.Level() {
	case SeverityHigh:
		return []string{
			"Immediate legal review highly recommended",
			"Address high priority risks before proceeding",
			"Consider professional legal consultation",
		}
	case SeverityMedium:
		return []string{
			"Review document carefully before proceeding",
			"Address medium priority risks",
			"Consider additional review for specific sections",
		}
	default:
		return []string{
			"Document appears to have low risk",
			"Standard review procedures recommended",
			"Monitor for changes that might increase risk",
		}
	}
}
