package risk

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/de-tools/legal-atlas/pkg/models/domain"
)

const (
	// MaxScoredChars caps how much of the narrative feeds the score number.
	MaxScoredChars = 10000
	// MinLowRiskWords is the word count a clause must exceed to count as a low risk.
	MinLowRiskWords = 5

	// MaxIndicators caps how many key risk indicators an assessment carries.
	MaxIndicators = 5

	scoreScale = 20
	maxScore   = 100
)

// IndicatorKeywords are the keyword pairs behind the key risk indicators. Each pair is
// reported as one indicator labelled "first/second".
var IndicatorKeywords = [][2]string{
	{"non-compliance", "regulatory requirements"},
	{"liability", "legal exposure"},
	{"breach", "contract terms"},
	{"confidentiality", "disclosure"},
	{"warranty", "guarantees"},
	{"termination", "cancellation"},
	{"intellectual property", "IP rights"},
	{"dispute", "resolution"},
	{"payment", "financial terms"},
}

// Keyword lists are checked in order: high before medium.
var (
	HighRiskKeywords   = []string{"critical", "severe", "high risk", "significant", "major", "serious", "high"}
	MediumRiskKeywords = []string{"moderate", "medium", "potential", "possible", "concerning"}
)

// Scorer turns a free-text risk narrative into a RiskAssessment.
type Scorer interface {
	Score(text string) domain.RiskAssessment
}

type keywordScorer struct{}

func NewScorer() Scorer {
	return keywordScorer{}
}

func (keywordScorer) Score(text string) domain.RiskAssessment {
	return Score(text)
}

// Score never fails. Blank input yields the zero assessment.
//
// Clauses are split naively on '.', so abbreviations and decimal numbers break a sentence
// in two. The score number only looks at the first MaxScoredChars characters, while the
// findings cover the whole narrative.
func Score(text string) domain.RiskAssessment {
	if strings.TrimSpace(text) == "" {
		return domain.RiskAssessment{}
	}

	findings, counts := classifyAll(text)
	scored := counts
	if utf8.RuneCountInString(text) > MaxScoredChars {
		_, scored = classifyAll(truncate(text, MaxScoredChars))
	}

	return domain.RiskAssessment{
		Score:      weightedScore(scored),
		Counts:     counts,
		Findings:   findings,
		Indicators: Indicators(text),
	}
}

// Indicators counts case-insensitive, non-overlapping mentions of each keyword pair and
// returns the MaxIndicators most mentioned. Pairs never mentioned are left out; ties keep
// the IndicatorKeywords order.
func Indicators(text string) []domain.RiskIndicator {
	lower := strings.ToLower(text)
	var out []domain.RiskIndicator
	for _, pair := range IndicatorKeywords {
		n := strings.Count(lower, strings.ToLower(pair[0])) + strings.Count(lower, strings.ToLower(pair[1]))
		if n == 0 {
			continue
		}
		out = append(out, domain.RiskIndicator{Label: pair[0] + "/" + pair[1], Mentions: n})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Mentions > out[j].Mentions })
	if len(out) > MaxIndicators {
		out = out[:MaxIndicators]
	}
	return out
}

// Classify assigns a clause its severity. ok is false for short clauses without keywords,
// which are not findings at all.
func Classify(clause string) (sev domain.Severity, ok bool) {
	lower := strings.ToLower(clause)
	switch {
	case containsAny(lower, HighRiskKeywords):
		return domain.SeverityHigh, true
	case containsAny(lower, MediumRiskKeywords):
		return domain.SeverityMedium, true
	case len(strings.Fields(clause)) > MinLowRiskWords:
		return domain.SeverityLow, true
	default:
		return domain.SeverityLow, false
	}
}

// Clauses splits text on '.' and drops empty fragments.
func Clauses(text string) []string {
	var out []string
	for _, part := range strings.Split(text, ".") {
		if c := strings.TrimSpace(part); c != "" {
			out = append(out, c)
		}
	}
	return out
}

func classifyAll(text string) ([]domain.RiskFinding, domain.SeverityCounts) {
	var (
		findings []domain.RiskFinding
		counts   domain.SeverityCounts
	)
	for _, clause := range Clauses(text) {
		sev, ok := Classify(clause)
		if !ok {
			continue
		}
		findings = append(findings, domain.RiskFinding{Text: clause, Severity: sev})
		switch sev {
		case domain.SeverityHigh:
			counts.High++
		case domain.SeverityMedium:
			counts.Medium++
		default:
			counts.Low++
		}
	}
	return findings, counts
}

// weightedScore computes min(100, round((3h+2m+l)/total*20)) with half-up rounding.
func weightedScore(c domain.SeverityCounts) int {
	total := c.Total()
	if total == 0 {
		return 0
	}
	weighted := c.High*3 + c.Medium*2 + c.Low
	score := (2*weighted*scoreScale + total) / (2 * total)
	if score > maxScore {
		return maxScore
	}
	return score
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

func truncate(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
