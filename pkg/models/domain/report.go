package domain

import (
	"fmt"
	"strings"
	"time"
)

type SectionKind int

const (
	SectionSummary SectionKind = iota
	SectionScore
	SectionFindings
)

func (k SectionKind) String() string {
	switch k {
	case SectionSummary:
		return "summary"
	case SectionScore:
		return "score"
	case SectionFindings:
		return "findings"
	default:
		return "unknown"
	}
}

// ReportSection is one of SummarySection, ScoreSection or FindingsSection.
type ReportSection interface {
	Kind() SectionKind
	section()
}

type SummarySection struct {
	Text string
}

type ScoreSection struct {
	Assessment RiskAssessment
}

// FindingsSection lists the classified clauses of the risk narrative. Source keeps the
// narrative itself for reports where no clause classified. Priorities limits which
// severity groups are shown; empty shows all of them.
type FindingsSection struct {
	Assessment RiskAssessment
	Source     string
	Priorities []Severity
}

// Visible returns the findings that pass the section's priority filter, in original order.
func (s FindingsSection) Visible() []RiskFinding {
	return s.Assessment.FilterFindings(s.Priorities)
}

func (SummarySection) Kind() SectionKind  { return SectionSummary }
func (ScoreSection) Kind() SectionKind    { return SectionScore }
func (FindingsSection) Kind() SectionKind { return SectionFindings }

func (SummarySection) section()  {}
func (ScoreSection) section()    {}
func (FindingsSection) section() {}

// ReportModel is the format-agnostic report every renderer consumes.
// Sections are rendered in slice order.
type ReportModel struct {
	Title       string
	Author      string
	GeneratedAt time.Time
	Sections    []ReportSection
}

// Selection tells the builder which sections the caller wants. Priorities filters the
// findings section by severity; empty keeps every severity.
type Selection struct {
	IncludeSummary  bool
	IncludeScore    bool
	IncludeFindings bool
	Priorities      []Severity
}

func (s Selection) Any() bool {
	return s.IncludeSummary || s.IncludeScore || s.IncludeFindings
}

// AllSections selects summary, score and findings.
func AllSections() Selection {
	return Selection{IncludeSummary: true, IncludeScore: true, IncludeFindings: true}
}

// ParseSelection reads a comma separated list such as "summary,score".
func ParseSelection(list string) (Selection, error) {
	var sel Selection
	for _, item := range strings.Split(list, ",") {
		switch strings.ToLower(strings.TrimSpace(item)) {
		case "":
		case "summary":
			sel.IncludeSummary = true
		case "score":
			sel.IncludeScore = true
		case "findings", "risks":
			sel.IncludeFindings = true
		case "all":
			sel = AllSections()
		default:
			return Selection{}, fmt.Errorf("unknown section %q", item)
		}
	}
	return sel, nil
}

type Format int

const (
	FormatTXT Format = iota
	FormatDOCX
	FormatPDF
)

func (f Format) String() string {
	switch f {
	case FormatDOCX:
		return "docx"
	case FormatPDF:
		return "pdf"
	default:
		return "txt"
	}
}

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "txt", "text":
		return FormatTXT, nil
	case "docx":
		return FormatDOCX, nil
	case "pdf":
		return FormatPDF, nil
	default:
		return FormatTXT, fmt.Errorf("unsupported format %q", s)
	}
}
