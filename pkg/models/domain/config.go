package domain

import "fmt"

const (
	DefaultProfileName = "default"
	DefaultReportTitle = "Legal Document Analysis Report"
	DefaultAuthor      = "AI Legal Document Assistant"
	DefaultFileStem    = "legal_analysis"
)

// ReportProfile carries the branding applied to rendered reports.
type ReportProfile struct {
	Name     string
	Title    string
	Author   string
	FileStem string
}

func DefaultProfile() ReportProfile {
	return ReportProfile{
		Name:     DefaultProfileName,
		Title:    DefaultReportTitle,
		Author:   DefaultAuthor,
		FileStem: DefaultFileStem,
	}
}

func (p ReportProfile) String() string {
	return fmt.Sprintf("%s:%s", p.Name, p.Title)
}
