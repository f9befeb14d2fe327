package api

type Sections struct {
	Summary  bool `json:"summary"`
	Score    bool `json:"score"`
	Findings bool `json:"findings"`
}

type ExportRequest struct {
	SummaryText string   `json:"summary_text"`
	RiskText    string   `json:"risk_text"`
	Sections    Sections `json:"sections"`
	Format      string   `json:"format" validate:"omitempty,oneof=txt docx pdf"`
	Profile     string   `json:"profile" validate:"max=64"`
	// Priorities limits the findings section to these severities; empty keeps all.
	Priorities []string `json:"priorities" validate:"omitempty,dive,oneof=high medium low"`
}

type EmailRequest struct {
	ExportRequest
	To      string `json:"to" validate:"required,email"`
	Subject string `json:"subject" validate:"max=255"`
}

type ScoreRequest struct {
	RiskText   string   `json:"risk_text"`
	Priorities []string `json:"priorities" validate:"omitempty,dive,oneof=high medium low"`
}

type Finding struct {
	Text     string `json:"text"`
	Severity string `json:"severity"`
}

type SeverityCounts struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// Distribution holds whole percentages per severity.
type Distribution struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

type Indicator struct {
	Label    string `json:"label"`
	Mentions int    `json:"mentions"`
}

// ScoreResponse reports counts and distribution over every finding; Findings honours the
// requested priorities.
type ScoreResponse struct {
	Score           int            `json:"score"`
	Level           string         `json:"level"`
	Counts          SeverityCounts `json:"counts"`
	Distribution    Distribution   `json:"distribution"`
	Indicators      []Indicator    `json:"indicators"`
	Findings        []Finding      `json:"findings"`
	Recommendations []string       `json:"recommendations"`
}

type ExtractResponse struct {
	Filename   string `json:"filename"`
	Text       string `json:"text"`
	Characters int    `json:"characters"`
	Words      int    `json:"words"`
}

type Profile struct {
	Name     string `json:"name"`
	Title    string `json:"title"`
	Author   string `json:"author"`
	FileStem string `json:"file_stem"`
}

type Error struct {
	Error string `json:"error"`
}
