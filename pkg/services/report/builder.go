package report

import (
	"strings"
	"time"

	"github.com/de-tools/legal-atlas/pkg/models/domain"
	"github.com/de-tools/legal-atlas/pkg/services/risk"
)

// BuildInput holds the caller supplied text blocks. Blank text counts as absent.
type BuildInput struct {
	Summary string
	Risk    string
}

// Builder assembles ReportModels. It keeps no state between calls.
type Builder struct {
	scorer  risk.Scorer
	clock   func() time.Time
	profile domain.ReportProfile
}

func NewBuilder(scorer risk.Scorer, clock func() time.Time, profile domain.ReportProfile) *Builder {
	if scorer == nil {
		scorer = risk.NewScorer()
	}
	if clock == nil {
		clock = time.Now
	}
	return &Builder{scorer: scorer, clock: clock, profile: profile}
}

// Build returns sections in Summary, Score, Findings order. A selected section whose source
// text is absent is left out. The risk text is scored at most once so the score and
// findings sections always agree. The priority filter only narrows the findings section.
func (b *Builder) Build(sel domain.Selection, in BuildInput) domain.ReportModel {
	model := domain.ReportModel{
		Title:       b.profile.Title,
		Author:      b.profile.Author,
		GeneratedAt: b.clock(),
	}
	if model.Title == "" {
		model.Title = domain.DefaultReportTitle
	}
	if model.Author == "" {
		model.Author = domain.DefaultAuthor
	}

	if sel.IncludeSummary && present(in.Summary) {
		model.Sections = append(model.Sections, domain.SummarySection{Text: in.Summary})
	}

	if (sel.IncludeScore || sel.IncludeFindings) && present(in.Risk) {
		assessment := b.scorer.Score(in.Risk)
		if sel.IncludeScore {
			model.Sections = append(model.Sections, domain.ScoreSection{Assessment: assessment})
		}
		if sel.IncludeFindings {
			model.Sections = append(model.Sections, domain.FindingsSection{
				Assessment: assessment,
				Source:     in.Risk,
				Priorities: sel.Priorities,
			})
		}
	}

	return model
}

func present(s string) bool {
	return strings.TrimSpace(s) != ""
}
