package report

import (
	"testing"
	"time"

	"github.com/de-tools/legal-atlas/pkg/models/domain"
	"github.com/de-tools/legal-atlas/pkg/services/risk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockScorer struct {
	mock.Mock
}

func (m *mockScorer) Score(text string) domain.RiskAssessment {
	args := m.Called(text)
	return args.Get(0).(domain.RiskAssessment)
}

var fixedTime = time.Date(2025, 3, 4, 10, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedTime }

const narrative = "The vendor shall indemnify against all critical liabilities. " +
	"There is a moderate compliance gap noted here today."

func kinds(model domain.ReportModel) []domain.SectionKind {
	var out []domain.SectionKind
	for _, s := range model.Sections {
		out = append(out, s.Kind())
	}
	return out
}

func TestBuilder_Build_AllSectionsInOrder(t *testing.T) {
	b := NewBuilder(risk.NewScorer(), fixedClock, domain.DefaultProfile())

	model := b.Build(domain.AllSections(), BuildInput{Summary: "A supply agreement.", Risk: narrative})

	assert.Equal(t, []domain.SectionKind{domain.SectionSummary, domain.SectionScore, domain.SectionFindings}, kinds(model))
	assert.Equal(t, fixedTime, model.GeneratedAt)
	assert.Equal(t, domain.DefaultReportTitle, model.Title)
}

func TestBuilder_Build_ScoreAndFindingsAgree(t *testing.T) {
	b := NewBuilder(risk.NewScorer(), fixedClock, domain.DefaultProfile())

	model := b.Build(domain.AllSections(), BuildInput{Risk: narrative})

	require.Len(t, model.Sections, 2)
	score := model.Sections[0].(domain.ScoreSection)
	findings := model.Sections[1].(domain.FindingsSection)
	assert.Equal(t, score.Assessment.Counts, findings.Assessment.Counts)
	assert.Equal(t, domain.SeverityCounts{High: 1, Medium: 1}, score.Assessment.Counts)
	assert.Equal(t, 50, score.Assessment.Score)
	assert.Len(t, findings.Assessment.Findings, findings.Assessment.Counts.Total())
}

func TestBuilder_Build_ScoresOnce(t *testing.T) {
	scorer := new(mockScorer)
	scorer.On("Score", narrative).Return(domain.RiskAssessment{Score: 50}).Once()
	b := NewBuilder(scorer, fixedClock, domain.DefaultProfile())

	b.Build(domain.AllSections(), BuildInput{Summary: "s", Risk: narrative})

	scorer.AssertNumberOfCalls(t, "Score", 1)
}

func TestBuilder_Build_OmitsAbsentSources(t *testing.T) {
	scorer := new(mockScorer)
	b := NewBuilder(scorer, fixedClock, domain.DefaultProfile())

	tests := []struct {
		name  string
		sel   domain.Selection
		in    BuildInput
		kinds []domain.SectionKind
	}{
		{
			name:  "summary selected but absent",
			sel:   domain.Selection{IncludeSummary: true},
			in:    BuildInput{},
			kinds: nil,
		},
		{
			name:  "blank summary counts as absent",
			sel:   domain.Selection{IncludeSummary: true, IncludeScore: true},
			in:    BuildInput{Summary: "  \n ", Risk: ""},
			kinds: nil,
		},
		{
			name:  "summary only",
			sel:   domain.Selection{IncludeSummary: true, IncludeFindings: true},
			in:    BuildInput{Summary: "A lease."},
			kinds: []domain.SectionKind{domain.SectionSummary},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			model := b.Build(tc.sel, tc.in)
			assert.Equal(t, tc.kinds, kinds(model))
		})
	}
	scorer.AssertNotCalled(t, "Score", mock.Anything)
}

func TestBuilder_Build_UnselectedSectionsSkipped(t *testing.T) {
	b := NewBuilder(risk.NewScorer(), fixedClock, domain.DefaultProfile())

	model := b.Build(domain.Selection{IncludeFindings: true}, BuildInput{Summary: "ignored", Risk: narrative})

	assert.Equal(t, []domain.SectionKind{domain.SectionFindings}, kinds(model))
}

func TestBuilder_Build_AppliesProfile(t *testing.T) {
	profile := domain.ReportProfile{Name: "acme", Title: "Acme Contract Review", Author: "Acme Legal"}
	b := NewBuilder(nil, fixedClock, profile)

	model := b.Build(domain.AllSections(), BuildInput{Summary: "x"})

	assert.Equal(t, "Acme Contract Review", model.Title)
	assert.Equal(t, "Acme Legal", model.Author)
}

func TestBuilder_Build_FindingsKeepSourceAndPriorities(t *testing.T) {
	b := NewBuilder(risk.NewScorer(), fixedClock, domain.DefaultProfile())
	sel := domain.Selection{IncludeScore: true, IncludeFindings: true, Priorities: []domain.Severity{domain.SeverityHigh}}

	model := b.Build(sel, BuildInput{Risk: narrative})

	require.Len(t, model.Sections, 2)
	score := model.Sections[0].(domain.ScoreSection)
	findings := model.Sections[1].(domain.FindingsSection)
	assert.Equal(t, narrative, findings.Source)
	assert.Equal(t, []domain.Severity{domain.SeverityHigh}, findings.Priorities)
	assert.Len(t, findings.Assessment.Findings, 2, "the filter narrows rendering, not the assessment")
	assert.Equal(t, score.Assessment.Counts, findings.Assessment.Counts)
	require.Len(t, findings.Visible(), 1)
	assert.Equal(t, domain.SeverityHigh, findings.Visible()[0].Severity)
}
