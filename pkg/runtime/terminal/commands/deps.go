package commands

import (
	"context"

	"github.com/de-tools/legal-atlas/pkg/models/domain"
	"github.com/de-tools/legal-atlas/pkg/services/email"
	"github.com/de-tools/legal-atlas/pkg/services/report"
)

type Assembler interface {
	Assemble(ctx context.Context, req report.Request) (*report.Result, error)
	Score(riskText string) domain.RiskAssessment
}

type Composer interface {
	Compose(ctx context.Context, req email.Request) (*email.Message, error)
}

// AssessmentReporter presents a risk assessment to the user, listing only findings whose
// severity is in priorities. Empty priorities lists every finding.
type AssessmentReporter interface {
	Handle(a domain.RiskAssessment, priorities []domain.Severity) error
}
