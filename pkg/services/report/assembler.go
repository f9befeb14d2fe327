package report

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/de-tools/legal-atlas/pkg/models/domain"
	"github.com/de-tools/legal-atlas/pkg/render"
	"github.com/de-tools/legal-atlas/pkg/services/risk"
)

var tracer = otel.Tracer("legalatlas.report")

// Request is one export: which sections, from which text, in which format.
type Request struct {
	Selection domain.Selection
	Summary   string
	Risk      string
	Format    domain.Format
	Profile   domain.ReportProfile
	// FileStem overrides the profile's file stem.
	FileStem string
	// Fallback serves plain text when the requested renderer fails.
	Fallback bool
}

// Result is a rendered report ready for download or attachment.
type Result struct {
	Content  []byte
	Filename string
	MIMEType string
	Format   domain.Format
	// Degraded is set when Content is the plain-text fallback; Cause holds the original failure.
	Degraded bool
	Cause    error
	Model    domain.ReportModel
}

type Assembler struct {
	registry *render.Registry
	scorer   risk.Scorer
	clock    func() time.Time
}

func NewAssembler(registry *render.Registry, scorer risk.Scorer, clock func() time.Time) *Assembler {
	if scorer == nil {
		scorer = risk.NewScorer()
	}
	if clock == nil {
		clock = time.Now
	}
	return &Assembler{registry: registry, scorer: scorer, clock: clock}
}

// Score runs the risk scorer alone.
func (a *Assembler) Score(riskText string) domain.RiskAssessment {
	assessment := a.scorer.Score(riskText)
	riskScores.Observe(float64(assessment.Score))
	return assessment
}

func (a *Assembler) Assemble(ctx context.Context, req Request) (*Result, error) {
	ctx, span := tracer.Start(ctx, "report.Assemble")
	defer span.End()
	span.SetAttributes(attribute.String("report.format", req.Format.String()))

	logger := zerolog.Ctx(ctx).With().Str("format", req.Format.String()).Logger()

	if !req.Selection.Any() {
		invalidSelections.Inc()
		span.SetStatus(codes.Error, ErrInvalidSelection.Error())
		return nil, ErrInvalidSelection
	}

	profile := req.Profile
	if profile.Name == "" {
		profile = domain.DefaultProfile()
	}
	stem := req.FileStem
	if stem == "" {
		stem = profile.FileStem
	}

	model := NewBuilder(a.scorer, a.clock, profile).Build(req.Selection, BuildInput{
		Summary: req.Summary,
		Risk:    req.Risk,
	})
	span.SetAttributes(attribute.Int("report.sections", len(model.Sections)))

	content, err := a.render(ctx, req.Format, model)
	if err == nil {
		return &Result{
			Content:  content,
			Filename: render.Filename(stem, req.Format),
			MIMEType: render.MIMEType(req.Format),
			Format:   req.Format,
			Model:    model,
		}, nil
	}

	span.RecordError(err)
	if !req.Fallback || req.Format == domain.FormatTXT {
		logger.Error().Err(err).Msg("report rendering failed")
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	logger.Warn().Err(err).Msg("report rendering failed, falling back to plain text")
	renderFallbacks.WithLabelValues(req.Format.String()).Inc()

	content, txtErr := a.render(ctx, domain.FormatTXT, model)
	if txtErr != nil {
		logger.Error().Err(txtErr).Msg("plain text fallback failed")
		span.SetStatus(codes.Error, txtErr.Error())
		return nil, txtErr
	}
	return &Result{
		Content:  content,
		Filename: render.Filename(stem, domain.FormatTXT),
		MIMEType: render.MIMEType(domain.FormatTXT),
		Format:   domain.FormatTXT,
		Degraded: true,
		Cause:    err,
		Model:    model,
	}, nil
}

// render invokes a renderer and converts both errors and panics into a RenderError.
func (a *Assembler) render(ctx context.Context, format domain.Format, model domain.ReportModel) (out []byte, err error) {
	_, span := tracer.Start(ctx, "render."+format.String(),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.Int("report.sections", len(model.Sections))),
	)
	defer span.End()

	start := time.Now()
	defer func() {
		if rec := recover(); rec != nil {
			out, err = nil, &RenderError{Format: format, Err: fmt.Errorf("renderer panic: %v", rec)}
		}
		status := "ok"
		if err != nil {
			status = "error"
			span.SetStatus(codes.Error, err.Error())
		}
		rendersTotal.WithLabelValues(format.String(), status).Inc()
		renderDuration.WithLabelValues(format.String()).Observe(time.Since(start).Seconds())
	}()

	renderer, err := a.registry.Get(format)
	if err != nil {
		return nil, &RenderError{Format: format, Err: err}
	}
	out, err = renderer.Render(model)
	if err != nil {
		return nil, &RenderError{Format: format, Err: err}
	}
	return out, nil
}
