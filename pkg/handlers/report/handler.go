package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/de-tools/legal-atlas/pkg/models/api"
	"github.com/de-tools/legal-atlas/pkg/models/domain"
	"github.com/de-tools/legal-atlas/pkg/services/config"
	"github.com/de-tools/legal-atlas/pkg/services/email"
	"github.com/de-tools/legal-atlas/pkg/services/intake"
	"github.com/de-tools/legal-atlas/pkg/services/report"
)

const (
	defaultMaxUploadBytes = 10 << 20
	maxJSONBytes          = 4 << 20
)

type Assembler interface {
	Assemble(ctx context.Context, req report.Request) (*report.Result, error)
	Score(riskText string) domain.RiskAssessment
}

type Composer interface {
	Compose(ctx context.Context, req email.Request) (*email.Message, error)
}

type Handler struct {
	assembler      Assembler
	composer       Composer
	profiles       config.Registry
	defaultProfile string
	maxUploadBytes int64
	validate       *validator.Validate
}

type Options struct {
	DefaultProfile string
	MaxUploadBytes int64
}

func NewHandler(assembler Assembler, composer Composer, profiles config.Registry, opts Options) *Handler {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = defaultMaxUploadBytes
	}
	if opts.DefaultProfile == "" {
		opts.DefaultProfile = domain.DefaultProfileName
	}
	return &Handler{
		assembler:      assembler,
		composer:       composer,
		profiles:       profiles,
		defaultProfile: opts.DefaultProfile,
		maxUploadBytes: opts.MaxUploadBytes,
		validate:       validator.New(),
	}
}

// Extract accepts a multipart upload in the "file" field and returns its plain text.
func (h *Handler) Extract(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	if r.ContentLength > h.maxUploadBytes {
		writeError(w, http.StatusRequestEntityTooLarge, "uploaded file is too large")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "uploaded file is too large")
			return
		}
		writeError(w, http.StatusBadRequest, "multipart field 'file' is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read uploaded file")
		return
	}

	text, err := intake.Extract(header.Filename, data)
	switch {
	case errors.Is(err, intake.ErrUnsupportedFormat):
		writeError(w, http.StatusUnsupportedMediaType, fmt.Sprintf("supported formats: %s", strings.Join(intake.SupportedExtensions, ", ")))
		return
	case errors.Is(err, intake.ErrNoText):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	case err != nil:
		logger.Warn().Err(err).Str("filename", header.Filename).Msg("text extraction failed")
		writeError(w, http.StatusUnprocessableEntity, "could not extract text from document")
		return
	}

	writeJSON(w, http.StatusOK, api.ExtractResponse{
		Filename:   header.Filename,
		Text:       text,
		Characters: len([]rune(text)),
		Words:      len(strings.Fields(text)),
	})
}

func (h *Handler) Score(w http.ResponseWriter, r *http.Request) {
	var req api.ScoreRequest
	if !h.decode(w, r, &req) {
		return
	}
	priorities, err := domain.ParsePriorities(req.Priorities...)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toScoreResponse(h.assembler.Score(req.RiskText), priorities))
}

// Export renders the selected sections. Pass strict=true to disable the plain text fallback.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var req api.ExportRequest
	if !h.decode(w, r, &req) {
		return
	}
	sel, err := toSelection(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !sel.Any() {
		writeError(w, http.StatusUnprocessableEntity, report.ErrInvalidSelection.Error())
		return
	}
	format, profile, ok := h.resolve(w, r, req)
	if !ok {
		return
	}
	strict, _ := strconv.ParseBool(r.URL.Query().Get("strict"))

	res, err := h.assembler.Assemble(ctx, report.Request{
		Selection: sel,
		Summary:   req.SummaryText,
		Risk:      req.RiskText,
		Format:    format,
		Profile:   profile,
		Fallback:  !strict,
	})
	if err != nil {
		h.writeAssembleError(w, logger, err)
		return
	}

	w.Header().Set("Content-Type", res.MIMEType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.Filename))
	w.Header().Set("X-Report-Degraded", strconv.FormatBool(res.Degraded))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(res.Content); err != nil {
		logger.Error().Err(err).Msg("failed to write report")
	}
}

// Email returns the composed message as message/rfc822 for the caller's mail transport.
func (h *Handler) Email(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var req api.EmailRequest
	if !h.decode(w, r, &req) {
		return
	}
	sel, err := toSelection(req.ExportRequest)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !sel.Any() {
		writeError(w, http.StatusUnprocessableEntity, report.ErrInvalidSelection.Error())
		return
	}
	format, profile, ok := h.resolve(w, r, req.ExportRequest)
	if !ok {
		return
	}

	msg, err := h.composer.Compose(ctx, email.Request{
		To:        req.To,
		Subject:   req.Subject,
		Selection: sel,
		Summary:   req.SummaryText,
		Risk:      req.RiskText,
		Format:    format,
		Profile:   profile,
	})
	if err != nil {
		h.writeAssembleError(w, logger, err)
		return
	}
	raw, err := msg.Bytes()
	if err != nil {
		logger.Error().Err(err).Msg("failed to encode email")
		writeError(w, http.StatusInternalServerError, "failed to encode email")
		return
	}

	w.Header().Set("Content-Type", "message/rfc822")
	w.Header().Set("X-Report-Degraded", strconv.FormatBool(msg.Degraded))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(raw); err != nil {
		logger.Error().Err(err).Msg("failed to write email")
	}
}

func (h *Handler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	names, err := h.profiles.GetProfiles(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list profiles")
		return
	}
	response := make([]api.Profile, 0, len(names))
	for _, name := range names {
		p, err := h.profiles.GetProfile(ctx, name)
		if err != nil {
			continue
		}
		response = append(response, api.Profile{Name: p.Name, Title: p.Title, Author: p.Author, FileStem: p.FileStem})
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return false
	}
	return true
}

func (h *Handler) resolve(w http.ResponseWriter, r *http.Request, req api.ExportRequest) (domain.Format, domain.ReportProfile, bool) {
	format := domain.FormatTXT
	if req.Format != "" {
		f, err := domain.ParseFormat(req.Format)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return 0, domain.ReportProfile{}, false
		}
		format = f
	}

	name := req.Profile
	if name == "" {
		name = h.defaultProfile
	}
	profile, err := h.profiles.GetProfile(r.Context(), name)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return 0, domain.ReportProfile{}, false
	}
	return format, profile, true
}

func (h *Handler) writeAssembleError(w http.ResponseWriter, logger *zerolog.Logger, err error) {
	switch {
	case errors.Is(err, report.ErrInvalidSelection):
		writeError(w, http.StatusUnprocessableEntity, report.ErrInvalidSelection.Error())
	case report.IsRenderError(err):
		logger.Error().Err(err).Msg("report rendering failed")
		writeError(w, http.StatusInternalServerError, "report rendering failed")
	default:
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			writeError(w, http.StatusBadRequest, validationMessage(verrs))
			return
		}
		logger.Error().Err(err).Msg("request failed")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func toSelection(req api.ExportRequest) (domain.Selection, error) {
	priorities, err := domain.ParsePriorities(req.Priorities...)
	if err != nil {
		return domain.Selection{}, err
	}
	return domain.Selection{
		IncludeSummary:  req.Sections.Summary,
		IncludeScore:    req.Sections.Score,
		IncludeFindings: req.Sections.Findings,
		Priorities:      priorities,
	}, nil
}

func toScoreResponse(a domain.RiskAssessment, priorities []domain.Severity) api.ScoreResponse {
	visible := a.FilterFindings(priorities)
	findings := make([]api.Finding, 0, len(visible))
	for _, f := range visible {
		findings = append(findings, api.Finding{Text: f.Text, Severity: f.Severity.String()})
	}
	indicators := make([]api.Indicator, 0, len(a.Indicators))
	for _, ind := range a.Indicators {
		indicators = append(indicators, api.Indicator{Label: ind.Label, Mentions: ind.Mentions})
	}
	d := a.Counts.Distribution()
	return api.ScoreResponse{
		Score:           a.Score,
		Level:           a.Level().Title(),
		Counts:          api.SeverityCounts{High: a.Counts.High, Medium: a.Counts.Medium, Low: a.Counts.Low},
		Distribution:    api.Distribution{High: d.High, Medium: d.Medium, Low: d.Low},
		Indicators:      indicators,
		Findings:        findings,
		Recommendations: a.Recommendations(),
	}
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return fmt.Sprintf("field %s failed on %q", strings.ToLower(verrs[0].Field()), verrs[0].Tag())
	}
	return "invalid request"
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, api.Error{Error: msg})
}
