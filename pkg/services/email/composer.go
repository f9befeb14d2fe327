package email

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/de-tools/legal-atlas/pkg/models/domain"
	"github.com/de-tools/legal-atlas/pkg/services/report"
)

const (
	DefaultSubject = "Legal Document Analysis Results"
	DefaultBody    = "Please find attached your document analysis from the Legal Document Assistant."
	attachmentStem = "document_analysis"
)

// Assembler renders the attachment.
type Assembler interface {
	Assemble(ctx context.Context, req report.Request) (*report.Result, error)
}

type Request struct {
	From      string `validate:"omitempty,email"`
	To        string `validate:"required,email"`
	Subject   string `validate:"max=255"`
	Selection domain.Selection
	Summary   string
	Risk      string
	Format    domain.Format
	Profile   domain.ReportProfile
}

type Attachment struct {
	Filename string
	MIMEType string
	Content  []byte
}

// Message is an email ready to hand to a mail transport.
type Message struct {
	ID         string
	From       string
	To         string
	Subject    string
	Date       time.Time
	Body       string
	Attachment Attachment
	// Degraded is set when the attachment fell back to plain text.
	Degraded bool
}

type Composer struct {
	assembler Assembler
	validate  *validator.Validate
	from      string
	clock     func() time.Time
}

func NewComposer(assembler Assembler, from string, clock func() time.Time) *Composer {
	if clock == nil {
		clock = time.Now
	}
	return &Composer{
		assembler: assembler,
		validate:  validator.New(),
		from:      from,
		clock:     clock,
	}
}

// Compose validates the request and renders the attachment. A failed PDF or DOCX render
// degrades to a plain text attachment instead of failing the message.
func (c *Composer) Compose(ctx context.Context, req Request) (*Message, error) {
	logger := zerolog.Ctx(ctx)

	req.To = strings.TrimSpace(req.To)
	if req.From == "" {
		req.From = c.from
	}
	if err := c.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid email request: %w", err)
	}
	if !req.Selection.Any() {
		return nil, report.ErrInvalidSelection
	}

	res, err := c.assembler.Assemble(ctx, report.Request{
		Selection: req.Selection,
		Summary:   req.Summary,
		Risk:      req.Risk,
		Format:    req.Format,
		Profile:   req.Profile,
		FileStem:  attachmentStem,
		Fallback:  true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to prepare attachment: %w", err)
	}
	if res.Degraded {
		logger.Warn().
			Err(res.Cause).
			Str("to", req.To).
			Msg("attachment sent as plain text")
	}

	subject := strings.TrimSpace(req.Subject)
	if subject == "" {
		subject = DefaultSubject
	}

	return &Message{
		ID:      uuid.NewString(),
		From:    req.From,
		To:      req.To,
		Subject: subject,
		Date:    c.clock(),
		Body:    DefaultBody,
		Attachment: Attachment{
			Filename: res.Filename,
			MIMEType: res.MIMEType,
			Content:  res.Content,
		},
		Degraded: res.Degraded,
	}, nil
}
