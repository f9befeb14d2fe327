package report

import (
	"errors"
	"fmt"

	"github.com/de-tools/legal-atlas/pkg/models/domain"
)

// ErrInvalidSelection is returned when an export selects no section.
var ErrInvalidSelection = errors.New("select at least one section to include")

// RenderError reports a renderer failure, including recovered panics.
type RenderError struct {
	Format domain.Format
	Err    error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("failed to render %s report: %v", e.Format, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// IsRenderError reports whether err carries a RenderError.
func IsRenderError(err error) bool {
	var re *RenderError
	return errors.As(err, &re)
}
