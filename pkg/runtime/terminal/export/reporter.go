package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/de-tools/legal-atlas/pkg/services/report"
)

const Stdout = "-"

// Writer stores rendered reports on disk or streams them to its output.
type Writer struct {
	out io.Writer
}

func NewWriter(out io.Writer) *Writer {
	if out == nil {
		out = os.Stdout
	}
	return &Writer{out: out}
}

// Write stores res at target and returns the path written. A directory target receives the
// result's own filename; "-" streams the content and returns an empty path.
func (w *Writer) Write(res *report.Result, target string) (string, error) {
	if target == Stdout {
		if _, err := w.out.Write(res.Content); err != nil {
			return "", fmt.Errorf("failed to write report: %w", err)
		}
		return "", nil
	}

	if target == "" {
		target = "."
	}
	if info, err := os.Stat(target); err == nil && info.IsDir() {
		target = filepath.Join(target, res.Filename)
	}

	if err := os.WriteFile(target, res.Content, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", target, err)
	}
	return target, nil
}
