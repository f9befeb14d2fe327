package terminal

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/legal-atlas/pkg/render/pdf"
	"github.com/de-tools/legal-atlas/pkg/services/config"
	"github.com/de-tools/legal-atlas/pkg/services/email"
	"github.com/de-tools/legal-atlas/pkg/services/report"
)

const analysisYAML = `summary: |
  Supply agreement between Acme and Buyer.
risks: |
  The supplier is liable for critical defects. Payment terms are moderate and negotiable.
`

func newTestCLI(t *testing.T, profiles config.Registry) (*CLI, *bytes.Buffer) {
	t.Helper()
	clock := func() time.Time { return time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC) }
	assembler := report.NewAssembler(report.DefaultRenderers(pdf.DefaultConfig()), nil, clock)
	var out bytes.Buffer
	cli := NewCLI(Options{
		Assembler: assembler,
		Composer:  email.NewComposer(assembler, "assistant@example.com", clock),
		Profiles:  profiles,
		Output:    &out,
	})
	return cli, &out
}

func run(t *testing.T, cli *CLI, args ...string) error {
	t.Helper()
	logger := zerolog.New(zerolog.NewTestWriter(t))
	cli.SetArgs(args)
	return cli.Execute(logger.WithContext(context.Background()))
}

func writeTemp(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCLI_Score(t *testing.T) {
	// Given
	dir := t.TempDir()
	input := writeTemp(t, dir, "analysis.yaml", analysisYAML)
	cli, out := newTestCLI(t, nil)

	// When
	err := run(t, cli, "score", "--input", input)

	// Then
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Overall Risk Score: 50/100")
	assert.Contains(t, out.String(), "High Priority Issues: 1")
	assert.Contains(t, out.String(), "[HIGH]")
	assert.Contains(t, out.String(), "The supplier is liable for critical defects")
	assert.Contains(t, out.String(), "Review document carefully before proceeding")
}

func TestCLI_Score_PriorityFilter(t *testing.T) {
	// Given
	dir := t.TempDir()
	input := writeTemp(t, dir, "analysis.yaml", analysisYAML)
	cli, out := newTestCLI(t, nil)

	// When
	err := run(t, cli, "score", "--input", input, "--priority", "medium")

	// Then counts and distribution still cover every finding
	require.NoError(t, err)
	assert.Contains(t, out.String(), "High Priority Issues: 1")
	assert.Contains(t, out.String(), "Risk Distribution: High 50%, Medium 50%, Low 0%")
	assert.Contains(t, out.String(), "- payment/financial terms: 1")
	assert.Contains(t, out.String(), "[MEDIUM] Payment terms are moderate and negotiable")
	assert.NotContains(t, out.String(), "[HIGH]")
}

func TestCLI_Score_UnknownPriority(t *testing.T) {
	dir := t.TempDir()
	input := writeTemp(t, dir, "analysis.yaml", analysisYAML)
	cli, _ := newTestCLI(t, nil)

	err := run(t, cli, "score", "--input", input, "--priority", "urgent")

	assert.ErrorContains(t, err, "unknown priority")
}

func TestCLI_Score_NoRiskText(t *testing.T) {
	cli, _ := newTestCLI(t, nil)

	err := run(t, cli, "score")

	assert.ErrorContains(t, err, "no risk narrative")
}

func TestCLI_Export_ToDirectory(t *testing.T) {
	// Given
	dir := t.TempDir()
	input := writeTemp(t, dir, "analysis.yaml", analysisYAML)
	cli, _ := newTestCLI(t, nil)

	// When
	err := run(t, cli, "export", "--input", input, "--format", "docx", "--output", dir)

	// Then
	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(dir, "legal_analysis.docx"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("PK")))
}

func TestCLI_Export_StdoutWithProfile(t *testing.T) {
	// Given
	dir := t.TempDir()
	input := writeTemp(t, dir, "analysis.yaml", analysisYAML)
	profiles, err := config.NewRegistry(writeTemp(t, dir, "profiles.ini", "[lease]\ntitle = Lease Review\n"))
	require.NoError(t, err)
	cli, out := newTestCLI(t, profiles)

	// When
	err = run(t, cli, "export", "--input", input, "--sections", "summary,findings", "--profile", "lease", "-o", "-")

	// Then
	require.NoError(t, err)
	assert.Contains(t, out.String(), "LEASE REVIEW")
	assert.Contains(t, out.String(), "DOCUMENT SUMMARY")
	assert.Contains(t, out.String(), "RISK ANALYSIS")
	assert.NotContains(t, out.String(), "RISK SCORE")
}

func TestCLI_Export_PriorityFilter(t *testing.T) {
	dir := t.TempDir()
	input := writeTemp(t, dir, "analysis.yaml", analysisYAML)
	cli, out := newTestCLI(t, nil)

	err := run(t, cli, "export", "--input", input, "--sections", "findings", "--priority", "high", "-o", "-")

	require.NoError(t, err)
	assert.Contains(t, out.String(), "HIGH PRIORITY RISKS:")
	assert.NotContains(t, out.String(), "MEDIUM PRIORITY RISKS:")
}

func TestCLI_Export_Errors(t *testing.T) {
	dir := t.TempDir()
	input := writeTemp(t, dir, "analysis.yaml", analysisYAML)

	tests := []struct {
		name string
		args []string
		err  string
	}{
		{"unknown section", []string{"export", "--input", input, "--sections", "appendix"}, "unknown section"},
		{"unknown format", []string{"export", "--input", input, "--format", "rtf"}, "unsupported format"},
		{"unknown profile", []string{"export", "--input", input, "--profile", "firm"}, "profile firm not found"},
		{"missing input", []string{"export", "--input", filepath.Join(dir, "missing.yaml")}, "failed to read analysis file"},
		{"empty selection", []string{"export", "--input", input, "--sections", ""}, report.ErrInvalidSelection.Error()},
		{"unknown priority", []string{"export", "--input", input, "--priority", "urgent"}, "unknown priority"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cli, _ := newTestCLI(t, nil)

			err := run(t, cli, tc.args...)

			assert.ErrorContains(t, err, tc.err)
		})
	}
}

func TestCLI_Extract(t *testing.T) {
	dir := t.TempDir()
	doc := writeTemp(t, dir, "contract.txt", "The tenant shall pay rent.")
	cli, out := newTestCLI(t, nil)

	err := run(t, cli, "extract", doc)

	require.NoError(t, err)
	assert.Equal(t, "The tenant shall pay rent.\n", out.String())
}

func TestCLI_Email_ToFile(t *testing.T) {
	// Given
	dir := t.TempDir()
	input := writeTemp(t, dir, "analysis.yaml", analysisYAML)
	target := filepath.Join(dir, "report.eml")
	cli, _ := newTestCLI(t, nil)

	// When
	err := run(t, cli, "email", "--input", input, "--to", "client@example.com", "--format", "pdf", "-o", target)

	// Then
	require.NoError(t, err)
	raw, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "To: client@example.com")
	assert.Contains(t, string(raw), "Subject: "+email.DefaultSubject)
	assert.Contains(t, string(raw), "document_analysis.pdf")
}

func TestCLI_Email_RequiresRecipient(t *testing.T) {
	cli, _ := newTestCLI(t, nil)

	err := run(t, cli, "email")

	assert.ErrorContains(t, err, `required flag(s) "to" not set`)
}

func TestCLI_Profiles(t *testing.T) {
	dir := t.TempDir()
	profiles, err := config.NewRegistry(writeTemp(t, dir, "profiles.ini", "[nda]\nfile_stem = nda_review\n"))
	require.NoError(t, err)
	cli, out := newTestCLI(t, profiles)

	err = run(t, cli, "profiles")

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "NAME"))
	assert.Contains(t, lines[1], "legal_analysis.*")
	assert.Contains(t, lines[2], "nda_review.*")
}
