package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/de-tools/legal-atlas/pkg/models/domain"
	"github.com/de-tools/legal-atlas/pkg/services/intake"
)

// analysisFile is the YAML document produced by an upstream summarisation step.
type analysisFile struct {
	Summary string `yaml:"summary"`
	Risks   string `yaml:"risks"`
}

// inputFlags locates the summary and risk narrative. Document files are run through text
// extraction, so .txt, .docx and .pdf are all accepted.
type inputFlags struct {
	analysisPath string
	summaryPath  string
	riskPath     string
}

func (f *inputFlags) register(cmd *cobra.Command, withSummary bool) {
	cmd.Flags().StringVar(&f.analysisPath, "input", "", "YAML analysis file with 'summary' and 'risks' keys")
	cmd.Flags().StringVar(&f.riskPath, "risk-file", "", "Document holding the risk narrative")
	if withSummary {
		cmd.Flags().StringVar(&f.summaryPath, "summary-file", "", "Document holding the summary")
	}
}

func (f *inputFlags) load() (summary, risk string, err error) {
	if f.analysisPath != "" {
		data, err := os.ReadFile(f.analysisPath)
		if err != nil {
			return "", "", fmt.Errorf("failed to read analysis file: %w", err)
		}
		var af analysisFile
		if err := yaml.Unmarshal(data, &af); err != nil {
			return "", "", fmt.Errorf("failed to parse analysis file: %w", err)
		}
		summary, risk = af.Summary, af.Risks
	}
	if f.summaryPath != "" {
		if summary, err = readDocument(f.summaryPath); err != nil {
			return "", "", err
		}
	}
	if f.riskPath != "" {
		if risk, err = readDocument(f.riskPath); err != nil {
			return "", "", err
		}
	}
	return summary, risk, nil
}

func readDocument(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return intake.Extract(path, data)
}

// reportFlags select what goes into a rendered report.
type reportFlags struct {
	sections   string
	format     string
	profile    string
	priorities []string
}

func (f *reportFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.sections, "sections", "all", "Comma-separated sections: summary, score, findings, all")
	cmd.Flags().StringVar(&f.format, "format", "txt", "Output format: txt, docx or pdf")
	cmd.Flags().StringVar(&f.profile, "profile", "", "Report profile name")
	cmd.Flags().StringSliceVar(&f.priorities, "priority", nil, "Only list findings of these priorities: high, medium, low")
}

func (f *reportFlags) parse() (domain.Selection, domain.Format, error) {
	sel, err := domain.ParseSelection(f.sections)
	if err != nil {
		return domain.Selection{}, 0, err
	}
	format, err := domain.ParseFormat(f.format)
	if err != nil {
		return domain.Selection{}, 0, err
	}
	if sel.Priorities, err = domain.ParsePriorities(f.priorities...); err != nil {
		return domain.Selection{}, 0, err
	}
	return sel, format, nil
}

func profileName(name, fallback string) string {
	if strings.TrimSpace(name) == "" {
		return fallback
	}
	return name
}
