package commands

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/de-tools/legal-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/legal-atlas/pkg/services/config"
	"github.com/de-tools/legal-atlas/pkg/services/report"
)

type ExportCmd struct {
	input          inputFlags
	report         reportFlags
	output         string
	strict         bool
	defaultProfile string
	assembler      Assembler
	profiles       config.Registry
	writer         *export.Writer
}

func NewExportCmd(assembler Assembler, profiles config.Registry, writer *export.Writer, defaultProfile string) *cobra.Command {
	ec := &ExportCmd{assembler: assembler, profiles: profiles, writer: writer, defaultProfile: defaultProfile}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render an analysis report as txt, docx or pdf",
		RunE:  ec.run,
	}

	ec.input.register(cmd, true)
	ec.report.register(cmd)
	cmd.Flags().StringVarP(&ec.output, "output", "o", ".", "Output file or directory; '-' writes to stdout")
	cmd.Flags().BoolVar(&ec.strict, "strict", false, "Fail instead of falling back to plain text")

	return cmd
}

func (ec *ExportCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	logger := zerolog.Ctx(ctx)

	sel, format, err := ec.report.parse()
	if err != nil {
		return err
	}
	summary, risk, err := ec.input.load()
	if err != nil {
		return err
	}
	profile, err := ec.profiles.GetProfile(ctx, profileName(ec.report.profile, ec.defaultProfile))
	if err != nil {
		return err
	}

	res, err := ec.assembler.Assemble(ctx, report.Request{
		Selection: sel,
		Summary:   summary,
		Risk:      risk,
		Format:    format,
		Profile:   profile,
		Fallback:  !ec.strict,
	})
	if err != nil {
		return fmt.Errorf("failed to export report: %w", err)
	}
	if res.Degraded {
		logger.Warn().Err(res.Cause).Msgf("%s rendering failed, wrote plain text instead", format)
	}

	path, err := ec.writer.Write(res, ec.output)
	if err != nil {
		return err
	}
	if path != "" {
		logger.Info().Str("path", path).Int("bytes", len(res.Content)).Msg("report written")
	}
	return nil
}
