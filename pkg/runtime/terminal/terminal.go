package terminal

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/de-tools/legal-atlas/pkg/runtime/terminal/commands"
	"github.com/de-tools/legal-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/legal-atlas/pkg/services/config"
)

// CLI represents the command-line interface
type CLI struct {
	assembler      commands.Assembler
	composer       commands.Composer
	profiles       config.Registry
	defaultProfile string
	reporter       *Reporter
	writer         *export.Writer
	output         io.Writer
	rootCmd        *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Assembler      commands.Assembler
	Composer       commands.Composer
	Profiles       config.Registry
	DefaultProfile string
	Output         io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Profiles == nil {
		opts.Profiles = config.NewStaticRegistry()
	}

	cli := &CLI{
		assembler:      opts.Assembler,
		composer:       opts.Composer,
		profiles:       opts.Profiles,
		defaultProfile: opts.DefaultProfile,
		reporter:       NewReporter(opts.Output),
		writer:         export.NewWriter(opts.Output),
		output:         opts.Output,
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

// Execute runs the command tree; ctx should carry the logger.
func (cli *CLI) Execute(ctx context.Context) error {
	return cli.rootCmd.ExecuteContext(ctx)
}

func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "legal-atlas",
		Short:         "Legal document risk scoring and reporting",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(cli.output)

	cmd.AddCommand(commands.NewScoreCmd(cli.assembler, cli.reporter))
	cmd.AddCommand(commands.NewExportCmd(cli.assembler, cli.profiles, cli.writer, cli.defaultProfile))
	cmd.AddCommand(commands.NewExtractCmd())
	cmd.AddCommand(commands.NewEmailCmd(cli.composer, cli.profiles, cli.defaultProfile))
	cmd.AddCommand(commands.NewProfilesCmd(cli.profiles))

	return cmd
}
