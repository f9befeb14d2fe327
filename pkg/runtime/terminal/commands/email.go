package commands

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/de-tools/legal-atlas/pkg/services/config"
	"github.com/de-tools/legal-atlas/pkg/services/email"
)

type EmailCmd struct {
	input          inputFlags
	report         reportFlags
	to             string
	subject        string
	output         string
	defaultProfile string
	composer       Composer
	profiles       config.Registry
}

func NewEmailCmd(composer Composer, profiles config.Registry, defaultProfile string) *cobra.Command {
	ec := &EmailCmd{composer: composer, profiles: profiles, defaultProfile: defaultProfile}
	cmd := &cobra.Command{
		Use:   "email",
		Short: "Compose an email carrying the report as an attachment",
		RunE:  ec.run,
	}

	ec.input.register(cmd, true)
	ec.report.register(cmd)
	cmd.Flags().StringVar(&ec.to, "to", "", "Recipient address")
	cmd.Flags().StringVar(&ec.subject, "subject", "", "Subject line")
	cmd.Flags().StringVarP(&ec.output, "output", "o", "", "Write the .eml message to a file instead of stdout")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func (ec *EmailCmd) run(cmd *cobra.Command, _ []string) error {
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

	msg, err := ec.composer.Compose(ctx, email.Request{
		To:        ec.to,
		Subject:   ec.subject,
		Selection: sel,
		Summary:   summary,
		Risk:      risk,
		Format:    format,
		Profile:   profile,
	})
	if err != nil {
		return fmt.Errorf("failed to compose email: %w", err)
	}
	raw, err := msg.Bytes()
	if err != nil {
		return err
	}

	if ec.output == "" {
		_, err = cmd.OutOrStdout().Write(raw)
		return err
	}
	if err := os.WriteFile(ec.output, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", ec.output, err)
	}
	logger.Info().
		Str("path", ec.output).
		Str("attachment", msg.Attachment.Filename).
		Bool("degraded", msg.Degraded).
		Msg("email written")
	return nil
}
