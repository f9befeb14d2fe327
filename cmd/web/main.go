package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/de-tools/legal-atlas/pkg/render/pdf"
	"github.com/de-tools/legal-atlas/pkg/server"
	"github.com/de-tools/legal-atlas/pkg/services/config"
	"github.com/de-tools/legal-atlas/pkg/services/email"
	"github.com/de-tools/legal-atlas/pkg/services/report"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for Legal Atlas",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to a YAML settings file (environment variables such as SERVER_PORT override it)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(_ *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	settings, err := config.LoadSettings(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	profiles, err := settings.Profiles()
	if err != nil {
		return fmt.Errorf("failed to create profile registry: %w", err)
	}
	if settings.Report.ProfilesPath != "" {
		logger.Info().Msgf("Profiles found at `%s` successfully loaded.", settings.Report.ProfilesPath)
	}

	pdfConfig := pdf.DefaultConfig()
	pdfConfig.Compress = settings.Report.PDFCompress
	assembler := report.NewAssembler(report.DefaultRenderers(pdfConfig), nil, nil)

	api := server.NewWebAPI(server.Config{
		Addr:           settings.Addr(),
		DefaultProfile: settings.Report.DefaultProfile,
		MaxUploadBytes: settings.MaxUploadBytes,
		Dependencies: server.Dependencies{
			Assembler: assembler,
			Composer:  email.NewComposer(assembler, settings.Email.From, nil),
			Profiles:  profiles,
			Logger:    logger,
		},
	})

	return api.Start()
}
