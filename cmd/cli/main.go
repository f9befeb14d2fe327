package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/de-tools/legal-atlas/pkg/render/pdf"
	"github.com/de-tools/legal-atlas/pkg/runtime/terminal"
	"github.com/de-tools/legal-atlas/pkg/services/config"
	"github.com/de-tools/legal-atlas/pkg/services/email"
	"github.com/de-tools/legal-atlas/pkg/services/report"
)

func main() {
	_ = godotenv.Load()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	settings, err := config.LoadSettings(os.Getenv("LEGAL_ATLAS_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	profiles, err := settings.Profiles()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	pdfConfig := pdf.DefaultConfig()
	pdfConfig.Compress = settings.Report.PDFCompress
	assembler := report.NewAssembler(report.DefaultRenderers(pdfConfig), nil, nil)

	cli := terminal.NewCLI(terminal.Options{
		Assembler:      assembler,
		Composer:       email.NewComposer(assembler, settings.Email.From, nil),
		Profiles:       profiles,
		DefaultProfile: settings.Report.DefaultProfile,
		Output:         os.Stdout,
	})

	if err := cli.Execute(logger.WithContext(context.Background())); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
