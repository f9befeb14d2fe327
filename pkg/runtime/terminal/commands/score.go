package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/de-tools/legal-atlas/pkg/models/domain"
)

type ScoreCmd struct {
	input      inputFlags
	priorities []string
	assembler  Assembler
	reporter  AssessmentReporter
}

func NewScoreCmd(assembler Assembler, reporter AssessmentReporter) *cobra.Command {
	sc := &ScoreCmd{assembler: assembler, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score the risk narrative of an analysis",
		RunE:  sc.run,
	}
	sc.input.register(cmd, false)
	cmd.Flags().StringSliceVar(&sc.priorities, "priority", nil, "Only list findings of these priorities: high, medium, low")
	return cmd
}

func (sc *ScoreCmd) run(cmd *cobra.Command, _ []string) error {
	_, risk, err := sc.input.load()
	if err != nil {
		return err
	}
	if risk == "" {
		return errors.New("no risk narrative given; use --input or --risk-file")
	}

	priorities, err := domain.ParsePriorities(sc.priorities...)
	if err != nil {
		return err
	}

	if err := sc.reporter.Handle(sc.assembler.Score(risk), priorities); err != nil {
		return fmt.Errorf("failed to print assessment: %w", err)
	}
	return nil
}
