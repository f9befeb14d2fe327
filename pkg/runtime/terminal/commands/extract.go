package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

type ExtractCmd struct {
	output string
}

func NewExtractCmd() *cobra.Command {
	ec := &ExtractCmd{}
	cmd := &cobra.Command{
		Use:   "extract <document>",
		Short: "Extract plain text from a .txt, .docx or .pdf document",
		Args:  cobra.ExactArgs(1),
		RunE:  ec.run,
	}
	cmd.Flags().StringVarP(&ec.output, "output", "o", "", "Write the text to a file instead of stdout")
	return cmd
}

func (ec *ExtractCmd) run(cmd *cobra.Command, args []string) error {
	text, err := readDocument(args[0])
	if err != nil {
		return err
	}
	if ec.output != "" {
		if err := os.WriteFile(ec.output, []byte(text), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", ec.output, err)
		}
		return nil
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
	return err
}
