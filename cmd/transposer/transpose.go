package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/transposer/internal/presentation/tui"
	"github.com/aretw0/transposer/pkg/domain"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var transposeCmd = &cobra.Command{
	Use:   "transpose [text|-]",
	Short: "Transpose analysis text given as an argument or on stdin",
	Example: `  transposer transpose --from A --to C "I (B) V"
  cat body.txt | transposer transpose --from d --to e --minor`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, logger, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		fromStr, _ := cmd.Flags().GetString("from")
		toStr, _ := cmd.Flags().GetString("to")
		minor, _ := cmd.Flags().GetBool("minor")

		from, err := domain.NewKey(fromStr, !minor)
		if err != nil {
			return fmt.Errorf("from: %w", err)
		}
		to, err := domain.NewKey(toStr, !minor)
		if err != nil {
			return fmt.Errorf("to: %w", err)
		}

		text, err := readInput(cmd, args)
		if err != nil {
			return err
		}

		origScale, err := from.Scale()
		if err != nil {
			return err
		}
		destScale, err := to.Scale()
		if err != nil {
			return err
		}

		loc := domain.LocateAnnotations(text)
		if loc.Truncated {
			logger.Warn("Unmatched parenthesis stopped annotation scan", "offset", loc.UnmatchedAt, "located", len(loc.Annotations))
		}
		out, spans, err := domain.TransposeSpans(loc.Annotations, domain.BuildKeyMap(origScale, destScale), text)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if isTerminal(w) {
			out = tui.Highlight(out, spans, termenv.ColorProfile())
		}
		_, err = fmt.Fprint(w, out)
		return err
	},
}

func init() {
	rootCmd.AddCommand(transposeCmd)
	transposeCmd.Flags().StringP("from", "f", "", "Original tonic, e.g. A, F#, Bb")
	transposeCmd.Flags().StringP("to", "t", "", "Destination tonic")
	transposeCmd.Flags().BoolP("minor", "m", false, "Both keys are minor")
	_ = transposeCmd.MarkFlagRequired("from")
	_ = transposeCmd.MarkFlagRequired("to")
}

var errNoInput = errors.New("no input text")

// readInput returns the positional text, or stdin when the text is missing or "-".
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 && args[0] != "-" {
		return args[0], nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	if len(data) == 0 {
		return "", errNoInput
	}
	return string(data), nil
}
