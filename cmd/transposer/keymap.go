package main

import (
	"fmt"

	"github.com/aretw0/transposer/internal/presentation/tui"
	"github.com/aretw0/transposer/pkg/domain"
	"github.com/spf13/cobra"
)

var keymapCmd = &cobra.Command{
	Use:   "keymap <from> <to>",
	Short: "Print how note names of one key are spelled in another",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, _, err := loadSettings(cmd); err != nil {
			return err
		}
		minor, _ := cmd.Flags().GetBool("minor")

		from, err := domain.NewKey(args[0], !minor)
		if err != nil {
			return fmt.Errorf("from: %w", err)
		}
		to, err := domain.NewKey(args[1], !minor)
		if err != nil {
			return fmt.Errorf("to: %w", err)
		}

		origScale, err := from.Scale()
		if err != nil {
			return err
		}
		destScale, err := to.Scale()
		if err != nil {
			return err
		}
		entries := domain.BuildKeyMap(origScale, destScale).Entries()

		out := cmd.OutOrStdout()
		if isTerminal(out) {
			return renderMarkdown(out, tui.KeyMapMarkdown(from, to, entries))
		}
		for _, e := range entries {
			fmt.Fprintf(out, "%s -> %s\n", e.From, e.To)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(keymapCmd)
	keymapCmd.Flags().BoolP("minor", "m", false, "Both keys are minor")
}
