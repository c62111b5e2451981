package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/transposer/internal/presentation/tui"
	"github.com/aretw0/transposer/pkg/domain"
	"github.com/spf13/cobra"
)

var scaleCmd = &cobra.Command{
	Use:   "scale <tonic>",
	Short: "Print the scale of a key",
	Long:  `Prints the twelve- or thirteen-note scale of a key, rotated to start on the tonic and spelled with sharps or flats as the key requires.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, _, err := loadSettings(cmd); err != nil {
			return err
		}
		minor, _ := cmd.Flags().GetBool("minor")

		key, err := domain.NewKey(args[0], !minor)
		if err != nil {
			return err
		}
		scale, err := key.Scale()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if isTerminal(out) {
			return renderMarkdown(out, tui.ScaleMarkdown(key, scale))
		}
		fmt.Fprintln(out, strings.Join(scale.Strings(), " "))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scaleCmd)
	scaleCmd.Flags().BoolP("minor", "m", false, "Use the minor key")
}

func renderMarkdown(w io.Writer, md string) error {
	render, err := tui.NewRenderer(0)
	if err != nil {
		return err
	}
	s, err := render(md)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(w, s)
	return err
}
