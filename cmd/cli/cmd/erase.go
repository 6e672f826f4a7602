// Package cmd - erase command
package cmd

import (
	"github.com/spf13/cobra"

	"dimscale/core/erasure"
	"dimscale/core/output"
)

// eraseCmd erases a dimensionless or angular quantity to a bare number
var eraseCmd = &cobra.Command{
	Use:   "erase <value> <unit>",
	Short: "Erase a dimensionless or angle quantity to a bare number",
	Long: `Erase a quantity to a plain number.

Pure angles are converted to radians first; any other dimension is rejected.

Examples:
  dimscale erase 180 deg
  dimscale erase 1 turn`,
	Args: cobra.ExactArgs(2),
	RunE: runErase,
}

func runErase(cmd *cobra.Command, args []string) error {
	s, err := newSession("")
	if err != nil {
		return err
	}
	q, err := s.quantity(args[0], args[1])
	if err != nil {
		return err
	}
	v, err := erasure.Erase(q, s.mode)
	if err != nil {
		return err
	}
	return s.render(cmd.OutOrStdout(), output.Number(v))
}
