// Package cmd - add command
package cmd

import (
	"github.com/spf13/cobra"
)

var (
	addPolicy   string
	addSubtract bool
)

// addCmd adds two quantities under a coherence policy
var addCmd = &cobra.Command{
	Use:   "add <value> <unit> <value> <unit>",
	Short: "Add two quantities",
	Long: `Add (or with --sub, subtract) two quantities of the same dimension.

Under the strict policy the scales must match. The other policies convert
implicitly: left-hand-wins uses the left scale, largest-wins and
smallest-wins the larger or smaller unit.

Examples:
  dimscale add 1 m 1000 mm --policy largest-wins
  dimscale add --storage int 1 m 1 mm --policy smallest-wins
  dimscale add --sub --storage decimal 20 degC 5 K`,
	Args: cobra.ExactArgs(4),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVarP(&addPolicy, "policy", "p", "", "coherence policy: strict, left-hand-wins, largest-wins, smallest-wins")
	addCmd.Flags().BoolVar(&addSubtract, "sub", false, "subtract the second quantity from the first")
}

func runAdd(cmd *cobra.Command, args []string) error {
	s, err := newSession(addPolicy)
	if err != nil {
		return err
	}
	a, err := s.quantity(args[0], args[1])
	if err != nil {
		return err
	}
	b, err := s.quantity(args[2], args[3])
	if err != nil {
		return err
	}

	if addSubtract {
		a, err = s.checker.Sub(a, b)
	} else {
		a, err = s.checker.Add(a, b)
	}
	if err != nil {
		return err
	}
	return s.renderQuantity(cmd.OutOrStdout(), a)
}
