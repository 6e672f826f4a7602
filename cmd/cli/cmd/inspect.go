// Package cmd - inspect and declare commands
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"dimscale/core/conversion"
	"dimscale/core/scale"
)

// inspectCmd shows how a unit literal resolves
var inspectCmd = &cobra.Command{
	Use:   "inspect <unit>...",
	Short: "Show the dimension and scale signatures of unit literals",
	Long: `Resolve unit literals and print their dimension signature, scale signature,
factor to the SI base scale and the storage scale the active scope prefers.

Examples:
  dimscale inspect mm kg degF
  dimscale inspect --scope-file scopes.hcl --scope precision N`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInspect,
}

func runInspect(cmd *cobra.Command, args []string) error {
	s, err := newSession("")
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, text := range args {
		lit, err := s.catalog.Lookup(text)
		if err != nil {
			return err
		}
		lifted, err := s.scope.Lift(lit.Dimension)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, lit)
		fmt.Fprintf(out, "  system:    %s\n", lit.Unit.System)
		fmt.Fprintf(out, "  to base:   %g\n", conversion.Factor(lit.Scale, scale.Unity)*lit.Factor().InexactFloat64())
		fmt.Fprintf(out, "  preferred: %s (scope %s)\n", lifted, s.scope.Name)
	}
	return nil
}

// declareCmd declares a value at the scope's preferred storage scale
var declareCmd = &cobra.Command{
	Use:   "declare <value> <unit>",
	Short: "Store a literal at the active scope's preferred scale",
	Long: `Declare a quantity from a literal and store it at the scale the active scope
prefers for its dimension. Affine literals such as degC are stored linearly.

Examples:
  dimscale declare 1.5 km
  dimscale declare --scope-file scopes.hcl --scope precision 2 kN`,
	Args: cobra.ExactArgs(2),
	RunE: runDeclare,
}

func runDeclare(cmd *cobra.Command, args []string) error {
	s, err := newSession("")
	if err != nil {
		return err
	}
	q, err := s.quantity(args[0], args[1])
	if err != nil {
		return err
	}
	stored, err := s.scope.Store(q, s.mode)
	if err != nil {
		return err
	}
	return s.renderQuantity(cmd.OutOrStdout(), stored)
}
