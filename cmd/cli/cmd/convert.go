// Package cmd - convert and factor commands
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"dimscale/core/conversion"
	errs "dimscale/core/errors"
	"dimscale/core/output"
)

// convertCmd converts a value between two units of the same dimension
var convertCmd = &cobra.Command{
	Use:   "convert <value> <from> <to>",
	Short: "Convert a value between units",
	Long: `Convert a value from one unit to another of the same dimension.

Integer and decimal storage fail with PRECISION_LOSS when the result is not
exact, unless --lossy is given.

Examples:
  dimscale convert 1 m mm
  dimscale convert --storage int 1500 mm m --lossy
  dimscale convert --storage decimal 212 degF degC`,
	Args: cobra.ExactArgs(3),
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	s, err := newSession("")
	if err != nil {
		return err
	}
	q, err := s.quantity(args[0], args[1])
	if err != nil {
		return err
	}
	to, err := s.catalog.Lookup(args[2])
	if err != nil {
		return err
	}
	v, err := s.express(to, q)
	if err != nil {
		return err
	}
	return s.render(cmd.OutOrStdout(), output.InUnit(v, to))
}

// factorCmd prints the conversion factor between two units
var factorCmd = &cobra.Command{
	Use:   "factor <from> <to>",
	Short: "Print the conversion factor between two units",
	Long: `Print the factor a value in <from> is multiplied by to express it in <to>,
as a float and, when no pi is involved, as an exact ratio of integers.

Examples:
  dimscale factor km mm
  dimscale factor h s
  dimscale factor deg rad`,
	Args: cobra.ExactArgs(2),
	RunE: runFactor,
}

func runFactor(cmd *cobra.Command, args []string) error {
	s, err := newSession("")
	if err != nil {
		return err
	}
	from, err := s.catalog.Lookup(args[0])
	if err != nil {
		return err
	}
	to, err := s.catalog.Lookup(args[1])
	if err != nil {
		return err
	}
	if from.Dimension != to.Dimension {
		return errs.DimensionMismatch("factor", from.Dimension, to.Dimension)
	}

	out := cmd.OutOrStdout()
	f := conversion.Factor(from.Scale, to.Scale) * from.Factor().InexactFloat64() / to.Factor().InexactFloat64()
	fmt.Fprintf(out, "factor: %g\n", f)

	r, err := conversion.ExactRatio(from.Scale, to.Scale)
	if err != nil {
		if errs.IsType(err, errs.TypePrecisionLoss) {
			fmt.Fprintln(out, "exact:  none (involves pi)")
			return nil
		}
		return err
	}
	num := r.Num.Mul(from.Factor())
	den := r.Den.Mul(to.Factor())
	fmt.Fprintf(out, "exact:  %s/%s\n", num, den)
	return nil
}
