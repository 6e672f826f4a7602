// Package cmd provides the CLI commands for dimscale.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"dimscale/internal/config"
	"dimscale/internal/logging"
)

var (
	cfgFile   string
	verbose   bool
	storage   string
	lossy     bool
	scopeFile string
	scopeName string
	outFormat string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "dimscale",
	Short: "Dimension and scale checked quantity arithmetic",
	Long: `dimscale checks and evaluates arithmetic on physical quantities.

Every quantity carries a dimension signature (exponents over mass, length,
time, current, temperature, amount, luminosity and angle) and a scale
signature (exponents over 2, 3, 5, 10 and pi). Conversions between scales
are exact for integer and decimal storage unless --lossy is given.

Examples:
  dimscale convert 1 m mm
  dimscale convert --storage decimal 98.6 degF degC
  dimscale factor deg rad
  dimscale add --policy smallest-wins 1 m 1 mm
  dimscale inspect kN
  dimscale convert -o json 1 mi km`,
	SilenceUsage: true,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (.json, .yaml or .yml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&storage, "storage", "", "numeric storage: float, int or decimal (default from config)")
	rootCmd.PersistentFlags().BoolVar(&lossy, "lossy", false, "truncate inexact integer and decimal conversions")
	rootCmd.PersistentFlags().StringVar(&scopeFile, "scope-file", "", "HCL file declaring scale preference scopes")
	rootCmd.PersistentFlags().StringVar(&scopeName, "scope", "", "scope to use from the scope file")
	rootCmd.PersistentFlags().StringVarP(&outFormat, "output", "o", "text", "output format: text or json")

	// Add subcommands
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(factorCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(eraseCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(declareCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}

func initConfig() {
	if cfgFile != "" {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		config.Set(cfg)
	}

	// Initialize logging
	cfg := config.Get()
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// Version is set at build time
var Version = "0.1.0"

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "dimscale version %s\n", Version)
	},
}
