// Package cmd defines the spedconv command line interface.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "spedconv",
	Short: "SPED PIS/COFINS report converter",
	Long: `spedconv converts SPED EFD-Contribuições fiscal files (.txt or .zip)
into inbound and outbound transaction reports with normalized tax values.

Examples:
  # Convert local files to CSV reports
  spedconv convert jan.txt fev.txt

  # Include an XLSX workbook
  spedconv convert --xlsx --output-dir ./reports efd.zip

  # Run the upload API
  spedconv serve --config config.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to the configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// logLevel resolves the effective log level: --verbose wins over the
// configured level.
func logLevel(configured string) string {
	if verbose {
		return "debug"
	}
	return configured
}
