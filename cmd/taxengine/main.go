// Command taxengine is the admin boundary of spec.md §6: a thin CLI
// shell over the calculation pipeline and the report store. It is not
// part of compute itself — it loads a TaxReturn from a JSON file, drives
// internal/pipeline, and prints the result; a real deployment would sit
// this behind an HTTP/RPC surface instead. Grounded on the teacher's
// cmd/rpgo/main.go: a package-level rootCmd, one var per subcommand, an
// init() wiring flags and AddCommand, and a main() that Executes and
// exits 1 on error.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "taxengine",
	Short: "Federal individual income tax computation engine",
	Long:  "Computes a federal return from a TaxReturn JSON document and manages its versioned reports.",
}

func init() {
	rootCmd.AddCommand(computeCmd())
	rootCmd.AddCommand(reportCmd())
	rootCmd.AddCommand(migrateCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
