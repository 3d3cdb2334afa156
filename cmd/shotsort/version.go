package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/varoOP/shotsort/internal/domain"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long: `Print the version number and build information for shotsort,
and the knownNames.json format this build reads and writes.`,
	Run: func(cmd *cobra.Command, args []string) {
		printVersion(cmd.OutOrStdout())
	},
}

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "shotsort: %v\n", version)
	fmt.Fprintf(w, "Cache format: %v\n", domain.SchemaVersion)
	if commit != "" {
		fmt.Fprintf(w, "Commit: %v\n", commit)
	}
	if date != "" {
		fmt.Fprintf(w, "Build Date: %v\n", date)
	}
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
