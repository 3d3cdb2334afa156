package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/varoOP/shotsort/internal/app"
)

var repairCmd = &cobra.Command{
	Use:   "repair-cache",
	Short: "Merge a cache file holding several appended documents",
	Long: `Older releases appended a new JSON document to the name cache on every
run instead of rewriting it, leaving a file that cannot be parsed.
This command merges all readable documents, later ones winning, and writes
back a single current-version cache. The original file is kept with a
.bak suffix.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := app.NewApp()
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}

		res, err := application.RepairCache(cmd.Context())
		if err != nil {
			return fmt.Errorf("repair failed: %w", err)
		}

		fmt.Printf("\n✓ Cache repair complete!\n")
		fmt.Printf("  Documents merged: %d\n", res.Documents)
		if res.Skipped > 0 {
			fmt.Printf("  Documents skipped: %d\n", res.Skipped)
		}
		if res.Truncated {
			fmt.Printf("  Unreadable trailing data was dropped.\n")
		}
		fmt.Printf("  Entries: %d\n", res.Entries)
		fmt.Printf("  Backup (%s) can be kept or removed.\n\n", res.BackupPath)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(repairCmd)
}
