package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/varoOP/shotsort/internal/app"
	"github.com/varoOP/shotsort/internal/domain"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Sort the screenshots in the scan directory",
	Long: `Run scans --dir for screenshot files, extracts the Steam app ID from
each file name and moves the files into a folder named after the game:
1. Loads the name cache (knownNames.json)
2. Looks up names the cache does not know yet on the Steam store
3. Moves every screenshot into its game folder
4. Saves the cache

Names that cannot be found fall back to the app ID itself. Use --offline
to skip all lookups and --json to only update the cache.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Initialize application
		application, err := app.NewApp()
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}

		if err := application.Run(cmd.Context()); err != nil {
			return fmt.Errorf("run failed: %w", err)
		}

		return nil
	},
}

func init() {
	runCmd.Flags().StringP("pattern", "p", domain.DefaultPattern, "regular expression whose first capture group is the app ID")
	runCmd.Flags().Bool("offline", false, "do not look up names, use the app ID as folder name")
	runCmd.Flags().BoolP("quiet", "q", false, "do not log created folders and moved files")
	runCmd.Flags().BoolP("json", "j", false, "only update the name cache, do not move files")

	bindFlags(runCmd.Flags(), map[string]string{
		"pattern":   "pattern",
		"offline":   "offline",
		"quiet":     "quiet",
		"json_only": "json",
	})

	rootCmd.AddCommand(runCmd)
}
