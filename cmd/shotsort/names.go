package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/varoOP/shotsort/internal/app"
)

var namesCmd = &cobra.Command{
	Use:   "names",
	Short: "Export and import cached game names",
	Long: `Edit the names used for folders. Export the cache to a YAML file,
fix the names of apps the store does not know (mods, non-Steam games),
then import the file and run again.`,
}

var namesExportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Write cached names to a YAML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		unverified, _ := cmd.Flags().GetBool("unverified")

		application, err := app.NewApp()
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}

		n, err := application.ExportNames(cmd.Context(), args[0], unverified)
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		fmt.Printf("Exported %d names to %s\n", n, args[0])
		return nil
	},
}

var namesImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Apply names from a YAML file to the cache",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := app.NewApp()
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}

		n, err := application.ImportNames(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		fmt.Printf("Updated %d names from %s\n", n, args[0])
		return nil
	},
}

func init() {
	namesExportCmd.Flags().Bool("unverified", false, "only export names that were not found on Steam")

	namesCmd.AddCommand(namesExportCmd, namesImportCmd)
	rootCmd.AddCommand(namesCmd)
}
