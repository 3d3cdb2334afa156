package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/varoOP/shotsort/internal/app"
	"github.com/varoOP/shotsort/internal/domain"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent moves from the move journal",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetUint64("limit")

		application, err := app.NewApp()
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}

		moves, err := application.History(cmd.Context(), limit)
		if err != nil {
			return fmt.Errorf("history failed: %w", err)
		}

		if len(moves) == 0 {
			fmt.Println("No moves recorded.")
			return nil
		}
		fmt.Println(historyTable(moves))
		return nil
	},
}

func historyTable(moves []domain.MoveRecord) string {
	rows := make([][]string, 0, len(moves))
	for _, m := range moves {
		rows = append(rows, []string{
			m.MovedAt.Local().Format(time.DateTime), m.AppID, m.Name, m.Source, m.Destination,
		})
	}
	return renderTable([]string{"Time", "App ID", "Name", "Source", "Destination"}, rows)
}

func init() {
	historyCmd.Flags().Uint64("limit", 50, "number of moves to show, 0 for all")
	rootCmd.AddCommand(historyCmd)
}
