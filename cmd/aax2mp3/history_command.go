package main

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"aax2mp3/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var failedOnly bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List past conversions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := ctx.openHistory(cfg)
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			if store == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "History is disabled (paths.history_db is empty).")
				return nil
			}
			defer store.Close()

			records, err := store.Recent(cmd.Context(), limit, failedOnly)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No conversions recorded.")
				return nil
			}

			rows := make([]table.Row, 0, len(records))
			for _, rec := range records {
				detail := rec.OutputDir
				if rec.Status == history.StatusFailed {
					detail = fmt.Sprintf("%s: %s", rec.Stage, rec.Error)
				}
				rows = append(rows, table.Row{
					rec.FinishedAt.Local().Format(time.DateTime),
					string(rec.Status),
					rec.Title,
					rec.Author,
					rec.Format,
					rec.Chapters,
					detail,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				table.Row{"Finished", "Status", "Title", "Author", "Format", "Chapters", "Detail"},
				rows, 6,
			))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of records to show")
	cmd.Flags().BoolVar(&failedOnly, "failed", false, "Show failed conversions only")
	return cmd
}
