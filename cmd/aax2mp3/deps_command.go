package main

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"aax2mp3/internal/deps"
)

func newDepsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Check the external tools the converter shells out to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			statuses := deps.CheckBinaries(deps.ForConversion(ctx.binaries(cfg), "mp3", true))
			rows := make([]table.Row, 0, len(statuses))
			for _, status := range statuses {
				state := "ok"
				if !status.Available {
					state = status.Detail
				}
				rows = append(rows, table.Row{
					status.Name, status.Command, state, status.Description,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				table.Row{"Tool", "Command", "Status", "Purpose"}, rows,
			))

			if missing := deps.Missing(statuses); len(missing) > 0 {
				return fmt.Errorf("missing required tools: %s", strings.Join(missing, ", "))
			}
			return nil
		},
	}
}
