package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"aax2mp3/internal/authcode"
	"aax2mp3/internal/media/book"
	"aax2mp3/internal/media/ffprobe"
)

func newProbeCommand(ctx *commandContext) *cobra.Command {
	var authcodeFlag string

	cmd := &cobra.Command{
		Use:   "probe <input>",
		Short: "Show the chapters and tags of an AAX file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			code, _, err := authcode.Resolve(authcodeFlag, cfg.Auth.Authcode)
			if err != nil {
				return err
			}

			result, err := ffprobe.Inspect(cmd.Context(), cfg.Tools.FFprobe, code, args[0])
			if err != nil {
				return err
			}
			b, err := book.FromProbe(result)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				table.Row{"Tag", "Value"},
				[]table.Row{
					{"Title", b.Meta.Title},
					{"Author", b.Meta.Author},
					{"Date", b.Meta.Date},
					{"Genre", b.Meta.Genre},
					{"Duration", formatClock(b.Meta.Duration)},
					{"Bitrate", fmt.Sprintf("%d b/s", b.Meta.BitRate)},
					{"Chapters", len(b.Chapters)},
				},
			))

			if len(b.Chapters) == 0 {
				fmt.Fprintln(out, "No chapters found.")
				return nil
			}
			rows := make([]table.Row, 0, len(b.Chapters))
			for _, ch := range b.Chapters {
				rows = append(rows, table.Row{
					ch.Index, ch.Title, formatClock(ch.Start), formatClock(ch.End),
				})
			}
			fmt.Fprintln(out, renderTable(table.Row{"#", "Chapter", "Start", "End"}, rows, 1, 3, 4))
			return nil
		},
	}

	cmd.Flags().StringVarP(&authcodeFlag, "authcode", "a", "", "Audible activation bytes (hex)")
	return cmd
}
