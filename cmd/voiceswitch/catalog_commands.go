package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newLanguagesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List supported voice languages",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.ensureService()
			if err != nil {
				return err
			}
			langs, err := svc.Languages(ctx.requestContext(cmd))
			if err != nil {
				return err
			}
			return ctx.emit(cmd, langs, func(w io.Writer, _ bool) {
				fmt.Fprintln(w, renderColumns(languageColumns, langs))
			})
		},
	}
}

func newListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored snapshots",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.ensureService()
			if err != nil {
				return err
			}
			backups, err := svc.ListBackups(ctx.requestContext(cmd))
			if err != nil {
				return err
			}
			return ctx.emit(cmd, backups, func(w io.Writer, _ bool) {
				if len(backups) == 0 {
					fmt.Fprintln(w, "No snapshots stored")
					return
				}
				fmt.Fprintln(w, renderColumns(backupColumns, backups))
			})
		},
	}
}

func newStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show snapshot disk usage",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.ensureService()
			if err != nil {
				return err
			}
			stats, err := svc.Stats(ctx.requestContext(cmd))
			if err != nil {
				return err
			}
			return ctx.emit(cmd, stats, func(w io.Writer, _ bool) {
				if len(stats.Snapshots) > 0 {
					fmt.Fprintln(w, renderColumns(snapshotColumns, stats.Snapshots))
				} else {
					fmt.Fprintln(w, "No snapshots stored")
				}
				fmt.Fprintf(w, "Total: %s in %s\n", humanBytes(stats.TotalBytes), stats.Root)
				if stats.TotalFSBytes > 0 {
					fmt.Fprintf(w, "Free:  %s of %s (%.0f%%)\n",
						humanBytes(int64(stats.FreeBytes)), humanBytes(int64(stats.TotalFSBytes)), stats.FreeRatio*100)
				}
			})
		},
	}
}
