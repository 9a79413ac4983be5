package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"voiceswitch/internal/api"
	"voiceswitch/internal/steam"
)

type statusReport struct {
	Installation *steam.Installation `json:"installation"`
	GameDir      string              `json:"game_dir"`
	BackupDir    string              `json:"backup_dir"`
	Backups      []api.BackupView    `json:"backups"`
}

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the detected installation and stored snapshots",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			svc, err := ctx.ensureService()
			if err != nil {
				return err
			}
			reqCtx := ctx.requestContext(cmd)
			install, _ := svc.DetectInstallation(reqCtx)
			backups, err := svc.ListBackups(reqCtx)
			if err != nil {
				return err
			}

			report := statusReport{
				Installation: install,
				GameDir:      cfg.Paths.GameDir,
				BackupDir:    cfg.Paths.BackupDir,
				Backups:      backups,
			}
			return ctx.emit(cmd, report, func(w io.Writer, colorize bool) {
				fmt.Fprintln(w, strings.Join(statusLines(report, colorize), "\n"))
			})
		},
	}
}

func statusLines(report statusReport, colorize bool) []string {
	var rows []statusLine
	if install := report.Installation; install != nil {
		rows = append(rows,
			statusLine{label: "Steam", tone: toneOK, tag: "FOUND", message: install.SteamRoot},
			statusLine{label: "Build", tone: toneInfo, message: install.BuildID},
			statusLine{label: "Data path", tone: toneInfo, message: install.DataPath},
		)
	} else {
		rows = append(rows, statusLine{label: "Steam", tone: toneWarn, tag: "MISSING", message: "game not detected"})
	}
	if report.GameDir != "" {
		rows = append(rows, statusLine{label: "Game dir", tone: toneInfo, tag: "OVERRIDE", message: report.GameDir})
	}

	lines := sectionHeader("Installation", colorize)
	for _, row := range rows {
		lines = append(lines, row.render(colorize))
	}
	lines = append(lines, "")
	lines = append(lines, sectionHeader("Snapshots", colorize)...)
	lines = append(lines, statusLine{label: "Backup dir", tone: toneInfo, message: report.BackupDir}.render(colorize))
	if len(report.Backups) == 0 {
		lines = append(lines, statusLine{label: "Stored", tone: toneInfo, message: "none"}.render(colorize))
	}
	for _, b := range report.Backups {
		lines = append(lines, backupLine(b).render(colorize))
	}
	return lines
}
