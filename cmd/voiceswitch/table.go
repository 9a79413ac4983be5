package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"voiceswitch/internal/api"
	"voiceswitch/internal/backup"
)

// column describes one table column over rows of type T.
type column[T any] struct {
	header string
	right  bool
	value  func(T) string
}

func renderColumns[T any](columns []column[T], rows []T) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(columns))
	configs := make([]table.ColumnConfig, len(columns))
	for i, col := range columns {
		header[i] = col.header
		align := text.AlignLeft
		if col.right {
			align = text.AlignRight
		}
		configs[i] = table.ColumnConfig{Number: i + 1, Align: align, AlignHeader: text.AlignLeft}
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)

	for _, item := range rows {
		row := make(table.Row, len(columns))
		for i, col := range columns {
			row[i] = col.value(item)
		}
		tw.AppendRow(row)
	}
	return tw.Render()
}

var languageColumns = []column[api.LanguageInfo]{
	{header: "Code", value: func(l api.LanguageInfo) string { return l.Code }},
	{header: "Language", value: func(l api.LanguageInfo) string { return l.Name }},
	{header: "Native", value: func(l api.LanguageInfo) string { return l.NativeName }},
	{header: "Launch option", value: func(l api.LanguageInfo) string { return l.LaunchOption }},
	{header: "Captured", value: func(l api.LanguageInfo) string { return yesNo(l.HasBackup) }},
}

var backupColumns = []column[api.BackupView]{
	{header: "Code", value: func(b api.BackupView) string { return b.Code }},
	{header: "Language", value: func(b api.BackupView) string { return b.Label }},
	{header: "Build", value: func(b api.BackupView) string {
		if b.BuildID == "" {
			return "unknown"
		}
		return b.BuildID
	}},
	{header: "Folders", right: true, value: func(b api.BackupView) string { return strconv.Itoa(len(b.Folders)) }},
	{header: "Files", right: true, value: func(b api.BackupView) string { return strconv.Itoa(len(b.Files)) }},
	{header: "Compatible", value: func(b api.BackupView) string { return yesNo(b.Compatible) }},
}

var snapshotColumns = []column[backup.SnapshotSummary]{
	{header: "Code", value: func(s backup.SnapshotSummary) string { return s.Code }},
	{header: "Size", right: true, value: func(s backup.SnapshotSummary) string { return humanBytes(s.SizeBytes) }},
	{header: "Files", right: true, value: func(s backup.SnapshotSummary) string { return strconv.Itoa(s.FileCount) }},
	{header: "Captured", value: func(s backup.SnapshotSummary) string {
		if s.CapturedAt.IsZero() {
			return "-"
		}
		return s.CapturedAt.Local().Format(time.DateTime)
	}},
}

func humanBytes(v int64) string {
	const unit = 1024
	if v < unit {
		return fmt.Sprintf("%d B", v)
	}
	div := int64(unit)
	exp := 0
	for n := v / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(v)/float64(div), "KMGTPE"[exp])
}
