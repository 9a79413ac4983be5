package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-isatty"

	"voiceswitch/internal/api"
)

type tone int

const (
	toneInfo tone = iota
	toneOK
	toneWarn
	toneError
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

func (t tone) color() string {
	switch t {
	case toneOK:
		return ansiGreen
	case toneWarn:
		return ansiYellow
	case toneError:
		return ansiRed
	default:
		return ansiBlue
	}
}

// statusLine renders as "  Label:          [TAG] message". An empty tag
// drops the brackets.
type statusLine struct {
	label   string
	tone    tone
	tag     string
	message string
}

const labelWidth = 16

func (l statusLine) render(colorize bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "  %-*s", labelWidth, l.label+":")
	if l.tag != "" {
		fmt.Fprintf(&b, " [%s]", l.tag)
	}
	if l.message != "" {
		b.WriteString(" " + l.message)
	}
	if !colorize {
		return b.String()
	}
	return l.tone.color() + b.String() + ansiReset
}

type outcomeStyle struct {
	tag  string
	tone tone
}

// failureStyles gives each outcome kind its own tag. Kinds the user can fix
// by recapturing are warnings; the rest are errors.
var failureStyles = map[string]outcomeStyle{
	"not_found":          {"NOT FOUND", toneError},
	"incomplete":         {"INCOMPLETE", toneWarn},
	"version_mismatch":   {"BUILD MISMATCH", toneWarn},
	"nothing_to_restore": {"EMPTY SNAPSHOT", toneWarn},
	"link_failure":       {"LINK FAILED", toneError},
	"io_failure":         {"IO ERROR", toneError},
}

func outcomeLines(action string, out api.Outcome) []statusLine {
	if out.OK {
		lines := []statusLine{{label: action, tone: toneOK, tag: "OK", message: out.Message}}
		if out.LaunchOption != "" {
			lines = append(lines, statusLine{label: "Launch option", tone: toneInfo, message: out.LaunchOption})
		}
		return lines
	}
	style, ok := failureStyles[out.Kind]
	if !ok {
		style = outcomeStyle{"ERROR", toneError}
	}
	lines := []statusLine{{label: action, tone: style.tone, tag: style.tag, message: out.Message}}
	if out.Hint != "" {
		lines = append(lines, statusLine{label: "Hint", tone: toneInfo, message: out.Hint})
	}
	return lines
}

func backupLine(b api.BackupView) statusLine {
	build := "build " + b.BuildID
	if b.BuildID == "" {
		build = "build unknown"
	}
	if !b.Compatible {
		return statusLine{label: b.Label, tone: toneWarn, tag: "BUILD MISMATCH", message: build + "; recapture before activating"}
	}
	return statusLine{label: b.Label, tone: toneOK, tag: "READY", message: build}
}

func sectionHeader(title string, colorize bool) []string {
	rule := strings.Repeat("─", utf8.RuneCountInString(title))
	if colorize {
		return []string{ansiBlue + title + ansiReset, ansiBlue + rule + ansiReset}
	}
	return []string{title, rule}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
