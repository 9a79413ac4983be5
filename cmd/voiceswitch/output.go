package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"voiceswitch/internal/api"
)

// emit writes v as indented JSON under --json and otherwise hands stdout to
// text.
func (c *commandContext) emit(cmd *cobra.Command, v any, text func(w io.Writer, colorize bool)) error {
	w := cmd.OutOrStdout()
	if c.jsonOutput() {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	text(w, shouldColorize(w))
	return nil
}

// emitOutcome prints out and converts a failure into a reportedError so main
// does not print it a second time.
func (c *commandContext) emitOutcome(cmd *cobra.Command, action string, out api.Outcome, err error) error {
	if emitErr := c.emit(cmd, out, func(w io.Writer, colorize bool) {
		for _, line := range outcomeLines(action, out) {
			fmt.Fprintln(w, line.render(colorize))
		}
	}); emitErr != nil {
		return emitErr
	}
	if err != nil {
		return &reportedError{err: err}
	}
	return nil
}
