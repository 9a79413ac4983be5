package main

import (
	"context"

	"github.com/spf13/cobra"

	"voiceswitch/internal/api"
)

type switchAction struct {
	use   string
	short string
	label string
	run   func(svc *api.Service, ctx context.Context, req api.Request) (api.Outcome, error)
}

func newSwitchCommands(ctx *commandContext) []*cobra.Command {
	actions := []switchAction{
		{
			use:   "capture <code>",
			short: "Snapshot a language's voice files from the game directory",
			label: "Capture",
			run:   (*api.Service).Capture,
		},
		{
			use:   "activate <code>",
			short: "Link a captured language into the game directory",
			label: "Activate",
			run:   (*api.Service).Activate,
		},
		{
			use:   "deactivate <code>",
			short: "Remove a language's links and control files from the game directory",
			label: "Deactivate",
			run:   (*api.Service).Deactivate,
		},
	}
	cmds := make([]*cobra.Command, 0, len(actions)+1)
	for _, action := range actions {
		cmds = append(cmds, newSwitchCommand(ctx, action))
	}
	cmds = append(cmds, newRemoveCommand(ctx))
	return cmds
}

func newSwitchCommand(ctx *commandContext, action switchAction) *cobra.Command {
	var root string
	cmd := &cobra.Command{
		Use:   action.use,
		Short: action.short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.ensureService()
			if err != nil {
				return err
			}
			reqCtx := ctx.requestContext(cmd)
			var out api.Outcome
			var runErr error
			lockErr := ctx.withLock(reqCtx, func() error {
				out, runErr = action.run(svc, reqCtx, api.Request{Code: args[0], Root: root})
				return nil
			})
			if lockErr != nil {
				return lockErr
			}
			return ctx.emitOutcome(cmd, action.label, out, runErr)
		},
	}
	cmd.Flags().StringVar(&root, "root", "", "Directory to operate on (defaults to --game-dir, config, then detection)")
	return cmd
}

func newRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <code>",
		Short: "Delete a language's stored snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.ensureService()
			if err != nil {
				return err
			}
			reqCtx := ctx.requestContext(cmd)
			var out api.Outcome
			var runErr error
			lockErr := ctx.withLock(reqCtx, func() error {
				out, runErr = svc.RemoveBackup(reqCtx, args[0])
				return nil
			})
			if lockErr != nil {
				return lockErr
			}
			return ctx.emitOutcome(cmd, "Remove", out, runErr)
		},
	}
}
