package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/arumata/snapdir/internal/usecase"
)

func newIncrementalCmd(ctx context.Context, newEnv envFactory, exitCode *int, verbose *bool, hash *string) *cobra.Command {
	return &cobra.Command{
		Use:     "incremental <source> [backup-root]",
		Aliases: []string{"incr"},
		Short:   "Create an incremental snapshot against the latest backup",
		Args:    cobra.RangeArgs(1, 2),
		Run: func(cmd *cobra.Command, args []string) {
			env, err := newEnv(ctx, *verbose, *hash)
			if err != nil {
				handleCmdError(exitCode, err)
				return
			}
			defer env.cleanup()

			if err := resolveTargets(env, args); err != nil {
				handleCmdError(exitCode, err)
				return
			}
			_, err = usecase.IncrementalBackup(ctx, env.cfg, env.deps, env.ledger, env.logger)
			handleCmdError(exitCode, err)
		},
	}
}
