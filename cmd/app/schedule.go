package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/arumata/snapdir/internal/adapters/scheduler"
	"github.com/arumata/snapdir/internal/usecase"
)

func newScheduleCmd(ctx context.Context, newEnv envFactory, exitCode *int, verbose *bool, hash *string) *cobra.Command {
	return &cobra.Command{
		Use:   "schedule <cron-spec> <source> [backup-root]",
		Short: "Run incremental backups on a cron schedule",
		Long: "Runs an incremental backup on the given five-field cron " +
			"schedule (e.g. \"0 2 * * *\" for 02:00 daily) until interrupted.",
		Args: cobra.RangeArgs(2, 3),
		Run: func(cmd *cobra.Command, args []string) {
			env, err := newEnv(ctx, *verbose, *hash)
			if err != nil {
				handleCmdError(exitCode, err)
				return
			}
			defer env.cleanup()

			if err := resolveTargets(env, args[1:]); err != nil {
				handleCmdError(exitCode, err)
				return
			}

			s := scheduler.New(env.logger)
			err = s.Run(ctx, args[0], func() {
				if _, err := usecase.IncrementalBackup(ctx, env.cfg, env.deps, env.ledger, env.logger); err != nil {
					env.logger.Error("backup failed", "error", err)
				}
			})
			if errors.Is(err, context.Canceled) {
				err = nil
			}
			handleCmdError(exitCode, err)
		},
	}
}
