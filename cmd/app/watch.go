package main

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/arumata/snapdir/internal/adapters/watch"
	"github.com/arumata/snapdir/internal/usecase"
)

func newWatchCmd(ctx context.Context, newEnv envFactory, exitCode *int, verbose *bool, hash *string) *cobra.Command {
	var debounceSec int

	cmd := &cobra.Command{
		Use:   "watch <source> [backup-root]",
		Short: "Run an incremental backup whenever the source tree changes",
		Long: "Watches the source tree and runs an incremental backup after " +
			"filesystem activity has settled for the debounce interval. " +
			"Runs until interrupted.",
		Args: cobra.RangeArgs(1, 2),
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

			if !cmd.Flags().Changed("debounce") {
				debounceSec = env.cfg.DebounceSeconds
			}
			debounce := time.Duration(debounceSec) * time.Second
			w := watch.New(env.cfg.SourceDir, debounce, env.logger, func() {
				if _, err := usecase.IncrementalBackup(ctx, env.cfg, env.deps, env.ledger, env.logger); err != nil {
					env.logger.Error("backup failed", "error", err)
				}
			})

			err = w.Run(ctx)
			if errors.Is(err, context.Canceled) {
				err = nil
			}
			handleCmdError(exitCode, err)
		},
	}

	cmd.Flags().IntVar(&debounceSec, "debounce", 2, "quiet period in seconds before a backup is triggered")
	return cmd
}
