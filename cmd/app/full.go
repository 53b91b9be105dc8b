package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arumata/snapdir/internal/usecase"
)

func newFullCmd(ctx context.Context, newEnv envFactory, exitCode *int, verbose *bool, hash *string) *cobra.Command {
	return &cobra.Command{
		Use:   "full <source> [backup-root]",
		Short: "Create a full snapshot of a directory tree",
		Args:  cobra.RangeArgs(1, 2),
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
			_, err = usecase.FullBackup(ctx, env.cfg, env.deps, env.ledger, env.logger)
			handleCmdError(exitCode, err)
		},
	}
}

// resolveTargets fills source and backup-root from positional args,
// falling back to the configured backup.base_dir for the root.
func resolveTargets(env *cliEnv, args []string) error {
	env.cfg.SourceDir = args[0]
	if len(args) > 1 {
		env.cfg.BackupDir = args[1]
	}
	if env.cfg.BackupDir == "" {
		return fmt.Errorf("backup root required: pass it as an argument or set backup.base_dir: %w", usecase.ErrUsage)
	}
	return nil
}
