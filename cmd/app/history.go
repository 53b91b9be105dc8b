package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arumata/snapdir/internal/usecase"
)

// The history subcommand prints the on-disk audit trail verbatim. The
// engine itself never parses that file back; session records live only
// in memory and are shown by the interactive menu.
func newHistoryCmd(ctx context.Context, newEnv envFactory, exitCode *int, verbose *bool, hash *string) *cobra.Command {
	return &cobra.Command{
		Use:   "history [backup-root]",
		Short: "Print the backup history ledger of a backup root",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			env, err := newEnv(ctx, *verbose, *hash)
			if err != nil {
				handleCmdError(exitCode, err)
				return
			}
			defer env.cleanup()

			root := env.cfg.BackupDir
			if len(args) > 0 {
				root = args[0]
			}
			if root == "" {
				handleCmdError(exitCode, fmt.Errorf(
					"backup root required: pass it as an argument or set backup.base_dir: %w", usecase.ErrUsage))
				return
			}

			path := env.deps.FileSystem.Join(root, usecase.HistoryFileName)
			data, err := env.deps.FileSystem.ReadFile(ctx, path)
			if err != nil {
				if env.deps.FileSystem.IsNotExist(err) {
					fmt.Fprintln(cmd.OutOrStdout(), "no backup history found")
					*exitCode = exitSuccess
					return
				}
				handleCmdError(exitCode, fmt.Errorf("read history: %v: %w", err, usecase.ErrCritical))
				return
			}
			fmt.Fprint(cmd.OutOrStdout(), string(data))
			*exitCode = exitSuccess
		},
	}
}
