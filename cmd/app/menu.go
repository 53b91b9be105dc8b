package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/arumata/snapdir/internal/usecase"
)

// runInteractive is the menu loop the root command drops into when no
// subcommand is given. It keeps one ledger for the whole session, so
// "show history" reflects the backups made since the process started.
func runInteractive(ctx context.Context, cmd *cobra.Command, newEnv envFactory, verbose bool, hash string) int {
	in := cmd.InOrStdin()
	out := cmd.OutOrStdout()

	if f, ok := in.(*os.File); ok && !term.IsTerminal(int(f.Fd())) && os.Getenv("SNAPDIR_FORCE_INTERACTIVE") == "" {
		fmt.Fprintln(os.Stderr, "no subcommand given and stdin is not a terminal (see: snapdir --help)")
		return exitUsageError
	}

	env, err := newEnv(ctx, verbose, hash)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return mapExitCode(err)
	}
	defer env.cleanup()

	reader := bufio.NewReader(in)
	code := exitSuccess

	for {
		if ctx.Err() != nil {
			return exitInterrupted
		}

		fmt.Fprint(out, "\n=== snapdir ===\n"+
			"1. full backup\n"+
			"2. incremental backup\n"+
			"3. show history\n"+
			"4. exit\n"+
			"choose (1-4): ")

		choice, err := readLine(reader)
		if err != nil {
			// EOF ends the session like choice 4.
			fmt.Fprintln(out)
			return code
		}

		switch choice {
		case "1", "2":
			code = runMenuBackup(ctx, env, reader, out, choice == "2")
		case "3":
			for _, line := range usecase.HistoryLines(env.ledger.List()) {
				fmt.Fprintln(out, line)
			}
		case "4":
			fmt.Fprintln(out, "bye")
			return code
		default:
			fmt.Fprintln(out, "invalid choice, enter 1-4")
		}
	}
}

func runMenuBackup(ctx context.Context, env *cliEnv, reader *bufio.Reader, out io.Writer, incremental bool) int {
	fmt.Fprint(out, "source directory: ")
	source, err := readLine(reader)
	if err != nil || source == "" {
		fmt.Fprintln(out, "source directory is required")
		return exitUsageError
	}

	prompt := "backup root: "
	if env.cfg.BackupDir != "" {
		prompt = fmt.Sprintf("backup root [%s]: ", env.cfg.BackupDir)
	}
	fmt.Fprint(out, prompt)
	root, err := readLine(reader)
	if err == nil && root != "" {
		env.cfg.BackupDir = root
	}
	if env.cfg.BackupDir == "" {
		fmt.Fprintln(out, "backup root is required")
		return exitUsageError
	}
	env.cfg.SourceDir = source

	var opErr error
	if incremental {
		_, opErr = usecase.IncrementalBackup(ctx, env.cfg, env.deps, env.ledger, env.logger)
	} else {
		_, opErr = usecase.FullBackup(ctx, env.cfg, env.deps, env.ledger, env.logger)
	}
	if opErr != nil {
		if errors.Is(opErr, usecase.ErrInterrupted) {
			return exitInterrupted
		}
		fmt.Fprintln(out, opErr)
		return mapExitCode(opErr)
	}
	return exitSuccess
}

func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
