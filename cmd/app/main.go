package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/spf13/cobra"

	"github.com/arumata/snapdir/internal/adapters/loghandler"
	"github.com/arumata/snapdir/internal/app"
	"github.com/arumata/snapdir/internal/usecase"
)

func main() {
	os.Exit(runMain())
}

func runMain() int {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer stop()

	cmd, exitCode := newRootCmd(ctx, app.NewDefaultDependencies)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitUsageError
	}
	return *exitCode
}

// cliEnv bundles the runtime state shared by all commands. The ledger
// lives here so the interactive loop accumulates history across
// operations within one process.
type cliEnv struct {
	cfg     *usecase.Config
	deps    *usecase.Dependencies
	ledger  *usecase.Ledger
	logger  *slog.Logger
	cleanup func()
}

type envFactory func(ctx context.Context, verbose bool, hashOverride string) (*cliEnv, error)

func newRootCmd(ctx context.Context, depsFactory func(*slog.Logger) *usecase.Dependencies) (*cobra.Command, *int) {
	exitCode := 0
	var verbose bool
	var hashOverride string

	newEnv := func(ctx context.Context, verbose bool, hashOverride string) (*cliEnv, error) {
		return initCLIEnv(ctx, depsFactory, verbose, hashOverride)
	}

	cmd := &cobra.Command{
		Use:           "snapdir",
		Short:         "Directory backup with hard-linked incremental snapshots",
		SilenceUsage:  false,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			exitCode = runInteractive(ctx, cmd, newEnv, verbose, hashOverride)
		},
	}
	cmd.SetErr(os.Stderr)

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&hashOverride, "hash", "", "content hash algorithm (md5, sha256, xxh3)")

	cmd.AddCommand(newFullCmd(ctx, newEnv, &exitCode, &verbose, &hashOverride))
	cmd.AddCommand(newIncrementalCmd(ctx, newEnv, &exitCode, &verbose, &hashOverride))
	cmd.AddCommand(newHistoryCmd(ctx, newEnv, &exitCode, &verbose, &hashOverride))
	cmd.AddCommand(newWatchCmd(ctx, newEnv, &exitCode, &verbose, &hashOverride))
	cmd.AddCommand(newScheduleCmd(ctx, newEnv, &exitCode, &verbose, &hashOverride))
	cmd.AddCommand(newVersionCmd())

	return cmd, &exitCode
}

func initCLIEnv(
	ctx context.Context,
	depsFactory func(*slog.Logger) *usecase.Dependencies,
	verbose bool,
	hashOverride string,
) (*cliEnv, error) {
	logger := setupLogger(verbose)
	deps := depsFactory(logger)

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home dir: %v: %w", err, usecase.ErrCritical)
	}
	configFile, err := loadConfigFile(ctx, deps, homeDir)
	if err != nil {
		return nil, err
	}
	cfg, err := usecase.RuntimeConfigFromFile(configFile, homeDir)
	if err != nil {
		return nil, err
	}
	cfg.Verbose = verbose
	if strings.TrimSpace(hashOverride) != "" {
		cfg.Hash = strings.TrimSpace(hashOverride)
	}

	logger, cleanup := withFileLogging(logger, configFile.Logging, verbose)
	return &cliEnv{
		cfg:     cfg,
		deps:    deps,
		ledger:  usecase.NewLedger(),
		logger:  logger,
		cleanup: cleanup,
	}, nil
}

func loadConfigFile(
	ctx context.Context,
	deps *usecase.Dependencies,
	homeDir string,
) (usecase.ConfigFile, error) {
	if deps == nil || deps.Config == nil || deps.FileSystem == nil {
		return usecase.ConfigFile{}, fmt.Errorf("dependencies not available: %w", usecase.ErrCritical)
	}
	configPath := filepath.Join(homeDir, ".config", "snapdir", "config.toml")
	info, err := deps.FileSystem.Stat(ctx, configPath)
	if err == nil && info != nil && info.IsDir() {
		return usecase.ConfigFile{}, fmt.Errorf("config path is a directory: %w", usecase.ErrUsage)
	}
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return usecase.ConfigFile{}, fmt.Errorf("stat config: %w", usecase.ErrCritical)
	}
	cfg, err := deps.Config.Load(ctx, configPath)
	if err != nil {
		return usecase.ConfigFile{}, fmt.Errorf("load config: %w", usecase.ErrCritical)
	}
	return cfg, nil
}

func mapExitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	switch {
	case errors.Is(err, usecase.ErrUsage):
		return exitUsageError
	case errors.Is(err, usecase.ErrSourceMissing):
		return exitUsageError
	case errors.Is(err, usecase.ErrInterrupted):
		return exitInterrupted
	default:
		return exitCriticalError
	}
}

func setupLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := loghandler.NewHandler(os.Stderr, &loghandler.Options{
		Level:    level,
		UseColor: shouldUseColor(os.Stderr),
	})
	return slog.New(handler)
}

func withFileLogging(
	logger *slog.Logger,
	logCfg usecase.LoggingConfig,
	verbose bool,
) (*slog.Logger, func()) {
	dir := strings.TrimSpace(logCfg.Dir)
	if dir == "" {
		return logger, func() {}
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		logger.Warn("Cannot resolve home dir for log file", "error", err)
		return logger, func() {}
	}
	expanded := usecase.ExpandHomeDirPublic(dir, homeDir)
	if err := os.MkdirAll(expanded, 0o750); err != nil {
		logger.Warn("Cannot create log directory", "path", expanded, "error", err)
		return logger, func() {}
	}
	filename := "snapdir-" + time.Now().Format("2006-01-02") + ".log"
	logPath := filepath.Join(expanded, filename)

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) //nolint:gosec // path from config
	if err != nil {
		logger.Warn("Cannot open log file", "path", logPath, "error", err)
		return logger, func() {}
	}

	fileLevel := parseLogLevel(logCfg.Level)
	if verbose && fileLevel > slog.LevelDebug {
		fileLevel = slog.LevelDebug
	}
	fileHandler := loghandler.NewHandler(f, &loghandler.Options{
		Level:    fileLevel,
		UseColor: false,
	})

	combined := loghandler.NewMultiHandler(logger.Handler(), fileHandler)
	return slog.New(combined), func() { _ = f.Close() }
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func shouldUseColor(f *os.File) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
