package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/arumata/snapdir/internal/usecase"
)

// Adapter implements ConfigPort using TOML files on disk.
type Adapter struct {
	logger *slog.Logger
}

// New creates a new config adapter.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		panic("config adapter requires logger")
	}
	return &Adapter{logger: logger}
}

// Load reads config from path or returns defaults when file is missing.
func (a *Adapter) Load(ctx context.Context, path string) (usecase.ConfigFile, error) {
	_ = ctx
	if strings.TrimSpace(path) == "" {
		return usecase.ConfigFile{}, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path) // #nosec G304 - path is controlled by usecase
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return usecase.DefaultConfigFile(), nil
		}
		return usecase.ConfigFile{}, err
	}

	cfg := usecase.DefaultConfigFile()
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return usecase.ConfigFile{}, fmt.Errorf("parse config toml: %w", err)
	}

	return cfg, nil
}

// Save writes config to path in TOML format with inline documentation.
func (a *Adapter) Save(ctx context.Context, path string, cfg usecase.ConfigFile) error {
	_ = ctx
	if strings.TrimSpace(path) == "" {
		return errors.New("config path is empty")
	}

	content := renderCommentedTOML(cfg)

	// #nosec G306 G304 - config is not secret, path is controlled by usecase.
	return os.WriteFile(path, []byte(content), 0o644)
}

func renderCommentedTOML(cfg usecase.ConfigFile) string {
	return fmt.Sprintf(`# snapdir configuration

[backup]

# Default backup root for snapshots.
# Supports ~, $HOME, ${HOME}.
base_dir = %[1]q

# Content hash used for change detection: md5, sha256 or xxh3.
# md5 stays compatible with snapshots written by earlier releases.
hash = %[2]q

[logging]

# Log directory. Supports ~, $HOME, ${HOME}. Created automatically.
dir = %[3]q

# Minimum log level: debug, info, warn, error.
level = %[4]q

[watch]

# Quiet period before a watched source change triggers an incremental
# backup, in seconds.
debounce_seconds = %[5]d
`,
		cfg.Backup.BaseDir,
		cfg.Backup.Hash,
		cfg.Logging.Dir,
		cfg.Logging.Level,
		cfg.Watch.DebounceSeconds,
	)
}
