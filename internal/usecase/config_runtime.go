package usecase

import (
	"fmt"
	"strings"
)

// RuntimeConfigFromFile converts TOML config into runtime config for backup execution.
func RuntimeConfigFromFile(cfg ConfigFile, homeDir string) (*Config, error) {
	cleanHome := strings.TrimSpace(homeDir)
	if cleanHome == "" {
		return nil, fmt.Errorf("home directory is empty: %w", ErrCritical)
	}

	baseDir := strings.TrimSpace(cfg.Backup.BaseDir)
	if baseDir != "" {
		baseDir = expandHomeDir(baseDir, cleanHome)
	}

	algo := strings.TrimSpace(cfg.Backup.Hash)
	if algo == "" {
		algo = DefaultHash
	}
	if _, err := newDigester(algo); err != nil {
		return nil, err
	}

	debounce := cfg.Watch.DebounceSeconds
	if debounce <= 0 {
		debounce = DefaultConfigFile().Watch.DebounceSeconds
	}

	return &Config{
		BackupDir:       baseDir,
		Hash:            algo,
		DebounceSeconds: debounce,
	}, nil
}

// ExpandHomeDirPublic exposes home-directory expansion for callers outside the package.
func ExpandHomeDirPublic(path, homeDir string) string {
	return expandHomeDir(path, homeDir)
}

func expandHomeDir(path, homeDir string) string {
	clean := strings.TrimSpace(path)
	if clean == "" {
		return clean
	}
	home := strings.TrimRight(homeDir, "/")
	for _, prefix := range []string{"~", "$HOME", "${HOME}"} {
		if clean == prefix {
			return homeDir
		}
		if strings.HasPrefix(clean, prefix+"/") {
			return home + clean[len(prefix):]
		}
	}
	return clean
}
