package usecase

// ConfigFile describes TOML configuration structure.
type ConfigFile struct {
	Backup  BackupConfig  `toml:"backup"`
	Logging LoggingConfig `toml:"logging"`
	Watch   WatchConfig   `toml:"watch"`
}

// BackupConfig holds backup-related settings.
type BackupConfig struct {
	BaseDir string `toml:"base_dir"`
	Hash    string `toml:"hash"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Dir   string `toml:"dir"`
	Level string `toml:"level"`
}

// WatchConfig holds watch-mode settings.
type WatchConfig struct {
	DebounceSeconds int `toml:"debounce_seconds"`
}

// SuggestedBackupDir is the recommended default for backup.base_dir.
const SuggestedBackupDir = "~/.local/share/snapdir/backups"

// DefaultConfigFile returns default TOML configuration.
func DefaultConfigFile() ConfigFile {
	return ConfigFile{
		Backup: BackupConfig{
			BaseDir: "",
			Hash:    DefaultHash,
		},
		Logging: LoggingConfig{
			Dir:   "~/.local/state/snapdir/logs",
			Level: "info",
		},
		Watch: WatchConfig{
			DebounceSeconds: 2,
		},
	}
}
