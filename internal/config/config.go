package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultBackupDir  = "backups"
	DefaultMaxBackups = 100

	BackupPrefix = "backup_"
	BackupSuffix = ".json"
	LatestFile   = "latest_backup.json"
	MarkerFile   = ".privacy_verified"

	// TimestampLayout names snapshot files with second resolution.
	TimestampLayout = "20060102_150405"

	RequestTimeout = 30 * time.Second
)

// Config carries all environment-derived settings. It is built once at
// startup and passed to components; never mutated afterwards.
type Config struct {
	BaseURL         string
	Username        string
	Password        string
	BackupDir       string
	MaxBackups      int
	ChangeDetection bool
	GithubToken     string
	GithubRepo      string
}

// Load reads configuration from the environment. BACKUP_URL,
// BACKUP_USERNAME and BACKUP_PASSWORD are required; the GitHub credentials
// are validated later by the privacy gate so `check` can run without the
// admin API settings.
func Load() (*Config, error) {
	cfg := &Config{
		BaseURL:         os.Getenv("BACKUP_URL"),
		Username:        os.Getenv("BACKUP_USERNAME"),
		Password:        os.Getenv("BACKUP_PASSWORD"),
		GithubToken:     os.Getenv("GITHUB_TOKEN"),
		GithubRepo:      os.Getenv("GITHUB_REPOSITORY"),
		BackupDir:       BackupDir(),
		MaxBackups:      MaxBackups(),
		ChangeDetection: true,
	}

	var missing []string
	for _, v := range []struct{ name, val string }{
		{"BACKUP_URL", cfg.BaseURL},
		{"BACKUP_USERNAME", cfg.Username},
		{"BACKUP_PASSWORD", cfg.Password},
	} {
		if v.val == "" {
			missing = append(missing, v.name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	if raw := strings.TrimSpace(os.Getenv("ENABLE_CHANGE_DETECTION")); raw != "" {
		cfg.ChangeDetection = isTruthy(raw)
	}

	return cfg, nil
}

// BackupDir returns the backup directory without requiring full
// configuration, so read-only commands can locate the store.
func BackupDir() string {
	if dir := os.Getenv("BACKUP_DIR"); dir != "" {
		return dir
	}
	return DefaultBackupDir
}

// MaxBackups returns the retention limit from MAX_BACKUPS. Invalid values
// fall back to the default with a warning.
func MaxBackups() int {
	raw := strings.TrimSpace(os.Getenv("MAX_BACKUPS"))
	if raw == "" {
		return DefaultMaxBackups
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		slog.Warn("invalid MAX_BACKUPS, using default", "value", raw, "default", DefaultMaxBackups)
		return DefaultMaxBackups
	}
	return n
}

// isTruthy reports whether s is one of the accepted truthy tokens.
func isTruthy(s string) bool {
	switch strings.ToLower(s) {
	case "true", "1", "yes", "on":
		return true
	}
	return false
}
