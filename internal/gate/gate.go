package gate

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/keshon/cfgbak/internal/config"
	"github.com/keshon/cfgbak/internal/fs"
)

var (
	// ErrMissingCredentials blocks a run before any network call.
	ErrMissingCredentials = errors.New("GITHUB_TOKEN and GITHUB_REPOSITORY are both required for the privacy check")

	// ErrRepoNotFound covers both a missing repository and a token
	// without access; the API does not distinguish them.
	ErrRepoNotFound = errors.New("repository not found or inaccessible")

	// ErrNotPrivate is the one verdict that means "insecure" rather
	// than "misconfigured".
	ErrNotPrivate = errors.New("repository is public")
)

// Gate verifies that the target repository is private before any backup
// work happens. It fails closed: every ambiguity blocks the run.
type Gate struct {
	Token      string
	Repository string // owner/repo
	APIBase    string
	Dir        string // backup dir, holds the advisory marker file
	Client     *http.Client
	FS         fs.FS

	// Log, when set, replaces the default logger so all lines of one
	// backup run share the same attributes.
	Log *slog.Logger
}

func (g *Gate) logger() *slog.Logger {
	if g.Log != nil {
		return g.Log
	}
	return slog.Default()
}

func New(token, repository, dir string, fsys fs.FS) *Gate {
	return &Gate{
		Token:      token,
		Repository: repository,
		APIBase:    "https://api.github.com",
		Dir:        dir,
		Client:     &http.Client{Timeout: config.RequestTimeout},
		FS:         fsys,
	}
}

// Evaluate queries the live repository metadata and returns nil only when
// the repository is confirmed private. The advisory marker file written on
// the first pass is never read back to skip the query; every run asks the
// API again.
func (g *Gate) Evaluate() error {
	log := g.logger()

	if g.Token == "" || g.Repository == "" {
		log.Error("privacy check failed: missing credentials",
			"required", "GITHUB_TOKEN, GITHUB_REPOSITORY")
		return ErrMissingCredentials
	}

	log.Info("checking repository privacy", "repository", g.Repository)

	req, err := http.NewRequest(http.MethodGet, g.APIBase+"/repos/"+g.Repository, nil)
	if err != nil {
		return fmt.Errorf("build privacy check request: %w", err)
	}
	req.Header.Set("Authorization", "token "+g.Token)
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", "Backup-Security-Check/1.0")

	resp, err := g.Client.Do(req)
	if err != nil {
		return fmt.Errorf("privacy check request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read privacy check response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrRepoNotFound
	case resp.StatusCode != http.StatusOK:
		log.Error("github api request failed",
			"status", resp.StatusCode, "body", truncate(body, 500))
		return fmt.Errorf("github api returned status %d", resp.StatusCode)
	}

	var meta struct {
		Private bool `json:"private"`
	}
	if err := json.Unmarshal(body, &meta); err != nil {
		return fmt.Errorf("parse repository metadata: %w", err)
	}

	if !meta.Private {
		g.logRemediation()
		return ErrNotPrivate
	}

	log.Info("privacy check passed: repository is private")
	g.writeMarker()
	return nil
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		b = b[:n]
	}
	return string(b)
}

// logRemediation tells the operator how to fix a public repository.
func (g *Gate) logRemediation() {
	log := g.logger()
	log.Error("repository is PUBLIC: backups contain sensitive data that would be exposed to anyone")
	log.Error("to protect your data:")
	log.Error("  1. open https://github.com/" + g.Repository + "/settings")
	log.Error("  2. scroll to the Danger Zone section")
	log.Error("  3. choose 'Change repository visibility' and make the repository private")
	log.Error("then re-run the backup; this check is mandatory and cannot be disabled")
}

// writeMarker records the first successful confirmation for operator
// visibility. Advisory only.
func (g *Gate) writeMarker() {
	log := g.logger()
	path := filepath.Join(g.Dir, config.MarkerFile)
	if g.FS.Exists(path) {
		return
	}
	if err := g.FS.MkdirAll(g.Dir, 0o755); err != nil {
		log.Warn("cannot create backup dir for privacy marker", "error", err)
		return
	}
	content := fmt.Sprintf("Privacy check passed at: %s\nRepository: %s\nStatus: Private\n",
		time.Now().Format(time.RFC3339), g.Repository)
	if err := g.FS.WriteFile(path, []byte(content), 0o644); err != nil {
		log.Warn("cannot write privacy marker file", "error", err)
		return
	}
	log.Info("first privacy check passed, marker file created", "file", path)
}
