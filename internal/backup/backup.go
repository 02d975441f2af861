package backup

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/juju/clock"

	"github.com/keshon/cfgbak/internal/config"
	"github.com/keshon/cfgbak/internal/detect"
	"github.com/keshon/cfgbak/internal/fetch"
	"github.com/keshon/cfgbak/internal/fs"
	"github.com/keshon/cfgbak/internal/gate"
	"github.com/keshon/cfgbak/internal/store"
)

// Fetcher downloads the remote payload.
type Fetcher interface {
	Fetch() (any, error)
}

// Gater evaluates the privacy precondition.
type Gater interface {
	Evaluate() error
}

// Manager sequences a full backup run: privacy gate, download, change
// detection, snapshot write, retention pruning.
type Manager struct {
	Config   *config.Config
	Store    *store.Store
	Detector *detect.Detector
	Gate     Gater
	Fetcher  Fetcher
	Log      *slog.Logger
}

// New wires the production components for one run. Every component shares
// the run-tagged logger so a single run's lines are correlatable.
func New(cfg *config.Config) *Manager {
	log := slog.Default().With("run", uuid.NewString()[:8])

	fsys := fs.NewOSFS()
	st := store.New(cfg.BackupDir, fsys, clock.WallClock)
	st.Log = log

	g := gate.New(cfg.GithubToken, cfg.GithubRepo, cfg.BackupDir, fsys)
	g.Log = log

	f := fetch.New(cfg)
	f.Log = log

	return &Manager{
		Config:   cfg,
		Store:    st,
		Detector: &detect.Detector{Store: st, Log: log},
		Gate:     g,
		Fetcher:  f,
		Log:      log,
	}
}

// Run executes one full backup cycle. The gate goes first; nothing is
// fetched on a blocked run.
func (m *Manager) Run() error {
	if err := m.Gate.Evaluate(); err != nil {
		return fmt.Errorf("privacy check failed: %w", err)
	}

	payload, err := m.Fetcher.Fetch()
	if err != nil {
		return err
	}

	if m.Config.ChangeDetection && !m.Detector.Changed(payload) {
		m.Log.Info("backup skipped, data unchanged")
		return nil
	}
	if !m.Config.ChangeDetection {
		m.Log.Info("change detection disabled, saving unconditionally")
	}

	path, err := m.Store.Write(payload)
	if err != nil {
		return err
	}
	m.Log.Info("backup saved", "file", path)

	if _, err := m.Store.Prune(m.Config.MaxBackups); err != nil {
		m.Log.Warn("pruning old backups failed", "error", err)
	}

	return nil
}
