package store

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/juju/clock"

	"github.com/keshon/cfgbak/internal/config"
	"github.com/keshon/cfgbak/internal/fs"
	"github.com/keshon/cfgbak/internal/util"
)

// Store manages the on-disk snapshot layout: timestamped backup files plus
// the latest pointer used as the change-detection baseline.
type Store struct {
	Dir   string
	FS    fs.FS
	Clock clock.Clock

	// Log, when set, replaces the default logger so all lines of one
	// backup run share the same attributes.
	Log *slog.Logger
}

func New(dir string, fsys fs.FS, clk clock.Clock) *Store {
	return &Store{Dir: dir, FS: fsys, Clock: clk}
}

func (s *Store) logger() *slog.Logger {
	if s.Log != nil {
		return s.Log
	}
	return slog.Default()
}

// Entry describes one stored snapshot file.
type Entry struct {
	Path    string
	Name    string
	ModTime time.Time
	Size    int64
}

// Write persists content as a new timestamped snapshot and overwrites the
// latest pointer with the same bytes. Returns the snapshot path.
// Two writes within the same second produce the same filename; the second
// one wins.
func (s *Store) Write(content any) (string, error) {
	data, err := util.MarshalPretty(content)
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}

	if err := s.FS.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}

	name := config.BackupPrefix + s.Clock.Now().Format(config.TimestampLayout) + config.BackupSuffix
	path := filepath.Join(s.Dir, name)
	if err := util.WriteFileAtomic(s.FS, path, data); err != nil {
		return "", fmt.Errorf("write snapshot %s: %w", name, err)
	}

	latest := filepath.Join(s.Dir, config.LatestFile)
	if err := util.WriteFileAtomic(s.FS, latest, data); err != nil {
		return "", fmt.Errorf("update latest pointer: %w", err)
	}

	return path, nil
}

// ReadLatest returns the raw content of the latest pointer file. The error
// satisfies FS.IsNotExist when no backup has ever been accepted.
func (s *Store) ReadLatest() ([]byte, error) {
	return s.FS.ReadFile(filepath.Join(s.Dir, config.LatestFile))
}

// List returns all snapshot files, most recently modified first. The
// latest pointer and unrelated files are skipped. A missing backup dir is
// an empty store, not an error.
func (s *Store) List() ([]Entry, error) {
	entries, err := s.FS.ReadDir(s.Dir)
	if err != nil {
		if s.FS.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read backup dir: %w", err)
	}

	var out []Entry
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasPrefix(name, config.BackupPrefix) || !strings.HasSuffix(name, config.BackupSuffix) {
			continue
		}
		fi, err := e.Info()
		if err != nil {
			continue
		}
		out = append(out, Entry{
			Path:    filepath.Join(s.Dir, name),
			Name:    name,
			ModTime: fi.ModTime(),
			Size:    fi.Size(),
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ModTime.After(out[j].ModTime) })
	return out, nil
}
