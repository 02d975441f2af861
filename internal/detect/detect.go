package detect

import (
	"log/slog"

	"github.com/keshon/cfgbak/internal/digest"
	"github.com/keshon/cfgbak/internal/store"
)

// Detector decides whether freshly fetched content differs from the last
// accepted snapshot. Every failure path reports "changed": a fingerprint
// error or an unreadable baseline forces a save, never skips one.
type Detector struct {
	Store *store.Store

	// Log, when set, replaces the default logger so all lines of one
	// backup run share the same attributes.
	Log *slog.Logger
}

func (d *Detector) logger() *slog.Logger {
	if d.Log != nil {
		return d.Log
	}
	return slog.Default()
}

// Changed reports whether newContent differs from the latest snapshot.
func (d *Detector) Changed(newContent any) bool {
	log := d.logger()

	newHash, err := digest.Fingerprint(newContent)
	if err != nil {
		log.Warn("cannot fingerprint new data, forcing save", "error", err)
		return true
	}

	latest, err := d.Store.ReadLatest()
	if err != nil {
		if d.Store.FS.IsNotExist(err) {
			log.Info("no previous backup found, saving first snapshot")
		} else {
			log.Warn("cannot read latest backup, forcing save", "error", err)
		}
		return true
	}

	latestHash, err := digest.FingerprintRaw(latest)
	if err != nil {
		log.Warn("cannot fingerprint latest backup, forcing save", "error", err)
		return true
	}

	if newHash == latestHash {
		log.Info("data unchanged since last backup", "digest", newHash)
		return false
	}

	log.Info("data changed since last backup")
	return true
}
