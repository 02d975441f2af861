package store

// Prune deletes the oldest snapshots beyond max, keeping the max most
// recently modified. Individual delete failures are logged and skipped so
// one stuck file cannot stop the rest. Returns the number deleted.
func (s *Store) Prune(max int) (int, error) {
	entries, err := s.List()
	if err != nil {
		return 0, err
	}

	log := s.logger()
	if len(entries) <= max {
		log.Info("no snapshots to prune", "count", len(entries), "max", max)
		return 0, nil
	}

	deleted := 0
	for _, e := range entries[max:] {
		if err := s.FS.Remove(e.Path); err != nil {
			log.Warn("failed to delete old snapshot", "file", e.Name, "error", err)
			continue
		}
		log.Info("deleted old snapshot", "file", e.Name)
		deleted++
	}

	log.Info("pruned old snapshots", "deleted", deleted, "kept", max)
	return deleted, nil
}
