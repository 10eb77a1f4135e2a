package main

import (
	"fmt"
	"os"
	"path/filepath"
)

// archiveSnapshot writes a YAML snapshot of a finished game so boards played
// by humans can feed the same extraction pipeline as simulated ones. Failures
// only get logged, archiving never blocks play.
func archiveSnapshot(s *GameSession) {
	if config.SnapshotDir == "" {
		return
	}
	if err := os.MkdirAll(config.SnapshotDir, 0755); err != nil {
		log.Error("unable to create snapshot dir: ", err)
		return
	}
	data, err := s.Game.Snapshot().Encode()
	if err != nil {
		log.Error("unable to encode snapshot: ", err)
		return
	}
	path := filepath.Join(
		config.SnapshotDir, fmt.Sprintf("session_%d.yaml", s.SessionId),
	)
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		log.Error("unable to write snapshot: ", err)
		return
	}
	log.Debugf("archived snapshot of session %d", s.SessionId)
}
