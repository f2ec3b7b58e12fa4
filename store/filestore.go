package store

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/recati/comanda-app/models"
)

// FileGateway persists the snapshot as a single JSON document on disk,
// written to a temp file and renamed so a crash mid-write never leaves a
// truncated snapshot behind.
type FileGateway struct {
	Path string
}

func NewFileGateway(path string) *FileGateway {
	return &FileGateway{Path: path}
}

func (g *FileGateway) Load() (*models.Snapshot, error) {
	raw, err := os.ReadFile(g.Path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var snap models.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, err
	}
	if snap.Version != models.SnapshotVersion {
		// Incompatible snapshot: treat as absent so the caller reseeds.
		return nil, nil
	}
	return &snap, nil
}

func (g *FileGateway) Save(snap *models.Snapshot) error {
	raw, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(g.Path)
	tmp, err := os.CreateTemp(dir, ".snapshot-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, g.Path)
}
