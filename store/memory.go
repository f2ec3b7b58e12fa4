package store

import "github.com/recati/comanda-app/models"

// MemoryGateway keeps the last saved snapshot in memory. Used by tests and
// as a fallback when persistence is disabled.
type MemoryGateway struct {
	snap *models.Snapshot

	// FailSave, when set, makes every Save return the given error. Tests use
	// it to exercise the store's rollback path.
	FailSave error
}

func NewMemoryGateway() *MemoryGateway {
	return &MemoryGateway{}
}

func (g *MemoryGateway) Load() (*models.Snapshot, error) {
	if g.snap == nil {
		return nil, nil
	}
	return g.snap.Clone(), nil
}

func (g *MemoryGateway) Save(snap *models.Snapshot) error {
	if g.FailSave != nil {
		return g.FailSave
	}
	g.snap = snap.Clone()
	return nil
}
