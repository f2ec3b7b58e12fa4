package store

import "github.com/recati/comanda-app/models"

// Gateway is the persistence contract: load the whole snapshot, save the
// whole snapshot. The engine never assumes a particular storage medium.
// Load returns (nil, nil) when no snapshot has been persisted yet.
type Gateway interface {
	Load() (*models.Snapshot, error)
	Save(*models.Snapshot) error
}
