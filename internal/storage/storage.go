package storage

import "liquidityMinter/internal/model"

// Storage defines a sink for minted position records.
type Storage interface {
	PutPositionBatch(positions []model.PositionRecord) error
}
