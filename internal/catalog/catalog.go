// Package catalog resolves the list of foods a slot machine draws from,
// preferring the remote catalog service and falling back to a bundled list.
package catalog

import (
	"context"
	"errors"

	"github.com/Williamwenda/FoodSlotMachine/internal/models"
)

// MinSnapshotSize is the smallest catalog a machine can spin with.
const MinSnapshotSize = 3

var (
	// ErrCatalogUnavailable means the remote catalog could not be used.
	ErrCatalogUnavailable = errors.New("catalog: remote catalog unavailable")
	// ErrInsufficientPool means no provider supplied enough foods to spin.
	ErrInsufficientPool = errors.New("catalog: not enough food items available")
)

// Provider supplies an ordered list of foods.
type Provider interface {
	Fetch(ctx context.Context) ([]models.FoodRecord, error)
}

// Rand is the randomness the remote provider needs to fill in missing prices
// and ratings.
type Rand interface {
	Float64() float64
}

// Snapshot is an immutable, ordered catalog. A new one is built on every
// resolution; existing snapshots are never modified.
type Snapshot struct {
	records []models.FoodRecord
	source  models.Source
}

// NewSnapshot copies records into a snapshot.
func NewSnapshot(records []models.FoodRecord, source models.Source) Snapshot {
	cp := make([]models.FoodRecord, len(records))
	copy(cp, records)
	return Snapshot{records: cp, source: source}
}

// Len returns the number of foods in the snapshot.
func (s Snapshot) Len() int { return len(s.records) }

// At returns the food at position i.
func (s Snapshot) At(i int) models.FoodRecord { return s.records[i] }

// Source reports which provider produced the snapshot.
func (s Snapshot) Source() models.Source { return s.source }

// Records returns a copy of the foods in order.
func (s Snapshot) Records() []models.FoodRecord {
	cp := make([]models.FoodRecord, len(s.records))
	copy(cp, s.records)
	return cp
}
