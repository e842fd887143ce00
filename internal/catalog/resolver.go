package catalog

import (
	"context"
	"fmt"

	"github.com/Williamwenda/FoodSlotMachine/internal/models"
	"github.com/google/logger"
)

// Resolver picks between the remote and local providers.
type Resolver struct {
	Remote   Provider
	Local    Provider
	Endpoint string // reported in the status only
}

// Resolve tries the remote provider once and falls back to the local one if
// it fails or returns fewer than MinSnapshotSize foods. It returns
// ErrInsufficientPool if the chosen list is still too small to spin.
func (r *Resolver) Resolve(ctx context.Context) (Snapshot, models.Status, error) {
	if r.Remote != nil {
		records, err := r.Remote.Fetch(ctx)
		switch {
		case err != nil:
			logger.Warningf("Remote catalog fetch failed, using local data: %v", err)
		case len(records) < MinSnapshotSize:
			logger.Warningf("Remote catalog returned %d items, using local data", len(records))
		default:
			logger.Infof("Loaded %d items from API", len(records))
			return NewSnapshot(records, models.SourceAPI), models.Status{
				Connected: true,
				ItemCount: len(records),
				Endpoint:  r.Endpoint,
			}, nil
		}
	}

	var records []models.FoodRecord
	if r.Local != nil {
		var err error
		records, err = r.Local.Fetch(ctx)
		if err != nil {
			return Snapshot{}, models.Status{}, fmt.Errorf("local catalog: %w", err)
		}
	}

	status := models.Status{Connected: false, ItemCount: len(records), Endpoint: r.Endpoint}
	if len(records) < MinSnapshotSize {
		return Snapshot{}, status, fmt.Errorf("%w: have %d, need %d", ErrInsufficientPool, len(records), MinSnapshotSize)
	}
	logger.Infof("Using local fallback data (%d items)", len(records))
	return NewSnapshot(records, models.SourceLocal), status, nil
}
