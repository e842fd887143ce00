package engine

import (
	"errors"
	"time"

	"github.com/Williamwenda/FoodSlotMachine/internal/models"
)

var (
	// ErrInvalidPoolState is returned when a spin is attempted on an empty pool.
	ErrInvalidPoolState = errors.New("engine: drawing pool is empty")
	// ErrSpinInProgress is returned when a spin is requested while another one
	// has not delivered its result yet. Callers treat it as a no-op.
	ErrSpinInProgress = errors.New("engine: spin already in progress")
)

// Spin draws three foods from pool, independently and with replacement.
// Repeats are how a jackpot happens. The pool is never modified.
func Spin(pool []models.FoodRecord, rng Rand) (models.SpinResult, error) {
	if len(pool) == 0 {
		return models.SpinResult{}, ErrInvalidPoolState
	}

	var foods [3]models.FoodRecord
	for i := range foods {
		foods[i] = pool[rng.IntN(len(pool))]
	}

	return models.SpinResult{
		Foods:     foods,
		IsJackpot: IsJackpot(foods),
		SpunAt:    time.Now(),
	}, nil
}

// IsJackpot reports whether all three foods have the same id.
func IsJackpot(foods [3]models.FoodRecord) bool {
	return foods[0].ID == foods[1].ID && foods[1].ID == foods[2].ID
}
