package engine

import (
	"github.com/Williamwenda/FoodSlotMachine/internal/models"
)

// SelectPool derives the drawing pool from a catalog snapshot.
//
// A k of 0 (or any k not smaller than the snapshot) returns the snapshot
// itself. Otherwise k distinct indices are sampled by drawing a random index
// and keeping it only if it has not been chosen yet; k is a small tuning knob
// so the rejection loop stays short.
func SelectPool(snapshot []models.FoodRecord, k int, rng Rand) []models.FoodRecord {
	if k <= 0 || k >= len(snapshot) {
		return snapshot
	}

	chosen := make(map[int]struct{}, k)
	pool := make([]models.FoodRecord, 0, k)
	for len(pool) < k {
		idx := rng.IntN(len(snapshot))
		if _, taken := chosen[idx]; taken {
			continue
		}
		chosen[idx] = struct{}{}
		pool = append(pool, snapshot[idx])
	}
	return pool
}

// JackpotProbability is the chance that three independent draws with
// replacement from a pool of n items share one id: the first draw fixes the
// target and each of the other two matches it with probability 1/n.
func JackpotProbability(n int) float64 {
	if n <= 0 {
		return 0
	}
	return 1 / float64(n*n)
}

// DescribePool reports the size and jackpot odds of a pool.
func DescribePool(pool []models.FoodRecord, catalogSize int) models.PoolInfo {
	n := len(pool)
	return models.PoolInfo{
		Size:        n,
		CatalogSize: catalogSize,
		Testing:     n < catalogSize,
		Probability: JackpotProbability(n),
		OneIn:       n * n,
	}
}
