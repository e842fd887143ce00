package engine

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/Williamwenda/FoodSlotMachine/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeFoods(n int) []models.FoodRecord {
	foods := make([]models.FoodRecord, n)
	for i := range foods {
		foods[i] = models.FoodRecord{
			ID:   models.FoodID(fmt.Sprintf("food-%d", i)),
			Name: fmt.Sprintf("Dish %d", i),
		}
	}
	return foods
}

func TestSelectPool_FullSnapshot(t *testing.T) {
	snapshot := makeFoods(8)
	rng := rand.New(rand.NewPCG(1, 2))

	for _, k := range []int{0, 8, 9, 100} {
		t.Run(fmt.Sprintf("k=%d", k), func(t *testing.T) {
			pool := SelectPool(snapshot, k, rng)
			assert.Equal(t, snapshot, pool)
		})
	}
}

func TestSelectPool_Subsample(t *testing.T) {
	snapshot := makeFoods(30)
	rng := rand.New(rand.NewPCG(7, 7))

	for k := 1; k < len(snapshot); k++ {
		pool := SelectPool(snapshot, k, rng)
		require.Len(t, pool, k)

		seen := make(map[models.FoodID]bool, k)
		for _, food := range pool {
			assert.False(t, seen[food.ID], "k=%d picked %s twice", k, food.ID)
			seen[food.ID] = true
			assert.Contains(t, snapshot, food)
		}
	}
}

func TestSelectPool_DoesNotModifySnapshot(t *testing.T) {
	snapshot := makeFoods(10)
	before := append([]models.FoodRecord(nil), snapshot...)

	SelectPool(snapshot, 4, rand.New(rand.NewPCG(3, 4)))

	assert.Equal(t, before, snapshot)
}

func TestJackpotProbability(t *testing.T) {
	assert.InDelta(t, 0.25, JackpotProbability(2), 1e-12)
	assert.InDelta(t, 0.04, JackpotProbability(5), 1e-12)
	assert.InDelta(t, 0.01, JackpotProbability(10), 1e-12)
	assert.InDelta(t, 1.0/900, JackpotProbability(30), 1e-12)
	assert.Zero(t, JackpotProbability(0))
}

func TestDescribePool(t *testing.T) {
	info := DescribePool(makeFoods(5), 30)
	assert.Equal(t, 5, info.Size)
	assert.Equal(t, 30, info.CatalogSize)
	assert.True(t, info.Testing)
	assert.Equal(t, 25, info.OneIn)
	assert.InDelta(t, 0.04, info.Probability, 1e-12)

	full := DescribePool(makeFoods(30), 30)
	assert.False(t, full.Testing)
	assert.Equal(t, 900, full.OneIn)
}
