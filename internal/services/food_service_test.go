package services

import (
	"math/rand/v2"
	"testing"

	"github.com/Williamwenda/FoodSlotMachine/internal/dataset"
	"github.com/Williamwenda/FoodSlotMachine/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFoodService(t *testing.T) *FoodService {
	t.Helper()
	items, err := dataset.Load("")
	require.NoError(t, err)
	return NewFoodService(items, rand.New(rand.NewPCG(9, 9)))
}

func TestFoodService_All(t *testing.T) {
	s := newFoodService(t)

	assert.Len(t, s.All("", ""), 10)

	japanese := s.All("", "JAPANESE")
	require.Len(t, japanese, 2)
	for _, item := range japanese {
		assert.Equal(t, "Japanese", item.Cuisine)
	}

	assert.Len(t, s.All("pizza", ""), 1)
	assert.Len(t, s.All("salads", "american"), 1)
	assert.Empty(t, s.All("salads", "japanese"))
	assert.Empty(t, s.All("pizz", ""), "match is exact, not prefix")
}

func TestFoodService_ByID(t *testing.T) {
	s := newFoodService(t)

	item, err := s.ByID("4")
	require.NoError(t, err)
	assert.Equal(t, "Sushi Platter", item.Name)

	_, err = s.ByID("99")
	assert.ErrorIs(t, err, ErrFoodNotFound)
}

func TestFoodService_Random(t *testing.T) {
	s := newFoodService(t)

	tests := []struct {
		count int
		want  int
	}{
		{0, DefaultRandomCount},
		{-4, DefaultRandomCount},
		{1, 1},
		{7, 7},
		{10, 10},
		{50, 10},
	}
	for _, tt := range tests {
		got := s.Random(tt.count)
		require.Len(t, got, tt.want, "count=%d", tt.count)

		seen := map[models.FoodID]bool{}
		for _, item := range got {
			assert.False(t, seen[item.ID], "count=%d returned %s twice", tt.count, item.ID)
			seen[item.ID] = true
		}
	}

	// The catalog itself keeps its order.
	assert.Equal(t, models.FoodID("1"), s.All("", "")[0].ID)
}
