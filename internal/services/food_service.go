package services

import (
	"errors"
	"strings"
	"sync"

	"github.com/Williamwenda/FoodSlotMachine/internal/models"
)

// DefaultRandomCount is how many foods Random returns when no count is given.
const DefaultRandomCount = 3

// ErrFoodNotFound is returned when no food has the requested id.
var ErrFoodNotFound = errors.New("food item not found")

// Intn is the randomness FoodService needs to pick random foods.
type Intn interface {
	IntN(n int) int
}

// FoodService serves a fixed food catalog.
type FoodService struct {
	items []models.CatalogItem

	mu  sync.Mutex
	rng Intn
}

// NewFoodService creates a FoodService for items.
func NewFoodService(items []models.CatalogItem, rng Intn) *FoodService {
	cp := make([]models.CatalogItem, len(items))
	copy(cp, items)
	return &FoodService{items: cp, rng: rng}
}

// All returns the foods matching category and cuisine. Empty filters match
// everything; non-empty ones are case-insensitive exact matches.
func (s *FoodService) All(category, cuisine string) []models.CatalogItem {
	out := make([]models.CatalogItem, 0, len(s.items))
	for _, item := range s.items {
		if category != "" && !strings.EqualFold(item.Category, category) {
			continue
		}
		if cuisine != "" && (item.Cuisine == "" || !strings.EqualFold(item.Cuisine, cuisine)) {
			continue
		}
		out = append(out, item)
	}
	return out
}

// ByID returns the food with the given id.
func (s *FoodService) ByID(id models.FoodID) (models.CatalogItem, error) {
	for _, item := range s.items {
		if item.ID == id {
			return item, nil
		}
	}
	return models.CatalogItem{}, ErrFoodNotFound
}

// Random returns count distinct foods in random order. A non-positive count
// means DefaultRandomCount; counts above the catalog size are capped.
func (s *FoodService) Random(count int) []models.CatalogItem {
	if count <= 0 {
		count = DefaultRandomCount
	}
	if count > len(s.items) {
		count = len(s.items)
	}

	shuffled := make([]models.CatalogItem, len(s.items))
	copy(shuffled, s.items)

	s.mu.Lock()
	defer s.mu.Unlock()
	// Partial Fisher-Yates: only the first count positions need to be settled.
	for i := 0; i < count; i++ {
		j := i + s.rng.IntN(len(shuffled)-i)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled[:count]
}

// Count returns the number of foods in the catalog.
func (s *FoodService) Count() int {
	return len(s.items)
}
