package catalog

import (
	"context"

	"github.com/Williamwenda/FoodSlotMachine/internal/models"
)

// LocalProvider serves a fixed, bundled list of foods.
type LocalProvider struct {
	records []models.FoodRecord
}

// NewLocalProvider returns a provider for records, each tagged as local.
// With no records it serves the bundled fallback list.
func NewLocalProvider(records ...models.FoodRecord) *LocalProvider {
	if len(records) == 0 {
		records = fallbackFoods
	}
	tagged := make([]models.FoodRecord, len(records))
	for i, r := range records {
		r.Source = models.SourceLocal
		tagged[i] = r
	}
	return &LocalProvider{records: tagged}
}

// Fetch never fails; it returns a copy of the bundled list.
func (p *LocalProvider) Fetch(ctx context.Context) ([]models.FoodRecord, error) {
	out := make([]models.FoodRecord, len(p.records))
	copy(out, p.records)
	return out, nil
}

var fallbackFoods = []models.FoodRecord{
	{
		ID:          "local-1",
		Name:        "Margherita Pizza",
		Category:    "Pizza",
		Image:       "https://images.unsplash.com/photo-1574071318508-1cdbab80d002?w=800&h=800&fit=crop",
		Description: "Classic Neapolitan pizza with San Marzano tomatoes, fresh mozzarella, and basil.",
		Price:       "$16.00",
		Restaurant:  "The Golden Spoon",
		Stars:       4.5,
		Cuisine:     "Italian",
	},
	{
		ID:          "local-2",
		Name:        "Spicy Ramen",
		Category:    "Noodles",
		Image:       "https://images.unsplash.com/photo-1569718212165-3a8278d5f624?w=800&h=800&fit=crop",
		Description: "Rich tonkotsu broth with handmade noodles and tender chashu pork.",
		Price:       "$18.00",
		Restaurant:  "Urban Eats",
		Stars:       4.7,
		Cuisine:     "Japanese",
	},
	{
		ID:          "local-3",
		Name:        "Classic Cheeseburger",
		Category:    "Burgers",
		Image:       "https://images.unsplash.com/photo-1568901346375-23c9450c58cd?w=800&h=800&fit=crop",
		Description: "Juicy Angus beef patty with aged cheddar and special sauce.",
		Price:       "$15.50",
		Restaurant:  "Flavor Street",
		Stars:       4.6,
		Cuisine:     "American",
	},
	{
		ID:          "local-4",
		Name:        "Sushi Platter",
		Category:    "Sushi",
		Image:       "https://images.unsplash.com/photo-1579584425555-c3ce17fd4351?w=800&h=800&fit=crop",
		Description: "Chef's selection featuring salmon nigiri, tuna rolls, and California rolls.",
		Price:       "$28.00",
		Restaurant:  "Taste Haven",
		Stars:       4.8,
		Cuisine:     "Japanese",
	},
	{
		ID:          "local-5",
		Name:        "Caesar Salad",
		Category:    "Salads",
		Image:       "https://images.unsplash.com/photo-1546793665-c74683f339c1?w=800&h=800&fit=crop",
		Description: "Crisp romaine lettuce with house-made Caesar dressing and croutons.",
		Price:       "$12.00",
		Restaurant:  "Gourmet Corner",
		Stars:       4.3,
		Cuisine:     "American",
	},
}
