// Package dataset loads the food catalog served by the catalog service.
package dataset

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/Williamwenda/FoodSlotMachine/internal/models"
	"github.com/google/logger"
)

//go:embed foods.json
var embeddedFoods []byte

// MaxDiscount caps generated discounts.
const MaxDiscount = 90

// Rand is the randomness used to generate ratings and discounts.
type Rand interface {
	Float64() float64
}

// DiscountOptions shapes the generated discount distribution.
type DiscountOptions struct {
	Mean       float64
	StdDev     float64
	ValidHours int
}

// Load reads the catalog from path, or the embedded catalog when path is empty.
func Load(path string) ([]models.CatalogItem, error) {
	data := embeddedFoods
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", path, err)
		}
	}

	var items []models.CatalogItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	seen := make(map[models.FoodID]bool, len(items))
	for i, item := range items {
		if item.ID == "" {
			return nil, fmt.Errorf("catalog item %d has no id", i)
		}
		if seen[item.ID] {
			return nil, fmt.Errorf("catalog item %d: duplicate id %s", i, item.ID)
		}
		seen[item.ID] = true
	}

	logger.Infof("Loaded %d catalog items", len(items))
	return items, nil
}

// Enrich fills in what the catalog file leaves out: items without stars get a
// rating in [4.0, 5.0) and items without a discount get a generated one.
// Items whose discount draw comes out at zero stay undiscounted.
func Enrich(items []models.CatalogItem, rng Rand, opts DiscountOptions, now time.Time) []models.CatalogItem {
	out := make([]models.CatalogItem, len(items))
	for i, item := range items {
		if item.Stars == 0 {
			item.Stars = GenerateRating(rng, 4.0, 5.0)
		}
		if item.Discount == nil {
			item.Discount = GenerateDiscount(rng, opts, now)
		}
		out[i] = item
	}
	return out
}

// GenerateDiscount samples a percentage from a normal distribution
// (Box-Muller). Non-positive samples mean no discount; the rest are rounded
// and capped at MaxDiscount.
func GenerateDiscount(rng Rand, opts DiscountOptions, now time.Time) *models.Discount {
	u1 := rng.Float64()
	u2 := rng.Float64()
	if u1 == 0 {
		u1 = math.SmallestNonzeroFloat64
	}
	z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
	sample := opts.Mean + z*opts.StdDev
	if sample <= 0 {
		return nil
	}

	pct := int(math.Min(math.Round(sample), MaxDiscount))
	if pct == 0 {
		return nil
	}
	return &models.Discount{
		Percentage: pct,
		ExpiresAt:  now.Add(time.Duration(opts.ValidHours) * time.Hour).UTC(),
		ValidHours: opts.ValidHours,
	}
}

// GenerateRating returns a rating between min and max rounded to one decimal.
func GenerateRating(rng Rand, min, max float64) models.Rating {
	r := rng.Float64()*(max-min) + min
	return models.Rating(math.Round(r*10) / 10)
}
