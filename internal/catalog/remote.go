package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/Williamwenda/FoodSlotMachine/internal/models"
	"github.com/google/logger"
	"github.com/shopspring/decimal"
)

const (
	defaultName        = "Mystery Dish"
	defaultCategory    = "Specialty"
	defaultCuisine     = "International"
	defaultImage       = "https://via.placeholder.com/400x200?text=Food"
	defaultDescription = "Delicious food item from our collection!"
)

// restaurantRotation names the restaurant shown for remote foods, picked by
// position in the payload.
var restaurantRotation = []string{
	"Backyard",
	"Trash Can",
	"The Golden Spoon",
	"Urban Eats",
	"Flavor Street",
}

// RemoteProvider fetches the catalog from the food catalog service.
type RemoteProvider struct {
	Endpoint string
	Client   *http.Client
	Rand     Rand
}

// NewRemoteProvider returns a provider for endpoint. A nil client means
// http.DefaultClient.
func NewRemoteProvider(endpoint string, client *http.Client, rng Rand) *RemoteProvider {
	if client == nil {
		client = http.DefaultClient
	}
	return &RemoteProvider{Endpoint: endpoint, Client: client, Rand: rng}
}

// Fetch makes a single GET request to the endpoint. Any failure, including an
// empty list, is reported as ErrCatalogUnavailable.
func (p *RemoteProvider) Fetch(ctx context.Context) ([]models.FoodRecord, error) {
	logger.Infof("Attempting to fetch catalog from %s", p.Endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.Endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: responded with status %d", ErrCatalogUnavailable, resp.StatusCode)
	}

	var body json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decode body: %v", ErrCatalogUnavailable, err)
	}

	items, err := unwrapItems(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: no items returned", ErrCatalogUnavailable)
	}

	records := Normalize(items, p.Rand)
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no usable items returned", ErrCatalogUnavailable)
	}
	return records, nil
}

// unwrapItems accepts a bare array, {"items": [...]} or {"data": [...]}.
// Any other shape yields an empty list.
func unwrapItems(body json.RawMessage) ([]json.RawMessage, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, nil
	}

	switch body[0] {
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(body, &items); err != nil {
			return nil, err
		}
		return items, nil
	case '{':
		var envelope map[string]json.RawMessage
		if err := json.Unmarshal(body, &envelope); err != nil {
			return nil, err
		}
		for _, key := range []string{"items", "data"} {
			raw := bytes.TrimSpace(envelope[key])
			if len(raw) == 0 || raw[0] != '[' {
				continue
			}
			var items []json.RawMessage
			if err := json.Unmarshal(raw, &items); err != nil {
				return nil, err
			}
			return items, nil
		}
	}
	return nil, nil
}

// remoteItem lists every field name the catalog feeds are known to use.
type remoteItem struct {
	ID          models.FoodID   `json:"id"`
	Name        string          `json:"name"`
	Title       string          `json:"title"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
	Thumbnail   string          `json:"thumbnail"`
	Description string          `json:"description"`
	Price       json.RawMessage `json:"price"`
	Rating      json.RawMessage `json:"rating"`
	Stars       json.RawMessage `json:"stars"`
	Cuisine     string          `json:"cuisine"`
	PlyPath     string          `json:"ply_path"`
	Discount    json.RawMessage `json:"discount"`
}

// Normalize converts raw catalog items into food records tagged as coming from
// the API. Items that cannot be decoded, or that repeat an earlier id, are
// skipped.
func Normalize(items []json.RawMessage, rng Rand) []models.FoodRecord {
	records := make([]models.FoodRecord, 0, len(items))
	seen := make(map[models.FoodID]struct{}, len(items))

	for index, raw := range items {
		var item remoteItem
		if err := json.Unmarshal(raw, &item); err != nil {
			logger.Warningf("Skipping catalog item %d: %v", index, err)
			continue
		}

		record := normalizeItem(item, index, rng)
		if _, dup := seen[record.ID]; dup {
			logger.Warningf("Skipping catalog item %d: duplicate id %q", index, record.ID)
			continue
		}
		seen[record.ID] = struct{}{}
		records = append(records, record)
	}
	return records
}

func normalizeItem(item remoteItem, index int, rng Rand) models.FoodRecord {
	id := item.ID
	if id == "" {
		id = models.FoodID(fmt.Sprintf("api-%d", index))
	}

	stars := parseRating(item.Rating, "rating", index)
	if stars == 0 {
		stars = parseRating(item.Stars, "stars", index)
	}
	if stars == 0 {
		stars = randomRating(rng)
	}

	return models.FoodRecord{
		ID:          id,
		Name:        firstNonEmpty(item.Name, item.Title, defaultName),
		Category:    firstNonEmpty(item.Category, defaultCategory),
		Image:       firstNonEmpty(item.Thumbnail, item.Image, defaultImage),
		Description: firstNonEmpty(item.Description, defaultDescription),
		Price:       formatPrice(item.Price, rng),
		Restaurant:  restaurantRotation[index%len(restaurantRotation)],
		Stars:       stars,
		Cuisine:     firstNonEmpty(item.Cuisine, defaultCuisine),
		Discount:    parseDiscount(item.Discount, index),
		SplatURL:    item.PlyPath,
		Source:      models.SourceAPI,
	}
}

// formatPrice keeps a string price as sent, formats a numeric one, and makes
// one up in [$10, $30) when it is missing.
func formatPrice(raw json.RawMessage, rng Rand) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && !bytes.Equal(raw, []byte("null")) {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			if s = strings.TrimSpace(s); s != "" {
				return s
			}
		} else if d, err := decimal.NewFromString(string(raw)); err == nil && !d.IsZero() {
			return "$" + d.StringFixed(2)
		}
	}
	price := decimal.NewFromFloat(rng.Float64()*20 + 10).Truncate(2)
	return "$" + price.StringFixed(2)
}

// parseRating reads a rating sent as a number or a numeric string. Anything
// else counts as absent.
func parseRating(raw json.RawMessage, field string, index int) models.Rating {
	if isAbsent(raw) {
		return 0
	}
	var r models.Rating
	if err := json.Unmarshal(raw, &r); err != nil {
		logger.Warningf("Catalog item %d: ignoring %s %s: %v", index, field, raw, err)
		return 0
	}
	if r < 0 || r > 5 {
		logger.Warningf("Catalog item %d: ignoring %s %s: out of range", index, field, raw)
		return 0
	}
	return r
}

// discountLayouts are the expiry formats seen in catalog feeds.
var discountLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// parseDiscount returns nil for a missing discount, a non-positive one, or
// one whose expiry is set but cannot be read. A discount without an expiry
// is kept.
func parseDiscount(raw json.RawMessage, index int) *models.Discount {
	if isAbsent(raw) {
		return nil
	}
	var d struct {
		Percentage json.Number `json:"percentage"`
		ExpiresAt  string      `json:"expiresAt"`
		ValidHours int         `json:"validHours"`
	}
	if err := json.Unmarshal(raw, &d); err != nil {
		logger.Warningf("Catalog item %d: ignoring discount %s: %v", index, raw, err)
		return nil
	}
	pct, err := d.Percentage.Float64()
	if err != nil || pct <= 0 {
		return nil
	}

	expires, ok := parseExpiry(d.ExpiresAt)
	if !ok {
		logger.Warningf("Catalog item %d: ignoring discount with expiresAt %q", index, d.ExpiresAt)
		return nil
	}
	return &models.Discount{
		Percentage: int(math.Round(pct)),
		ExpiresAt:  expires,
		ValidHours: d.ValidHours,
	}
}

func parseExpiry(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, true
	}
	for _, layout := range discountLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

func isAbsent(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null")) || bytes.Equal(raw, []byte(`""`))
}

// randomRating returns a rating in [4.0, 5.0) with one decimal.
func randomRating(rng Rand) models.Rating {
	r := decimal.NewFromFloat(rng.Float64() + 4).Truncate(1)
	return models.Rating(r.InexactFloat64())
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
