package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Source tags where a FoodRecord came from.
type Source string

const (
	SourceLocal Source = "local"
	SourceAPI   Source = "api"
)

// FoodID identifies a food within one catalog snapshot.
// The catalog service uses numeric ids and the bundled list uses strings,
// so both JSON forms are accepted.
type FoodID string

// UnmarshalJSON accepts a JSON string or a JSON number.
func (id *FoodID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = FoodID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("food id: %w", err)
	}
	*id = FoodID(n.String())
	return nil
}

// MarshalJSON writes integer-looking ids as numbers and everything else as strings.
func (id FoodID) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// Rating is a star rating in [0,5]. Some feeds send it as a string.
type Rating float64

func (r *Rating) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*r = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return fmt.Errorf("rating %q: %w", s, err)
		}
		*r = Rating(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*r = Rating(f)
	return nil
}

// Discount is a time-limited price reduction shown on a food card.
type Discount struct {
	Percentage int       `json:"percentage"`
	ExpiresAt  time.Time `json:"expiresAt"`
	ValidHours int       `json:"validHours,omitempty"`
}

// FoodRecord is one entry of a resolved catalog snapshot.
// Only ID takes part in selection logic; the rest is for display.
type FoodRecord struct {
	ID          FoodID    `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Cuisine     string    `json:"cuisine"`
	Restaurant  string    `json:"restaurant"`
	Price       string    `json:"price"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Stars       Rating    `json:"stars"`
	Discount    *Discount `json:"discount,omitempty"`
	SplatURL    string    `json:"splatUrl,omitempty"`
	Source      Source    `json:"source"`
}

// HasDiscount reports whether a discount badge should be shown.
func (f FoodRecord) HasDiscount() bool {
	return f.Discount != nil && f.Discount.Percentage > 0
}

// CatalogItem is a record as served by the catalog service.
type CatalogItem struct {
	ID          FoodID    `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Image       string    `json:"image"`
	Description string    `json:"description"`
	Price       string    `json:"price"`
	Restaurant  string    `json:"restaurant"`
	Stars       Rating    `json:"stars"`
	Cuisine     string    `json:"cuisine,omitempty"`
	PlyPath     string    `json:"ply_path,omitempty"`
	Discount    *Discount `json:"discount,omitempty"`
}
