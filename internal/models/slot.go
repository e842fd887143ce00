package models

import (
	"fmt"
	"time"
)

// SpinResult is the outcome of a single spin: three foods drawn with
// replacement and whether all three are the same dish.
type SpinResult struct {
	Foods     [3]FoodRecord `json:"foods"`
	IsJackpot bool          `json:"isJackpot"`
	SpunAt    time.Time     `json:"spunAt"`
}

// Status is the connectivity notification emitted once per catalog resolution.
type Status struct {
	Connected bool   `json:"connected"`
	ItemCount int    `json:"itemCount"`
	Endpoint  string `json:"endpoint,omitempty"`
}

// Message returns the text shown in the status indicator.
func (s Status) Message() string {
	if s.Connected {
		return fmt.Sprintf("API Connected (%d items)", s.ItemCount)
	}
	return fmt.Sprintf("Using Local Data (%d items)", s.ItemCount)
}

// PoolInfo describes the active drawing pool.
type PoolInfo struct {
	Size        int     `json:"size"`
	CatalogSize int     `json:"catalogSize"`
	Testing     bool    `json:"testing"`
	Probability float64 `json:"probability"` // chance of a jackpot on one spin
	OneIn       int     `json:"oneIn"`
}
