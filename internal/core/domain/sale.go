package domain

import (
	"sort"
	"time"
)

// SaleEntry is one dated KPI record of a user's sales history.
type SaleEntry struct {
	Value         float64   `json:"value" bson:"value"`
	TotalExpenses float64   `json:"total_expenses" bson:"total_expenses"`
	NetProfit     float64   `json:"net_profit" bson:"net_profit"`
	Revenue       float64   `json:"revenue" bson:"revenue"`
	Date          time.Time `json:"date" bson:"date"`
}

// SaleHistory is stored in insertion order.
type SaleHistory []SaleEntry

// Latest returns the entry with the greatest Date. On equal dates the entry
// that appears first wins.
func (h SaleHistory) Latest() (SaleEntry, bool) {
	if len(h) == 0 {
		return SaleEntry{}, false
	}
	latest := h[0]
	for _, e := range h[1:] {
		if e.Date.After(latest.Date) {
			latest = e
		}
	}
	return latest, true
}

// Total sums Value across all entries.
func (h SaleHistory) Total() float64 {
	var sum float64
	for _, e := range h {
		sum += e.Value
	}
	return sum
}

// Chronological returns a copy ordered by Date ascending.
func (h SaleHistory) Chronological() SaleHistory {
	out := make(SaleHistory, len(h))
	copy(out, h)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}
