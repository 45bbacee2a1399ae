package domain

import "time"

// Item a rentable catalogue item (one product, possibly several physical units)
type Item struct {
	ID         int64
	Name       string
	TotalUnits int     // Количество физических единиц в прокате
	BasePrice  float64 // Цена первого дня, в валюте магазина
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Stock returns the stock snapshot of the item
func (i *Item) Stock() StockInfo {
	return StockInfo{TotalUnits: i.TotalUnits}
}

// StockInfo total rentable units of an item
type StockInfo struct {
	TotalUnits int `json:"totalUnits"`
}

// IsZeroStock returns true when no units can be rented at all
func (s StockInfo) IsZeroStock() bool {
	return s.TotalUnits == 0
}

// IsValid returns false for a negative unit count
func (s StockInfo) IsValid() bool {
	return s.TotalUnits >= 0
}
