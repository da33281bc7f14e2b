package model

import "time"

type Product struct {
	SKU         string    `json:"sku"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	Quantity    int       `json:"quantity"`
	LastUpdated time.Time `json:"last_updated"`
}

// StockLevel classifies the product quantity the way the status screen colours it.
type StockLevel string

const (
	StockOut StockLevel = "out_of_stock"
	StockLow StockLevel = "low"
	StockOK  StockLevel = "ok"
)

// Level reports the stock level for the given low-stock threshold
func (p *Product) Level(lowThreshold int) StockLevel {
	switch {
	case p.Quantity == 0:
		return StockOut
	case p.Quantity < lowThreshold:
		return StockLow
	default:
		return StockOK
	}
}

// Valuation is price times quantity on hand
func (p *Product) Valuation() float64 {
	return p.Price * float64(p.Quantity)
}
