package model

import "time"

type TransactionType string

const (
	TxProductCreate TransactionType = "product_create"
	TxStockAdd      TransactionType = "stock_add"
	TxStockRemove   TransactionType = "stock_remove"
	TxProductUpdate TransactionType = "product_update"
)

// Transaction is an immutable audit record of an inventory event.
// Quantity fields are nil when the event does not touch stock.
type Transaction struct {
	ID               string          `json:"id"`
	Seq              uint64          `json:"seq"`
	Type             TransactionType `json:"type"`
	ProductSKU       string          `json:"product_sku"`
	ProductName      string          `json:"product_name"` // Snapshot at event time
	QuantityChange   *int            `json:"quantity_change,omitempty"`
	PreviousQuantity *int            `json:"previous_quantity,omitempty"`
	NewQuantity      *int            `json:"new_quantity,omitempty"`
	Timestamp        time.Time       `json:"timestamp"`
	Description      string          `json:"description"`
}

// IsInbound reports whether the event brought units into stock
func (t *Transaction) IsInbound() bool {
	return t.Type == TxStockAdd || t.Type == TxProductCreate
}

// Units returns the number of units moved by the event, 0 when none
func (t *Transaction) Units() int {
	switch t.Type {
	case TxStockAdd, TxStockRemove:
		if t.QuantityChange != nil {
			return *t.QuantityChange
		}
	case TxProductCreate:
		if t.NewQuantity != nil {
			return *t.NewQuantity
		}
	}
	return 0
}
