// Package ledger holds the in-memory inventory ledger: users, products and the
// audit trail of inventory transactions, plus the commands that mutate them.
package ledger

import (
	"fmt"
	"math"
	"strings"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"

	"go-inventory-ledger/internal/model"

	"github.com/google/uuid"
)

const (
	// MaxPrice bounds product prices; anything above is treated as a typo.
	MaxPrice = 1_000_000_000.0
	// MaxQuantity bounds stock on hand for a single product.
	MaxQuantity = 1_000_000_000

	minFullNameLen = 2
)

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock overrides the time source used for record timestamps.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// WithIDGenerator overrides the id source used for users and transactions.
func WithIDGenerator(newID func() string) Option {
	return func(l *Ledger) { l.newID = newID }
}

// Ledger is safe for use by multiple goroutines; every command runs under
// a single write lock so its validation and mutation are one step.
type Ledger struct {
	mu sync.RWMutex

	users        []model.User
	emails       map[string]struct{}
	products     []model.Product
	skus         map[string]int // normalized SKU -> index in products
	transactions []model.Transaction
	txByID       map[string]int

	seq   uint64
	now   func() time.Time
	newID func() string
}

func New(opts ...Option) *Ledger {
	l := &Ledger{
		emails: make(map[string]struct{}),
		skus:   make(map[string]int),
		txByID: make(map[string]int),
		now:    time.Now,
		newID:  newUUIDv7,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func newUUIDv7() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func normalize(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

func (l *Ledger) nextSeq() uint64 {
	l.seq++
	return l.seq
}

// RegisterUser adds a user. No transaction is recorded: the audit trail
// only covers inventory.
func (l *Ledger) RegisterUser(email, fullName string) (model.User, error) {
	email = strings.TrimSpace(email)
	fullName = strings.TrimSpace(fullName)

	if email == "" || !strings.Contains(email, "@") {
		return model.User{}, ErrInvalidEmail
	}
	if utf8.RuneCountInString(fullName) < minFullNameLen {
		return model.User{}, ErrInvalidName
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	key := normalize(email)
	if _, exists := l.emails[key]; exists {
		return model.User{}, ErrDuplicateEmail
	}

	user := model.User{
		ID:           l.newID(),
		Seq:          l.nextSeq(),
		Email:        email,
		FullName:     fullName,
		RegisteredAt: l.now(),
	}
	l.users = append(l.users, user)
	l.emails[key] = struct{}{}
	return user, nil
}

func validateName(name string) error {
	if name == "" {
		return ErrMissingName
	}
	if !strings.ContainsFunc(name, func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsDigit(r)
	}) {
		return fmt.Errorf("%w: name must contain a letter or digit", ErrMissingName)
	}
	return nil
}

func validatePrice(price float64) error {
	if math.IsNaN(price) || price <= 0 {
		return ErrInvalidPrice
	}
	if math.IsInf(price, 1) || price > MaxPrice {
		return fmt.Errorf("%w: price must not exceed %.0f", ErrInvalidPrice, MaxPrice)
	}
	return nil
}

// RegisterProduct adds a product and records a product_create transaction.
func (l *Ledger) RegisterProduct(sku, name string, price float64, quantity int) (model.Product, model.Transaction, error) {
	sku = strings.TrimSpace(sku)
	name = strings.TrimSpace(name)

	if sku == "" {
		return model.Product{}, model.Transaction{}, ErrMissingSKU
	}
	if err := validateName(name); err != nil {
		return model.Product{}, model.Transaction{}, err
	}
	if err := validatePrice(price); err != nil {
		return model.Product{}, model.Transaction{}, err
	}
	if quantity < 0 {
		return model.Product{}, model.Transaction{}, ErrInvalidQuantity
	}
	if quantity > MaxQuantity {
		return model.Product{}, model.Transaction{}, fmt.Errorf("%w: quantity must not exceed %d", ErrInvalidQuantity, MaxQuantity)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	key := normalize(sku)
	if _, exists := l.skus[key]; exists {
		return model.Product{}, model.Transaction{}, ErrDuplicateSKU
	}

	now := l.now()
	product := model.Product{
		SKU:         sku,
		Name:        name,
		Price:       price,
		Quantity:    quantity,
		LastUpdated: now,
	}
	l.skus[key] = len(l.products)
	l.products = append(l.products, product)

	tx := l.record(model.Transaction{
		Type:        model.TxProductCreate,
		ProductSKU:  sku,
		ProductName: name,
		NewQuantity: intPtr(quantity),
		Timestamp:   now,
		Description: fmt.Sprintf("Product \"%s\" (SKU: %s) created with initial quantity of %d", name, sku, quantity),
	})
	return product, tx, nil
}

// AdjustStock adds (delta > 0) or removes (delta < 0) units of a product.
// A zero delta is rejected so the audit trail never holds no-op entries.
func (l *Ledger) AdjustStock(sku string, delta int) (model.Product, model.Transaction, error) {
	if delta == 0 {
		return model.Product{}, model.Transaction{}, fmt.Errorf("%w: quantity must be greater than 0", ErrInvalidQuantity)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	idx, ok := l.skus[normalize(sku)]
	if !ok {
		return model.Product{}, model.Transaction{}, ErrProductNotFound
	}
	product := l.products[idx]

	// Bounds are checked before adding so huge deltas cannot overflow.
	previous := product.Quantity
	if delta > 0 && delta > MaxQuantity-previous {
		return model.Product{}, model.Transaction{}, fmt.Errorf("%w: stock must not exceed %d", ErrInvalidQuantity, MaxQuantity)
	}
	if delta < 0 && (delta == math.MinInt || -delta > previous) {
		return model.Product{}, model.Transaction{}, ErrNegativeStock
	}
	next := previous + delta

	now := l.now()
	product.Quantity = next
	product.LastUpdated = now
	l.products[idx] = product

	txType, verb, magnitude := model.TxStockAdd, "Added", delta
	if delta < 0 {
		txType, verb, magnitude = model.TxStockRemove, "Removed", -delta
	}

	tx := l.record(model.Transaction{
		Type:             txType,
		ProductSKU:       product.SKU,
		ProductName:      product.Name,
		QuantityChange:   intPtr(magnitude),
		PreviousQuantity: intPtr(previous),
		NewQuantity:      intPtr(next),
		Timestamp:        now,
		Description: fmt.Sprintf("%s %d units of \"%s\" (SKU: %s). Stock: %d → %d",
			verb, magnitude, product.Name, product.SKU, previous, next),
	})
	return product, tx, nil
}

// UpdateProduct changes a product's name and price. Stock is left alone.
func (l *Ledger) UpdateProduct(sku, name string, price float64) (model.Product, model.Transaction, error) {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return model.Product{}, model.Transaction{}, err
	}
	if err := validatePrice(price); err != nil {
		return model.Product{}, model.Transaction{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	idx, ok := l.skus[normalize(sku)]
	if !ok {
		return model.Product{}, model.Transaction{}, ErrProductNotFound
	}
	product := l.products[idx]

	var changes []string
	if product.Name != name {
		changes = append(changes, fmt.Sprintf("name \"%s\" → \"%s\"", product.Name, name))
	}
	if product.Price != price {
		changes = append(changes, fmt.Sprintf("price %.2f → %.2f", product.Price, price))
	}
	if len(changes) == 0 {
		return model.Product{}, model.Transaction{}, ErrNoChanges
	}

	now := l.now()
	product.Name = name
	product.Price = price
	product.LastUpdated = now
	l.products[idx] = product

	tx := l.record(model.Transaction{
		Type:        model.TxProductUpdate,
		ProductSKU:  product.SKU,
		ProductName: product.Name,
		Timestamp:   now,
		Description: fmt.Sprintf("Product \"%s\" (SKU: %s) updated: %s", product.Name, product.SKU, strings.Join(changes, ", ")),
	})
	return product, tx, nil
}

// record stamps and appends a transaction. Caller holds the write lock.
func (l *Ledger) record(tx model.Transaction) model.Transaction {
	tx.ID = l.newID()
	tx.Seq = l.nextSeq()
	l.txByID[tx.ID] = len(l.transactions)
	l.transactions = append(l.transactions, tx)
	return tx
}

func intPtr(v int) *int {
	return &v
}

// GetProduct looks a product up by SKU, ignoring case and surrounding spaces.
func (l *Ledger) GetProduct(sku string) (model.Product, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	idx, ok := l.skus[normalize(sku)]
	if !ok {
		return model.Product{}, false
	}
	return l.products[idx], true
}

func (l *Ledger) GetTransaction(id string) (model.Transaction, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	idx, ok := l.txByID[strings.TrimSpace(id)]
	if !ok {
		return model.Transaction{}, false
	}
	return l.transactions[idx], true
}

// ListUsers returns users in registration order.
func (l *Ledger) ListUsers() []model.User {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append(make([]model.User, 0, len(l.users)), l.users...)
}

// ListProducts returns products in registration order.
func (l *Ledger) ListProducts() []model.Product {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append(make([]model.Product, 0, len(l.products)), l.products...)
}

// ListTransactions returns the audit trail oldest first. Reversing for
// display is up to the caller.
func (l *Ledger) ListTransactions() []model.Transaction {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append(make([]model.Transaction, 0, len(l.transactions)), l.transactions...)
}

// Stats holds collection sizes.
type Stats struct {
	Users        int `json:"users"`
	Products     int `json:"products"`
	Transactions int `json:"transactions"`
}

func (l *Ledger) Stats() Stats {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return Stats{
		Users:        len(l.users),
		Products:     len(l.products),
		Transactions: len(l.transactions),
	}
}

// Snapshot returns the collection sizes together with a copy of the
// products, both read under one lock so they always agree.
func (l *Ledger) Snapshot() (Stats, []model.Product) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return Stats{
		Users:        len(l.users),
		Products:     len(l.products),
		Transactions: len(l.transactions),
	}, append(make([]model.Product, 0, len(l.products)), l.products...)
}
