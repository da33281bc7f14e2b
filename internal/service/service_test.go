package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"go-inventory-ledger/internal/ledger"
	"go-inventory-ledger/internal/model"

	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
)

// Mock EventPublisher
type recordingPublisher struct {
	mu     sync.Mutex
	events []map[string]interface{}
}

func (p *recordingPublisher) Publish(payload any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, payload.(map[string]interface{}))
}

func (p *recordingPublisher) actions() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e["action"].(string)
	}
	return out
}

func newInventory(t *testing.T) (InventoryService, *ledger.Ledger, *recordingPublisher) {
	t.Helper()
	l := ledger.New()
	pub := &recordingPublisher{}
	svc := NewInventoryService(l, pub, zap.NewNop(), noop.NewTracerProvider().Tracer("test"))
	return svc, l, pub
}

func TestCreateProduct_PublishesEvent(t *testing.T) {
	svc, _, pub := newInventory(t)
	ctx := context.Background()

	p, err := svc.CreateProduct(ctx, &CreateProductRequest{SKU: "sku-1", Name: "Widget", Price: 9.99, Quantity: 5})
	if err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}
	if p.SKU != "sku-1" {
		t.Errorf("expected sku-1, got %s", p.SKU)
	}

	if got := pub.actions(); len(got) != 1 || got[0] != "product_created" {
		t.Fatalf("expected one product_created event, got %v", got)
	}
	tx := pub.events[0]["transaction"].(model.Transaction)
	if tx.Type != model.TxProductCreate {
		t.Errorf("expected product_create transaction, got %s", tx.Type)
	}
}

func TestCreateProduct_RejectedDoesNotPublish(t *testing.T) {
	svc, l, pub := newInventory(t)
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, &CreateProductRequest{SKU: "sku-1", Name: "Widget", Price: 0})
	if !errors.Is(err, ledger.ErrInvalidPrice) {
		t.Errorf("expected ErrInvalidPrice, got %v", err)
	}

	_, err = svc.CreateProduct(ctx, &CreateProductRequest{SKU: strings.Repeat("x", 51), Name: "Widget", Price: 1})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for long sku, got %v", err)
	}

	if len(pub.actions()) != 0 {
		t.Errorf("expected no events, got %v", pub.actions())
	}
	if len(l.ListProducts()) != 0 {
		t.Error("expected no products")
	}
}

func TestAdjustStock(t *testing.T) {
	svc, l, pub := newInventory(t)
	ctx := context.Background()
	if _, err := svc.CreateProduct(ctx, &CreateProductRequest{SKU: "sku-1", Name: "Widget", Price: 1, Quantity: 5}); err != nil {
		t.Fatal(err)
	}

	tx, err := svc.AdjustStock(ctx, "SKU-1", &AdjustStockRequest{Delta: 3})
	if err != nil {
		t.Fatalf("adjust failed: %v", err)
	}
	if tx.Type != model.TxStockAdd || *tx.NewQuantity != 8 {
		t.Errorf("unexpected transaction %+v", tx)
	}

	_, err = svc.AdjustStock(ctx, "sku-1", &AdjustStockRequest{Delta: -20})
	if !errors.Is(err, ledger.ErrNegativeStock) {
		t.Errorf("expected ErrNegativeStock, got %v", err)
	}
	if p, _ := l.GetProduct("sku-1"); p.Quantity != 8 {
		t.Errorf("expected quantity 8, got %d", p.Quantity)
	}

	want := []string{"product_created", "transaction_created"}
	if got := pub.actions(); fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("expected events %v, got %v", want, got)
	}
}

func TestUpdateProduct(t *testing.T) {
	svc, _, pub := newInventory(t)
	ctx := context.Background()
	if _, err := svc.CreateProduct(ctx, &CreateProductRequest{SKU: "sku-1", Name: "Widget", Price: 1, Quantity: 5}); err != nil {
		t.Fatal(err)
	}

	p, err := svc.UpdateProduct(ctx, "sku-1", &UpdateProductRequest{Name: "Widget Pro", Price: 2})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if p.Name != "Widget Pro" || p.Quantity != 5 {
		t.Errorf("unexpected product %+v", p)
	}
	if got := pub.actions(); got[len(got)-1] != "product_updated" {
		t.Errorf("expected product_updated event, got %v", got)
	}
}

func TestGetProduct(t *testing.T) {
	svc, _, _ := newInventory(t)
	ctx := context.Background()
	if _, err := svc.CreateProduct(ctx, &CreateProductRequest{SKU: "sku-1", Name: "Widget", Price: 1}); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.GetProduct(ctx, "Sku-1"); err != nil {
		t.Errorf("expected product, got %v", err)
	}
	if _, err := svc.GetProduct(ctx, "nope"); !errors.Is(err, ledger.ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
	if got := len(svc.GetAllProducts(ctx)); got != 1 {
		t.Errorf("expected 1 product, got %d", got)
	}
}

func TestGetTransactions_Pagination(t *testing.T) {
	svc, _, _ := newInventory(t)
	ctx := context.Background()
	if _, err := svc.CreateProduct(ctx, &CreateProductRequest{SKU: "sku-1", Name: "Widget", Price: 1}); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 11; i++ {
		if _, err := svc.AdjustStock(ctx, "sku-1", &AdjustStockRequest{Delta: 1}); err != nil {
			t.Fatal(err)
		}
	}

	page, err := svc.GetTransactions(ctx, &PageRequest{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Total != 12 || page.TotalPages != 2 || len(page.Data) != 10 {
		t.Errorf("unexpected page meta total=%d pages=%d len=%d", page.Total, page.TotalPages, len(page.Data))
	}
	if *page.Data[0].NewQuantity != 11 {
		t.Errorf("expected newest first, got newQuantity %d", *page.Data[0].NewQuantity)
	}

	page, _ = svc.GetTransactions(ctx, &PageRequest{Page: 2, PageSize: 10})
	if len(page.Data) != 2 || page.Data[1].Type != model.TxProductCreate {
		t.Errorf("expected oldest transaction last on page 2, got %+v", page.Data)
	}

	page, _ = svc.GetTransactions(ctx, &PageRequest{Page: 5, PageSize: 10})
	if page.Data == nil || len(page.Data) != 0 {
		t.Errorf("expected empty non-nil page, got %v", page.Data)
	}

	if _, err := svc.GetTransactions(ctx, &PageRequest{Page: 0, PageSize: 10}); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestGetTransactionByID(t *testing.T) {
	svc, l, _ := newInventory(t)
	ctx := context.Background()
	if _, err := svc.CreateProduct(ctx, &CreateProductRequest{SKU: "sku-1", Name: "Widget", Price: 1}); err != nil {
		t.Fatal(err)
	}
	id := l.ListTransactions()[0].ID

	tx, err := svc.GetTransactionByID(ctx, id)
	if err != nil || tx.ID != id {
		t.Errorf("expected transaction %s, got %v (%v)", id, tx, err)
	}
	if _, err := svc.GetTransactionByID(ctx, "missing"); !errors.Is(err, ErrTransactionNotFound) {
		t.Errorf("expected ErrTransactionNotFound, got %v", err)
	}
}

func TestUserService(t *testing.T) {
	l := ledger.New()
	svc := NewUserService(l, zap.NewNop(), noop.NewTracerProvider().Tracer("test"))
	ctx := context.Background()

	if svc.Registered(ctx) {
		t.Error("expected no registration yet")
	}
	u, err := svc.RegisterUser(ctx, &RegisterUserRequest{Email: "a@b.com", FullName: "Jo"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if !svc.Registered(ctx) {
		t.Error("expected registered after sign-up")
	}

	_, err = svc.RegisterUser(ctx, &RegisterUserRequest{Email: "A@B.com", FullName: "Jo Two"})
	if !errors.Is(err, ledger.ErrDuplicateEmail) {
		t.Errorf("expected ErrDuplicateEmail, got %v", err)
	}

	users := svc.GetAllUsers(ctx)
	if len(users) != 1 || users[0].ID != u.ID {
		t.Errorf("unexpected users %+v", users)
	}
}

func TestDashboardStats(t *testing.T) {
	svc, l, _ := newInventory(t)
	ctx := context.Background()
	for _, req := range []CreateProductRequest{
		{SKU: "a", Name: "Alpha", Price: 2, Quantity: 0},
		{SKU: "b", Name: "Beta", Price: 1.5, Quantity: 4},
		{SKU: "c", Name: "Gamma", Price: 10, Quantity: 10},
	} {
		if _, err := svc.CreateProduct(ctx, &req); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := l.RegisterUser("a@b.com", "Jo"); err != nil {
		t.Fatal(err)
	}

	stats := NewDashboardService(l, 10, nil).GetDashboardStats(ctx)
	want := DashboardStats{
		TotalUsers:        1,
		TotalProducts:     3,
		TotalTransactions: 3,
		LowStockCount:     1,
		OutOfStockCount:   1,
		TotalValuation:    106,
	}
	if *stats != want {
		t.Errorf("expected %+v, got %+v", want, *stats)
	}
}

func TestStockMovement(t *testing.T) {
	day := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	clock := day.AddDate(0, 0, -2)
	l := ledger.New(ledger.WithClock(func() time.Time { return clock }))

	if _, _, err := l.RegisterProduct("a", "Alpha", 1, 5); err != nil {
		t.Fatal(err)
	}
	clock = day
	if _, _, err := l.AdjustStock("a", 3); err != nil {
		t.Fatal(err)
	}
	if _, _, err := l.AdjustStock("a", -2); err != nil {
		t.Fatal(err)
	}
	if _, _, err := l.UpdateProduct("a", "Alpha 2", 1); err != nil {
		t.Fatal(err)
	}

	dash := NewDashboardService(l, 10, func() time.Time { return day })
	data, err := dash.GetStockMovement(context.Background(), &StockMovementRequest{Days: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []StockMovementData{
		{Date: "2026-03-08", Inbound: 5},
		{Date: "2026-03-09"},
		{Date: "2026-03-10", Inbound: 3, Outbound: 2},
	}
	if fmt.Sprint(data) != fmt.Sprint(want) {
		t.Errorf("expected %v, got %v", want, data)
	}

	// the creation day falls outside a one-day window
	data, _ = dash.GetStockMovement(context.Background(), &StockMovementRequest{Days: 1})
	if len(data) != 1 || data[0].Inbound != 3 {
		t.Errorf("unexpected one-day movement %v", data)
	}

	if _, err := dash.GetStockMovement(context.Background(), &StockMovementRequest{Days: 0}); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}
