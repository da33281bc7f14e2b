package service

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"go-inventory-ledger/internal/ledger"
	"go-inventory-ledger/internal/model"
	"go-inventory-ledger/pkg/validator"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var (
	ErrValidation          = errors.New("validation failed")
	ErrTransactionNotFound = errors.New("transaction not found")
)

// EventPublisher receives ledger events for the live feed.
type EventPublisher interface {
	Publish(payload any)
}

type InventoryService interface {
	CreateProduct(ctx context.Context, req *CreateProductRequest) (*model.Product, error)
	UpdateProduct(ctx context.Context, sku string, req *UpdateProductRequest) (*model.Product, error)
	AdjustStock(ctx context.Context, sku string, req *AdjustStockRequest) (*model.Transaction, error)
	GetProduct(ctx context.Context, sku string) (*model.Product, error)
	GetAllProducts(ctx context.Context) []model.Product
	GetTransactions(ctx context.Context, req *PageRequest) (*TransactionPage, error)
	GetTransactionByID(ctx context.Context, id string) (*model.Transaction, error)
}

// Length limits only; the ledger owns the business rules.
type CreateProductRequest struct {
	SKU      string  `json:"sku" validate:"max=50"`
	Name     string  `json:"name" validate:"max=255"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

type UpdateProductRequest struct {
	Name  string  `json:"name" validate:"max=255"`
	Price float64 `json:"price"`
}

// AdjustStockRequest carries a signed delta: positive adds, negative removes.
type AdjustStockRequest struct {
	Delta int `json:"delta"`
}

type PageRequest struct {
	Page     int `query:"page" validate:"gte=1"`
	PageSize int `query:"page_size" validate:"gte=1,lte=100"`
}

// TransactionPage lists transactions newest first.
type TransactionPage struct {
	Data       []model.Transaction `json:"data"`
	Page       int                 `json:"page"`
	PageSize   int                 `json:"page_size"`
	Total      int                 `json:"total"`
	TotalPages int                 `json:"total_pages"`
}

type inventoryService struct {
	ledger *ledger.Ledger
	events EventPublisher
	log    *zap.Logger
	tracer trace.Tracer
}

func NewInventoryService(l *ledger.Ledger, events EventPublisher, log *zap.Logger, tracer trace.Tracer) InventoryService {
	return &inventoryService{
		ledger: l,
		events: events,
		log:    log,
		tracer: tracer,
	}
}

func validate(req interface{}) error {
	if err := validator.Validate(req); err != nil {
		return fmt.Errorf("%w: %s", ErrValidation, err.Error())
	}
	return nil
}

// endSpan records err on the span, if any.
func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if kind := ledger.KindOf(err); kind != "" {
			span.SetAttributes(attribute.String("ledger.error_kind", string(kind)))
		}
	}
	span.End()
}

func productPayload(p model.Product) map[string]interface{} {
	return map[string]interface{}{
		"sku":      p.SKU,
		"name":     p.Name,
		"quantity": p.Quantity,
		"price":    p.Price,
	}
}

func (s *inventoryService) CreateProduct(ctx context.Context, req *CreateProductRequest) (product *model.Product, err error) {
	_, span := s.tracer.Start(ctx, "inventory.create_product",
		trace.WithAttributes(attribute.String("product.sku", req.SKU)))
	defer func() { endSpan(span, err) }()

	if err := validate(req); err != nil {
		return nil, err
	}

	p, tx, err := s.ledger.RegisterProduct(req.SKU, req.Name, req.Price, req.Quantity)
	if err != nil {
		s.log.Info("product rejected", zap.String("sku", req.SKU), zap.Error(err))
		return nil, err
	}

	s.log.Info("product created",
		zap.String("sku", p.SKU),
		zap.Int("quantity", p.Quantity),
		zap.String("transaction_id", tx.ID))

	s.events.Publish(map[string]interface{}{
		"type":        "stock_update",
		"action":      "product_created",
		"product":     productPayload(p),
		"transaction": tx,
		"message":     tx.Description,
	})
	return &p, nil
}

func (s *inventoryService) UpdateProduct(ctx context.Context, sku string, req *UpdateProductRequest) (product *model.Product, err error) {
	_, span := s.tracer.Start(ctx, "inventory.update_product",
		trace.WithAttributes(attribute.String("product.sku", sku)))
	defer func() { endSpan(span, err) }()

	if err := validate(req); err != nil {
		return nil, err
	}

	p, tx, err := s.ledger.UpdateProduct(sku, req.Name, req.Price)
	if err != nil {
		s.log.Info("product update rejected", zap.String("sku", sku), zap.Error(err))
		return nil, err
	}

	s.log.Info("product updated", zap.String("sku", p.SKU), zap.String("transaction_id", tx.ID))

	s.events.Publish(map[string]interface{}{
		"type":        "stock_update",
		"action":      "product_updated",
		"product":     productPayload(p),
		"transaction": tx,
		"message":     tx.Description,
	})
	return &p, nil
}

func (s *inventoryService) AdjustStock(ctx context.Context, sku string, req *AdjustStockRequest) (transaction *model.Transaction, err error) {
	_, span := s.tracer.Start(ctx, "inventory.adjust_stock",
		trace.WithAttributes(
			attribute.String("product.sku", sku),
			attribute.Int("stock.delta", req.Delta),
		))
	defer func() { endSpan(span, err) }()

	p, tx, err := s.ledger.AdjustStock(sku, req.Delta)
	if err != nil {
		s.log.Info("stock adjustment rejected",
			zap.String("sku", sku),
			zap.Int("delta", req.Delta),
			zap.Error(err))
		return nil, err
	}

	span.SetAttributes(attribute.Int("stock.new_quantity", p.Quantity))
	s.log.Info("stock adjusted",
		zap.String("sku", p.SKU),
		zap.Int("delta", req.Delta),
		zap.Int("quantity", p.Quantity),
		zap.String("transaction_id", tx.ID))

	s.events.Publish(map[string]interface{}{
		"type":        "stock_update",
		"action":      "transaction_created",
		"product":     productPayload(p),
		"transaction": tx,
		"message":     tx.Description,
	})
	return &tx, nil
}

func (s *inventoryService) GetProduct(ctx context.Context, sku string) (*model.Product, error) {
	p, ok := s.ledger.GetProduct(sku)
	if !ok {
		return nil, ledger.ErrProductNotFound
	}
	return &p, nil
}

func (s *inventoryService) GetAllProducts(ctx context.Context) []model.Product {
	return s.ledger.ListProducts()
}

func (s *inventoryService) GetTransactions(ctx context.Context, req *PageRequest) (*TransactionPage, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	all := s.ledger.ListTransactions()
	slices.Reverse(all)

	page := &TransactionPage{
		Data:       []model.Transaction{},
		Page:       req.Page,
		PageSize:   req.PageSize,
		Total:      len(all),
		TotalPages: (len(all) + req.PageSize - 1) / req.PageSize,
	}
	start := (req.Page - 1) * req.PageSize
	if start < len(all) {
		end := min(start+req.PageSize, len(all))
		page.Data = all[start:end]
	}
	return page, nil
}

func (s *inventoryService) GetTransactionByID(ctx context.Context, id string) (*model.Transaction, error) {
	tx, ok := s.ledger.GetTransaction(id)
	if !ok {
		return nil, ErrTransactionNotFound
	}
	return &tx, nil
}
