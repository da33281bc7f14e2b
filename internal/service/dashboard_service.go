package service

import (
	"context"
	"time"

	"go-inventory-ledger/internal/ledger"
	"go-inventory-ledger/internal/model"
)

const dateLayout = "2006-01-02"

type DashboardService interface {
	GetStockMovement(ctx context.Context, req *StockMovementRequest) ([]StockMovementData, error)
	GetDashboardStats(ctx context.Context) *DashboardStats
}

type StockMovementRequest struct {
	Days int `query:"days" validate:"gte=1,lte=365"`
}

// StockMovementData untuk chart data
type StockMovementData struct {
	Date     string `json:"date"`
	Inbound  int    `json:"inbound"`
	Outbound int    `json:"outbound"`
}

// DashboardStats untuk overview stats
type DashboardStats struct {
	TotalUsers        int     `json:"total_users"`
	TotalProducts     int     `json:"total_products"`
	TotalTransactions int     `json:"total_transactions"`
	LowStockCount     int     `json:"low_stock_count"`
	OutOfStockCount   int     `json:"out_of_stock_count"`
	TotalValuation    float64 `json:"total_valuation"`
}

type dashboardService struct {
	ledger       *ledger.Ledger
	lowThreshold int
	now          func() time.Time
}

func NewDashboardService(l *ledger.Ledger, lowThreshold int, now func() time.Time) DashboardService {
	if now == nil {
		now = time.Now
	}
	return &dashboardService{ledger: l, lowThreshold: lowThreshold, now: now}
}

// GetStockMovement totals units in and out per day for the last req.Days
// days, today included. Days without movement are reported as zero.
func (s *dashboardService) GetStockMovement(ctx context.Context, req *StockMovementRequest) ([]StockMovementData, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	today := s.now()
	loc := today.Location()
	start := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, -(req.Days - 1))

	results := make([]StockMovementData, req.Days)
	index := make(map[string]int, req.Days)
	for i := range results {
		date := start.AddDate(0, 0, i).Format(dateLayout)
		results[i].Date = date
		index[date] = i
	}

	for _, tx := range s.ledger.ListTransactions() {
		i, ok := index[tx.Timestamp.In(loc).Format(dateLayout)]
		if !ok {
			continue
		}
		switch {
		case tx.IsInbound():
			results[i].Inbound += tx.Units()
		case tx.Type == model.TxStockRemove:
			results[i].Outbound += tx.Units()
		}
	}
	return results, nil
}

func (s *dashboardService) GetDashboardStats(ctx context.Context) *DashboardStats {
	counts, products := s.ledger.Snapshot()
	stats := &DashboardStats{
		TotalUsers:        counts.Users,
		TotalProducts:     counts.Products,
		TotalTransactions: counts.Transactions,
	}

	for _, p := range products {
		switch p.Level(s.lowThreshold) {
		case model.StockOut:
			stats.OutOfStockCount++
		case model.StockLow:
			stats.LowStockCount++
		}
		stats.TotalValuation += p.Valuation()
	}
	return stats
}
