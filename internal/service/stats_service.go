package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"sentinel-service/internal/debt"
	"sentinel-service/internal/models"
	"sentinel-service/internal/redisclient"
	"sentinel-service/internal/util"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Stats periods
const (
	PeriodWeek  = "week"
	PeriodMonth = "month"
	PeriodYear  = "year"
)

// StatsService computes dashboard statistics, customer debts and the
// payment-due calendar. The heavy snapshot (debts + calendar) is cached in
// Redis and rebuilt on demand or by the ledger worker; reads always fall back
// to recomputation, so the cache is an optimization only.
type StatsService struct {
	orders      *OrderService
	redis       *redisclient.Client
	scheduler   *debt.Scheduler
	snapshotTTL time.Duration
	logger      *zap.Logger
}

// NewStatsService creates a new stats service
func NewStatsService(
	orders *OrderService,
	redis *redisclient.Client,
	scheduler *debt.Scheduler,
	snapshotTTL time.Duration,
) *StatsService {
	return &StatsService{
		orders:      orders,
		redis:       redis,
		scheduler:   scheduler,
		snapshotTTL: snapshotTTL,
		logger:      util.GetLogger(),
	}
}

// PeriodStats aggregates order figures over a trailing window
type PeriodStats struct {
	Period          string          `json:"period"`
	OrderCount      int             `json:"order_count"`
	PaidOrders      int             `json:"paid_orders"`
	PendingOrders   int             `json:"pending_orders"`
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
	TotalInvestment decimal.Decimal `json:"total_investment"`
	TotalProfit     decimal.Decimal `json:"total_profit"`
	TotalPaid       decimal.Decimal `json:"total_paid"`
	Receivable      decimal.Decimal `json:"receivable"`
	ProfitMarginPct decimal.Decimal `json:"profit_margin_pct"`
}

// DashboardSnapshot is the cached derived state behind the statistics view
type DashboardSnapshot struct {
	GeneratedAt   time.Time                   `json:"generated_at"`
	CustomerDebts []debt.CustomerDebt         `json:"customer_debts"`
	Calendar      map[string]debt.DailyBucket `json:"calendar"`
}

// Stats computes period statistics over orders dated within the window
func (ss *StatsService) Stats(ctx context.Context, period string) (*PeriodStats, error) {
	ctx, span := util.StartSpan(ctx, "StatsService.Stats")
	defer span.End()

	now := time.Now()
	var cutoff time.Time
	switch period {
	case PeriodWeek:
		cutoff = now.AddDate(0, 0, -7)
	case PeriodMonth:
		cutoff = now.AddDate(0, -1, 0)
	case PeriodYear:
		cutoff = now.AddDate(-1, 0, 0)
	default:
		return nil, fmt.Errorf("invalid period %q", period)
	}

	orders, err := ss.orders.ListOrdersSince(ctx, debt.Day(cutoff))
	if err != nil {
		return nil, err
	}

	stats := &PeriodStats{
		Period:          period,
		TotalRevenue:    decimal.Zero,
		TotalInvestment: decimal.Zero,
		TotalProfit:     decimal.Zero,
		TotalPaid:       decimal.Zero,
	}

	for _, ow := range orders {
		stats.OrderCount++
		if ow.Order.Status == models.OrderStatusPaid {
			stats.PaidOrders++
		}
		stats.TotalRevenue = stats.TotalRevenue.Add(ow.Order.SalePrice)
		stats.TotalInvestment = stats.TotalInvestment.Add(ow.Order.PurchasePrice)
		stats.TotalProfit = stats.TotalProfit.Add(ow.Order.Profit)
		for _, p := range ow.Payments {
			stats.TotalPaid = stats.TotalPaid.Add(p.Amount)
		}
	}

	stats.PendingOrders = stats.OrderCount - stats.PaidOrders
	stats.Receivable = stats.TotalRevenue.Sub(stats.TotalPaid)
	if stats.TotalRevenue.IsPositive() {
		stats.ProfitMarginPct = stats.TotalProfit.
			Div(stats.TotalRevenue).
			Mul(decimal.NewFromInt(100)).
			Round(1)
	} else {
		stats.ProfitMarginPct = decimal.Zero
	}

	return stats, nil
}

// CustomerDebts returns the sorted per-customer debt summary
func (ss *StatsService) CustomerDebts(ctx context.Context) ([]debt.CustomerDebt, error) {
	snapshot, err := ss.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snapshot.CustomerDebts, nil
}

// Calendar returns the daily buckets falling within the given month
func (ss *StatsService) Calendar(ctx context.Context, year int, month time.Month) (map[string]debt.DailyBucket, error) {
	snapshot, err := ss.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	result := make(map[string]debt.DailyBucket)
	for key, bucket := range snapshot.Calendar {
		if bucket.Date.Year() == year && bucket.Date.Month() == month {
			result[key] = bucket
		}
	}
	return result, nil
}

// Snapshot returns the cached dashboard snapshot, rebuilding it on a miss
func (ss *StatsService) Snapshot(ctx context.Context) (*DashboardSnapshot, error) {
	payload, err := ss.redis.GetDashboardSnapshot(ctx)
	if err != nil {
		ss.logger.Warn("Snapshot cache read failed, recomputing", zap.Error(err))
	} else if payload != nil {
		var snapshot DashboardSnapshot
		if err := json.Unmarshal(payload, &snapshot); err == nil {
			util.SnapshotCacheHitsTotal.Inc()
			return &snapshot, nil
		}
		ss.logger.Warn("Corrupt snapshot cache entry, recomputing")
	}

	return ss.RebuildSnapshot(ctx, "cache_miss")
}

// RebuildSnapshot recomputes the customer debts and payment calendar from the
// current ledger and stores the result in Redis.
func (ss *StatsService) RebuildSnapshot(ctx context.Context, trigger string) (*DashboardSnapshot, error) {
	orders, err := ss.orders.ListOrders(ctx)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	now := time.Now()

	debts := ss.scheduler.AggregateCustomerDebts(orders, now)
	buckets := debt.BucketByDay(debt.ExpandCalendar(debts, now))

	calendar := make(map[string]debt.DailyBucket, len(buckets))
	for day, bucket := range buckets {
		calendar[day.Format(dateLayout)] = *bucket
	}

	util.DebtComputeLatency.Observe(time.Since(start).Seconds())
	util.SnapshotRebuildsTotal.WithLabelValues(trigger).Inc()

	snapshot := &DashboardSnapshot{
		GeneratedAt:   now,
		CustomerDebts: debts,
		Calendar:      calendar,
	}

	payload, err := json.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	if err := ss.redis.SetDashboardSnapshot(ctx, payload, ss.snapshotTTL); err != nil {
		ss.logger.Warn("Failed to cache dashboard snapshot", zap.Error(err))
	}

	ss.logger.Info("Dashboard snapshot rebuilt",
		zap.String("trigger", trigger),
		zap.Int("customers", len(debts)),
		zap.Int("calendar_days", len(calendar)))

	return snapshot, nil
}
