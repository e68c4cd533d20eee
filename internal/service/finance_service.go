package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"sentinel-service/internal/broker"
	"sentinel-service/internal/debt"
	"sentinel-service/internal/models"
	"sentinel-service/internal/store"
	"sentinel-service/internal/util"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// FinanceService handles investment/withdrawal bookkeeping and the
// money-position summary of the business.
type FinanceService struct {
	store          *store.Store
	eventPublisher *broker.EventPublisher
	logger         *zap.Logger
}

// NewFinanceService creates a new finance service
func NewFinanceService(store *store.Store, eventPublisher *broker.EventPublisher) *FinanceService {
	return &FinanceService{
		store:          store,
		eventPublisher: eventPublisher,
		logger:         util.GetLogger(),
	}
}

// TransactionRequest represents a request to record an investment or withdrawal
type TransactionRequest struct {
	Type            string          `json:"type" binding:"required"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	Description     string          `json:"description" binding:"required"`
	TransactionDate string          `json:"transaction_date"`
}

// FinancialSummary is the money position across orders and owner transactions
type FinancialSummary struct {
	TotalPaid      decimal.Decimal `json:"total_paid"`
	TotalPending   decimal.Decimal `json:"total_pending"`
	TotalInvested  decimal.Decimal `json:"total_invested"`
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	OwnerInvested  decimal.Decimal `json:"owner_invested"`
	OwnerWithdrawn decimal.Decimal `json:"owner_withdrawn"`
	NetCashFlow    decimal.Decimal `json:"net_cash_flow"`
}

// RecordTransaction saves an investment or withdrawal
func (fs *FinanceService) RecordTransaction(ctx context.Context, req *TransactionRequest) (*models.FinancialTransaction, error) {
	ctx, span := util.StartSpan(ctx, "FinanceService.RecordTransaction")
	defer span.End()

	if req.Type != models.TransactionTypeInvestment && req.Type != models.TransactionTypeWithdrawal {
		return nil, fmt.Errorf("invalid transaction type %q", req.Type)
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("transaction amount must be positive")
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, fmt.Errorf("transaction description is required")
	}

	txDate := time.Now()
	if req.TransactionDate != "" {
		var err error
		txDate, err = time.Parse(dateLayout, req.TransactionDate)
		if err != nil {
			return nil, fmt.Errorf("invalid transaction date %q: %w", req.TransactionDate, err)
		}
	}

	tx := &models.FinancialTransaction{
		Amount:          req.Amount,
		Description:     strings.TrimSpace(req.Description),
		Type:            req.Type,
		TransactionDate: txDate,
	}

	if err := fs.store.CreateTransaction(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	util.TransactionsRecordedTotal.WithLabelValues(tx.Type).Inc()
	fs.logger.Info("Financial transaction recorded",
		zap.String("transaction_id", tx.ID),
		zap.String("type", tx.Type),
		zap.String("amount", tx.Amount.String()))

	event := &models.TransactionRecordedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeTransactionRecorded,
			Timestamp: time.Now(),
		},
		TransactionID: tx.ID,
		Type:          tx.Type,
		Amount:        tx.Amount,
	}
	if err := fs.eventPublisher.PublishTransactionRecorded(ctx, event); err != nil {
		fs.logger.Error("Failed to publish TransactionRecorded event", zap.Error(err))
	}

	return tx, nil
}

// ListTransactions retrieves all transactions, newest first
func (fs *FinanceService) ListTransactions(ctx context.Context) ([]models.FinancialTransaction, error) {
	return fs.store.GetTransactions(ctx)
}

// Summary computes the money position: collected, pending, invested,
// revenue and net cash flow (collected minus owner investments/withdrawals).
func (fs *FinanceService) Summary(ctx context.Context, orders []debt.OrderWithPayments) (*FinancialSummary, error) {
	ctx, span := util.StartSpan(ctx, "FinanceService.Summary")
	defer span.End()

	summary := &FinancialSummary{
		TotalPaid:     decimal.Zero,
		TotalPending:  decimal.Zero,
		TotalInvested: decimal.Zero,
		TotalRevenue:  decimal.Zero,
	}

	for _, ow := range orders {
		paid := decimal.Zero
		for _, p := range ow.Payments {
			paid = paid.Add(p.Amount)
		}
		summary.TotalPaid = summary.TotalPaid.Add(paid)
		summary.TotalInvested = summary.TotalInvested.Add(ow.Order.PurchasePrice)
		summary.TotalRevenue = summary.TotalRevenue.Add(ow.Order.SalePrice)
		if ow.Order.Status == models.OrderStatusPending {
			summary.TotalPending = summary.TotalPending.Add(ow.Order.SalePrice.Sub(paid))
		}
	}

	invested, err := fs.store.SumTransactionsByType(ctx, models.TransactionTypeInvestment)
	if err != nil {
		return nil, fmt.Errorf("failed to sum investments: %w", err)
	}
	withdrawn, err := fs.store.SumTransactionsByType(ctx, models.TransactionTypeWithdrawal)
	if err != nil {
		return nil, fmt.Errorf("failed to sum withdrawals: %w", err)
	}

	summary.OwnerInvested = invested
	summary.OwnerWithdrawn = withdrawn
	summary.NetCashFlow = summary.TotalPaid.Sub(invested).Sub(withdrawn)

	return summary, nil
}
