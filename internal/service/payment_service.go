package service

import (
	"context"
	"fmt"
	"time"

	"sentinel-service/internal/broker"
	"sentinel-service/internal/debt"
	"sentinel-service/internal/models"
	"sentinel-service/internal/redisclient"
	"sentinel-service/internal/store"
	"sentinel-service/internal/util"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PaymentService handles payment bookkeeping against orders
type PaymentService struct {
	store          *store.Store
	redis          *redisclient.Client
	eventPublisher *broker.EventPublisher
	logger         *zap.Logger
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	store *store.Store,
	redis *redisclient.Client,
	eventPublisher *broker.EventPublisher,
) *PaymentService {
	return &PaymentService{
		store:          store,
		redis:          redis,
		eventPublisher: eventPublisher,
		logger:         util.GetLogger(),
	}
}

// PaymentRequest represents a request to record a payment
type PaymentRequest struct {
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	PaymentDate     string          `json:"payment_date"`
	ReferenceNumber string          `json:"reference_number"`
	ReceiptImageURL string          `json:"receipt_image_url"`
}

// RecordPayment registers a payment against an order and flips the order to
// paid once the cumulative payments cover the sale price.
func (ps *PaymentService) RecordPayment(ctx context.Context, orderID string, req *PaymentRequest) (*models.Payment, error) {
	ctx, span := util.StartSpan(ctx, "PaymentService.RecordPayment")
	defer span.End()

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("payment amount must be positive")
	}

	order, err := ps.store.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	paymentDate := time.Now()
	if req.PaymentDate != "" {
		paymentDate, err = time.Parse(dateLayout, req.PaymentDate)
		if err != nil {
			return nil, fmt.Errorf("invalid payment date %q: %w", req.PaymentDate, err)
		}
	}

	payment := &models.Payment{
		OrderID:         orderID,
		Amount:          req.Amount,
		PaymentDate:     paymentDate,
		ReferenceNumber: req.ReferenceNumber,
		ReceiptImageURL: req.ReceiptImageURL,
	}

	if err := ps.store.CreatePayment(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	util.PaymentsRecordedTotal.Inc()
	ps.logger.Info("Payment recorded",
		zap.String("order_id", orderID),
		zap.String("payment_id", payment.ID),
		zap.String("amount", payment.Amount.String()))

	remaining, err := ps.syncOrderStatus(ctx, order)
	if err != nil {
		ps.logger.Error("Failed to sync order status after payment", zap.Error(err))
	}

	event := &models.PaymentRecordedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypePaymentRecorded,
			Timestamp: time.Now(),
		},
		OrderID:   orderID,
		PaymentID: payment.ID,
		Amount:    payment.Amount,
		Remaining: remaining,
		OrderPaid: remaining.IsZero(),
	}
	if err := ps.eventPublisher.PublishPaymentRecorded(ctx, event); err != nil {
		ps.logger.Error("Failed to publish PaymentRecorded event", zap.Error(err))
	}

	ps.invalidateSnapshot(ctx)

	return payment, nil
}

// ListPayments retrieves the payments of an order, newest first
func (ps *PaymentService) ListPayments(ctx context.Context, orderID string) ([]models.Payment, error) {
	if _, err := ps.store.GetOrderByID(ctx, orderID); err != nil {
		return nil, err
	}
	return ps.store.GetPaymentsByOrderID(ctx, orderID)
}

// DeletePayment removes a payment and reverts the order to pending when the
// remaining balance becomes positive again.
func (ps *PaymentService) DeletePayment(ctx context.Context, paymentID string) error {
	ctx, span := util.StartSpan(ctx, "PaymentService.DeletePayment")
	defer span.End()

	payment, err := ps.store.GetPaymentByID(ctx, paymentID)
	if err != nil {
		return err
	}

	if err := ps.store.DeletePayment(ctx, paymentID); err != nil {
		return err
	}

	util.PaymentsDeletedTotal.Inc()
	ps.logger.Info("Payment deleted",
		zap.String("payment_id", paymentID),
		zap.String("order_id", payment.OrderID))

	order, err := ps.store.GetOrderByID(ctx, payment.OrderID)
	if err == nil {
		if _, err := ps.syncOrderStatus(ctx, order); err != nil {
			ps.logger.Error("Failed to sync order status after payment delete", zap.Error(err))
		}
	}

	event := &models.PaymentDeletedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypePaymentDeleted,
			Timestamp: time.Now(),
		},
		OrderID:   payment.OrderID,
		PaymentID: paymentID,
	}
	if err := ps.eventPublisher.PublishPaymentDeleted(ctx, event); err != nil {
		ps.logger.Error("Failed to publish PaymentDeleted event", zap.Error(err))
	}

	ps.invalidateSnapshot(ctx)

	return nil
}

// syncOrderStatus recomputes the remaining balance and keeps the order status
// consistent with it. Returns the remaining balance.
func (ps *PaymentService) syncOrderStatus(ctx context.Context, order *models.Order) (decimal.Decimal, error) {
	payments, err := ps.store.GetPaymentsByOrderID(ctx, order.ID)
	if err != nil {
		return decimal.Zero, err
	}

	remaining := debt.Remaining(order.SalePrice, payments)

	switch {
	case remaining.IsZero() && order.Status != models.OrderStatusPaid:
		if err := ps.store.UpdateOrderStatus(ctx, order.ID, models.OrderStatusPaid); err != nil {
			return remaining, err
		}
		util.OrdersSettledTotal.Inc()
		ps.logger.Info("Order fully paid", zap.String("order_id", order.ID))

	case remaining.IsPositive() && order.Status == models.OrderStatusPaid:
		if err := ps.store.UpdateOrderStatus(ctx, order.ID, models.OrderStatusPending); err != nil {
			return remaining, err
		}
		ps.logger.Info("Order reverted to pending", zap.String("order_id", order.ID))
	}

	return remaining, nil
}

func (ps *PaymentService) invalidateSnapshot(ctx context.Context) {
	if err := ps.redis.InvalidateDashboardSnapshot(ctx); err != nil {
		ps.logger.Warn("Failed to invalidate dashboard snapshot", zap.Error(err))
	}
}
