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

const dateLayout = "2006-01-02"

// OrderService handles order business logic
type OrderService struct {
	store          *store.Store
	redis          *redisclient.Client
	eventPublisher *broker.EventPublisher
	logger         *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(
	store *store.Store,
	redis *redisclient.Client,
	eventPublisher *broker.EventPublisher,
) *OrderService {
	return &OrderService{
		store:          store,
		redis:          redis,
		eventPublisher: eventPublisher,
		logger:         util.GetLogger(),
	}
}

// OrderRequest represents a request to create or update an order
type OrderRequest struct {
	OrderDate          string          `json:"order_date" binding:"required"`
	CustomerName       string          `json:"customer_name" binding:"required"`
	ProductDescription string          `json:"product_description"`
	PurchasePrice      decimal.Decimal `json:"purchase_price"`
	SalePrice          decimal.Decimal `json:"sale_price" binding:"required"`
	Status             string          `json:"status"`
	MerchandiseStatus  string          `json:"merchandise_status"`
}

func (r *OrderRequest) toOrder() (*models.Order, error) {
	orderDate, err := time.Parse(dateLayout, r.OrderDate)
	if err != nil {
		return nil, fmt.Errorf("invalid order date %q: %w", r.OrderDate, err)
	}

	status := r.Status
	if status == "" {
		status = models.OrderStatusPending
	}
	if status != models.OrderStatusPending && status != models.OrderStatusPaid {
		return nil, fmt.Errorf("invalid order status %q", status)
	}

	merchandise := r.MerchandiseStatus
	if merchandise == "" {
		merchandise = models.MerchandiseToBuy
	}

	return &models.Order{
		OrderDate:          orderDate,
		CustomerName:       r.CustomerName,
		ProductDescription: r.ProductDescription,
		PurchasePrice:      r.PurchasePrice,
		SalePrice:          r.SalePrice,
		Profit:             r.SalePrice.Sub(r.PurchasePrice),
		Status:             status,
		MerchandiseStatus:  merchandise,
	}, nil
}

// CreateOrder registers a new order
func (s *OrderService) CreateOrder(ctx context.Context, req *OrderRequest) (*models.Order, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.CreateOrder")
	defer span.End()

	order, err := req.toOrder()
	if err != nil {
		util.OrdersFailedTotal.WithLabelValues("invalid_request").Inc()
		return nil, err
	}

	if err := s.store.CreateOrder(ctx, order); err != nil {
		util.OrdersFailedTotal.WithLabelValues("db_error").Inc()
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	util.OrdersCreatedTotal.Inc()
	s.logger.Info("Order created",
		zap.String("order_id", order.ID),
		zap.String("customer", order.CustomerName))

	event := &models.OrderCreatedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeOrderCreated,
			Timestamp: time.Now(),
		},
		OrderID:      order.ID,
		CustomerName: order.CustomerName,
		SalePrice:    order.SalePrice,
		OrderDate:    order.OrderDate,
	}
	if err := s.eventPublisher.PublishOrderCreated(ctx, event); err != nil {
		s.logger.Error("Failed to publish OrderCreated event", zap.Error(err))
	}

	s.invalidateSnapshot(ctx)

	return order, nil
}

// UpdateOrder edits an existing order
func (s *OrderService) UpdateOrder(ctx context.Context, orderID string, req *OrderRequest) (*models.Order, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.UpdateOrder")
	defer span.End()

	order, err := req.toOrder()
	if err != nil {
		util.OrdersFailedTotal.WithLabelValues("invalid_request").Inc()
		return nil, err
	}
	order.ID = orderID

	if err := s.store.UpdateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	util.OrdersUpdatedTotal.Inc()
	s.logger.Info("Order updated", zap.String("order_id", orderID))

	event := &models.OrderUpdatedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeOrderUpdated,
			Timestamp: time.Now(),
		},
		OrderID: orderID,
		Status:  order.Status,
	}
	if err := s.eventPublisher.PublishOrderUpdated(ctx, event); err != nil {
		s.logger.Error("Failed to publish OrderUpdated event", zap.Error(err))
	}

	s.invalidateSnapshot(ctx)

	return order, nil
}

// DeleteOrder removes an order and its payments
func (s *OrderService) DeleteOrder(ctx context.Context, orderID string) error {
	ctx, span := util.StartSpan(ctx, "OrderService.DeleteOrder")
	defer span.End()

	if err := s.store.DeleteOrder(ctx, orderID); err != nil {
		return err
	}

	util.OrdersDeletedTotal.Inc()
	s.logger.Info("Order deleted", zap.String("order_id", orderID))

	event := &models.OrderDeletedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeOrderDeleted,
			Timestamp: time.Now(),
		},
		OrderID: orderID,
	}
	if err := s.eventPublisher.PublishOrderDeleted(ctx, event); err != nil {
		s.logger.Error("Failed to publish OrderDeleted event", zap.Error(err))
	}

	s.invalidateSnapshot(ctx)

	return nil
}

// GetOrder retrieves an order together with its payments
func (s *OrderService) GetOrder(ctx context.Context, orderID string) (*debt.OrderWithPayments, error) {
	order, err := s.store.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	payments, err := s.store.GetPaymentsByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	return &debt.OrderWithPayments{Order: *order, Payments: payments}, nil
}

// ListOrders retrieves all orders with their payments, newest first
func (s *OrderService) ListOrders(ctx context.Context) ([]debt.OrderWithPayments, error) {
	orders, err := s.store.GetOrders(ctx)
	if err != nil {
		return nil, err
	}
	return s.attachPayments(ctx, orders)
}

// ListOrdersSince retrieves orders dated on or after the cutoff with payments
func (s *OrderService) ListOrdersSince(ctx context.Context, cutoff time.Time) ([]debt.OrderWithPayments, error) {
	orders, err := s.store.GetOrdersSince(ctx, cutoff)
	if err != nil {
		return nil, err
	}
	return s.attachPayments(ctx, orders)
}

// attachPayments joins payments onto orders with a single batched query
func (s *OrderService) attachPayments(ctx context.Context, orders []models.Order) ([]debt.OrderWithPayments, error) {
	ids := make([]string, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}

	payments, err := s.store.GetPaymentsByOrderIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load payments: %w", err)
	}

	byOrder := make(map[string][]models.Payment, len(orders))
	for _, p := range payments {
		byOrder[p.OrderID] = append(byOrder[p.OrderID], p)
	}

	result := make([]debt.OrderWithPayments, len(orders))
	for i, o := range orders {
		result[i] = debt.OrderWithPayments{Order: o, Payments: byOrder[o.ID]}
	}
	return result, nil
}

func (s *OrderService) invalidateSnapshot(ctx context.Context) {
	if err := s.redis.InvalidateDashboardSnapshot(ctx); err != nil {
		s.logger.Warn("Failed to invalidate dashboard snapshot", zap.Error(err))
	}
}
