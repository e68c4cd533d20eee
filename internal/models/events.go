package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event types
const (
	EventTypeOrderCreated        = "ORDER_CREATED"
	EventTypeOrderUpdated        = "ORDER_UPDATED"
	EventTypeOrderDeleted        = "ORDER_DELETED"
	EventTypePaymentRecorded     = "PAYMENT_RECORDED"
	EventTypePaymentDeleted      = "PAYMENT_DELETED"
	EventTypeTransactionRecorded = "TRANSACTION_RECORDED"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderCreatedEvent published when an order is registered
type OrderCreatedEvent struct {
	BaseEvent
	OrderID      string          `json:"order_id"`
	CustomerName string          `json:"customer_name"`
	SalePrice    decimal.Decimal `json:"sale_price"`
	OrderDate    time.Time       `json:"order_date"`
}

// OrderUpdatedEvent published when an order is edited
type OrderUpdatedEvent struct {
	BaseEvent
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

// OrderDeletedEvent published when an order is removed
type OrderDeletedEvent struct {
	BaseEvent
	OrderID string `json:"order_id"`
}

// PaymentRecordedEvent published when a payment lands on an order
type PaymentRecordedEvent struct {
	BaseEvent
	OrderID   string          `json:"order_id"`
	PaymentID string          `json:"payment_id"`
	Amount    decimal.Decimal `json:"amount"`
	Remaining decimal.Decimal `json:"remaining"`
	OrderPaid bool            `json:"order_paid"`
}

// PaymentDeletedEvent published when a payment is removed
type PaymentDeletedEvent struct {
	BaseEvent
	OrderID   string `json:"order_id"`
	PaymentID string `json:"payment_id"`
}

// TransactionRecordedEvent published when an investment or withdrawal is saved
type TransactionRecordedEvent struct {
	BaseEvent
	TransactionID string          `json:"transaction_id"`
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
}
