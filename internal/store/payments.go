package store

import (
	"context"
	"database/sql"
	"fmt"

	"sentinel-service/internal/models"

	"github.com/jmoiron/sqlx"
)

// CreatePayment creates a new payment record
func (s *Store) CreatePayment(ctx context.Context, payment *models.Payment) error {
	query := `
		INSERT INTO payments (order_id, amount, payment_date, reference_number, receipt_image_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	return s.db.GetContext(ctx, payment, query,
		payment.OrderID, payment.Amount, payment.PaymentDate,
		payment.ReferenceNumber, payment.ReceiptImageURL)
}

// GetPaymentByID retrieves a payment by ID
func (s *Store) GetPaymentByID(ctx context.Context, id string) (*models.Payment, error) {
	var payment models.Payment
	err := s.db.GetContext(ctx, &payment, "SELECT * FROM payments WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("payment %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// GetPaymentsByOrderID retrieves all payments for an order, newest first
func (s *Store) GetPaymentsByOrderID(ctx context.Context, orderID string) ([]models.Payment, error) {
	var payments []models.Payment
	err := s.db.SelectContext(ctx, &payments,
		"SELECT * FROM payments WHERE order_id = $1 ORDER BY payment_date DESC, created_at DESC", orderID)
	return payments, err
}

// GetPaymentsByOrderIDs retrieves payments for a set of orders in one query
func (s *Store) GetPaymentsByOrderIDs(ctx context.Context, orderIDs []string) ([]models.Payment, error) {
	if len(orderIDs) == 0 {
		return []models.Payment{}, nil
	}

	query, args, err := sqlx.In("SELECT * FROM payments WHERE order_id IN (?) ORDER BY payment_date ASC", orderIDs)
	if err != nil {
		return nil, err
	}
	query = s.db.Rebind(query)

	var payments []models.Payment
	err = s.db.SelectContext(ctx, &payments, query, args...)
	return payments, err
}

// DeletePayment removes a payment
func (s *Store) DeletePayment(ctx context.Context, paymentID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM payments WHERE id = $1", paymentID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("payment %s: %w", paymentID, ErrNotFound)
	}
	return nil
}
