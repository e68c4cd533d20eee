package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"sentinel-service/internal/models"
)

// CreateOrder creates a new order
func (s *Store) CreateOrder(ctx context.Context, order *models.Order) error {
	query := `
		INSERT INTO orders (order_date, customer_name, product_description, purchase_price, sale_price, profit, status, merchandise_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`

	return s.db.GetContext(ctx, order, query,
		order.OrderDate, order.CustomerName, order.ProductDescription,
		order.PurchasePrice, order.SalePrice, order.Profit,
		order.Status, order.MerchandiseStatus)
}

// GetOrderByID retrieves an order by ID
func (s *Store) GetOrderByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	err := s.db.GetContext(ctx, &order, "SELECT * FROM orders WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("order %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOrders retrieves all orders, newest first
func (s *Store) GetOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.SelectContext(ctx, &orders,
		"SELECT * FROM orders ORDER BY order_date DESC, created_at DESC")
	return orders, err
}

// GetOrdersSince retrieves orders dated on or after the cutoff, newest first
func (s *Store) GetOrdersSince(ctx context.Context, cutoff time.Time) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.SelectContext(ctx, &orders,
		"SELECT * FROM orders WHERE order_date >= $1 ORDER BY order_date DESC, created_at DESC", cutoff)
	return orders, err
}

// UpdateOrder updates the editable fields of an order
func (s *Store) UpdateOrder(ctx context.Context, order *models.Order) error {
	query := `
		UPDATE orders
		SET order_date = $1, customer_name = $2, product_description = $3,
		    purchase_price = $4, sale_price = $5, profit = $6,
		    status = $7, merchandise_status = $8, updated_at = NOW()
		WHERE id = $9
		RETURNING updated_at`

	err := s.db.GetContext(ctx, &order.UpdatedAt, query,
		order.OrderDate, order.CustomerName, order.ProductDescription,
		order.PurchasePrice, order.SalePrice, order.Profit,
		order.Status, order.MerchandiseStatus, order.ID)
	if err == sql.ErrNoRows {
		return fmt.Errorf("order %s: %w", order.ID, ErrNotFound)
	}
	return err
}

// UpdateOrderStatus updates order status
func (s *Store) UpdateOrderStatus(ctx context.Context, orderID, status string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2",
		status, orderID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("order %s: %w", orderID, ErrNotFound)
	}
	return nil
}

// DeleteOrder removes an order and its payments
func (s *Store) DeleteOrder(ctx context.Context, orderID string) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM payments WHERE order_id = $1", orderID); err != nil {
		return fmt.Errorf("failed to delete payments: %w", err)
	}

	res, err := tx.ExecContext(ctx, "DELETE FROM orders WHERE id = $1", orderID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("order %s: %w", orderID, ErrNotFound)
	}

	return tx.Commit()
}
