package store

import (
	"context"
	"database/sql"
	"fmt"

	"sentinel-service/internal/models"
)

// CreateInventoryItem creates a new stock item
func (s *Store) CreateInventoryItem(ctx context.Context, item *models.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (name, sku, stock_quantity, unit_price, sale_price, supplier)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	return s.db.GetContext(ctx, item, query,
		item.Name, item.SKU, item.StockQuantity,
		item.UnitPrice, item.SalePrice, item.Supplier)
}

// GetInventoryItemByID retrieves a stock item by ID
func (s *Store) GetInventoryItemByID(ctx context.Context, id string) (*models.InventoryItem, error) {
	var item models.InventoryItem
	err := s.db.GetContext(ctx, &item, "SELECT * FROM inventory_items WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("inventory item %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// GetInventoryItems retrieves all stock items ordered by name
func (s *Store) GetInventoryItems(ctx context.Context) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	err := s.db.SelectContext(ctx, &items, "SELECT * FROM inventory_items ORDER BY name ASC")
	return items, err
}

// SearchInventoryItems retrieves stock items matching the term by name or SKU
func (s *Store) SearchInventoryItems(ctx context.Context, term string) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	pattern := "%" + term + "%"
	err := s.db.SelectContext(ctx, &items,
		"SELECT * FROM inventory_items WHERE name ILIKE $1 OR sku ILIKE $1 ORDER BY name ASC", pattern)
	return items, err
}

// UpdateInventoryItem updates a stock item
func (s *Store) UpdateInventoryItem(ctx context.Context, item *models.InventoryItem) error {
	query := `
		UPDATE inventory_items
		SET name = $1, sku = $2, stock_quantity = $3, unit_price = $4, sale_price = $5,
		    supplier = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING updated_at`

	err := s.db.GetContext(ctx, &item.UpdatedAt, query,
		item.Name, item.SKU, item.StockQuantity,
		item.UnitPrice, item.SalePrice, item.Supplier, item.ID)
	if err == sql.ErrNoRows {
		return fmt.Errorf("inventory item %s: %w", item.ID, ErrNotFound)
	}
	return err
}

// AdjustStock changes the stock count of an item by delta
func (s *Store) AdjustStock(ctx context.Context, itemID string, delta int) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE inventory_items SET stock_quantity = stock_quantity + $1, updated_at = NOW() WHERE id = $2 AND stock_quantity + $1 >= 0",
		delta, itemID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("stock adjustment for item %s rejected", itemID)
	}
	return nil
}

// DeleteInventoryItem removes a stock item
func (s *Store) DeleteInventoryItem(ctx context.Context, itemID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM inventory_items WHERE id = $1", itemID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("inventory item %s: %w", itemID, ErrNotFound)
	}
	return nil
}
