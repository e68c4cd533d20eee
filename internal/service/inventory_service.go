package service

import (
	"context"
	"fmt"

	"sentinel-service/internal/models"
	"sentinel-service/internal/redisclient"
	"sentinel-service/internal/store"
	"sentinel-service/internal/util"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// InventoryService handles stock bookkeeping
type InventoryService struct {
	store  *store.Store
	redis  *redisclient.Client
	logger *zap.Logger
}

// NewInventoryService creates a new inventory service
func NewInventoryService(store *store.Store, redis *redisclient.Client) *InventoryService {
	return &InventoryService{
		store:  store,
		redis:  redis,
		logger: util.GetLogger(),
	}
}

// InventoryItemRequest represents a request to create or update a stock item
type InventoryItemRequest struct {
	Name          string          `json:"name" binding:"required"`
	SKU           string          `json:"sku"`
	StockQuantity int             `json:"stock_quantity" binding:"min=0"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	Supplier      string          `json:"supplier"`
}

// InventorySummary aggregates the value of the stock on hand
type InventorySummary struct {
	TotalInvestment       decimal.Decimal `json:"total_investment"`
	TotalPotentialRevenue decimal.Decimal `json:"total_potential_revenue"`
	ItemCount             int             `json:"item_count"`
}

// CreateItem registers a new stock item
func (is *InventoryService) CreateItem(ctx context.Context, req *InventoryItemRequest) (*models.InventoryItem, error) {
	ctx, span := util.StartSpan(ctx, "InventoryService.CreateItem")
	defer span.End()

	item := &models.InventoryItem{
		Name:          req.Name,
		SKU:           req.SKU,
		StockQuantity: req.StockQuantity,
		UnitPrice:     req.UnitPrice,
		SalePrice:     req.SalePrice,
		Supplier:      req.Supplier,
	}

	if err := is.store.CreateInventoryItem(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create inventory item: %w", err)
	}

	is.mirrorStock(ctx, item.ID, item.StockQuantity)
	is.logger.Info("Inventory item created",
		zap.String("item_id", item.ID),
		zap.String("name", item.Name))

	return item, nil
}

// UpdateItem edits a stock item
func (is *InventoryService) UpdateItem(ctx context.Context, itemID string, req *InventoryItemRequest) (*models.InventoryItem, error) {
	ctx, span := util.StartSpan(ctx, "InventoryService.UpdateItem")
	defer span.End()

	item := &models.InventoryItem{
		ID:            itemID,
		Name:          req.Name,
		SKU:           req.SKU,
		StockQuantity: req.StockQuantity,
		UnitPrice:     req.UnitPrice,
		SalePrice:     req.SalePrice,
		Supplier:      req.Supplier,
	}

	if err := is.store.UpdateInventoryItem(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to update inventory item: %w", err)
	}

	is.mirrorStock(ctx, itemID, item.StockQuantity)
	is.logger.Info("Inventory item updated", zap.String("item_id", itemID))

	return item, nil
}

// AdjustStock changes the stock count of an item by delta
func (is *InventoryService) AdjustStock(ctx context.Context, itemID string, delta int) (*models.InventoryItem, error) {
	ctx, span := util.StartSpan(ctx, "InventoryService.AdjustStock")
	defer span.End()

	if err := is.store.AdjustStock(ctx, itemID, delta); err != nil {
		return nil, err
	}

	item, err := is.store.GetInventoryItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	is.mirrorStock(ctx, itemID, item.StockQuantity)
	is.logger.Info("Stock adjusted",
		zap.String("item_id", itemID),
		zap.Int("delta", delta),
		zap.Int("stock", item.StockQuantity))

	return item, nil
}

// DeleteItem removes a stock item
func (is *InventoryService) DeleteItem(ctx context.Context, itemID string) error {
	if err := is.store.DeleteInventoryItem(ctx, itemID); err != nil {
		return err
	}
	if err := is.redis.RemoveStock(ctx, itemID); err != nil {
		is.logger.Warn("Failed to drop stock mirror", zap.String("item_id", itemID), zap.Error(err))
	}
	is.logger.Info("Inventory item deleted", zap.String("item_id", itemID))
	return nil
}

// ListItems retrieves stock items, optionally filtered by a name/SKU search term
func (is *InventoryService) ListItems(ctx context.Context, searchTerm string) ([]models.InventoryItem, error) {
	if searchTerm == "" {
		return is.store.GetInventoryItems(ctx)
	}
	return is.store.SearchInventoryItems(ctx, searchTerm)
}

// GetItem retrieves a single stock item
func (is *InventoryService) GetItem(ctx context.Context, itemID string) (*models.InventoryItem, error) {
	return is.store.GetInventoryItemByID(ctx, itemID)
}

// Summary computes stock totals over the whole inventory
func (is *InventoryService) Summary(ctx context.Context) (*InventorySummary, error) {
	items, err := is.store.GetInventoryItems(ctx)
	if err != nil {
		return nil, err
	}
	return summarizeInventory(items), nil
}

func summarizeInventory(items []models.InventoryItem) *InventorySummary {
	summary := &InventorySummary{
		TotalInvestment:       decimal.Zero,
		TotalPotentialRevenue: decimal.Zero,
		ItemCount:             len(items),
	}
	for _, item := range items {
		qty := decimal.NewFromInt(int64(item.StockQuantity))
		summary.TotalInvestment = summary.TotalInvestment.Add(qty.Mul(item.UnitPrice))
		summary.TotalPotentialRevenue = summary.TotalPotentialRevenue.Add(qty.Mul(item.SalePrice))
	}
	return summary
}

// SyncStockToRedis mirrors all stock counts to Redis at startup
func (is *InventoryService) SyncStockToRedis(ctx context.Context) error {
	is.logger.Info("Starting stock sync to Redis")

	items, err := is.store.GetInventoryItems(ctx)
	if err != nil {
		return fmt.Errorf("failed to get inventory items: %w", err)
	}

	for _, item := range items {
		is.mirrorStock(ctx, item.ID, item.StockQuantity)
	}

	is.logger.Info("Stock sync completed", zap.Int("count", len(items)))
	return nil
}

func (is *InventoryService) mirrorStock(ctx context.Context, itemID string, quantity int) {
	if err := is.redis.SetStock(ctx, itemID, quantity); err != nil {
		is.logger.Warn("Failed to mirror stock to Redis",
			zap.String("item_id", itemID),
			zap.Error(err))
	}
}
