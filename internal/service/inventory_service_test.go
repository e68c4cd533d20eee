package service

import (
	"testing"

	"sentinel-service/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSummarizeInventory(t *testing.T) {
	items := []models.InventoryItem{
		{StockQuantity: 3, UnitPrice: decimal.NewFromInt(10), SalePrice: decimal.NewFromInt(15)},
		{StockQuantity: 2, UnitPrice: decimal.NewFromFloat(7.5), SalePrice: decimal.NewFromInt(12)},
	}

	summary := summarizeInventory(items)

	assert.Equal(t, 2, summary.ItemCount)
	assert.True(t, decimal.NewFromInt(45).Equal(summary.TotalInvestment), "3*10 + 2*7.5, got %s", summary.TotalInvestment)
	assert.True(t, decimal.NewFromInt(69).Equal(summary.TotalPotentialRevenue), "3*15 + 2*12, got %s", summary.TotalPotentialRevenue)
}

func TestSummarizeInventoryEmpty(t *testing.T) {
	summary := summarizeInventory(nil)
	assert.Zero(t, summary.ItemCount)
	assert.True(t, summary.TotalInvestment.IsZero())
	assert.True(t, summary.TotalPotentialRevenue.IsZero())
}
