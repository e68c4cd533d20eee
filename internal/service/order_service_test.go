package service

import (
	"testing"
	"time"

	"sentinel-service/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderRequestToOrder(t *testing.T) {
	req := &OrderRequest{
		OrderDate:          "2024-01-01",
		CustomerName:       "Maria",
		ProductDescription: "perfume",
		PurchasePrice:      decimal.NewFromInt(60),
		SalePrice:          decimal.NewFromInt(100),
	}

	order, err := req.toOrder()
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), order.OrderDate)
	assert.True(t, decimal.NewFromInt(40).Equal(order.Profit), "profit = sale - purchase")
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, models.MerchandiseToBuy, order.MerchandiseStatus)
}

func TestOrderRequestToOrderNegativeProfit(t *testing.T) {
	req := &OrderRequest{
		OrderDate:     "2024-03-10",
		CustomerName:  "Pedro",
		PurchasePrice: decimal.NewFromInt(80),
		SalePrice:     decimal.NewFromInt(50),
	}

	order, err := req.toOrder()
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(-30).Equal(order.Profit))
}

func TestOrderRequestToOrderInvalidDate(t *testing.T) {
	req := &OrderRequest{
		OrderDate:    "01/02/2024",
		CustomerName: "Maria",
		SalePrice:    decimal.NewFromInt(100),
	}

	_, err := req.toOrder()
	assert.Error(t, err)
}

func TestOrderRequestToOrderInvalidStatus(t *testing.T) {
	req := &OrderRequest{
		OrderDate:    "2024-01-01",
		CustomerName: "Maria",
		SalePrice:    decimal.NewFromInt(100),
		Status:       "shipped",
	}

	_, err := req.toOrder()
	assert.Error(t, err)
}
