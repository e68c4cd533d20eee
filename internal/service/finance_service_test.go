package service

import (
	"context"
	"testing"

	"sentinel-service/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRecordTransactionValidation(t *testing.T) {
	fs := &FinanceService{}
	ctx := context.Background()

	tests := []struct {
		name string
		req  TransactionRequest
	}{
		{"unknown type", TransactionRequest{Type: "loan", Amount: decimal.NewFromInt(10), Description: "x"}},
		{"zero amount", TransactionRequest{Type: models.TransactionTypeInvestment, Amount: decimal.Zero, Description: "x"}},
		{"negative amount", TransactionRequest{Type: models.TransactionTypeWithdrawal, Amount: decimal.NewFromInt(-5), Description: "x"}},
		{"blank description", TransactionRequest{Type: models.TransactionTypeInvestment, Amount: decimal.NewFromInt(10), Description: "   "}},
		{"bad date", TransactionRequest{Type: models.TransactionTypeInvestment, Amount: decimal.NewFromInt(10), Description: "x", TransactionDate: "10/01/2024"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fs.RecordTransaction(ctx, &tt.req)
			assert.Error(t, err)
		})
	}
}

func TestStatsInvalidPeriod(t *testing.T) {
	ss := &StatsService{}
	_, err := ss.Stats(context.Background(), "decade")
	assert.Error(t, err)
}
