package store

import (
	"context"

	"sentinel-service/internal/models"

	"github.com/shopspring/decimal"
)

// CreateTransaction records an investment or withdrawal
func (s *Store) CreateTransaction(ctx context.Context, tx *models.FinancialTransaction) error {
	query := `
		INSERT INTO financial_transactions (amount, description, type, transaction_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	return s.db.GetContext(ctx, tx, query,
		tx.Amount, tx.Description, tx.Type, tx.TransactionDate)
}

// GetTransactions retrieves all financial transactions, newest first
func (s *Store) GetTransactions(ctx context.Context) ([]models.FinancialTransaction, error) {
	var txs []models.FinancialTransaction
	err := s.db.SelectContext(ctx, &txs,
		"SELECT * FROM financial_transactions ORDER BY transaction_date DESC, created_at DESC")
	return txs, err
}

// SumTransactionsByType returns the total amount recorded for a transaction type
func (s *Store) SumTransactionsByType(ctx context.Context, txType string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := s.db.GetContext(ctx, &total,
		"SELECT COALESCE(SUM(amount), 0) FROM financial_transactions WHERE type = $1", txType)
	return total, err
}
