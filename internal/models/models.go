package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order represents a customer order (an "encargo")
type Order struct {
	ID                 string          `db:"id" json:"id"`
	OrderDate          time.Time       `db:"order_date" json:"order_date"`
	CustomerName       string          `db:"customer_name" json:"customer_name"`
	ProductDescription string          `db:"product_description" json:"product_description"`
	PurchasePrice      decimal.Decimal `db:"purchase_price" json:"purchase_price"`
	SalePrice          decimal.Decimal `db:"sale_price" json:"sale_price"`
	Profit             decimal.Decimal `db:"profit" json:"profit"`
	Status             string          `db:"status" json:"status"`
	MerchandiseStatus  string          `db:"merchandise_status" json:"merchandise_status"`
	CreatedAt          time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time       `db:"updated_at" json:"updated_at"`
}

// Payment represents a partial settlement recorded against an order
type Payment struct {
	ID              string          `db:"id" json:"id"`
	OrderID         string          `db:"order_id" json:"order_id"`
	Amount          decimal.Decimal `db:"amount" json:"amount"`
	PaymentDate     time.Time       `db:"payment_date" json:"payment_date"`
	ReferenceNumber string          `db:"reference_number" json:"reference_number,omitempty"`
	ReceiptImageURL string          `db:"receipt_image_url" json:"receipt_image_url,omitempty"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
}

// InventoryItem represents a stocked article
type InventoryItem struct {
	ID            string          `db:"id" json:"id"`
	Name          string          `db:"name" json:"name"`
	SKU           string          `db:"sku" json:"sku,omitempty"`
	StockQuantity int             `db:"stock_quantity" json:"stock_quantity"`
	UnitPrice     decimal.Decimal `db:"unit_price" json:"unit_price"`
	SalePrice     decimal.Decimal `db:"sale_price" json:"sale_price"`
	Supplier      string          `db:"supplier" json:"supplier,omitempty"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updated_at"`
}

// FinancialTransaction represents an owner investment or withdrawal
type FinancialTransaction struct {
	ID              string          `db:"id" json:"id"`
	Amount          decimal.Decimal `db:"amount" json:"amount"`
	Description     string          `db:"description" json:"description"`
	Type            string          `db:"type" json:"type"`
	TransactionDate time.Time       `db:"transaction_date" json:"transaction_date"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
}

// Note is a free-form text note
type Note struct {
	ID        string    `db:"id" json:"id"`
	NoteText  string    `db:"note_text" json:"note_text"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Order statuses
const (
	OrderStatusPending = "pending"
	OrderStatusPaid    = "paid"
)

// Merchandise statuses
const (
	MerchandiseToBuy     = "to_buy"
	MerchandiseBought    = "bought"
	MerchandiseDelivered = "delivered"
)

// Financial transaction types
const (
	TransactionTypeInvestment = "investment"
	TransactionTypeWithdrawal = "withdrawal"
)
