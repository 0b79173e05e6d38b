// internal/models/transaction.go
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TransactionStatus string

const (
	TransactionPending   TransactionStatus = "pending"
	TransactionCompleted TransactionStatus = "completed"
	TransactionFailed    TransactionStatus = "failed"
	TransactionRefunded  TransactionStatus = "refunded"
)

// Transaction records a payment attempt against a booking. A booking may
// have many transactions (retries, refunds) but at most one completed
// transaction at any time.
type Transaction struct {
	ID            uuid.UUID         `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	BookingID     uuid.UUID         `json:"booking_id" gorm:"type:uuid;not null;index"`
	PaymentRef    string            `json:"payment_ref" gorm:"size:200;index"`
	Amount        decimal.Decimal   `json:"amount" gorm:"type:numeric(12,2)"`
	Currency      string            `json:"currency" gorm:"size:10;default:'ILS'"`
	Status        TransactionStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	PaymentMethod string            `json:"payment_method" gorm:"size:50"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

func (Transaction) TableName() string {
	return "transactions"
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
