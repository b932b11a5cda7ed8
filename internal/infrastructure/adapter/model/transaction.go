package model

import (
	"time"
)

// Transaction represents the database model for transactions
type Transaction struct {
	ID          uint64 `gorm:"primaryKey;autoIncrement"`
	ReferenceID string `gorm:"uniqueIndex;not null;size:36"`
	UserID      uint64 `gorm:"not null;index"`
	Type        string `gorm:"not null;size:20;index"`
	AmountCents int64  `gorm:"not null"`
	Currency    string `gorm:"not null;size:3"`
	Title       string `gorm:"size:255"`
	Description string `gorm:"type:text"`

	FromAccountID *uint64 `gorm:"index"`
	ToAccountID   *uint64 `gorm:"index"`
	FromCardID    *uint64 `gorm:"index"`
	ToCardID      *uint64 `gorm:"index"`

	CategoryID *uint64 `gorm:"index"`
	MerchantID *uint64

	OriginKind *string `gorm:"size:30"`
	OriginID   *uint64

	TransactionDate time.Time `gorm:"not null;index"`
	CreatedAt       time.Time `gorm:"not null"`
}

// TableName specifies the table name for Transaction
func (Transaction) TableName() string {
	return "transactions"
}
