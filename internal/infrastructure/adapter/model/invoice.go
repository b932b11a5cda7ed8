package model

import (
	"time"
)

// Invoice represents the database model for receivable invoices
type Invoice struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement"`
	UserID      uint64    `gorm:"not null;index"`
	ClientName  string    `gorm:"not null;size:255"`
	AmountCents int64     `gorm:"not null"`
	Currency    string    `gorm:"not null;size:3"`
	DueDate     time.Time `gorm:"not null;index"`
	Status      string    `gorm:"not null;size:20;index"`
	ToAccountID uint64    `gorm:"not null"`
	PaidAt      *time.Time
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName specifies the table name for Invoice
func (Invoice) TableName() string {
	return "invoices"
}
