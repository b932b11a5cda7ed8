package model

import (
	"time"
)

// BankAccount represents the database model for bank accounts
type BankAccount struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement"`
	UserID       uint64    `gorm:"not null;index"`
	Name         string    `gorm:"not null;size:255"`
	BalanceCents int64     `gorm:"not null"` // balance in cents
	Currency     string    `gorm:"not null;size:3"`
	IsDefault    bool      `gorm:"not null;default:false"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// TableName specifies the table name for BankAccount
func (BankAccount) TableName() string {
	return "bank_accounts"
}
