package model

import (
	"time"
)

// Card represents the database model for debit and credit cards
type Card struct {
	ID               uint64    `gorm:"primaryKey;autoIncrement"`
	UserID           uint64    `gorm:"not null;index"`
	Name             string    `gorm:"not null;size:255"`
	Type             string    `gorm:"not null;size:20"`
	BalanceCents     int64     `gorm:"not null"` // debt in cents for credit cards
	BankAccountID    *uint64   `gorm:"index"`
	CreditLimitCents int64     `gorm:"not null;default:0"`
	CreatedAt        time.Time `gorm:"not null"`
	UpdatedAt        time.Time `gorm:"not null"`

	BankAccount *BankAccount `gorm:"foreignKey:BankAccountID;references:ID"`
}

// TableName specifies the table name for Card
func (Card) TableName() string {
	return "cards"
}
