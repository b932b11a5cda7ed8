package model

import (
	"time"
)

// Subscription represents the database model for recurring expense templates
type Subscription struct {
	ID            uint64    `gorm:"primaryKey;autoIncrement"`
	UserID        uint64    `gorm:"not null;index"`
	Name          string    `gorm:"not null;size:255"`
	AmountCents   int64     `gorm:"not null"`
	Currency      string    `gorm:"not null;size:3"`
	Frequency     string    `gorm:"not null;size:20"`
	NextBillingAt time.Time `gorm:"not null;index"`
	FromAccountID *uint64
	FromCardID    *uint64
	CategoryID    *uint64
	IsActive      bool      `gorm:"not null;default:true;index"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

// TableName specifies the table name for Subscription
func (Subscription) TableName() string {
	return "subscriptions"
}
