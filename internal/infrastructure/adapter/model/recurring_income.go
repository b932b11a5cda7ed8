package model

import (
	"time"
)

// RecurringIncome represents the database model for recurring income templates
type RecurringIncome struct {
	ID             uint64    `gorm:"primaryKey;autoIncrement"`
	UserID         uint64    `gorm:"not null;index"`
	Name           string    `gorm:"not null;size:255"`
	AmountCents    int64     `gorm:"not null"`
	Currency       string    `gorm:"not null;size:3"`
	Frequency      string    `gorm:"not null;size:20"`
	NextExpectedAt time.Time `gorm:"not null;index"`
	ToAccountID    uint64    `gorm:"not null"`
	IsActive       bool      `gorm:"not null;default:true;index"`
	CreatedAt      time.Time `gorm:"not null"`
	UpdatedAt      time.Time `gorm:"not null"`
}

// TableName specifies the table name for RecurringIncome
func (RecurringIncome) TableName() string {
	return "recurring_incomes"
}
