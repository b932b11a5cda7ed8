package model

import (
	"time"
)

// Budget represents the database model for budgets
type Budget struct {
	ID         uint64  `gorm:"primaryKey;autoIncrement"`
	UserID     uint64  `gorm:"not null;index"`
	Name       string  `gorm:"not null;size:255"`
	CategoryID *uint64 `gorm:"index"`

	AmountCents int64      `gorm:"not null"`
	Period      string     `gorm:"not null;size:20"`
	StartDate   time.Time  `gorm:"not null"`
	EndDate     *time.Time

	CurrentPeriodStart      time.Time `gorm:"not null"`
	CurrentPeriodEnd        time.Time `gorm:"not null;index"`
	CurrentPeriodSpentCents int64     `gorm:"not null;default:0"`

	RolloverUnused bool  `gorm:"not null;default:false"`
	RolloverCents  int64 `gorm:"not null;default:0"`

	AlertThreshold int  `gorm:"not null;default:80"`
	AlertSent      bool `gorm:"not null;default:false"`
	IsActive       bool `gorm:"not null;default:true;index"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for Budget
func (Budget) TableName() string {
	return "budgets"
}
