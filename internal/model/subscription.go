package model

import (
	"time"
)

// 订阅状态
const (
	SubscriptionActive    = "ACTIVE"
	SubscriptionCancelled = "CANCELLED"
	SubscriptionExpired   = "EXPIRED"
	SubscriptionPending   = "PENDING"
)

type Subscription struct {
	ID         int64      `gorm:"primaryKey" json:"id"`
	UserID     int64      `gorm:"not null;index" json:"user_id"`
	PlanID     int64      `gorm:"not null;index" json:"plan_id"`
	StartDate  time.Time  `gorm:"not null" json:"start_date"`
	EndDate    time.Time  `gorm:"not null;index" json:"end_date"`
	Status     string     `gorm:"size:20;not null;index" json:"status"` // ACTIVE, CANCELLED, EXPIRED, PENDING
	CancelDate *time.Time `json:"cancel_date,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
