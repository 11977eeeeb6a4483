package model

import (
	"time"
)

// Statistic 按天缓存的统计快照，写入后不再重算
type Statistic struct {
	ID                  int64     `gorm:"primaryKey" json:"id"`
	Day                 string    `gorm:"size:10;uniqueIndex;not null" json:"day"` // YYYY-MM-DD
	Views               int64     `json:"views"`
	NewUsers            int64     `json:"new_users"`
	NewSubscriptions    int64     `json:"new_subscriptions"`
	ActiveSubscriptions int64     `json:"active_subscriptions"`
	Revenue             float64   `gorm:"type:decimal(12,2)" json:"revenue"`
	ConversionRate      float64   `json:"conversion_rate"`
	TopComponents       string    `gorm:"type:text" json:"-"` // JSON，当日最热组件
	CreatedAt           time.Time `json:"created_at"`
}

func (Statistic) TableName() string {
	return "statistics"
}
