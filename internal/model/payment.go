package model

import (
	"time"
)

// 支付状态
const (
	PaymentCompleted = "COMPLETED"
	PaymentPending   = "PENDING"
	PaymentFailed    = "FAILED"
)

type Payment struct {
	ID             int64     `gorm:"primaryKey" json:"id"`
	SubscriptionID int64     `gorm:"not null;index" json:"subscription_id"`
	UserID         int64     `gorm:"not null;index" json:"user_id"`
	Amount         float64   `gorm:"type:decimal(10,2);not null" json:"amount"`
	Status         string    `gorm:"size:20;not null" json:"status"`
	PaymentMethod  string    `gorm:"size:20" json:"payment_method,omitempty"` // card, wechat, alipay
	TransactionID  string    `gorm:"size:100" json:"transaction_id,omitempty"`
	PaymentDate    time.Time `gorm:"not null" json:"payment_date"`
	CreatedAt      time.Time `json:"created_at"`
}

func (Payment) TableName() string {
	return "payments"
}
