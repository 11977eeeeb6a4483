package dto

// SubscribeRequest 购买订阅请求
type SubscribeRequest struct {
	PlanID        int64  `json:"plan_id" binding:"required"`
	PaymentMethod string `json:"payment_method" binding:"required,oneof=card wechat alipay"`
}

// SubscriptionInfo 订阅信息
type SubscriptionInfo struct {
	ID         int64     `json:"id"`
	PlanID     int64     `json:"plan_id"`
	PlanName   string    `json:"plan_name,omitempty"`
	StartDate  string    `json:"start_date"`
	EndDate    string    `json:"end_date"`
	Status     string    `json:"status"`
	CancelDate string    `json:"cancel_date,omitempty"`
	Plan       *PlanInfo `json:"plan,omitempty"`
}

// SubscribeResponse 购买订阅响应
type SubscribeResponse struct {
	Subscription *SubscriptionInfo `json:"subscription"`
	Payment      *PaymentInfo      `json:"payment"`
}

// PaymentInfo 支付记录
type PaymentInfo struct {
	ID            int64   `json:"id"`
	Amount        float64 `json:"amount"`
	Status        string  `json:"status"`
	PaymentMethod string  `json:"payment_method"`
	TransactionID string  `json:"transaction_id"`
	PaymentDate   string  `json:"payment_date"`
}
