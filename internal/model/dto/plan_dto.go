package dto

// PlanInfo 套餐信息
type PlanInfo struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Price        float64  `json:"price"`
	DurationDays int      `json:"duration_days"`
	Features     []string `json:"features"`
	IsActive     bool     `json:"is_active"`
}

// CreatePlanRequest 创建套餐请求
type CreatePlanRequest struct {
	Name         string   `json:"name" binding:"required,max=100"`
	Description  string   `json:"description"`
	Price        float64  `json:"price" binding:"required,gt=0"`
	DurationDays int      `json:"duration_days" binding:"required,gt=0"`
	Features     []string `json:"features"`
	IsActive     *bool    `json:"is_active,omitempty"`
}

// UpdatePlanRequest 更新套餐请求
type UpdatePlanRequest struct {
	Name         *string  `json:"name,omitempty" binding:"omitempty,max=100"`
	Description  *string  `json:"description,omitempty"`
	Price        *float64 `json:"price,omitempty" binding:"omitempty,gt=0"`
	DurationDays *int     `json:"duration_days,omitempty" binding:"omitempty,gt=0"`
	Features     []string `json:"features,omitempty"`
	IsActive     *bool    `json:"is_active,omitempty"`
}
