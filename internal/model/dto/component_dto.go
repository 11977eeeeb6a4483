package dto

// ComponentInfo 组件信息。未订阅用户拿不到源码，对应字段为 null
type ComponentInfo struct {
	ID                   int64   `json:"id"`
	Name                 string  `json:"name"`
	Category             string  `json:"category"`
	Color                string  `json:"color"`
	CSSContent           *string `json:"css_content"`
	HTMLContent          *string `json:"html_content"`
	PreviewURL           string  `json:"preview_url"`
	ViewCount            int64   `json:"view_count"`
	IsFavorited          bool    `json:"is_favorited"`
	RequiresSubscription bool    `json:"requires_subscription"`
	CreatedAt            string  `json:"created_at,omitempty"`
}

// ListComponentsRequest 组件列表查询参数
type ListComponentsRequest struct {
	Page     int    `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
	Category string `form:"category"`
	Search   string `form:"search" binding:"omitempty,max=100"`
}

// CreateComponentRequest 创建组件请求（管理员）
type CreateComponentRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Category    string `json:"category" binding:"required,max=50"`
	Color       string `json:"color" binding:"omitempty,max=20"`
	CSSContent  string `json:"css_content" binding:"required"`
	HTMLContent string `json:"html_content" binding:"required"`
}

// UpdateComponentRequest 更新组件请求（管理员）
type UpdateComponentRequest struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,max=100"`
	Category    *string `json:"category,omitempty" binding:"omitempty,max=50"`
	Color       *string `json:"color,omitempty" binding:"omitempty,max=20"`
	CSSContent  *string `json:"css_content,omitempty"`
	HTMLContent *string `json:"html_content,omitempty"`
}
