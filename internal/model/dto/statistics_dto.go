package dto

// DailyStatistics 某一天的统计数据
type DailyStatistics struct {
	Day                 string         `json:"day"`
	Views               int64          `json:"views"`
	NewUsers            int64          `json:"new_users"`
	NewSubscriptions    int64          `json:"new_subscriptions"`
	ActiveSubscriptions int64          `json:"active_subscriptions"`
	Revenue             float64        `json:"revenue"`
	ConversionRate      float64        `json:"conversion_rate"`
	TopComponents       []TopComponent `json:"top_components"`
}

// TopComponent 热门组件条目
type TopComponent struct {
	ComponentID int64  `json:"component_id"`
	Name        string `json:"name,omitempty"`
	Views       int64  `json:"views"`
}

// OverviewStatistics 管理后台概览
type OverviewStatistics struct {
	TotalUsers          int64          `json:"total_users"`
	TotalComponents     int64          `json:"total_components"`
	ActiveSubscriptions int64          `json:"active_subscriptions"`
	TotalRevenue        float64        `json:"total_revenue"`
	MostViewed          []TopComponent `json:"most_viewed"`
	MostFavorited       []TopComponent `json:"most_favorited"`
}
