package model

import (
	"time"
)

// Favorite 用户收藏的组件，(user_id, component_id) 唯一
type Favorite struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	UserID      int64     `gorm:"not null;uniqueIndex:idx_user_component" json:"user_id"`
	ComponentID int64     `gorm:"not null;uniqueIndex:idx_user_component;index" json:"component_id"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Favorite) TableName() string {
	return "favorites"
}
