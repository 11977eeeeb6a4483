package model

import (
	"time"
)

type Component struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Category    string    `gorm:"size:50;not null;index" json:"category"` // button, card, form, loader...
	Color       string    `gorm:"size:20" json:"color"`
	CSSContent  string    `gorm:"column:css_content;type:text" json:"css_content"`
	HTMLContent string    `gorm:"column:html_content;type:text" json:"html_content"`
	PreviewURL  string    `gorm:"size:500" json:"preview_url"`
	ViewCount   int64     `gorm:"default:0" json:"view_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Component) TableName() string {
	return "components"
}
