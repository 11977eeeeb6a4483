package model

import (
	"time"
)

// Setting 自由配置存储，(section, key) 唯一
type Setting struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Section   string    `gorm:"size:50;not null;uniqueIndex:idx_section_key" json:"section"`
	Key       string    `gorm:"size:100;not null;uniqueIndex:idx_section_key" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Setting) TableName() string {
	return "settings"
}
