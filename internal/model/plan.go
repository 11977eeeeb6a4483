package model

import (
	"encoding/json"
	"time"
)

type Plan struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	Description  string    `gorm:"type:text" json:"description"`
	Price        float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	DurationDays int       `gorm:"not null" json:"duration_days"`
	Features     string    `gorm:"type:text" json:"-"` // JSON 数组
	IsActive     bool      `gorm:"default:true;index" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Plan) TableName() string {
	return "plans"
}

// FeatureList 反序列化功能列表
func (p *Plan) FeatureList() []string {
	if p.Features == "" {
		return nil
	}
	var features []string
	if err := json.Unmarshal([]byte(p.Features), &features); err != nil {
		return nil
	}
	return features
}

// SetFeatures 序列化功能列表
func (p *Plan) SetFeatures(features []string) {
	if len(features) == 0 {
		p.Features = ""
		return
	}
	data, err := json.Marshal(features)
	if err != nil {
		return
	}
	p.Features = string(data)
}
