package repository

import (
	"gorm.io/gorm"

	"github.com/qs3c/uikit_server/internal/model"
)

type StatisticsRepository struct {
	db *gorm.DB
}

func NewStatisticsRepository(db *gorm.DB) *StatisticsRepository {
	return &StatisticsRepository{db: db}
}

// GetByDay 获取某天的统计快照
func (r *StatisticsRepository) GetByDay(day string) (*model.Statistic, error) {
	var stat model.Statistic
	err := r.db.Where("day = ?", day).First(&stat).Error
	if err != nil {
		return nil, err
	}
	return &stat, nil
}

// Create 写入统计快照，day 唯一，重复写入返回错误
func (r *StatisticsRepository) Create(stat *model.Statistic) error {
	return r.db.Create(stat).Error
}

// ListRange 获取日期区间内的统计快照（日期升序）
func (r *StatisticsRepository) ListRange(fromDay, toDay string) ([]*model.Statistic, error) {
	var stats []*model.Statistic
	err := r.db.Where("day >= ? AND day <= ?", fromDay, toDay).
		Order("day ASC").
		Find(&stats).Error
	return stats, err
}
