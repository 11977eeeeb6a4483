package repository

import (
	"gorm.io/gorm"

	"github.com/qs3c/uikit_server/internal/model"
)

type FavoriteRepository struct {
	db *gorm.DB
}

// FavoriteCount 组件的收藏次数
type FavoriteCount struct {
	ComponentID int64 `json:"component_id"`
	Count       int64 `json:"count"`
}

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// Create 创建收藏记录
func (r *FavoriteRepository) Create(favorite *model.Favorite) error {
	return r.db.Create(favorite).Error
}

// Delete 删除收藏记录
func (r *FavoriteRepository) Delete(userID, componentID int64) error {
	return r.db.Where("user_id = ? AND component_id = ?", userID, componentID).
		Delete(&model.Favorite{}).Error
}

// Exists 检查收藏是否存在
func (r *FavoriteRepository) Exists(userID, componentID int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.Favorite{}).
		Where("user_id = ? AND component_id = ?", userID, componentID).
		Count(&count).Error
	return count > 0, err
}

// GetUserFavoriteIDs 分页获取用户收藏的组件 ID 列表
func (r *FavoriteRepository) GetUserFavoriteIDs(userID int64, page, pageSize int) ([]int64, int64, error) {
	var total int64
	var ids []int64

	query := r.db.Model(&model.Favorite{}).Where("user_id = ?", userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("created_at DESC").Offset(offset).Limit(pageSize).Pluck("component_id", &ids).Error
	return ids, total, err
}

// CountByComponent 某组件的收藏总数
func (r *FavoriteRepository) CountByComponent(componentID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Favorite{}).
		Where("component_id = ?", componentID).
		Count(&count).Error
	return count, err
}

// MostFavorited 按收藏次数取前 n 个组件
func (r *FavoriteRepository) MostFavorited(n int) ([]FavoriteCount, error) {
	var counts []FavoriteCount
	err := r.db.Model(&model.Favorite{}).
		Select("component_id, COUNT(*) AS count").
		Group("component_id").
		Order("count DESC").
		Limit(n).
		Scan(&counts).Error
	return counts, err
}
