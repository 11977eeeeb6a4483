package repository

import (
	"gorm.io/gorm"

	"github.com/qs3c/uikit_server/internal/model"
)

type ComponentRepository struct {
	db *gorm.DB
}

func NewComponentRepository(db *gorm.DB) *ComponentRepository {
	return &ComponentRepository{db: db}
}

func (r *ComponentRepository) Create(component *model.Component) error {
	return r.db.Create(component).Error
}

func (r *ComponentRepository) GetByID(id int64) (*model.Component, error) {
	var component model.Component
	err := r.db.Where("id = ?", id).First(&component).Error
	if err != nil {
		return nil, err
	}
	return &component, nil
}

func (r *ComponentRepository) Update(component *model.Component) error {
	return r.db.Save(component).Error
}

func (r *ComponentRepository) Delete(id int64) error {
	return r.db.Delete(&model.Component{}, id).Error
}

// List 分页获取组件，可按分类和名称过滤
func (r *ComponentRepository) List(page, pageSize int, category, search string) ([]*model.Component, int64, error) {
	var total int64
	var components []*model.Component

	query := r.db.Model(&model.Component{})
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&components).Error
	return components, total, err
}

// GetByIDs 按 ID 批量获取组件
func (r *ComponentRepository) GetByIDs(ids []int64) ([]*model.Component, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var components []*model.Component
	err := r.db.Where("id IN ?", ids).Find(&components).Error
	return components, err
}

// IncrementViewCount 累加组件浏览次数
func (r *ComponentRepository) IncrementViewCount(id int64) error {
	return r.db.Model(&model.Component{}).Where("id = ?", id).
		Update("view_count", gorm.Expr("view_count + 1")).Error
}

// ListCategories 获取所有分类
func (r *ComponentRepository) ListCategories() ([]string, error) {
	var categories []string
	err := r.db.Model(&model.Component{}).
		Distinct("category").
		Order("category ASC").
		Pluck("category", &categories).Error
	return categories, err
}

// MostViewed 按累计浏览量取前 n 个组件
func (r *ComponentRepository) MostViewed(n int) ([]*model.Component, error) {
	var components []*model.Component
	err := r.db.Order("view_count DESC").Limit(n).Find(&components).Error
	return components, err
}

// CountAll 组件总数
func (r *ComponentRepository) CountAll() (int64, error) {
	var count int64
	err := r.db.Model(&model.Component{}).Count(&count).Error
	return count, err
}
