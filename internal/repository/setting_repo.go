package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/qs3c/uikit_server/internal/model"
)

type SettingRepository struct {
	db *gorm.DB
}

func NewSettingRepository(db *gorm.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

// Get 获取配置项
func (r *SettingRepository) Get(section, key string) (*model.Setting, error) {
	var setting model.Setting
	// key 是保留字，用 map 条件让 GORM 处理标识符转义
	err := r.db.Where(map[string]interface{}{"section": section, "key": key}).
		First(&setting).Error
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

// Upsert 写入配置项，已存在时更新值
func (r *SettingRepository) Upsert(setting *model.Setting) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "section"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(setting).Error
}

// Delete 删除配置项
func (r *SettingRepository) Delete(section, key string) error {
	return r.db.Where(map[string]interface{}{"section": section, "key": key}).
		Delete(&model.Setting{}).Error
}

// ListBySection 获取某一节的全部配置
func (r *SettingRepository) ListBySection(section string) ([]*model.Setting, error) {
	var settings []*model.Setting
	err := r.db.Where("section = ?", section).Order("`key` ASC").Find(&settings).Error
	return settings, err
}

// ListAll 获取全部配置
func (r *SettingRepository) ListAll() ([]*model.Setting, error) {
	var settings []*model.Setting
	err := r.db.Order("section ASC, `key` ASC").Find(&settings).Error
	return settings, err
}
