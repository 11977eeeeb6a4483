package database

import (
	"gorm.io/gorm"

	"github.com/qs3c/uikit_server/internal/model"
)

// Migrate 同步表结构
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Plan{},
		&model.Subscription{},
		&model.Payment{},
		&model.Component{},
		&model.Favorite{},
		&model.Statistic{},
		&model.Setting{},
	)
}
