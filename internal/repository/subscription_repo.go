package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/qs3c/uikit_server/internal/model"
)

// ErrActiveExists 用户已有生效中的订阅
var ErrActiveExists = errors.New("active subscription already exists")

type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

func (r *SubscriptionRepository) GetByID(id int64) (*model.Subscription, error) {
	var sub model.Subscription
	err := r.db.Where("id = ?", id).First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// GetActiveByUser 获取用户当前生效的订阅（ACTIVE 且未过期）
func (r *SubscriptionRepository) GetActiveByUser(userID int64, now time.Time) (*model.Subscription, error) {
	var sub model.Subscription
	err := r.db.Where("user_id = ? AND status = ? AND end_date >= ?",
		userID, model.SubscriptionActive, now).
		Order("end_date DESC").
		First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// HasActive 判断用户是否有生效中的订阅。查询出错时按无订阅处理（失败关闭）。
func (r *SubscriptionRepository) HasActive(userID int64, now time.Time) (bool, error) {
	var count int64
	err := r.db.Model(&model.Subscription{}).
		Where("user_id = ? AND status = ? AND end_date >= ?",
			userID, model.SubscriptionActive, now).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetLatestByUser 获取用户最近的一条订阅记录（不限状态）
func (r *SubscriptionRepository) GetLatestByUser(userID int64) (*model.Subscription, error) {
	var sub model.Subscription
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// CreateWithPayment 在同一事务内完成「检查无 ACTIVE 订阅 → 创建订阅 → 创建支付记录」。
// 存在 ACTIVE 订阅时返回 ErrActiveExists，关闭并发创建的竞态窗口。
func (r *SubscriptionRepository) CreateWithPayment(sub *model.Subscription, payment *model.Payment) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Subscription{}).
			Where("user_id = ? AND status = ?", sub.UserID, model.SubscriptionActive).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrActiveExists
		}

		if err := tx.Create(sub).Error; err != nil {
			return err
		}

		payment.SubscriptionID = sub.ID
		return tx.Create(payment).Error
	})
}

func (r *SubscriptionRepository) Update(sub *model.Subscription) error {
	return r.db.Save(sub).Error
}

// ListByUser 分页获取用户的订阅历史
func (r *SubscriptionRepository) ListByUser(userID int64, page, pageSize int) ([]*model.Subscription, int64, error) {
	var total int64
	var subs []*model.Subscription

	query := r.db.Model(&model.Subscription{}).Where("user_id = ?", userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&subs).Error
	return subs, total, err
}

// ExpireDue 将已超过截止日期的 ACTIVE 订阅批量置为 EXPIRED，返回受影响行数
func (r *SubscriptionRepository) ExpireDue(now time.Time) (int64, error) {
	result := r.db.Model(&model.Subscription{}).
		Where("status = ? AND end_date < ?", model.SubscriptionActive, now).
		Update("status", model.SubscriptionExpired)
	return result.RowsAffected, result.Error
}

// ListExpiringBetween 获取将在时间段内到期的 ACTIVE 订阅（到期提醒）
func (r *SubscriptionRepository) ListExpiringBetween(from, to time.Time) ([]*model.Subscription, error) {
	var subs []*model.Subscription
	err := r.db.Where("status = ? AND end_date >= ? AND end_date < ?",
		model.SubscriptionActive, from, to).
		Find(&subs).Error
	return subs, err
}

// CountActive 当前 ACTIVE 且未过期的订阅数
func (r *SubscriptionRepository) CountActive(now time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&model.Subscription{}).
		Where("status = ? AND end_date >= ?", model.SubscriptionActive, now).
		Count(&count).Error
	return count, err
}

// CountCreatedBetween 统计时间段内新建的订阅数
func (r *SubscriptionRepository) CountCreatedBetween(from, to time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&model.Subscription{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Count(&count).Error
	return count, err
}
