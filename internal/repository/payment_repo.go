package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/qs3c/uikit_server/internal/model"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(payment *model.Payment) error {
	return r.db.Create(payment).Error
}

func (r *PaymentRepository) GetByID(id int64) (*model.Payment, error) {
	var payment model.Payment
	err := r.db.Where("id = ?", id).First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// ListByUser 分页获取用户的支付记录
func (r *PaymentRepository) ListByUser(userID int64, page, pageSize int) ([]*model.Payment, int64, error) {
	var total int64
	var payments []*model.Payment

	query := r.db.Model(&model.Payment{}).Where("user_id = ?", userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("payment_date DESC").Offset(offset).Limit(pageSize).Find(&payments).Error
	return payments, total, err
}

// ListAll 分页获取全部支付记录（管理后台）
func (r *PaymentRepository) ListAll(page, pageSize int) ([]*model.Payment, int64, error) {
	var total int64
	var payments []*model.Payment

	if err := r.db.Model(&model.Payment{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := r.db.Order("payment_date DESC").Offset(offset).Limit(pageSize).Find(&payments).Error
	return payments, total, err
}

// SumCompletedBetween 统计时间段内已完成支付的总金额
func (r *PaymentRepository) SumCompletedBetween(from, to time.Time) (float64, error) {
	var total float64
	err := r.db.Model(&model.Payment{}).
		Where("status = ? AND payment_date >= ? AND payment_date < ?",
			model.PaymentCompleted, from, to).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}

// SumCompletedAll 全部已完成支付的总金额
func (r *PaymentRepository) SumCompletedAll() (float64, error) {
	var total float64
	err := r.db.Model(&model.Payment{}).
		Where("status = ?", model.PaymentCompleted).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}
