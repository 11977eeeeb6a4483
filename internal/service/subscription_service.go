package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/qs3c/uikit_server/internal/model"
	"github.com/qs3c/uikit_server/internal/model/dto"
	"github.com/qs3c/uikit_server/internal/pkg/pubsub"
	"github.com/qs3c/uikit_server/internal/pkg/queue"
	"github.com/qs3c/uikit_server/internal/repository"
)

var (
	ErrAlreadySubscribed    = errors.New("已有生效中的订阅")
	ErrPlanUnavailable      = errors.New("套餐已下架")
	ErrNoSubscription       = errors.New("没有可操作的订阅")
	ErrAlreadyCancelled     = errors.New("订阅已被取消")
	ErrSubscriptionNotFound = errors.New("订阅不存在")
)

type SubscriptionService struct {
	subRepo     *repository.SubscriptionRepository
	planRepo    *repository.PlanRepository
	userRepo    *repository.UserRepository
	paymentRepo *repository.PaymentRepository
	emailQueue  *queue.Queue
	publisher   *pubsub.Publisher
}

func NewSubscriptionService(
	subRepo *repository.SubscriptionRepository,
	planRepo *repository.PlanRepository,
	userRepo *repository.UserRepository,
	paymentRepo *repository.PaymentRepository,
	emailQueue *queue.Queue,
	publisher *pubsub.Publisher,
) *SubscriptionService {
	return &SubscriptionService{
		subRepo:     subRepo,
		planRepo:    planRepo,
		userRepo:    userRepo,
		paymentRepo: paymentRepo,
		emailQueue:  emailQueue,
		publisher:   publisher,
	}
}

// Subscribe 购买订阅。订阅与支付记录在同一事务内创建，
// 已有生效订阅时整体回滚
func (s *SubscriptionService) Subscribe(ctx context.Context, userID int64, req *dto.SubscribeRequest) (*dto.SubscribeResponse, error) {
	plan, err := s.planRepo.GetByID(req.PlanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	if !plan.IsActive {
		return nil, ErrPlanUnavailable
	}

	transactionID, err := generateTransactionID()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	sub := &model.Subscription{
		UserID:    userID,
		PlanID:    plan.ID,
		StartDate: now,
		EndDate:   now.AddDate(0, 0, plan.DurationDays),
		Status:    model.SubscriptionActive,
	}
	payment := &model.Payment{
		UserID:        userID,
		Amount:        plan.Price,
		Status:        model.PaymentCompleted,
		PaymentMethod: req.PaymentMethod,
		TransactionID: transactionID,
		PaymentDate:   now,
	}

	if err := s.subRepo.CreateWithPayment(sub, payment); err != nil {
		if errors.Is(err, repository.ErrActiveExists) {
			return nil, ErrAlreadySubscribed
		}
		return nil, err
	}

	s.notifyPayment(ctx, userID, plan, payment)

	return &dto.SubscribeResponse{
		Subscription: buildSubscriptionInfo(sub, plan),
		Payment:      buildPaymentInfo(payment),
	}, nil
}

// GetCurrent 获取当前生效订阅。没有生效订阅时回退到最近一条历史记录
func (s *SubscriptionService) GetCurrent(userID int64) (*dto.SubscriptionInfo, error) {
	sub, err := s.subRepo.GetActiveByUser(userID, time.Now())
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		sub, err = s.subRepo.GetLatestByUser(userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil
			}
			return nil, err
		}
	}

	plan, err := s.planRepo.GetByID(sub.PlanID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return buildSubscriptionInfo(sub, plan), nil
}

// Cancel 取消当前订阅。取消立即生效，不做退款
func (s *SubscriptionService) Cancel(userID int64) (*dto.SubscriptionInfo, error) {
	sub, err := s.subRepo.GetActiveByUser(userID, time.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 区分「已取消」和「根本没有订阅」
			latest, lerr := s.subRepo.GetLatestByUser(userID)
			if lerr == nil && latest.Status == model.SubscriptionCancelled {
				return nil, ErrAlreadyCancelled
			}
			return nil, ErrNoSubscription
		}
		return nil, err
	}

	now := time.Now()
	sub.Status = model.SubscriptionCancelled
	sub.CancelDate = &now
	if err := s.subRepo.Update(sub); err != nil {
		return nil, err
	}

	plan, _ := s.planRepo.GetByID(sub.PlanID)
	return buildSubscriptionInfo(sub, plan), nil
}

// Renew 续订。未到期在 end_date 上顺延，已到期从当前时间起算。
// durationDays 不传时按套餐天数续
func (s *SubscriptionService) Renew(ctx context.Context, userID int64, paymentMethod string, durationDays int) (*dto.SubscribeResponse, error) {
	sub, err := s.subRepo.GetLatestByUser(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoSubscription
		}
		return nil, err
	}

	plan, err := s.planRepo.GetByID(sub.PlanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	transactionID, err := generateTransactionID()
	if err != nil {
		return nil, err
	}

	if durationDays <= 0 {
		durationDays = plan.DurationDays
	}

	now := time.Now()
	base := sub.EndDate
	if base.Before(now) {
		base = now
	}
	sub.EndDate = base.AddDate(0, 0, durationDays)
	sub.Status = model.SubscriptionActive
	sub.CancelDate = nil
	if err := s.subRepo.Update(sub); err != nil {
		return nil, err
	}

	payment := &model.Payment{
		SubscriptionID: sub.ID,
		UserID:         userID,
		Amount:         plan.Price,
		Status:         model.PaymentCompleted,
		PaymentMethod:  paymentMethod,
		TransactionID:  transactionID,
		PaymentDate:    now,
	}
	if err := s.paymentRepo.Create(payment); err != nil {
		return nil, err
	}

	s.notifyPayment(ctx, userID, plan, payment)

	return &dto.SubscribeResponse{
		Subscription: buildSubscriptionInfo(sub, plan),
		Payment:      buildPaymentInfo(payment),
	}, nil
}

// ListHistory 分页获取订阅历史
func (s *SubscriptionService) ListHistory(userID int64, page, pageSize int) ([]*dto.SubscriptionInfo, int64, error) {
	subs, total, err := s.subRepo.ListByUser(userID, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	infos := make([]*dto.SubscriptionInfo, 0, len(subs))
	for _, sub := range subs {
		plan, _ := s.planRepo.GetByID(sub.PlanID)
		infos = append(infos, buildSubscriptionInfo(sub, plan))
	}
	return infos, total, nil
}

// ListPayments 分页获取支付记录
func (s *SubscriptionService) ListPayments(userID int64, page, pageSize int) ([]*dto.PaymentInfo, int64, error) {
	payments, total, err := s.paymentRepo.ListByUser(userID, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	infos := make([]*dto.PaymentInfo, 0, len(payments))
	for _, p := range payments {
		infos = append(infos, buildPaymentInfo(p))
	}
	return infos, total, nil
}

// ListAllPayments 全站支付记录（管理后台）
func (s *SubscriptionService) ListAllPayments(page, pageSize int) ([]*dto.PaymentInfo, int64, error) {
	payments, total, err := s.paymentRepo.ListAll(page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	infos := make([]*dto.PaymentInfo, 0, len(payments))
	for _, p := range payments {
		infos = append(infos, buildPaymentInfo(p))
	}
	return infos, total, nil
}

// notifyPayment 入队回执邮件并推送后台事件，二者失败都不影响主流程
func (s *SubscriptionService) notifyPayment(ctx context.Context, userID int64, plan *model.Plan, payment *model.Payment) {
	if s.emailQueue != nil {
		if user, err := s.userRepo.GetByID(userID); err == nil {
			_ = s.emailQueue.Push(ctx, &queue.EmailMessage{
				Type:          queue.EmailReceipt,
				To:            user.Email,
				Name:          user.Name,
				PlanName:      plan.Name,
				Amount:        payment.Amount,
				TransactionID: payment.TransactionID,
			})
		}
	}

	if s.publisher != nil {
		_ = s.publisher.Publish(ctx, &pubsub.Event{
			Type:   pubsub.EventSubscriptionCreated,
			UserID: userID,
			PlanID: plan.ID,
		})
		_ = s.publisher.Publish(ctx, &pubsub.Event{
			Type:   pubsub.EventPaymentReceived,
			UserID: userID,
			PlanID: plan.ID,
			Amount: payment.Amount,
		})
	}
}

func buildSubscriptionInfo(sub *model.Subscription, plan *model.Plan) *dto.SubscriptionInfo {
	info := &dto.SubscriptionInfo{
		ID:        sub.ID,
		PlanID:    sub.PlanID,
		StartDate: sub.StartDate.Format(time.RFC3339),
		EndDate:   sub.EndDate.Format(time.RFC3339),
		Status:    sub.Status,
	}
	if sub.CancelDate != nil {
		info.CancelDate = sub.CancelDate.Format(time.RFC3339)
	}
	if plan != nil {
		info.PlanName = plan.Name
		info.Plan = buildPlanInfo(plan)
	}
	return info
}

func buildPaymentInfo(p *model.Payment) *dto.PaymentInfo {
	return &dto.PaymentInfo{
		ID:            p.ID,
		Amount:        p.Amount,
		Status:        p.Status,
		PaymentMethod: p.PaymentMethod,
		TransactionID: p.TransactionID,
		PaymentDate:   p.PaymentDate.Format(time.RFC3339),
	}
}

func generateTransactionID() (string, error) {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return "tx_" + hex.EncodeToString(bytes), nil
}
