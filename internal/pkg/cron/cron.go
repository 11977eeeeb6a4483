package cron

import (
	"context"
	"log"
	"time"

	"github.com/qs3c/uikit_server/internal/pkg/pubsub"
	"github.com/qs3c/uikit_server/internal/pkg/queue"
	"github.com/qs3c/uikit_server/internal/repository"
	"github.com/qs3c/uikit_server/internal/service"
)

// 到期提醒的提前量
const reminderWindow = 3 * 24 * time.Hour

type Service struct {
	subRepo      *repository.SubscriptionRepository
	userRepo     *repository.UserRepository
	planRepo     *repository.PlanRepository
	statsService *service.StatisticsService
	emailQueue   *queue.Queue
	publisher    *pubsub.Publisher
	stopChan     chan struct{}
}

func NewService(
	subRepo *repository.SubscriptionRepository,
	userRepo *repository.UserRepository,
	planRepo *repository.PlanRepository,
	statsService *service.StatisticsService,
	emailQueue *queue.Queue,
	publisher *pubsub.Publisher,
) *Service {
	return &Service{
		subRepo:      subRepo,
		userRepo:     userRepo,
		planRepo:     planRepo,
		statsService: statsService,
		emailQueue:   emailQueue,
		publisher:    publisher,
		stopChan:     make(chan struct{}),
	}
}

// Start 启动定时任务
func (s *Service) Start() {
	go s.runHourlySweep()
	go s.runDailySnapshot()
	log.Println("Cron service started (subscription sweep + daily snapshot)")
}

// Stop 停止定时任务
func (s *Service) Stop() {
	close(s.stopChan)
	log.Println("Cron service stopped")
}

// runHourlySweep 每小时执行一次到期清扫和提醒
func (s *Service) runHourlySweep() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.sweepExpired()
			s.sendExpiryReminders()
		}
	}
}

// runDailySnapshot 每天零点后固化前一天的统计快照
func (s *Service) runDailySnapshot() {
	now := time.Now()
	nextMidnight := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 5, 0, 0, now.Location())
	timer := time.NewTimer(nextMidnight.Sub(now))

	for {
		select {
		case <-s.stopChan:
			timer.Stop()
			return
		case <-timer.C:
			s.snapshotYesterday()
			timer.Reset(24 * time.Hour)
		}
	}
}

// sweepExpired 把 end_date 已过的 ACTIVE 订阅标记为 EXPIRED。
// 读路径本身会校验 end_date，这里只是让库里的状态跟上
func (s *Service) sweepExpired() {
	n, err := s.subRepo.ExpireDue(time.Now())
	if err != nil {
		log.Printf("Subscription sweep failed: %v", err)
		return
	}
	if n > 0 {
		log.Printf("Subscription sweep: expired %d subscriptions", n)
		if s.publisher != nil {
			_ = s.publisher.Publish(context.Background(), &pubsub.Event{
				Type: pubsub.EventSubscriptionExpired,
			})
		}
	}
}

// sendExpiryReminders 给即将到期的订阅入队提醒邮件
func (s *Service) sendExpiryReminders() {
	if s.emailQueue == nil {
		return
	}

	now := time.Now()
	subs, err := s.subRepo.ListExpiringBetween(now, now.Add(reminderWindow))
	if err != nil {
		log.Printf("Expiry reminders: failed to list subscriptions: %v", err)
		return
	}

	ctx := context.Background()
	for _, sub := range subs {
		user, err := s.userRepo.GetByID(sub.UserID)
		if err != nil {
			continue
		}

		planName := ""
		if plan, err := s.planRepo.GetByID(sub.PlanID); err == nil {
			planName = plan.Name
		}

		if err := s.emailQueue.Push(ctx, &queue.EmailMessage{
			Type:     queue.EmailExpiryReminder,
			To:       user.Email,
			Name:     user.Name,
			PlanName: planName,
			EndDate:  sub.EndDate.Format("2006-01-02"),
		}); err != nil {
			log.Printf("Expiry reminders: failed to enqueue for user %d: %v", sub.UserID, err)
		}
	}
}

// snapshotYesterday 固化昨天的统计
func (s *Service) snapshotYesterday() {
	day := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	if err := s.statsService.SnapshotDay(context.Background(), day); err != nil {
		log.Printf("Daily snapshot for %s failed: %v", day, err)
		return
	}
	log.Printf("Daily snapshot for %s completed", day)
}

// RunNow 立即执行一轮清扫和快照（用于测试或手动触发）
func (s *Service) RunNow() error {
	s.sweepExpired()
	s.sendExpiryReminders()

	day := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	return s.statsService.SnapshotDay(context.Background(), day)
}
