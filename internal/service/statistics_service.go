package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/qs3c/uikit_server/internal/model"
	"github.com/qs3c/uikit_server/internal/model/dto"
	"github.com/qs3c/uikit_server/internal/pkg/counter"
	"github.com/qs3c/uikit_server/internal/repository"
)

var ErrInvalidDay = errors.New("日期格式错误，应为 YYYY-MM-DD")

const topComponentLimit = 10

type StatisticsService struct {
	statsRepo     *repository.StatisticsRepository
	userRepo      *repository.UserRepository
	subRepo       *repository.SubscriptionRepository
	paymentRepo   *repository.PaymentRepository
	componentRepo *repository.ComponentRepository
	favoriteRepo  *repository.FavoriteRepository
	viewCounter   *counter.Counter
}

func NewStatisticsService(
	statsRepo *repository.StatisticsRepository,
	userRepo *repository.UserRepository,
	subRepo *repository.SubscriptionRepository,
	paymentRepo *repository.PaymentRepository,
	componentRepo *repository.ComponentRepository,
	favoriteRepo *repository.FavoriteRepository,
	viewCounter *counter.Counter,
) *StatisticsService {
	return &StatisticsService{
		statsRepo:     statsRepo,
		userRepo:      userRepo,
		subRepo:       subRepo,
		paymentRepo:   paymentRepo,
		componentRepo: componentRepo,
		favoriteRepo:  favoriteRepo,
		viewCounter:   viewCounter,
	}
}

// GetDaily 获取某天的统计。已落库的快照直接返回；
// 历史日期缺失时现算并落库，当天的数据只算不存
func (s *StatisticsService) GetDaily(ctx context.Context, day string) (*dto.DailyStatistics, error) {
	dayStart, err := time.ParseInLocation("2006-01-02", day, time.Local)
	if err != nil {
		return nil, ErrInvalidDay
	}

	stat, err := s.statsRepo.GetByDay(day)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if stat != nil {
		return s.buildDailyStatistics(stat), nil
	}

	result, err := s.computeDaily(ctx, day, dayStart)
	if err != nil {
		return nil, err
	}

	// 只固化已经结束的日期。并发请求先写赢，这里撞唯一索引不算失败
	today := time.Now().Format("2006-01-02")
	if day < today {
		if err := s.persistDaily(result); err != nil && !isDuplicateKeyErr(err) {
			return nil, err
		}
	}
	return result, nil
}

// SnapshotDay 计算并落库某天的快照，已存在时不覆盖。
// 由定时任务在每天零点后对前一天调用
func (s *StatisticsService) SnapshotDay(ctx context.Context, day string) error {
	dayStart, err := time.ParseInLocation("2006-01-02", day, time.Local)
	if err != nil {
		return ErrInvalidDay
	}

	if _, err := s.statsRepo.GetByDay(day); err == nil {
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	result, err := s.computeDaily(ctx, day, dayStart)
	if err != nil {
		return err
	}
	return s.persistDaily(result)
}

// GetRange 获取一段日期内已落库的统计
func (s *StatisticsService) GetRange(fromDay, toDay string) ([]*dto.DailyStatistics, error) {
	if _, err := time.Parse("2006-01-02", fromDay); err != nil {
		return nil, ErrInvalidDay
	}
	if _, err := time.Parse("2006-01-02", toDay); err != nil {
		return nil, ErrInvalidDay
	}

	stats, err := s.statsRepo.ListRange(fromDay, toDay)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.DailyStatistics, 0, len(stats))
	for _, stat := range stats {
		result = append(result, s.buildDailyStatistics(stat))
	}
	return result, nil
}

// GetOverview 管理后台概览
func (s *StatisticsService) GetOverview(ctx context.Context) (*dto.OverviewStatistics, error) {
	overview := &dto.OverviewStatistics{}
	now := time.Now()

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.userRepo.CountAll()
		overview.TotalUsers = n
		return err
	})
	g.Go(func() error {
		n, err := s.componentRepo.CountAll()
		overview.TotalComponents = n
		return err
	})
	g.Go(func() error {
		n, err := s.subRepo.CountActive(now)
		overview.ActiveSubscriptions = n
		return err
	})
	g.Go(func() error {
		total, err := s.paymentRepo.SumCompletedAll()
		overview.TotalRevenue = total
		return err
	})
	g.Go(func() error {
		components, err := s.componentRepo.MostViewed(topComponentLimit)
		if err != nil {
			return err
		}
		top := make([]dto.TopComponent, 0, len(components))
		for _, c := range components {
			top = append(top, dto.TopComponent{ComponentID: c.ID, Name: c.Name, Views: c.ViewCount})
		}
		overview.MostViewed = top
		return nil
	})
	g.Go(func() error {
		counts, err := s.favoriteRepo.MostFavorited(topComponentLimit)
		if err != nil {
			return err
		}
		top := make([]dto.TopComponent, 0, len(counts))
		for _, fc := range counts {
			top = append(top, dto.TopComponent{ComponentID: fc.ComponentID, Views: fc.Count})
		}
		s.fillComponentNames(top)
		overview.MostFavorited = top
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return overview, nil
}

// GetTopComponents 获取某天浏览量最高的组件
func (s *StatisticsService) GetTopComponents(ctx context.Context, day string, limit int64) ([]dto.TopComponent, error) {
	if _, err := time.Parse("2006-01-02", day); err != nil {
		return nil, ErrInvalidDay
	}
	if limit <= 0 || limit > 100 {
		limit = topComponentLimit
	}

	scores, err := s.viewCounter.TopComponents(ctx, day, limit)
	if err != nil {
		return nil, err
	}

	top := make([]dto.TopComponent, 0, len(scores))
	for _, sc := range scores {
		top = append(top, dto.TopComponent{ComponentID: sc.ComponentID, Views: sc.Views})
	}
	s.fillComponentNames(top)
	return top, nil
}

// computeDaily 并行聚合某天的各项指标
func (s *StatisticsService) computeDaily(ctx context.Context, day string, dayStart time.Time) (*dto.DailyStatistics, error) {
	dayEnd := dayStart.AddDate(0, 0, 1)
	result := &dto.DailyStatistics{Day: day}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.viewCounter.Views(gctx, day)
		result.Views = n
		return err
	})
	g.Go(func() error {
		n, err := s.userRepo.CountCreatedBetween(dayStart, dayEnd)
		result.NewUsers = n
		return err
	})
	g.Go(func() error {
		n, err := s.subRepo.CountCreatedBetween(dayStart, dayEnd)
		result.NewSubscriptions = n
		return err
	})
	g.Go(func() error {
		n, err := s.subRepo.CountActive(time.Now())
		result.ActiveSubscriptions = n
		return err
	})
	g.Go(func() error {
		total, err := s.paymentRepo.SumCompletedBetween(dayStart, dayEnd)
		result.Revenue = total
		return err
	})
	g.Go(func() error {
		scores, err := s.viewCounter.TopComponents(gctx, day, topComponentLimit)
		if err != nil {
			return err
		}
		top := make([]dto.TopComponent, 0, len(scores))
		for _, sc := range scores {
			top = append(top, dto.TopComponent{ComponentID: sc.ComponentID, Views: sc.Views})
		}
		result.TopComponents = top
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if result.NewUsers > 0 {
		result.ConversionRate = float64(result.NewSubscriptions) / float64(result.NewUsers)
	}
	s.fillComponentNames(result.TopComponents)

	return result, nil
}

func (s *StatisticsService) persistDaily(d *dto.DailyStatistics) error {
	topJSON := ""
	if len(d.TopComponents) > 0 {
		data, err := json.Marshal(d.TopComponents)
		if err != nil {
			return err
		}
		topJSON = string(data)
	}

	return s.statsRepo.Create(&model.Statistic{
		Day:                 d.Day,
		Views:               d.Views,
		NewUsers:            d.NewUsers,
		NewSubscriptions:    d.NewSubscriptions,
		ActiveSubscriptions: d.ActiveSubscriptions,
		Revenue:             d.Revenue,
		ConversionRate:      d.ConversionRate,
		TopComponents:       topJSON,
	})
}

func (s *StatisticsService) buildDailyStatistics(stat *model.Statistic) *dto.DailyStatistics {
	d := &dto.DailyStatistics{
		Day:                 stat.Day,
		Views:               stat.Views,
		NewUsers:            stat.NewUsers,
		NewSubscriptions:    stat.NewSubscriptions,
		ActiveSubscriptions: stat.ActiveSubscriptions,
		Revenue:             stat.Revenue,
		ConversionRate:      stat.ConversionRate,
		TopComponents:       []dto.TopComponent{},
	}
	if stat.TopComponents != "" {
		_ = json.Unmarshal([]byte(stat.TopComponents), &d.TopComponents)
	}
	return d
}

// fillComponentNames 给热门组件补上名称
func (s *StatisticsService) fillComponentNames(top []dto.TopComponent) {
	if len(top) == 0 {
		return
	}
	ids := make([]int64, 0, len(top))
	for _, t := range top {
		ids = append(ids, t.ComponentID)
	}
	components, err := s.componentRepo.GetByIDs(ids)
	if err != nil {
		return
	}
	names := make(map[int64]string, len(components))
	for _, c := range components {
		names[c.ID] = c.Name
	}
	for i := range top {
		top[i].Name = names[top[i].ComponentID]
	}
}
