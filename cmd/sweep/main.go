package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/qs3c/uikit_server/config"
	"github.com/qs3c/uikit_server/internal/database"
	"github.com/qs3c/uikit_server/internal/pkg/counter"
	"github.com/qs3c/uikit_server/internal/repository"
	"github.com/qs3c/uikit_server/internal/service"
)

var (
	doSweep  = flag.Bool("sweep", true, "Expire overdue subscriptions")
	day      = flag.String("day", "", "Snapshot statistics for this day (YYYY-MM-DD, default yesterday)")
	backfill = flag.Int("backfill", 0, "Snapshot statistics for the last N days instead of a single day")
)

func main() {
	flag.Parse()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewMySQL(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}

	rdb, err := database.NewRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect redis: %v", err)
	}

	subRepo := repository.NewSubscriptionRepository(db)
	statsService := service.NewStatisticsService(
		repository.NewStatisticsRepository(db),
		repository.NewUserRepository(db),
		subRepo,
		repository.NewPaymentRepository(db),
		repository.NewComponentRepository(db),
		repository.NewFavoriteRepository(db),
		counter.NewCounter(rdb),
	)

	ctx := context.Background()

	// 1. 过期清扫
	if *doSweep {
		n, err := subRepo.ExpireDue(time.Now())
		if err != nil {
			log.Fatalf("Subscription sweep failed: %v", err)
		}
		log.Printf("Subscription sweep: expired %d subscriptions", n)
	}

	// 2. 统计快照
	days := snapshotDays()
	for _, d := range days {
		if err := statsService.SnapshotDay(ctx, d); err != nil {
			log.Printf("Snapshot for %s failed: %v", d, err)
			continue
		}
		log.Printf("Snapshot for %s done", d)
	}

	log.Println("Sweep completed")
}

// snapshotDays 根据命令行参数计算要固化的日期列表
func snapshotDays() []string {
	if *backfill > 0 {
		days := make([]string, 0, *backfill)
		for i := *backfill; i >= 1; i-- {
			days = append(days, time.Now().AddDate(0, 0, -i).Format("2006-01-02"))
		}
		return days
	}

	d := *day
	if d == "" {
		d = time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	}
	return []string{d}
}
