package main

import (
	"context"
	"fmt"
	"log"

	"github.com/qs3c/uikit_server/config"
	"github.com/qs3c/uikit_server/internal/api"
	"github.com/qs3c/uikit_server/internal/api/handler"
	"github.com/qs3c/uikit_server/internal/database"
	"github.com/qs3c/uikit_server/internal/pkg/counter"
	"github.com/qs3c/uikit_server/internal/pkg/cron"
	"github.com/qs3c/uikit_server/internal/pkg/oauth"
	"github.com/qs3c/uikit_server/internal/pkg/oss"
	"github.com/qs3c/uikit_server/internal/pkg/pubsub"
	"github.com/qs3c/uikit_server/internal/pkg/queue"
	"github.com/qs3c/uikit_server/internal/pkg/ws"
	"github.com/qs3c/uikit_server/internal/repository"
	"github.com/qs3c/uikit_server/internal/service"
)

func main() {
	// 加载配置
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化数据库
	db, err := database.NewMySQL(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database connected")

	// 初始化 Redis
	rdb, err := database.NewRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect redis: %v", err)
	}
	log.Println("Redis connected")

	// 初始化 OSS（可选，未配置时头像和预览图走不了上传）
	var ossClient *oss.Client
	if cfg.OSS.Endpoint != "" && cfg.OSS.AccessKeyID != "" {
		ossClient, err = oss.NewClient(&cfg.OSS)
		if err != nil {
			log.Printf("Warning: Failed to init OSS client: %v", err)
		} else {
			log.Println("OSS client initialized")
		}
	}

	// 初始化 Queue、Pub/Sub 和浏览计数
	emailQueue := queue.NewQueue(rdb, cfg.Queue.EmailQueue)
	publisher := pubsub.NewPublisher(rdb)
	viewCounter := counter.NewCounter(rdb)
	stateStore := oauth.NewStateStore(rdb)

	// 初始化 WebSocket Hub，把后台事件转发给在线的管理员仪表盘
	wsHub := ws.NewHub()
	subscriber := pubsub.NewSubscriber(rdb)
	go func() {
		err := subscriber.Subscribe(context.Background(), func(event *pubsub.Event) {
			_ = wsHub.Broadcast(&ws.Message{Type: event.Type, Data: event})
		})
		if err != nil {
			log.Printf("Dashboard event subscriber stopped: %v", err)
		}
	}()
	log.Println("WebSocket hub started")

	// 初始化 Repository
	userRepo := repository.NewUserRepository(db)
	planRepo := repository.NewPlanRepository(db)
	subRepo := repository.NewSubscriptionRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	componentRepo := repository.NewComponentRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	statsRepo := repository.NewStatisticsRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	// 初始化 Service
	authService := service.NewAuthService(userRepo, emailQueue, cfg)
	userService := service.NewUserService(userRepo, ossClient, cfg)
	planService := service.NewPlanService(planRepo)
	subscriptionService := service.NewSubscriptionService(subRepo, planRepo, userRepo, paymentRepo, emailQueue, publisher)
	componentService := service.NewComponentService(componentRepo, favoriteRepo, subRepo, viewCounter, publisher, ossClient)
	favoriteService := service.NewFavoriteService(favoriteRepo, componentRepo, subRepo)
	statisticsService := service.NewStatisticsService(statsRepo, userRepo, subRepo, paymentRepo, componentRepo, favoriteRepo, viewCounter)
	settingService := service.NewSettingService(settingRepo)

	// 初始化 Handler
	authHandler := handler.NewAuthHandler(authService, stateStore, cfg)
	userHandler := handler.NewUserHandler(userService)
	planHandler := handler.NewPlanHandler(planService)
	subscriptionHandler := handler.NewSubscriptionHandler(subscriptionService)
	componentHandler := handler.NewComponentHandler(componentService)
	favoriteHandler := handler.NewFavoriteHandler(favoriteService)
	statisticsHandler := handler.NewStatisticsHandler(statisticsService)
	settingHandler := handler.NewSettingHandler(settingService)
	websocketHandler := handler.NewWebSocketHandler(wsHub, authService, cfg.JWT.Secret)

	// 启动定时任务（订阅过期清扫 + 每日统计快照）
	cronService := cron.NewService(subRepo, userRepo, planRepo, statisticsService, emailQueue, publisher)
	cronService.Start()
	defer cronService.Stop()

	// 初始化 Router
	router := api.NewRouter(
		authHandler,
		userHandler,
		planHandler,
		subscriptionHandler,
		componentHandler,
		favoriteHandler,
		statisticsHandler,
		settingHandler,
		websocketHandler,
		authService,
		cfg,
	)
	engine := router.Setup()

	// 启动服务器
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Server starting on %s", addr)
	if err := engine.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
