package api

import (
	"github.com/gin-gonic/gin"

	"github.com/qs3c/uikit_server/config"
	"github.com/qs3c/uikit_server/internal/api/handler"
	"github.com/qs3c/uikit_server/internal/api/middleware"
	"github.com/qs3c/uikit_server/internal/service"
)

type Router struct {
	authHandler         *handler.AuthHandler
	userHandler         *handler.UserHandler
	planHandler         *handler.PlanHandler
	subscriptionHandler *handler.SubscriptionHandler
	componentHandler    *handler.ComponentHandler
	favoriteHandler     *handler.FavoriteHandler
	statisticsHandler   *handler.StatisticsHandler
	settingHandler      *handler.SettingHandler
	websocketHandler    *handler.WebSocketHandler
	authService         *service.AuthService
	cfg                 *config.Config
}

func NewRouter(
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	planHandler *handler.PlanHandler,
	subscriptionHandler *handler.SubscriptionHandler,
	componentHandler *handler.ComponentHandler,
	favoriteHandler *handler.FavoriteHandler,
	statisticsHandler *handler.StatisticsHandler,
	settingHandler *handler.SettingHandler,
	websocketHandler *handler.WebSocketHandler,
	authService *service.AuthService,
	cfg *config.Config,
) *Router {
	return &Router{
		authHandler:         authHandler,
		userHandler:         userHandler,
		planHandler:         planHandler,
		subscriptionHandler: subscriptionHandler,
		componentHandler:    componentHandler,
		favoriteHandler:     favoriteHandler,
		statisticsHandler:   statisticsHandler,
		settingHandler:      settingHandler,
		websocketHandler:    websocketHandler,
		authService:         authService,
		cfg:                 cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	if r.cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS(r.cfg.CORS))

	api := engine.Group("/api/v1")
	{
		// WebSocket（管理后台仪表盘）
		api.GET("/ws", r.websocketHandler.Handle)

		// 公开接口 - 认证
		auth := api.Group("/auth")
		{
			auth.POST("/register", r.authHandler.Register)
			auth.POST("/login", r.authHandler.Login)
			auth.POST("/logout", r.authHandler.Logout)
			auth.GET("/google", r.authHandler.GoogleAuth)
			auth.GET("/google/callback", r.authHandler.GoogleCallback)
		}
		api.GET("/auth/session", middleware.OptionalAuth(r.cfg.JWT.Secret), r.authHandler.Session)

		// 公开接口 - 套餐
		api.GET("/plans", r.planHandler.List)
		api.GET("/plans/:id", r.planHandler.Get)

		// 组件（可选认证，订阅状态决定源码可见性）
		components := api.Group("/components")
		components.Use(middleware.OptionalAuth(r.cfg.JWT.Secret))
		{
			components.GET("", r.componentHandler.List)
			components.GET("/categories", r.componentHandler.Categories)
			components.GET("/:id", r.componentHandler.Get)
		}

		// 需要认证的接口
		authenticated := api.Group("")
		authenticated.Use(middleware.Auth(r.cfg.JWT.Secret))
		{
			// 用户
			user := authenticated.Group("/user")
			{
				user.GET("/profile", r.userHandler.GetProfile)
				user.PUT("/profile", r.userHandler.UpdateProfile)
				user.PUT("/password", r.userHandler.ChangePassword)
				user.POST("/avatar", r.userHandler.UploadAvatar)
			}

			// 订阅
			subscriptions := authenticated.Group("/subscriptions")
			{
				subscriptions.POST("", r.subscriptionHandler.Subscribe)
				subscriptions.GET("", r.subscriptionHandler.ListHistory)
				subscriptions.GET("/current", r.subscriptionHandler.GetCurrent)
				subscriptions.POST("/cancel", r.subscriptionHandler.Cancel)
				subscriptions.POST("/renew", r.subscriptionHandler.Renew)
				subscriptions.GET("/payments", r.subscriptionHandler.ListPayments)
			}

			// 收藏
			favorites := authenticated.Group("/favorites")
			{
				favorites.GET("", r.favoriteHandler.List)
				favorites.POST("/:componentId", r.favoriteHandler.Add)
				favorites.DELETE("/:componentId", r.favoriteHandler.Remove)
			}
		}

		// 管理后台
		admin := api.Group("/admin")
		admin.Use(middleware.Auth(r.cfg.JWT.Secret), middleware.AdminOnly(r.authService))
		{
			admin.GET("/plans", r.planHandler.ListAll)
			admin.POST("/plans", r.planHandler.Create)
			admin.PUT("/plans/:id", r.planHandler.Update)
			admin.DELETE("/plans/:id", r.planHandler.Deactivate)

			admin.POST("/components", r.componentHandler.Create)
			admin.PUT("/components/:id", r.componentHandler.Update)
			admin.DELETE("/components/:id", r.componentHandler.Delete)
			admin.POST("/components/:id/preview", r.componentHandler.UploadPreview)

			admin.GET("/payments", r.subscriptionHandler.ListAllPayments)

			admin.GET("/statistics/daily", r.statisticsHandler.GetDaily)
			admin.GET("/statistics/range", r.statisticsHandler.GetRange)
			admin.GET("/statistics/top-components", r.statisticsHandler.GetTopComponents)
			admin.GET("/statistics/overview", r.statisticsHandler.GetOverview)

			admin.GET("/settings", r.settingHandler.ListAll)
			admin.GET("/settings/:section", r.settingHandler.ListBySection)
			admin.GET("/settings/:section/:key", r.settingHandler.Get)
			admin.PUT("/settings", r.settingHandler.Upsert)
			admin.DELETE("/settings/:section/:key", r.settingHandler.Delete)
		}
	}

	return engine
}
