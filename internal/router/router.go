package router

import (
	"fmt"
	"strings"

	"github.com/salesreport-next/internal/cache"
	"github.com/salesreport-next/internal/config"
	"github.com/salesreport-next/internal/constants"
	adminhandlers "github.com/salesreport-next/internal/http/handlers/admin"
	publichandlers "github.com/salesreport-next/internal/http/handlers/public"
	"github.com/salesreport-next/internal/logger"
	"github.com/salesreport-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按公开/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = constants.RedisPrefixDefault
	}
	redisClient := cache.Client()
	adminLoginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:admin_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 订单事件回调
		hooks := apiV1.Group("/hooks")
		{
			hooks.POST("/orders/:id/created", publicHandler.OrderCreatedHook)
			hooks.POST("/orders/:id/updated", publicHandler.OrderUpdatedHook)
			hooks.POST("/orders/:id/props-updated", publicHandler.OrderPropsUpdatedHook)
			hooks.POST("/orders/:id/status-changed", publicHandler.OrderStatusChangedHook)
		}

		// 管理员接口
		admin := apiV1.Group("/admin")
		{
			// 登录接口（无需鉴权）
			admin.POST("/login", RateLimitMiddleware(redisClient, adminLoginRule, KeyByIP), adminHandler.AdminLogin)

			// 需要鉴权的接口
			authorized := admin.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.AdminRepo))
			{
				authorized.GET("/me", adminHandler.GetAdminProfile)

				// 报表
				authorized.GET("/reports", adminHandler.GetAdminReports)
				authorized.GET("/reports/export", adminHandler.ExportAdminReports)
				authorized.POST("/reports/sync/:order_id", adminHandler.SyncReportOrder)
				authorized.POST("/reports/backfill", adminHandler.BackfillReports)

				// 报表配置
				authorized.GET("/settings/report", adminHandler.GetReportSettings)
				authorized.PUT("/settings/report", adminHandler.UpdateReportSettings)

				// 版本检查
				authorized.GET("/updates/check", adminHandler.CheckUpdates)
			}
		}
	}

	// 健康检查
	r.GET("/health", publicHandler.Health)

	return r
}
