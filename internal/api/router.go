package api

import (
	"context"
	"net/http"
	"time"

	"ingredient-scanner/internal/api/handlers/health"
	scanHandler "ingredient-scanner/internal/api/handlers/scan"
	"ingredient-scanner/internal/api/middleware"
	scanService "ingredient-scanner/internal/core/scan"
	"ingredient-scanner/internal/core/scan/cache"
	"ingredient-scanner/internal/infrastructure/config"
	"ingredient-scanner/internal/infrastructure/store"
	"ingredient-scanner/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// 超時設置
	timeoutDuration = 30 * time.Second
	// 請求體大小限制 (1MB)，成分列表純文字用不到更多
	maxBodySize = 1 << 20
)

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, cacheManager *cache.Manager) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// 創建路由引擎
	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New()) // 自動生成請求 ID

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 請求體大小限制
	router.Use(middleware.BodySizeLimit(maxBodySize))

	// 速率限制
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}

	common.LogInfo("Initializing services",
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.Bool("redis_enabled", cfg.Redis.Enabled),
		zap.Bool("barcode_enabled", cfg.Barcode.Enabled),
		zap.Duration("timeout", timeoutDuration),
	)

	// 初始化資料儲存客戶端與各資源存取層
	storeClient := store.NewClient(&cfg.Store)
	triggerRepo := store.NewTriggerRepository(storeClient)
	scanRepo := store.NewScanRepository(storeClient)
	productRepo := store.NewProductRepository(storeClient)
	barcodeClient := store.NewBarcodeClient(&cfg.Barcode)

	// 初始化 Redis 結果快取（未啟用時為 nil，服務層會略過）
	resultCache, err := cache.NewResultCache(&cfg.Redis)
	if err != nil {
		common.LogWarn("Redis result cache unavailable, continuing without it",
			zap.Error(err),
			zap.String("addr", cfg.Redis.Addr),
		)
		resultCache = nil
	}

	// 初始化掃描服務
	scanSvc := scanService.NewService(cfg, triggerRepo, scanRepo, productRepo, barcodeClient, cacheManager, resultCache)

	common.LogInfo("Scan service initialized successfully",
		zap.Bool("cache_manager_initialized", cacheManager != nil),
		zap.Bool("result_cache_initialized", resultCache != nil),
		zap.String("environment", cfg.App.Env),
	)

	// 全局中間件：設置超時和服務
	router.Use(func(c *gin.Context) {
		// 設置請求超時
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)

		// 設置配置與快取管理器供處理程序取用
		c.Set("config", cfg)
		c.Set("cache_manager", cacheManager)

		// 處理請求
		c.Next()

		// 檢查是否超時
		if ctx.Err() == context.DeadlineExceeded {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetHeader("X-Request-ID")),
				zap.Duration("timeout", timeoutDuration),
			)
			c.JSON(http.StatusGatewayTimeout, gin.H{
				"error": "Request timeout",
				"code":  "REQUEST_TIMEOUT",
				"details": gin.H{
					"timeout": timeoutDuration.String(),
				},
			})
			c.Abort()
			return
		}
	})

	// 健康檢查路由
	router.GET("/health", health.HealthCheck)
	router.GET("/ready", health.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)

	// API 路由組
	api := router.Group("/api/v1")
	{
		handler := scanHandler.NewHandler(scanSvc, triggerRepo)

		// 掃描分析路由
		scanGroup := api.Group("/scan")
		{
			// 成分掃描分析，短時間重複提交相同內容會被去重擋下
			scanGroup.POST("/analyze", middleware.Deduplication(cfg), handler.HandleAnalyze)

			// 個人化風險詮釋
			scanGroup.POST("/overlay", handler.HandleOverlay)

			// 改善目標推薦
			scanGroup.POST("/goal", handler.HandleGoal)

			// 讀取掃描紀錄
			scanGroup.GET("/:id", handler.HandleGetScan)
		}

		// 刺激成分參考資料路由
		triggerGroup := api.Group("/triggers")
		{
			triggerGroup.GET("", handler.HandleListTriggers)
			triggerGroup.GET("/:slug", handler.HandleGetTrigger)
		}
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
		zap.Bool("cache_manager_initialized", cacheManager != nil),
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router, nil
}
