package provider

import (
	"github.com/salesreport-next/internal/cache"
	"github.com/salesreport-next/internal/config"
	"github.com/salesreport-next/internal/logger"
	"github.com/salesreport-next/internal/models"
	"github.com/salesreport-next/internal/queue"
	"github.com/salesreport-next/internal/repository"
	"github.com/salesreport-next/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	AdminRepo    repository.AdminRepository
	UserRepo     repository.UserRepository
	OrderRepo    repository.OrderRepository
	ProductRepo  repository.ProductRepository
	CategoryRepo repository.CategoryRepository
	ReportRepo   repository.ReportRepository
	SettingRepo  repository.SettingRepository

	// Services
	AuthService    *service.AuthService
	SettingService *service.SettingService
	ReportBuilder  *service.ReportBuilder
	ReportService  *service.ReportService
	UpdateChecker  *service.UpdateChecker
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.UserRepo = repository.NewUserRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.ReportRepo = repository.NewReportRepository(db)
	c.SettingRepo = repository.NewSettingRepository(db)
}

func (c *Container) initServices() {
	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.SettingService = service.NewSettingService(c.Config, c.SettingRepo)
	c.ReportBuilder = service.NewReportBuilder(c.ProductRepo, c.CategoryRepo, c.UserRepo)
	c.ReportService = service.NewReportService(c.OrderRepo, c.ReportRepo, c.ReportBuilder)
	c.UpdateChecker = service.NewUpdateChecker(c.Config)
}
