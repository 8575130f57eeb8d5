package provider

import (
	"github.com/cantina-pos/internal/cache"
	"github.com/cantina-pos/internal/cart"
	"github.com/cantina-pos/internal/config"
	"github.com/cantina-pos/internal/logger"
	"github.com/cantina-pos/internal/models"
	"github.com/cantina-pos/internal/queue"
	"github.com/cantina-pos/internal/repository"
	"github.com/cantina-pos/internal/service"
	"github.com/cantina-pos/internal/ticket"
)

// Container wires repositories and services for handlers and the worker.
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client
	CartStore   *cart.Store

	// Repositories
	UserRepo   repository.UserRepository
	MenuRepo   repository.MenuRepository
	OrderRepo  repository.OrderRepository
	ReportRepo repository.ReportRepository

	// Services
	AuthService   *service.AuthService
	UserService   *service.UserService
	MenuService   *service.MenuService
	CartService   *service.CartService
	OrderService  *service.OrderService
	ReportService *service.ReportService

	TicketGenerator *ticket.Generator
}

// NewContainer initializes the dependency container.
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

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
		CartStore:   cart.NewStore(),
	}

	c.initRepositories()
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.MenuRepo = repository.NewMenuRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.ReportRepo = repository.NewReportRepository(db)
}

func (c *Container) initServices() {
	c.AuthService = service.NewAuthService(c.Config, c.UserRepo)
	c.UserService = service.NewUserService(c.UserRepo, c.AuthService)
	c.MenuService = service.NewMenuService(c.MenuRepo, c.Config.Order.MenuCacheSeconds)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.MenuRepo, c.ReportRepo, c.QueueClient, c.Config.Order.StaleTicketMinutes)
	c.CartService = service.NewCartService(c.CartStore, c.MenuService, c.OrderService)
	c.ReportService = service.NewReportService(c.ReportRepo)

	generator, err := ticket.NewGenerator(c.Config.Order.TicketsDir)
	if err != nil {
		logger.Errorw("provider_init_ticket_generator_failed", "error", err)
	} else {
		c.TicketGenerator = generator
	}
}
