package router

import (
	"fmt"
	"strings"

	"github.com/cantina-pos/internal/cache"
	"github.com/cantina-pos/internal/config"
	"github.com/cantina-pos/internal/constants"
	adminhandlers "github.com/cantina-pos/internal/http/handlers/admin"
	staffhandlers "github.com/cantina-pos/internal/http/handlers/staff"
	"github.com/cantina-pos/internal/logger"
	"github.com/cantina-pos/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter builds the HTTP routing tree.
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	staffHandler := staffhandlers.New(c)
	adminHandler := adminhandlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "pos"
	}
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", RateLimitMiddleware(cache.Client(), loginRule, KeyByIPAndJSONField("username")), staffHandler.Login)
		}

		// during-service routes, open to every staff role
		staff := api.Group("")
		staff.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo))
		{
			staff.GET("/auth/me", staffHandler.Me)

			staff.GET("/menu", staffHandler.ListMenu)
			staff.GET("/menu/categories", staffHandler.ListMenuCategories)
			staff.GET("/menu/:id", staffHandler.GetMenuItem)

			cart := staff.Group("/cart")
			{
				cart.GET("", staffHandler.GetCart)
				cart.DELETE("", staffHandler.ClearCart)
				cart.GET("/totals", staffHandler.GetCartTotals)
				cart.PUT("/order-info", staffHandler.SetCartOrderInfo)
				cart.POST("/items", staffHandler.AddCartItem)
				cart.PUT("/items/:index/quantity", staffHandler.UpdateCartItemQuantity)
				cart.PUT("/items/:index/notes", staffHandler.UpdateCartItemNotes)
				cart.DELETE("/items/:index", staffHandler.RemoveCartItem)
				cart.POST("/submit", staffHandler.SubmitCart)
			}

			orders := staff.Group("/orders")
			{
				orders.GET("", staffHandler.ListOrders)
				orders.GET("/open", staffHandler.ListOpenOrders)
				orders.GET("/:id", staffHandler.GetOrder)
				orders.POST("/:id/items", staffHandler.AddOrderItems)
				orders.PUT("/:id/items/:itemId", staffHandler.UpdateOrderItem)
				orders.DELETE("/:id/items/:itemId", staffHandler.RemoveOrderItem)

				// closing a ticket handles money, waiters stay out
				closing := orders.Group("")
				closing.Use(RequireRoles(constants.RoleAdmin, constants.RoleCashier))
				{
					closing.POST("/:id/complete", staffHandler.CompleteOrder)
					closing.POST("/:id/cancel", staffHandler.CancelOrder)
					closing.GET("/:id/ticket", staffHandler.DownloadTicket)
				}
			}
		}

		admin := api.Group("/admin")
		admin.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo))
		admin.Use(RequireRoles(constants.RoleAdmin))
		{
			admin.GET("/menu", adminHandler.ListMenu)
			admin.POST("/menu", adminHandler.CreateMenuItem)
			admin.PUT("/menu/:id", adminHandler.UpdateMenuItem)
			admin.DELETE("/menu/:id", adminHandler.DeleteMenuItem)

			admin.GET("/users", adminHandler.ListUsers)
			admin.POST("/users", adminHandler.CreateUser)
			admin.PUT("/users/:id", adminHandler.UpdateUser)
			admin.DELETE("/users/:id", adminHandler.DeleteUser)

			admin.GET("/reports/daily", adminHandler.DailyReport)
			admin.GET("/reports/best-sellers", adminHandler.BestSellers)
			admin.GET("/reports/sales-by-category", adminHandler.SalesByCategory)
		}
	}

	return r
}
