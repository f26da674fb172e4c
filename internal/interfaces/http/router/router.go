package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ledgerline/backend/internal/infrastructure/auth"
	"github.com/ledgerline/backend/internal/infrastructure/logger"
	"github.com/ledgerline/backend/internal/interfaces/http/handler"
	"github.com/ledgerline/backend/internal/interfaces/http/middleware"
)

// Handlers bundles every handler the router mounts
type Handlers struct {
	System        *handler.SystemHandler
	Auth          *handler.AuthHandler
	User          *handler.UserHandler
	Role          *handler.RoleHandler
	Contact       *handler.ContactHandler
	Inventory     *handler.InventoryHandler
	PurchaseOrder *handler.OrderHandler
	SaleOrder     *handler.OrderHandler
	Accounting    *handler.AccountingHandler
	Expense       *handler.ExpenseHandler
}

// Config holds router dependencies
type Config struct {
	Handlers       Handlers
	JWTService     *auth.JWTService
	TokenBlacklist auth.TokenBlacklist
	Logger         *zap.Logger
	CORS           middleware.CORSConfig
}

// Setup builds the gin engine with all middleware and routes mounted
func Setup(cfg Config) *gin.Engine {
	engine := gin.New()

	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(cfg.Logger))
	engine.Use(logger.Recovery(cfg.Logger))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(cfg.CORS))

	engine.GET("/health", cfg.Handlers.System.Health)
	engine.GET("/healthz", cfg.Handlers.System.Health)
	engine.GET("/ready", cfg.Handlers.System.Ready)

	jwtConfig := middleware.DefaultJWTConfig(cfg.JWTService)
	jwtConfig.TokenBlacklist = cfg.TokenBlacklist
	jwtConfig.Logger = cfg.Logger

	api := engine.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	api.GET("/health", cfg.Handlers.System.Health)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", cfg.Handlers.Auth.Login)
		authGroup.POST("/refresh", cfg.Handlers.Auth.Refresh)
		authGroup.POST("/logout", cfg.Handlers.Auth.Logout)
		authGroup.POST("/change-password", cfg.Handlers.Auth.ChangePassword)
		authGroup.GET("/me", cfg.Handlers.Auth.Me)
	}

	users := api.Group("/users", middleware.RequirePermission("users:manage"))
	{
		users.POST("", cfg.Handlers.User.Create)
		users.GET("/:id", cfg.Handlers.User.GetByID)
		users.DELETE("/:id", cfg.Handlers.User.Deactivate)
	}

	roles := api.Group("/roles", middleware.RequirePermission("roles:manage"))
	{
		roles.POST("", cfg.Handlers.Role.Create)
		roles.GET("", cfg.Handlers.Role.List)
		roles.GET("/:id", cfg.Handlers.Role.GetByID)
		roles.PUT("/:id/permissions", cfg.Handlers.Role.UpdatePermissions)
		roles.DELETE("/:id", cfg.Handlers.Role.Delete)
	}

	contacts := api.Group("/contacts")
	{
		contacts.GET("", middleware.RequirePermission("contacts:read"), cfg.Handlers.Contact.List)
		contacts.GET("/:id", middleware.RequirePermission("contacts:read"), cfg.Handlers.Contact.GetByID)
		contacts.POST("", middleware.RequirePermission("contacts:write"), cfg.Handlers.Contact.Create)
		contacts.PUT("/:id", middleware.RequirePermission("contacts:write"), cfg.Handlers.Contact.Update)
		contacts.DELETE("/:id", middleware.RequirePermission("contacts:write"), cfg.Handlers.Contact.Delete)
	}

	inventory := api.Group("/inventory/items")
	{
		read := middleware.RequirePermission("inventory:read")
		write := middleware.RequirePermission("inventory:write")

		inventory.GET("", read, cfg.Handlers.Inventory.List)
		inventory.GET("/reorder", read, cfg.Handlers.Inventory.ListBelowReorderLevel)
		inventory.GET("/sku/:sku", read, cfg.Handlers.Inventory.GetBySKU)
		inventory.GET("/:id", read, cfg.Handlers.Inventory.GetByID)
		inventory.GET("/:id/history", read, cfg.Handlers.Inventory.StockHistory)
		inventory.POST("", write, cfg.Handlers.Inventory.Create)
		inventory.PUT("/:id", write, cfg.Handlers.Inventory.Update)
		inventory.POST("/:id/adjust", write, cfg.Handlers.Inventory.AdjustStock)
		inventory.DELETE("/:id", write, cfg.Handlers.Inventory.Delete)
	}

	mountOrders(api.Group("/purchase-orders"), cfg.Handlers.PurchaseOrder, "purchases")
	mountOrders(api.Group("/sale-orders"), cfg.Handlers.SaleOrder, "sales")

	accounting := api.Group("/accounting")
	{
		read := middleware.RequirePermission("accounting:read")
		write := middleware.RequirePermission("accounting:write")

		accounting.GET("/accounts", read, cfg.Handlers.Accounting.ListAccounts)
		accounting.GET("/accounts/:id", read, cfg.Handlers.Accounting.GetAccount)
		accounting.POST("/accounts", write, cfg.Handlers.Accounting.CreateAccount)
		accounting.PUT("/accounts/:id", write, cfg.Handlers.Accounting.UpdateAccount)
		accounting.DELETE("/accounts/:id", write, cfg.Handlers.Accounting.DeleteAccount)
		accounting.GET("/journal", read, cfg.Handlers.Accounting.ListJournalEntries)
		accounting.POST("/journal", write, cfg.Handlers.Accounting.PostJournalEntry)
	}

	expenses := api.Group("/expenses")
	{
		read := middleware.RequirePermission("expenses:read")
		write := middleware.RequirePermission("expenses:write")

		expenses.GET("", read, cfg.Handlers.Expense.List)
		expenses.GET("/:id", read, cfg.Handlers.Expense.GetByID)
		expenses.POST("", write, cfg.Handlers.Expense.Create)
		expenses.POST("/:id/post", write, cfg.Handlers.Expense.Post)
		expenses.DELETE("/:id", write, cfg.Handlers.Expense.Delete)
	}

	return engine
}

// mountOrders registers the order route surface shared by both kinds
func mountOrders(group *gin.RouterGroup, h *handler.OrderHandler, resource string) {
	read := middleware.RequirePermission(resource + ":read")
	write := middleware.RequirePermission(resource + ":write")

	group.GET("", read, h.List)
	group.GET("/number/:number", read, h.GetByDocumentNumber)
	group.GET("/:id", read, h.GetByID)
	group.POST("", write, h.Create)
	group.PUT("/:id", write, h.Update)
	group.PUT("/:id/status", write, h.UpdateStatus)
	group.POST("/:id/items", write, h.AddItem)
	group.PUT("/:id/items/:itemId", write, h.UpdateItem)
	group.DELETE("/:id/items/:itemId", write, h.RemoveItem)
	group.DELETE("/:id", write, h.Delete)
}
