package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	accountingapp "github.com/ledgerline/backend/internal/application/accounting"
	expenseapp "github.com/ledgerline/backend/internal/application/expense"
	identityapp "github.com/ledgerline/backend/internal/application/identity"
	inventoryapp "github.com/ledgerline/backend/internal/application/inventory"
	partnerapp "github.com/ledgerline/backend/internal/application/partner"
	tradeapp "github.com/ledgerline/backend/internal/application/trade"
	"github.com/ledgerline/backend/internal/infrastructure/auth"
	"github.com/ledgerline/backend/internal/infrastructure/config"
	"github.com/ledgerline/backend/internal/infrastructure/event"
	"github.com/ledgerline/backend/internal/infrastructure/logger"
	"github.com/ledgerline/backend/internal/infrastructure/persistence"
	"github.com/ledgerline/backend/internal/interfaces/http/handler"
	"github.com/ledgerline/backend/internal/interfaces/http/middleware"
	"github.com/ledgerline/backend/internal/interfaces/http/router"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting ledgerline backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	// Initialize database connection with GORM logging routed through zap
	db, err := persistence.NewDatabaseWithZap(&cfg.Database, log, cfg.Log.Level)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Token blacklist: Redis when configured, in-memory otherwise.
	// The in-memory store is only suitable for a single-process deployment.
	var blacklist auth.TokenBlacklist
	if cfg.Redis.Host != "" {
		addr := fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port)
		redisBlacklist, err := auth.NewRedisTokenBlacklist(addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal("Failed to connect to redis", zap.String("addr", addr), zap.Error(err))
		}
		blacklist = redisBlacklist
		log.Info("Token blacklist backed by redis", zap.String("addr", addr))
	} else {
		blacklist = auth.NewInMemoryTokenBlacklist()
		log.Warn("Redis not configured, using in-memory token blacklist")
	}

	// Transaction scopes: each application service runs its workflows inside
	// a scope so reads, writes and audit rows commit atomically.
	tradeScope := persistence.NewGormTradeTransactionScope(db.DB)
	inventoryScope := persistence.NewGormInventoryTransactionScope(db.DB)
	accountingScope := persistence.NewGormAccountingTransactionScope(db.DB)
	expenseScope := persistence.NewGormExpenseTransactionScope(db.DB)
	partnerScope := persistence.NewGormPartnerTransactionScope(db.DB)

	// Identity repositories are not transaction scoped; their operations are
	// single-row reads and writes.
	userRepo := persistence.NewGormUserRepository(db.DB)
	roleRepo := persistence.NewGormRoleRepository(db.DB)

	// Application services
	purchaseOrderService := tradeapp.NewPurchaseOrderService(tradeScope)
	saleOrderService := tradeapp.NewSaleOrderService(tradeScope)
	inventoryService := inventoryapp.NewInventoryService(inventoryScope)
	accountingService := accountingapp.NewAccountingService(accountingScope)
	expenseService := expenseapp.NewExpenseService(expenseScope, cfg.Accounting.CashAccountCode)
	contactService := partnerapp.NewContactService(partnerScope)

	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, roleRepo, jwtService, blacklist, log)
	userService := identityapp.NewUserService(userRepo, roleRepo)
	roleService := identityapp.NewRoleService(roleRepo)

	// Event bus wires the order workflow to the ledger: a paid order posts
	// its journal entry through the OrderPaidHandler.
	eventBus := event.NewInMemoryEventBus(log)
	orderPaidHandler := accountingapp.NewOrderPaidHandler(accountingService, accountingapp.PostingAccounts{
		CashCode:            cfg.Accounting.CashAccountCode,
		SalesRevenueCode:    cfg.Accounting.SalesRevenueAccountCode,
		PurchaseExpenseCode: cfg.Accounting.PurchaseExpenseAccountCode,
	})
	eventBus.Subscribe(orderPaidHandler)
	log.Info("Event handlers registered",
		zap.Strings("order_paid_events", orderPaidHandler.EventTypes()),
	)

	purchaseOrderService.SetEventPublisher(eventBus)
	saleOrderService.SetEventPublisher(eventBus)
	inventoryService.SetEventPublisher(eventBus)
	contactService.SetEventPublisher(eventBus)

	// HTTP handlers
	handlers := router.Handlers{
		System:        handler.NewSystemHandler(db, version),
		Auth:          handler.NewAuthHandler(authService, userService),
		User:          handler.NewUserHandler(userService),
		Role:          handler.NewRoleHandler(roleService),
		Contact:       handler.NewContactHandler(contactService),
		Inventory:     handler.NewInventoryHandler(inventoryService),
		PurchaseOrder: handler.NewOrderHandler(purchaseOrderService),
		SaleOrder:     handler.NewOrderHandler(saleOrderService),
		Accounting:    handler.NewAccountingHandler(accountingService),
		Expense:       handler.NewExpenseHandler(expenseService),
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	engine := router.Setup(router.Config{
		Handlers:       handlers,
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		Logger:         log,
		CORS:           corsConfig,
	})

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
