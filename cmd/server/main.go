package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	costingapp "github.com/mertekinci24/FemmeERP-sub000/internal/application/costing"
	ledgerapp "github.com/mertekinci24/FemmeERP-sub000/internal/application/ledger"
	"github.com/mertekinci24/FemmeERP-sub000/internal/application/posting"
	"github.com/mertekinci24/FemmeERP-sub000/internal/infrastructure/config"
	"github.com/mertekinci24/FemmeERP-sub000/internal/infrastructure/logger"
	"github.com/mertekinci24/FemmeERP-sub000/internal/infrastructure/persistence"
	"github.com/mertekinci24/FemmeERP-sub000/internal/interfaces/http/handler"
	"github.com/mertekinci24/FemmeERP-sub000/internal/interfaces/http/middleware"
	"github.com/mertekinci24/FemmeERP-sub000/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

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

	log.Info("Starting FemmeERP posting engine",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))

	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Repositories used outside posting transactions
	partnerRepo := persistence.NewGormPartnerRepository(db.DB)
	partnerLedgerRepo := persistence.NewGormPartnerLedgerRepository(db.DB)

	// All state-changing operations run through the transaction scope
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Application services
	postingService := posting.NewPostingService(txScope)
	conversionService := posting.NewConversionService(txScope)
	partnerService := ledgerapp.NewPartnerService(partnerRepo)
	agingService := ledgerapp.NewAgingService(partnerRepo, partnerLedgerRepo)
	creditService := ledgerapp.NewCreditService(partnerRepo, partnerLedgerRepo)
	allocationService := ledgerapp.NewAllocationService(txScope)
	cashService := ledgerapp.NewCashService(txScope, postingService)
	landedCostService := costingapp.NewLandedCostService(txScope)

	// HTTP handlers
	documentHandler := handler.NewDocumentHandler(postingService, conversionService)
	partnerHandler := handler.NewPartnerHandler(partnerService, agingService, creditService, allocationService)
	cashAccountHandler := handler.NewCashAccountHandler(cashService)
	landedCostHandler := handler.NewLandedCostHandler(landedCostService)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(logger.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.GET("/health", healthHandler(db))

	router.Setup(engine, router.Handlers{
		Document:    documentHandler,
		Partner:     partnerHandler,
		CashAccount: cashAccountHandler,
		LandedCost:  landedCostHandler,
	})

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

// healthHandler reports service liveness and database reachability
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
