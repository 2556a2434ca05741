package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stock-portfolio-service/internal/api/config"
	delivery "stock-portfolio-service/internal/api/delivery/http"
	_ "stock-portfolio-service/internal/api/docs"
	"stock-portfolio-service/internal/api/dto"
	"stock-portfolio-service/internal/api/repository"
	"stock-portfolio-service/internal/api/service"
	"stock-portfolio-service/pkg/common"
	"stock-portfolio-service/pkg/logger"
	"stock-portfolio-service/pkg/postgres"
	"stock-portfolio-service/pkg/redis"
	"stock-portfolio-service/pkg/utils"

	"github.com/spf13/cobra"
	swagger "github.com/swaggo/echo-swagger"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the portfolio API service",
	Run:   runServe,
}

var refreshPricesCmd = &cobra.Command{
	Use:   "refresh-prices",
	Short: "Refreshes the price of every held symbol once and exits",
	RunE:  runRefreshPrices,
}

// app holds the wired dependencies shared by every sub-command.
type app struct {
	cfg              *config.Config
	logger           *logger.Logger
	userService      service.UserService
	stockService     service.StockService
	portfolioService service.PortfolioService
	closers          []func()
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func newApp() (*app, error) {
	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	a := &app{cfg: cfg, logger: appLogger}
	a.closers = append(a.closers, func() { _ = appLogger.Sync() })

	if cfg.Finnhub.Token == "" {
		appLogger.Warn(common.FinnhubTokenEnv + " is not set; market data requests will fail")
	}

	// Initialize database
	postgresCfg := postgres.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		TimeZone:        cfg.Database.TimeZone,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		LogLevel:        cfg.Database.LogLevel,
	}
	db, err := postgres.NewDB(postgresCfg)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	if sqlDB, err := db.DB.DB(); err == nil {
		a.closers = append(a.closers, func() { _ = sqlDB.Close() })
	}

	// Writers on one (user, symbol) are serialised across replicas through Redis when it is configured.
	var locker service.Locker
	if cfg.Redis.Host != "" {
		redisClient, err := redis.NewClient(redis.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to initialize Redis: %w", err)
		}
		a.closers = append(a.closers, func() { _ = redisClient.Close() })
		locker = redis.NewLocker(redisClient.Client, cfg.Portfolio.LockTTL, cfg.Portfolio.LockRetryInterval)
		appLogger.Info("Using Redis position lock", logger.StringField("host", cfg.Redis.Host))
	} else {
		locker = utils.NewKeyedMutex()
		appLogger.Info("Redis not configured, using in-process position lock")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.DB)
	portfolioRepo := repository.NewPortfolioRepository(db.DB)
	marketRepo := repository.NewFinnhubRepository(cfg, appLogger)

	// Initialize services
	a.userService = service.NewUserService(userRepo, service.NewPasswordHasher(cfg.Auth.BcryptCost), appLogger)
	a.stockService = service.NewStockService(marketRepo, appLogger)
	a.portfolioService = service.NewPortfolioService(portfolioRepo, a.stockService, locker, cfg, appLogger)

	return a, nil
}

func runServe(cmd *cobra.Command, args []string) {
	// Create a context that is canceled on interrupt signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp()
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer a.Close()

	a.logger.Info("Starting Portfolio API Service", logger.Field("name", a.cfg.App.Name))

	// Start the background price refresh
	if a.cfg.Portfolio.RefreshCron != "" {
		scheduler, err := service.NewPriceRefreshScheduler(a.portfolioService, a.cfg.Portfolio.RefreshCron, a.logger)
		if err != nil {
			a.logger.Fatal("Invalid refresh schedule", logger.ErrorField(err))
		}
		go scheduler.Start(ctx)
	}

	// Initialize Echo server
	e := delivery.NewEcho(a.logger)

	// Initialize handlers and routes
	api := e.Group("/api")
	healthHandler := &delivery.HealthHandler{}
	healthHandler.RegisterRoutes(api)

	userHandler := delivery.NewUserHandler(a.userService, a.logger)
	userHandler.RegisterRoutes(api)

	stockHandler := delivery.NewStockHandler(a.stockService, a.logger)
	stockHandler.RegisterRoutes(api.Group("/stocks"))

	portfolioHandler := delivery.NewPortfolioHandler(a.portfolioService, a.logger)
	portfolioHandler.RegisterRoutes(api.Group("/portfolio"))

	e.GET("/swagger/*", swagger.WrapHandler)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%d", a.cfg.API.Host, a.cfg.API.Port)
		a.logger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop() // trigger shutdown
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()

	a.logger.Info("Shutting down server...")

	// Gracefully shutdown the server
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("Server forced to shutdown", logger.ErrorField(err))
	}

	a.logger.Info("Server exiting")
}

func runRefreshPrices(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := refreshPrices(ctx, a.portfolioService, cmd.OutOrStdout()); err != nil {
		a.logger.Error("Price refresh failed", logger.ErrorField(err))
		return err
	}
	return nil
}

// priceRefresher is the part of service.PortfolioService the refresh-prices command needs.
type priceRefresher interface {
	RefreshPrices(ctx context.Context) (*dto.RefreshPricesResponse, error)
}

func refreshPrices(ctx context.Context, svc priceRefresher, out io.Writer) error {
	resp, err := svc.RefreshPrices(ctx)
	if err != nil {
		return fmt.Errorf("price refresh failed: %w", err)
	}
	for _, u := range resp.Updated {
		fmt.Fprintf(out, "%s\t%.4f\n", u.Symbol, u.Price)
	}
	fmt.Fprintf(out, "Updated %d symbols.\n", resp.Count)
	return nil
}

// @title Stock Portfolio API
// @version 1.0
// @description Accounts, Finnhub market data and a per-user position ledger.
// @BasePath /api
func main() {
	rootCmd := &cobra.Command{Use: "api-service", SilenceUsage: true, SilenceErrors: true}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/config-api.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd, refreshPricesCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing api-service CLI: %s\n", err)
		os.Exit(1)
	}
}
