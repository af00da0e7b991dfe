package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"mwananchi-loans/config"
	httpLayer "mwananchi-loans/http"
	"mwananchi-loans/logger"
	"mwananchi-loans/repository"
	"mwananchi-loans/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using process environment")
	}

	cfg := config.Load()

	if err := logger.Init(cfg.Development, os.Getenv("LOG_LEVEL")); err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	var store repository.SessionStore
	if cfg.RedisAddr != "" {
		redisStore := repository.NewRedisStore(cfg.RedisAddr)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisStore.Ping(ctx)
		cancel()
		if err != nil {
			logger.L().Fatal("redis unreachable", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		}
		store = redisStore
		logger.L().Info("using redis session store", zap.String("addr", cfg.RedisAddr))
	} else {
		store = repository.NewMemoryStore()
		logger.L().Info("using in-memory session store")
	}

	underwriter := service.NewRandomUnderwriter(cfg.MinQualifiedAmount, cfg.MaxQualifiedAmount)
	calculator := service.NewCalculator(cfg.InterestRate, cfg.ServiceFeeRate)
	flow := service.NewFlow(store, underwriter, service.DefaultCatalog(), calculator, cfg.PaybillNumber)
	authorizer := service.NewAuthorizer(cfg.AuthorizeContactDelay, cfg.AuthorizeApproveDelay)

	rateLimiter := httpLayer.NewRateLimiter(30, time.Minute)
	defer rateLimiter.Stop()

	if err := httpLayer.RegisterValidators(); err != nil {
		logger.L().Fatal("register validators", zap.Error(err))
	}

	router := httpLayer.NewRouter(flow, authorizer, rateLimiter)

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.L().Info("listening", zap.String("addr", cfg.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		logger.L().Error("server error", zap.Error(err))
		return
	case <-quit:
		logger.L().Info("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.L().Error("shutdown", zap.Error(err))
	}

	logger.L().Info("server exited")
}
