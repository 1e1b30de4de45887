package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"artisan-market-api/internal/core/auth"
	"artisan-market-api/internal/core/cache"
	"artisan-market-api/internal/core/config"
	"artisan-market-api/internal/core/database"
	"artisan-market-api/internal/core/logger"
	"artisan-market-api/internal/core/server"
	"artisan-market-api/internal/domain"
	"artisan-market-api/internal/repo"
	"artisan-market-api/internal/service"
	"artisan-market-api/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := newLogger(cfg)
	defer cleanup()

	// DB 连接（失败直接 Fatal）
	db := mustOpenDB(cfg, log)
	log.Info("database connected", zap.String("driver", cfg.DB.Driver))

	if cfg.DB.AutoMigrate {
		if err := db.AutoMigrate(
			&domain.User{},
			&domain.Category{},
			&domain.ProductListing{},
			&domain.ServiceListing{},
			&domain.TrainingOffer{},
		); err != nil {
			log.Fatal("automigrate failed", zap.Error(err))
		}
		log.Info("automigrate done")
	}

	jwter := &auth.JWTer{
		Secret:     []byte(cfg.JWT.Secret),
		Issuer:     cfg.JWT.Issuer,
		AdminTTL:   time.Duration(cfg.JWT.AdminTokenTTLHour) * time.Hour,
		ArtisanTTL: time.Duration(cfg.JWT.ArtisanTokenTTLDay) * 24 * time.Hour,
	}

	cc := cache.Disabled()
	if cfg.Redis.Enable {
		cc = cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		log.Info("redis cache enabled", zap.String("addr", cfg.Redis.Addr))
	}

	// 组装依赖
	userRepo := repo.NewUserRepo(db)
	catRepo := repo.NewCategoryRepo(db)
	productRepo := repo.NewListingRepo[domain.ProductListing](db)
	serviceRepo := repo.NewListingRepo[domain.ServiceListing](db)
	trainingRepo := repo.NewListingRepo[domain.TrainingOffer](db)

	authSvc := service.NewAuthService(userRepo, jwter)

	// 启动兜底管理员
	if cfg.Seed.AdminEmail != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := authSvc.SeedAdmin(ctx, cfg.Seed.AdminEmail, cfg.Seed.AdminPassword, cfg.Seed.AdminName); err != nil {
			log.Error("seed admin failed", zap.Error(err))
		} else {
			log.Info("seed admin ensured", zap.String("email", cfg.Seed.AdminEmail))
		}
		cancel()
	}

	deps := router.Deps{
		Log:          log,
		JWT:          jwter,
		CookieSecure: cfg.App.Env == "production",

		Auth:       authSvc,
		Users:      service.NewUserService(userRepo),
		Categories: service.NewCategoryService(catRepo, cc),
		Products:   service.NewListingService(domain.ListingKindProduct, productRepo, catRepo),
		Services:   service.NewListingService(domain.ListingKindService, serviceRepo, catRepo),
		Trainings:  service.NewListingService(domain.ListingKindTraining, trainingRepo, catRepo),
		Stats:      service.NewStatsService(userRepo, productRepo, serviceRepo, trainingRepo),
	}

	r := router.NewAdminEngine(deps)

	addr := server.Addr(cfg.App.Admin.Host, cfg.App.Admin.Port)
	srv := server.BuildServer(addr, r, 5*time.Second, 10*time.Second, 60*time.Second)

	host4human := cfg.App.Admin.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.Admin.Port)
	log.Info("admin api starting",
		zap.String("addr", addr),
		zap.String("open", baseURL),
		zap.String("health", baseURL+"/health"),
		zap.String("admin_v1", baseURL+"/admin/v1"),
	)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("admin api start FAILED", zap.Error(err))
		}
	}()
	log.Info("admin api started SUCCESS")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	log.Info("admin api stopped gracefully")
}

func newLogger(cfg *config.Config) (*zap.Logger, func()) {
	if cfg.Log.Rotate.Enable {
		return logger.NewWithRotate(cfg.Log.Level, cfg.Log.JSON, logger.FileRotate{
			Filename:   cfg.Log.Rotate.Filename,
			MaxSizeMB:  cfg.Log.Rotate.MaxSizeMB,
			MaxBackups: cfg.Log.Rotate.MaxBackups,
			MaxAgeDays: cfg.Log.Rotate.MaxAgeDays,
			Compress:   cfg.Log.Rotate.Compress,
		})
	}
	return logger.New(cfg.Log.Level, cfg.Log.JSON)
}

func mustOpenDB(cfg *config.Config, l *zap.Logger) *gorm.DB {
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
	})
	if err != nil {
		l.Fatal("db open", zap.Error(err))
	}
	return db
}
