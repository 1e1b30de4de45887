package router

import (
	"go.uber.org/zap"

	"artisan-market-api/internal/core/auth"
	"artisan-market-api/internal/domain"
	"artisan-market-api/internal/service"
)

// Deps 路由层依赖集合，cmd 里组装好一次性传进来
type Deps struct {
	Log *zap.Logger
	JWT *auth.JWTer
	// 生产环境 cookie 加 Secure
	CookieSecure bool

	Auth       *service.AuthService
	Users      *service.UserService
	Categories *service.CategoryService
	Products   *service.ListingService[domain.ProductListing]
	Services   *service.ListingService[domain.ServiceListing]
	Trainings  *service.ListingService[domain.TrainingOffer]
	Stats      *service.StatsService
}
