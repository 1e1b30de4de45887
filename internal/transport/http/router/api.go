package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"artisan-market-api/internal/domain"
	"artisan-market-api/internal/transport/http/ez"
	mdw "artisan-market-api/internal/transport/http/middleware"
)

// NewAPIEngine 市场端：工匠 App + 公开浏览
func NewAPIEngine(d Deps) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(16<<20),
		mdw.Timeout(10*time.Second),
		ginzap.RecoveryWithZap(d.Log, true),
		mdw.Metrics(),
		mdw.AccessLog(d.Log),
		cors.Default(),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")

	// 登录注册单独做每 IP 限速，防撞库
	authGroup := api.Group("/auth")
	authGroup.Use(mdw.RateLimitPerIP(5, 10))
	mountAuthActions(ez.New(authGroup, d.Log), d)

	// 公开浏览（无需登录）
	pub := ez.New(api, d.Log)
	mountPublicCategoryActions(pub, d)
	mountPublicListingActions(pub, "/products", d.Products)
	mountPublicListingActions(pub, "/services", d.Services)
	mountPublicListingActions(pub, "/training", d.Trainings)

	// 工匠端（Bearer token，必须 ARTISAN）
	artisanGroup := api.Group("")
	artisanGroup.Use(mdw.AuthJWT(d.JWT, domain.RoleArtisan))
	art := ez.New(artisanGroup, d.Log)
	mountAuthMeAction(art, d)
	mountProductActions(art, d.Products)
	mountServiceActions(art, d.Services)
	mountTrainingActions(art, d.Trainings)

	return r
}
