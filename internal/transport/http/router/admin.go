package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"artisan-market-api/internal/transport/http/ez"
	mdw "artisan-market-api/internal/transport/http/middleware"
)

// NewAdminEngine 管理后台：cookie 会话 + 全站 ADMIN
func NewAdminEngine(d Deps) *gin.Engine {
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

	admin := r.Group("/admin/v1")

	// 登录/登出不走会话校验，登录另加每 IP 限速
	loginGroup := admin.Group("/auth")
	loginGroup.Use(mdw.RateLimitPerIP(5, 10))
	mountAdminAuthActions(ez.New(loginGroup, d.Log), d)

	// 其余接口全部要求有效 admin 会话
	gated := admin.Group("")
	gated.Use(mdw.AdminCookie(d.JWT))
	g := ez.New(gated, d.Log)
	mountAdminSessionActions(g, d)
	mountAdminUserActions(g, d)
	mountAdminCategoryActions(g, d)
	mountAdminListingActions(g, "/products", d.Products)
	mountAdminListingActions(g, "/services", d.Services)
	mountAdminListingActions(g, "/training", d.Trainings)
	mountAdminStatsActions(g, d)

	return r
}
