package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"artisan-market-api/internal/service"
	"artisan-market-api/internal/transport/http/ez"
)

// mountAdminStatsActions 后台首页概览
func mountAdminStatsActions(e ez.EZ, d Deps) {
	ez.RegisterAction(e, ez.Action[struct{}, *service.DashboardStats]{
		Method: http.MethodGet,
		Path:   "/dashboard/stats",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*service.DashboardStats, error) {
			return d.Stats.Dashboard(c)
		},
	})
}
