package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"artisan-market-api/internal/domain"
	"artisan-market-api/internal/service"
	"artisan-market-api/internal/transport/http/ez"
)

// mountAdminUserActions 用户管理
func mountAdminUserActions(e ez.EZ, d Deps) {
	type listQ struct {
		Page     int    `form:"page,default=1"`
		Limit    int    `form:"limit,default=10"`
		Role     string `form:"role"`
		IsActive *bool  `form:"isActive"`
		Search   string `form:"search"` // name/email 模糊搜
	}
	ez.RegisterAction(e, ez.Action[listQ, service.Page[domain.User]]{
		Method: http.MethodGet,
		Path:   "/users",
		Binder: ez.BindQuery,
		Handler: func(c *gin.Context, in *listQ) (service.Page[domain.User], error) {
			return d.Users.List(c, domain.UserFilter{
				Page:     in.Page,
				Limit:    in.Limit,
				Role:     in.Role,
				IsActive: in.IsActive,
				Search:   in.Search,
			})
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, *domain.User]{
		Method: http.MethodGet,
		Path:   "/users/:id",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.User, error) {
			return d.Users.Get(c, c.Param("id"))
		},
	})

	ez.RegisterAction(e, ez.Action[service.UpdateUserInput, *domain.User]{
		Method: http.MethodPut,
		Path:   "/users/:id",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *service.UpdateUserInput) (*domain.User, error) {
			return d.Users.Update(c, c.Param("id"), *in)
		},
	})

	// 启用/停用（工匠审批台也走这里）
	type statusIn struct {
		IsActive *bool `json:"isActive" binding:"required"`
	}
	ez.RegisterAction(e, ez.Action[statusIn, *domain.User]{
		Method: http.MethodPut,
		Path:   "/users/:id/status",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *statusIn) (*domain.User, error) {
			return d.Users.SetActive(c, c.Param("id"), *in.IsActive)
		},
	})
}
