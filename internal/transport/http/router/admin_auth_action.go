package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"artisan-market-api/internal/domain"
	mdw "artisan-market-api/internal/transport/http/middleware"
	"artisan-market-api/internal/transport/http/ez"
)

// mountAdminAuthActions 管理后台登录/登出（cookie 会话）
func mountAdminAuthActions(e ez.EZ, d Deps) {
	type loginIn struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	ez.RegisterAction(e, ez.Action[loginIn, *domain.User]{
		Method: http.MethodPost,
		Path:   "/login",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *loginIn) (*domain.User, error) {
			u, tok, err := d.Auth.AdminLogin(c, in.Email, in.Password)
			if err != nil {
				return nil, err
			}
			c.SetSameSite(http.SameSiteStrictMode)
			maxAge := int(d.JWT.AdminTTL.Seconds())
			c.SetCookie(mdw.AdminCookieName, tok, maxAge, "/", "", d.CookieSecure, true)
			return u, nil
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, gin.H]{
		Method: http.MethodPost,
		Path:   "/logout",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			c.SetSameSite(http.SameSiteStrictMode)
			c.SetCookie(mdw.AdminCookieName, "", -1, "/", "", d.CookieSecure, true)
			return gin.H{"ok": 1}, nil
		},
	})
}

// mountAdminSessionActions 会话内接口（已过 AdminCookie）
func mountAdminSessionActions(e ez.EZ, d Deps) {
	ez.RegisterAction(e, ez.Action[struct{}, *domain.User]{
		Method: http.MethodGet,
		Path:   "/auth/me",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.User, error) {
			return d.Users.Get(c, c.GetString("userId"))
		},
	})
}
