package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"artisan-market-api/internal/domain"
	"artisan-market-api/internal/service"
	"artisan-market-api/internal/transport/http/ez"
)

type authOut struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// mountAuthActions /api/v1/auth 下的注册与登录
func mountAuthActions(e ez.EZ, d Deps) {
	type registerIn struct {
		Name        string `json:"name" binding:"required"`
		Email       string `json:"email" binding:"required,email"`
		Password    string `json:"password" binding:"required"`
		PhoneNumber string `json:"phoneNumber" binding:"required"`
		NationalID  string `json:"nationalId" binding:"required"`
	}
	ez.RegisterAction(e, ez.Action[registerIn, authOut]{
		Method:  http.MethodPost,
		Path:    "/register",
		Binder:  ez.BindJSON,
		Created: true,
		Handler: func(c *gin.Context, in *registerIn) (authOut, error) {
			u, tok, err := d.Auth.ArtisanRegister(c, service.RegisterInput{
				Name:        in.Name,
				Email:       in.Email,
				Password:    in.Password,
				PhoneNumber: in.PhoneNumber,
				NationalID:  in.NationalID,
			})
			if err != nil {
				return authOut{}, err
			}
			return authOut{Token: tok, User: u}, nil
		},
	})

	type loginIn struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	ez.RegisterAction(e, ez.Action[loginIn, authOut]{
		Method: http.MethodPost,
		Path:   "/login",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *loginIn) (authOut, error) {
			u, tok, err := d.Auth.ArtisanLogin(c, in.Email, in.Password)
			if err != nil {
				return authOut{}, err
			}
			return authOut{Token: tok, User: u}, nil
		},
	})
}

// mountAuthMeAction 当前登录工匠的完整资料（挂在鉴权分组）
func mountAuthMeAction(e ez.EZ, d Deps) {
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
