package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"artisan-market-api/internal/domain"
	"artisan-market-api/internal/transport/http/ez"
)

type categoryQ struct {
	Type  string `form:"type"`
	Depth int    `form:"depth"`
}

// mountPublicCategoryActions 市场端分类浏览（只读）
func mountPublicCategoryActions(e ez.EZ, d Deps) {
	ez.RegisterAction(e, ez.Action[categoryQ, []domain.Category]{
		Method: http.MethodGet,
		Path:   "/categories",
		Binder: ez.BindQuery,
		Handler: func(c *gin.Context, in *categoryQ) ([]domain.Category, error) {
			return d.Categories.Flat(c, in.Type)
		},
	})

	ez.RegisterAction(e, ez.Action[categoryQ, []*domain.CategoryNode]{
		Method: http.MethodGet,
		Path:   "/categories/hierarchy",
		Binder: ez.BindQuery,
		Handler: func(c *gin.Context, in *categoryQ) ([]*domain.CategoryNode, error) {
			return d.Categories.Hierarchy(c, in.Type, in.Depth)
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, *domain.Category]{
		Method: http.MethodGet,
		Path:   "/categories/:id",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.Category, error) {
			return d.Categories.Get(c, c.Param("id"))
		},
	})
}
