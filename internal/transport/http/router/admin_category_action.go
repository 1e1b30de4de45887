package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"artisan-market-api/internal/domain"
	"artisan-market-api/internal/service"
	"artisan-market-api/internal/transport/http/ez"
)

// mountAdminCategoryActions 分类管理（增删改查 + 层级视图）
func mountAdminCategoryActions(e ez.EZ, d Deps) {
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

	ez.RegisterAction(e, ez.Action[service.CreateCategoryInput, *domain.Category]{
		Method:  http.MethodPost,
		Path:    "/categories",
		Binder:  ez.BindJSON,
		Created: true,
		Handler: func(c *gin.Context, in *service.CreateCategoryInput) (*domain.Category, error) {
			return d.Categories.Create(c, *in)
		},
	})

	ez.RegisterAction(e, ez.Action[service.UpdateCategoryInput, *domain.Category]{
		Method: http.MethodPut,
		Path:   "/categories/:id",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *service.UpdateCategoryInput) (*domain.Category, error) {
			return d.Categories.Update(c, c.Param("id"), *in)
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, gin.H]{
		Method: http.MethodDelete,
		Path:   "/categories/:id",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			id := c.Param("id")
			if err := d.Categories.Delete(c, id); err != nil {
				return nil, err
			}
			return gin.H{"id": id}, nil
		},
	})
}
