package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"artisan-market-api/internal/domain"
	"artisan-market-api/internal/service"
	"artisan-market-api/internal/transport/http/ez"
)

// listingQ 列表通用查询串
type listingQ struct {
	Page       int    `form:"page,default=1"`
	Limit      int    `form:"limit,default=10"`
	Status     string `form:"status"`
	CategoryID string `form:"categoryId"`
	ArtisanID  string `form:"artisanId"`
	Search     string `form:"search"` // title/description 模糊搜
	SortBy     string `form:"sortBy"`
	SortOrder  string `form:"sortOrder"`
}

func (q listingQ) filter() domain.ListingFilter {
	return domain.ListingFilter{
		Page:       q.Page,
		Limit:      q.Limit,
		Status:     q.Status,
		CategoryID: q.CategoryID,
		ArtisanID:  q.ArtisanID,
		Search:     q.Search,
		SortBy:     q.SortBy,
		SortOrder:  q.SortOrder,
	}
}

// mountPublicListingActions 公开浏览：列表默认只出 ACTIVE，详情非 ACTIVE 一律 404
func mountPublicListingActions[T domain.Listing](e ez.EZ, path string, svc *service.ListingService[T]) {
	ez.RegisterAction(e, ez.Action[listingQ, service.Page[T]]{
		Method: http.MethodGet,
		Path:   path,
		Binder: ez.BindQuery,
		Handler: func(c *gin.Context, in *listingQ) (service.Page[T], error) {
			return svc.List(c, in.filter(), false)
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, *T]{
		Method: http.MethodGet,
		Path:   path + "/:id",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*T, error) {
			return svc.GetPublic(c, c.Param("id"))
		},
	})
}

// mountArtisanListingCommon 工匠通用：我的列表 + 归档
func mountArtisanListingCommon[T domain.Listing](e ez.EZ, path string, svc *service.ListingService[T]) {
	ez.RegisterAction(e, ez.Action[listingQ, service.Page[T]]{
		Method: http.MethodGet,
		Path:   path + "/mine",
		Binder: ez.BindQuery,
		Auth:   true,
		Handler: func(c *gin.Context, in *listingQ) (service.Page[T], error) {
			return svc.ListOwn(c, c.GetString("userId"), in.filter())
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, gin.H]{
		Method: http.MethodDelete,
		Path:   path + "/:id",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			id := c.Param("id")
			if err := svc.Archive(c, id, c.GetString("userId"), false); err != nil {
				return nil, err
			}
			return gin.H{"id": id, "status": domain.StatusArchived}, nil
		},
	})
}

// 局部更新用：出现即写入
func put[T any](fields map[string]any, col string, v *T) {
	if v != nil {
		fields[col] = *v
	}
}

// 可空文本：传 "" 表示清空
func putNullable(fields map[string]any, col string, v *string) {
	if v == nil {
		return
	}
	if *v == "" {
		fields[col] = nil
	} else {
		fields[col] = *v
	}
}
