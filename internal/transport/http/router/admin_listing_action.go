package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"artisan-market-api/internal/domain"
	"artisan-market-api/internal/service"
	"artisan-market-api/internal/transport/http/ez"
)

// mountAdminListingActions 审批台：全状态列表 + 详情 + 状态流转
func mountAdminListingActions[T domain.Listing](e ez.EZ, path string, svc *service.ListingService[T]) {
	ez.RegisterAction(e, ez.Action[listingQ, service.Page[T]]{
		Method: http.MethodGet,
		Path:   path,
		Binder: ez.BindQuery,
		Handler: func(c *gin.Context, in *listingQ) (service.Page[T], error) {
			return svc.List(c, in.filter(), true)
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, *T]{
		Method: http.MethodGet,
		Path:   path + "/:id",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*T, error) {
			return svc.Get(c, c.Param("id"))
		},
	})

	type statusIn struct {
		Status          string `json:"status" binding:"required"`
		RejectionReason string `json:"rejectionReason"`
	}
	ez.RegisterAction(e, ez.Action[statusIn, *T]{
		Method: http.MethodPut,
		Path:   path + "/:id/status",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *statusIn) (*T, error) {
			return svc.UpdateStatus(c, c.Param("id"), in.Status, in.RejectionReason)
		},
	})
}
