package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"artisan-market-api/internal/domain"
	"artisan-market-api/internal/service"
	"artisan-market-api/internal/transport/http/ez"
)

// mountServiceActions 工匠端服务管理
func mountServiceActions(e ez.EZ, svc *service.ListingService[domain.ServiceListing]) {
	mountArtisanListingCommon(e, "/services", svc)

	type createIn struct {
		Title        string   `json:"title" binding:"required"`
		Description  string   `json:"description" binding:"required"`
		CategoryID   string   `json:"categoryId" binding:"required"`
		Images       []string `json:"images"`
		PriceType    string   `json:"priceType" binding:"required,oneof=FIXED HOURLY QUOTE"`
		Price        *float64 `json:"price" binding:"omitempty,gt=0"`
		Currency     string   `json:"currency"`
		LocationType string   `json:"locationType" binding:"required,oneof=ON_SITE REMOTE BOTH"`
	}
	ez.RegisterAction(e, ez.Action[createIn, *domain.ServiceListing]{
		Method:  http.MethodPost,
		Path:    "/services",
		Binder:  ez.BindJSON,
		Auth:    true,
		Created: true,
		Handler: func(c *gin.Context, in *createIn) (*domain.ServiceListing, error) {
			price := in.Price
			// 报价面议不带价格，其余必须带
			if in.PriceType == domain.PriceTypeQuote {
				price = nil
			} else if price == nil {
				return nil, ez.BadRequest("price is required unless priceType is QUOTE")
			}
			currency := in.Currency
			if currency == "" {
				currency = "GHS"
			}
			m := &domain.ServiceListing{
				ListingBase: domain.ListingBase{
					Title:       in.Title,
					Description: in.Description,
					CategoryID:  in.CategoryID,
					Images:      in.Images,
				},
				PriceType:    in.PriceType,
				Price:        price,
				Currency:     currency,
				LocationType: in.LocationType,
			}
			return svc.Create(c, c.GetString("userId"), m)
		},
	})

	type updateIn struct {
		Title        *string   `json:"title"`
		Description  *string   `json:"description"`
		CategoryID   *string   `json:"categoryId"`
		Images       *[]string `json:"images"`
		PriceType    *string   `json:"priceType" binding:"omitempty,oneof=FIXED HOURLY QUOTE"`
		Price        *float64  `json:"price" binding:"omitempty,gt=0"`
		Currency     *string   `json:"currency"`
		LocationType *string   `json:"locationType" binding:"omitempty,oneof=ON_SITE REMOTE BOTH"`
	}
	ez.RegisterAction(e, ez.Action[updateIn, *domain.ServiceListing]{
		Method: http.MethodPut,
		Path:   "/services/:id",
		Binder: ez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *updateIn) (*domain.ServiceListing, error) {
			fields := map[string]any{}
			put(fields, "title", in.Title)
			put(fields, "description", in.Description)
			put(fields, "category_id", in.CategoryID)
			put(fields, "images", in.Images)
			put(fields, "price_type", in.PriceType)
			put(fields, "price", in.Price)
			put(fields, "currency", in.Currency)
			put(fields, "location_type", in.LocationType)
			// 改成面议时清掉价格
			if in.PriceType != nil && *in.PriceType == domain.PriceTypeQuote {
				fields["price"] = nil
			}
			return svc.Update(c, c.Param("id"), c.GetString("userId"), false, fields)
		},
	})
}
