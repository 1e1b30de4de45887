package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"artisan-market-api/internal/domain"
	"artisan-market-api/internal/service"
	"artisan-market-api/internal/transport/http/ez"
)

// mountProductActions 工匠端商品管理
func mountProductActions(e ez.EZ, svc *service.ListingService[domain.ProductListing]) {
	mountArtisanListingCommon(e, "/products", svc)

	type createIn struct {
		Title           string   `json:"title" binding:"required"`
		Description     string   `json:"description" binding:"required"`
		CategoryID      string   `json:"categoryId" binding:"required"`
		Images          []string `json:"images"`
		Price           float64  `json:"price" binding:"required,gt=0"`
		Currency        string   `json:"currency"`
		StockQuantity   *int     `json:"stockQuantity" binding:"omitempty,gte=0"`
		SKU             *string  `json:"sku"`
		Materials       []string `json:"materials"`
		Dimensions      *string  `json:"dimensions"`
		ShippingDetails *string  `json:"shippingDetails"`
	}
	ez.RegisterAction(e, ez.Action[createIn, *domain.ProductListing]{
		Method:  http.MethodPost,
		Path:    "/products",
		Binder:  ez.BindJSON,
		Auth:    true,
		Created: true,
		Handler: func(c *gin.Context, in *createIn) (*domain.ProductListing, error) {
			currency := in.Currency
			if currency == "" {
				currency = "GHS"
			}
			m := &domain.ProductListing{
				ListingBase: domain.ListingBase{
					Title:       in.Title,
					Description: in.Description,
					CategoryID:  in.CategoryID,
					Images:      in.Images,
				},
				Price:           in.Price,
				Currency:        currency,
				StockQuantity:   in.StockQuantity,
				SKU:             in.SKU,
				Materials:       in.Materials,
				Dimensions:      in.Dimensions,
				ShippingDetails: in.ShippingDetails,
			}
			return svc.Create(c, c.GetString("userId"), m)
		},
	})

	type updateIn struct {
		Title           *string   `json:"title"`
		Description     *string   `json:"description"`
		CategoryID      *string   `json:"categoryId"`
		Images          *[]string `json:"images"`
		Price           *float64  `json:"price" binding:"omitempty,gt=0"`
		Currency        *string   `json:"currency"`
		StockQuantity   *int      `json:"stockQuantity" binding:"omitempty,gte=0"`
		SKU             *string   `json:"sku"`
		Materials       *[]string `json:"materials"`
		Dimensions      *string   `json:"dimensions"`
		ShippingDetails *string   `json:"shippingDetails"`
	}
	ez.RegisterAction(e, ez.Action[updateIn, *domain.ProductListing]{
		Method: http.MethodPut,
		Path:   "/products/:id",
		Binder: ez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *updateIn) (*domain.ProductListing, error) {
			fields := map[string]any{}
			put(fields, "title", in.Title)
			put(fields, "description", in.Description)
			put(fields, "category_id", in.CategoryID)
			put(fields, "images", in.Images)
			put(fields, "price", in.Price)
			put(fields, "currency", in.Currency)
			put(fields, "stock_quantity", in.StockQuantity)
			putNullable(fields, "sku", in.SKU)
			put(fields, "materials", in.Materials)
			putNullable(fields, "dimensions", in.Dimensions)
			putNullable(fields, "shipping_details", in.ShippingDetails)
			return svc.Update(c, c.Param("id"), c.GetString("userId"), false, fields)
		},
	})
}
