package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"artisan-market-api/internal/domain"
	"artisan-market-api/internal/service"
	"artisan-market-api/internal/transport/http/ez"
)

// mountTrainingActions 工匠端培训课程管理
func mountTrainingActions(e ez.EZ, svc *service.ListingService[domain.TrainingOffer]) {
	mountArtisanListingCommon(e, "/training", svc)

	type createIn struct {
		Title            string   `json:"title" binding:"required"`
		Description      string   `json:"description" binding:"required"`
		CategoryID       string   `json:"categoryId" binding:"required"`
		Images           []string `json:"images"`
		IsFree           bool     `json:"isFree"`
		Price            *float64 `json:"price" binding:"omitempty,gt=0"`
		Currency         *string  `json:"currency"`
		Duration         string   `json:"duration" binding:"required"`
		ScheduleDetails  *string  `json:"scheduleDetails"`
		Location         string   `json:"location" binding:"required"`
		Capacity         *int     `json:"capacity" binding:"omitempty,gt=0"`
		Prerequisites    *string  `json:"prerequisites"`
		WhatYouWillLearn []string `json:"whatYouWillLearn"`
	}
	ez.RegisterAction(e, ez.Action[createIn, *domain.TrainingOffer]{
		Method:  http.MethodPost,
		Path:    "/training",
		Binder:  ez.BindJSON,
		Auth:    true,
		Created: true,
		Handler: func(c *gin.Context, in *createIn) (*domain.TrainingOffer, error) {
			price := in.Price
			currency := in.Currency
			if in.IsFree {
				// 免费课不带价格
				price = nil
				currency = nil
			} else {
				if price == nil {
					return nil, ez.BadRequest("price is required for paid trainings")
				}
				if currency == nil || *currency == "" {
					ghs := "GHS"
					currency = &ghs
				}
			}
			m := &domain.TrainingOffer{
				ListingBase: domain.ListingBase{
					Title:       in.Title,
					Description: in.Description,
					CategoryID:  in.CategoryID,
					Images:      in.Images,
				},
				IsFree:           in.IsFree,
				Price:            price,
				Currency:         currency,
				Duration:         in.Duration,
				ScheduleDetails:  in.ScheduleDetails,
				Location:         in.Location,
				Capacity:         in.Capacity,
				Prerequisites:    in.Prerequisites,
				WhatYouWillLearn: in.WhatYouWillLearn,
			}
			return svc.Create(c, c.GetString("userId"), m)
		},
	})

	type updateIn struct {
		Title            *string   `json:"title"`
		Description      *string   `json:"description"`
		CategoryID       *string   `json:"categoryId"`
		Images           *[]string `json:"images"`
		IsFree           *bool     `json:"isFree"`
		Price            *float64  `json:"price" binding:"omitempty,gt=0"`
		Currency         *string   `json:"currency"`
		Duration         *string   `json:"duration"`
		ScheduleDetails  *string   `json:"scheduleDetails"`
		Location         *string   `json:"location"`
		Capacity         *int      `json:"capacity" binding:"omitempty,gt=0"`
		Prerequisites    *string   `json:"prerequisites"`
		WhatYouWillLearn *[]string `json:"whatYouWillLearn"`
	}
	ez.RegisterAction(e, ez.Action[updateIn, *domain.TrainingOffer]{
		Method: http.MethodPut,
		Path:   "/training/:id",
		Binder: ez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *updateIn) (*domain.TrainingOffer, error) {
			fields := map[string]any{}
			put(fields, "title", in.Title)
			put(fields, "description", in.Description)
			put(fields, "category_id", in.CategoryID)
			put(fields, "images", in.Images)
			put(fields, "is_free", in.IsFree)
			put(fields, "price", in.Price)
			putNullable(fields, "currency", in.Currency)
			put(fields, "duration", in.Duration)
			putNullable(fields, "schedule_details", in.ScheduleDetails)
			put(fields, "location", in.Location)
			put(fields, "capacity", in.Capacity)
			putNullable(fields, "prerequisites", in.Prerequisites)
			put(fields, "what_you_will_learn", in.WhatYouWillLearn)
			// 改成免费时清掉价格
			if in.IsFree != nil && *in.IsFree {
				fields["price"] = nil
				fields["currency"] = nil
			}
			return svc.Update(c, c.Param("id"), c.GetString("userId"), false, fields)
		},
	})
}
