package domain

import (
	"context"
	"time"
)

// 上架生命周期
const (
	StatusDraft           = "DRAFT"
	StatusPendingApproval = "PENDING_APPROVAL"
	StatusActive          = "ACTIVE"
	StatusInactive        = "INACTIVE"
	StatusRejected        = "REJECTED"
	StatusArchived        = "ARCHIVED"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusDraft, StatusPendingApproval, StatusActive, StatusInactive, StatusRejected, StatusArchived:
		return true
	}
	return false
}

// AdminStatuses 管理端可设置的状态子集
func AdminSettableStatus(s string) bool {
	return s == StatusActive || s == StatusRejected || s == StatusInactive
}

const (
	ListingKindProduct  = "product"
	ListingKindService  = "service"
	ListingKindTraining = "training"
)

// ArtisanSummary 只读投影，复用 users 表做 belongs-to 预载
type ArtisanSummary struct {
	ID    string `gorm:"primaryKey;size:32" json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (ArtisanSummary) TableName() string { return "users" }

type CategorySummary struct {
	ID   string `gorm:"primaryKey;size:32" json:"id"`
	Name string `json:"name"`
}

func (CategorySummary) TableName() string { return "categories" }

// ListingBase 三种 listing 的公共字段（gorm 匿名嵌入自动展开）
type ListingBase struct {
	ID              string           `gorm:"primaryKey;size:32" json:"id"`
	Title           string           `gorm:"size:191;not null" json:"title"`
	Description     string           `gorm:"type:text;not null" json:"description"`
	Status          string           `gorm:"size:20;not null;default:PENDING_APPROVAL;index" json:"status"`
	RejectionReason *string          `gorm:"size:500" json:"rejectionReason"`
	Images          []string         `gorm:"serializer:json;type:text" json:"images"`
	ArtisanID       string           `gorm:"size:32;not null;index" json:"artisanId"`
	CategoryID      string           `gorm:"size:32;not null;index" json:"categoryId"`
	Artisan         *ArtisanSummary  `gorm:"foreignKey:ArtisanID" json:"artisan,omitempty"`
	Category        *CategorySummary `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	CreatedAt       time.Time        `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time        `gorm:"autoUpdateTime" json:"updatedAt"`
}

type ProductListing struct {
	ListingBase
	Price           float64  `gorm:"not null" json:"price"`
	Currency        string   `gorm:"size:8;not null;default:GHS" json:"currency"`
	StockQuantity   *int     `json:"stockQuantity"`
	SKU             *string  `gorm:"column:sku;size:64" json:"sku"`
	Materials       []string `gorm:"serializer:json;type:text" json:"materials"`
	Dimensions      *string  `gorm:"size:191" json:"dimensions"`
	ShippingDetails *string  `gorm:"size:500" json:"shippingDetails"`
}

func (ProductListing) TableName() string { return "product_listings" }

const (
	PriceTypeFixed  = "FIXED"
	PriceTypeHourly = "HOURLY"
	PriceTypeQuote  = "QUOTE"

	LocationTypeOnSite = "ON_SITE"
	LocationTypeRemote = "REMOTE"
	LocationTypeBoth   = "BOTH"
)

type ServiceListing struct {
	ListingBase
	PriceType    string   `gorm:"size:16;not null;default:FIXED" json:"priceType"`
	Price        *float64 `json:"price"`
	Currency     string   `gorm:"size:8;not null;default:GHS" json:"currency"`
	LocationType string   `gorm:"size:16;not null;default:ON_SITE" json:"locationType"`
}

func (ServiceListing) TableName() string { return "service_listings" }

type TrainingOffer struct {
	ListingBase
	IsFree           bool     `gorm:"not null;default:false" json:"isFree"`
	Price            *float64 `json:"price"`
	Currency         *string  `gorm:"size:8" json:"currency"`
	Duration         string   `gorm:"size:100;not null" json:"duration"`
	ScheduleDetails  *string  `gorm:"size:500" json:"scheduleDetails"`
	Location         string   `gorm:"size:191;not null" json:"location"`
	Capacity         *int     `json:"capacity"`
	Prerequisites    *string  `gorm:"size:500" json:"prerequisites"`
	WhatYouWillLearn []string `gorm:"serializer:json;type:text" json:"whatYouWillLearn"`
}

func (TrainingOffer) TableName() string { return "training_offers" }

// Listing 约束三种 listing 模型，暴露公共字段
type Listing interface {
	ProductListing | ServiceListing | TrainingOffer
}

// BaseOf 取出公共字段（泛型代码里访问嵌入 base 的唯一入口）
func BaseOf(m any) *ListingBase {
	switch v := m.(type) {
	case *ProductListing:
		return &v.ListingBase
	case *ServiceListing:
		return &v.ListingBase
	case *TrainingOffer:
		return &v.ListingBase
	}
	return nil
}

// CategoryTypeOf 每种 listing 只能挂同类型分类
func CategoryTypeOf(kind string) string {
	switch kind {
	case ListingKindProduct:
		return CategoryTypeProduct
	case ListingKindService:
		return CategoryTypeService
	case ListingKindTraining:
		return CategoryTypeTraining
	}
	return ""
}

type ListingFilter struct {
	Page       int
	Limit      int
	Status     string // 空 = 不过滤（调用方负责默认 ACTIVE）
	CategoryID string
	ArtisanID  string
	Search     string // title/description 模糊搜
	SortBy     string // createdAt/updatedAt/title/price 白名单
	SortOrder  string // asc/desc
}

type ListingRepository[T Listing] interface {
	Create(ctx context.Context, m *T) error
	// FindByID 带 Artisan/Category 摘要预载
	FindByID(ctx context.Context, id string) (*T, error)
	List(ctx context.Context, f ListingFilter) ([]T, int64, error)
	// Updates 局部更新后重新加载（带预载）
	Updates(ctx context.Context, id string, fields map[string]any) (*T, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
}
