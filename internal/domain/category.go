package domain

import (
	"context"
	"time"
)

const (
	CategoryTypeProduct  = "PRODUCT"
	CategoryTypeService  = "SERVICE"
	CategoryTypeTraining = "TRAINING"
)

func ValidCategoryType(t string) bool {
	return t == CategoryTypeProduct || t == CategoryTypeService || t == CategoryTypeTraining
}

type Category struct {
	ID          string    `gorm:"primaryKey;size:32" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Slug        string    `gorm:"uniqueIndex;size:120;not null" json:"slug"`
	Description *string   `gorm:"size:500" json:"description"`
	Type        string    `gorm:"size:16;not null;index" json:"type"`
	ParentID    *string   `gorm:"size:32;index" json:"parentId"`
	Parent      *Category `gorm:"foreignKey:ParentID" json:"parent,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Category) TableName() string { return "categories" }

// CategoryNode 层级视图节点，SubCategories 按深度上限物化
type CategoryNode struct {
	Category
	SubCategories []*CategoryNode `json:"subCategories"`
}

type CategoryRepository interface {
	Create(ctx context.Context, c *Category) error
	FindByID(ctx context.Context, id string) (*Category, error)
	FindByIDWithParent(ctx context.Context, id string) (*Category, error)
	FindByNameAndType(ctx context.Context, name, ctype string) (*Category, error)
	// SlugExists 检查 slug 是否被其它分类占用（excludeID 可为空）
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
	// ListByType ctype 为空时返回全部，按 type asc, name asc
	ListByType(ctx context.Context, ctype string) ([]Category, error)
	Update(ctx context.Context, id string, fields map[string]any) error
	// Delete 仍被 listing 外键引用时返回 ErrConflict
	Delete(ctx context.Context, id string) error
	CountChildren(ctx context.Context, id string) (int64, error)
}
