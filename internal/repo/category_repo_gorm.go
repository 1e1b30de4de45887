package repo

import (
	"context"

	"gorm.io/gorm"

	"artisan-market-api/internal/domain"
)

type CategoryRepo struct{ db *gorm.DB }

func NewCategoryRepo(db *gorm.DB) *CategoryRepo { return &CategoryRepo{db: db} }

var _ domain.CategoryRepository = (*CategoryRepo)(nil)

func (r *CategoryRepo) Create(ctx context.Context, c *domain.Category) error {
	return translate(r.db.WithContext(ctx).Create(c).Error)
}

func (r *CategoryRepo) FindByID(ctx context.Context, id string) (*domain.Category, error) {
	var c domain.Category
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *CategoryRepo) FindByIDWithParent(ctx context.Context, id string) (*domain.Category, error) {
	var c domain.Category
	if err := r.db.WithContext(ctx).Preload("Parent").First(&c, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *CategoryRepo) FindByNameAndType(ctx context.Context, name, ctype string) (*domain.Category, error) {
	var c domain.Category
	err := r.db.WithContext(ctx).First(&c, "name = ? AND type = ?", name, ctype).Error
	if err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *CategoryRepo) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	q := r.db.WithContext(ctx).Model(&domain.Category{}).Where("slug = ?", slug)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, translate(err)
	}
	return n > 0, nil
}

func (r *CategoryRepo) ListByType(ctx context.Context, ctype string) ([]domain.Category, error) {
	q := r.db.WithContext(ctx).Model(&domain.Category{})
	if ctype != "" {
		q = q.Where("type = ?", ctype)
	}
	var cats []domain.Category
	if err := q.Order("type asc, name asc").Find(&cats).Error; err != nil {
		return nil, translate(err)
	}
	return cats, nil
}

func (r *CategoryRepo) Update(ctx context.Context, id string, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return translate(r.db.WithContext(ctx).
		Model(&domain.Category{}).
		Where("id = ?", id).
		Updates(fields).Error)
}

func (r *CategoryRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&domain.Category{}, "id = ?", id)
	if res.Error != nil {
		// listing 外键约束报错 → Conflict
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CategoryRepo) CountChildren(ctx context.Context, id string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Category{}).Where("parent_id = ?", id).Count(&n).Error
	return n, translate(err)
}
