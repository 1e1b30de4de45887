package repo

import (
	"context"

	"gorm.io/gorm"

	"artisan-market-api/internal/domain"
)

// ListingRepo 三种 listing 共用的泛型仓储
type ListingRepo[T domain.Listing] struct{ db *gorm.DB }

func NewListingRepo[T domain.Listing](db *gorm.DB) *ListingRepo[T] {
	return &ListingRepo[T]{db: db}
}

func (r *ListingRepo[T]) withJoins(tx *gorm.DB) *gorm.DB {
	return tx.Preload("Artisan").Preload("Category")
}

func (r *ListingRepo[T]) Create(ctx context.Context, m *T) error {
	return translate(r.db.WithContext(ctx).Create(m).Error)
}

func (r *ListingRepo[T]) FindByID(ctx context.Context, id string) (*T, error) {
	m := new(T)
	if err := r.withJoins(r.db.WithContext(ctx)).First(m, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return m, nil
}

func (r *ListingRepo[T]) List(ctx context.Context, f domain.ListingFilter) ([]T, int64, error) {
	q := r.db.WithContext(ctx).Model(new(T))
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.CategoryID != "" {
		q = q.Where("category_id = ?", f.CategoryID)
	}
	if f.ArtisanID != "" {
		q = q.Where("artisan_id = ?", f.ArtisanID)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("title LIKE ? OR description LIKE ?", like, like)
	}

	// count 与分页取数是两条查询，与并发写入不保证一致
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}

	var items []T
	err := r.withJoins(q).
		Order(orderClause(f.SortBy, f.SortOrder)).
		Limit(f.Limit).
		Offset((f.Page - 1) * f.Limit).
		Find(&items).Error
	if err != nil {
		return nil, 0, translate(err)
	}
	return items, total, nil
}

func (r *ListingRepo[T]) Updates(ctx context.Context, id string, fields map[string]any) (*T, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Count(&n).Error; err != nil {
		return nil, translate(err)
	}
	if n == 0 {
		return nil, domain.ErrNotFound
	}
	if len(fields) > 0 {
		if err := r.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(fields).Error; err != nil {
			return nil, translate(err)
		}
	}
	return r.FindByID(ctx, id)
}

func (r *ListingRepo[T]) CountByStatus(ctx context.Context, status string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(new(T)).Where("status = ?", status).Count(&n).Error
	return n, translate(err)
}
