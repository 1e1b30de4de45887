package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"artisan-market-api/internal/domain"
)

// 内存假仓储，只实现测试用到的语义

type fakeUserRepo struct {
	users map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, u *domain.User) error {
	for _, ex := range r.users {
		if ex.Email == u.Email {
			return domain.ErrConflict
		}
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeUserRepo) List(_ context.Context, f domain.UserFilter) ([]domain.User, int64, error) {
	var all []domain.User
	for _, u := range r.users {
		if f.Role != "" && u.Role != f.Role {
			continue
		}
		if f.IsActive != nil && u.IsActive != *f.IsActive {
			continue
		}
		all = append(all, *u)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	total := int64(len(all))
	lo := (f.Page - 1) * f.Limit
	if lo >= len(all) {
		return nil, total, nil
	}
	hi := lo + f.Limit
	if hi > len(all) {
		hi = len(all)
	}
	return all[lo:hi], total, nil
}

func (r *fakeUserRepo) Update(_ context.Context, id string, fields map[string]any) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	for k, v := range fields {
		switch k {
		case "name":
			u.Name = v.(string)
		case "email":
			u.Email = v.(string)
		case "role":
			u.Role = v.(string)
		case "is_active":
			u.IsActive = v.(bool)
		case "password_hash":
			u.PasswordHash = v.(string)
		}
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) TouchLastLogin(_ context.Context, id string, at time.Time) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.LastLogin = &at
	return nil
}

func (r *fakeUserRepo) CountByRole(_ context.Context, role string) (int64, error) {
	var n int64
	for _, u := range r.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

type fakeCategoryRepo struct {
	cats map[string]*domain.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{cats: map[string]*domain.Category{}}
}

func (r *fakeCategoryRepo) Create(_ context.Context, c *domain.Category) error {
	cp := *c
	r.cats[c.ID] = &cp
	return nil
}

func (r *fakeCategoryRepo) FindByID(_ context.Context, id string) (*domain.Category, error) {
	c, ok := r.cats[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCategoryRepo) FindByIDWithParent(ctx context.Context, id string) (*domain.Category, error) {
	c, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.ParentID != nil {
		if p, ok := r.cats[*c.ParentID]; ok {
			cp := *p
			c.Parent = &cp
		}
	}
	return c, nil
}

func (r *fakeCategoryRepo) FindByNameAndType(_ context.Context, name, ctype string) (*domain.Category, error) {
	for _, c := range r.cats {
		if strings.EqualFold(c.Name, name) && c.Type == ctype {
			cp := *c
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeCategoryRepo) SlugExists(_ context.Context, slug, excludeID string) (bool, error) {
	for _, c := range r.cats {
		if c.Slug == slug && c.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCategoryRepo) ListByType(_ context.Context, ctype string) ([]domain.Category, error) {
	var out []domain.Category
	for _, c := range r.cats {
		if ctype != "" && c.Type != ctype {
			continue
		}
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Type != out[j].Type {
			return out[i].Type < out[j].Type
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *fakeCategoryRepo) Update(_ context.Context, id string, fields map[string]any) error {
	c, ok := r.cats[id]
	if !ok {
		return domain.ErrNotFound
	}
	for k, v := range fields {
		switch k {
		case "name":
			c.Name = v.(string)
		case "slug":
			c.Slug = v.(string)
		case "type":
			c.Type = v.(string)
		case "description":
			if v == nil {
				c.Description = nil
			} else {
				d := v.(string)
				c.Description = &d
			}
		case "parent_id":
			if v == nil {
				c.ParentID = nil
			} else {
				p := v.(string)
				c.ParentID = &p
			}
		}
	}
	return nil
}

func (r *fakeCategoryRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.cats[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.cats, id)
	return nil
}

func (r *fakeCategoryRepo) CountChildren(_ context.Context, id string) (int64, error) {
	var n int64
	for _, c := range r.cats {
		if c.ParentID != nil && *c.ParentID == id {
			n++
		}
	}
	return n, nil
}

type fakeListingRepo[T domain.Listing] struct {
	items map[string]*T
}

func newFakeListingRepo[T domain.Listing]() *fakeListingRepo[T] {
	return &fakeListingRepo[T]{items: map[string]*T{}}
}

func (r *fakeListingRepo[T]) Create(_ context.Context, m *T) error {
	cp := *m
	r.items[domain.BaseOf(m).ID] = &cp
	return nil
}

func (r *fakeListingRepo[T]) FindByID(_ context.Context, id string) (*T, error) {
	m, ok := r.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *m
	return &cp, nil
}

func (r *fakeListingRepo[T]) List(_ context.Context, f domain.ListingFilter) ([]T, int64, error) {
	var all []T
	for _, m := range r.items {
		b := domain.BaseOf(m)
		if f.Status != "" && b.Status != f.Status {
			continue
		}
		if f.CategoryID != "" && b.CategoryID != f.CategoryID {
			continue
		}
		if f.ArtisanID != "" && b.ArtisanID != f.ArtisanID {
			continue
		}
		all = append(all, *m)
	}
	sort.Slice(all, func(i, j int) bool {
		return domain.BaseOf(&all[i]).ID < domain.BaseOf(&all[j]).ID
	})
	total := int64(len(all))
	lo := (f.Page - 1) * f.Limit
	if lo >= len(all) {
		return nil, total, nil
	}
	hi := lo + f.Limit
	if hi > len(all) {
		hi = len(all)
	}
	return all[lo:hi], total, nil
}

func (r *fakeListingRepo[T]) Updates(_ context.Context, id string, fields map[string]any) (*T, error) {
	m, ok := r.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	b := domain.BaseOf(m)
	for k, v := range fields {
		switch k {
		case "title":
			b.Title = v.(string)
		case "description":
			b.Description = v.(string)
		case "category_id":
			b.CategoryID = v.(string)
		case "status":
			b.Status = v.(string)
		case "rejection_reason":
			if v == nil {
				b.RejectionReason = nil
			} else {
				s := v.(string)
				b.RejectionReason = &s
			}
		}
	}
	cp := *m
	return &cp, nil
}

func (r *fakeListingRepo[T]) CountByStatus(_ context.Context, status string) (int64, error) {
	var n int64
	for _, m := range r.items {
		if domain.BaseOf(m).Status == status {
			n++
		}
	}
	return n, nil
}
