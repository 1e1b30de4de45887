package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"artisan-market-api/internal/domain"
	"artisan-market-api/pkg/utils"
)

// ListingService 三种 listing（product/service/training）共用的泛型服务
type ListingService[T domain.Listing] struct {
	kind     string
	listings domain.ListingRepository[T]
	cats     domain.CategoryRepository
}

func NewListingService[T domain.Listing](kind string, listings domain.ListingRepository[T], cats domain.CategoryRepository) *ListingService[T] {
	return &ListingService[T]{kind: kind, listings: listings, cats: cats}
}

// checkCategory 分类必须存在且与 listing 类型匹配
func (s *ListingService[T]) checkCategory(ctx context.Context, categoryID string) error {
	cat, err := s.cats.FindByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%w: category not found", domain.ErrInvalid)
		}
		return err
	}
	if want := domain.CategoryTypeOf(s.kind); cat.Type != want {
		return fmt.Errorf("%w: category must be of type %s", domain.ErrInvalid, want)
	}
	return nil
}

// Create 归属取自已验证的 token，新建一律进 PENDING_APPROVAL
func (s *ListingService[T]) Create(ctx context.Context, artisanID string, m *T) (*T, error) {
	base := domain.BaseOf(m)
	base.Title = strings.TrimSpace(base.Title)
	base.Description = strings.TrimSpace(base.Description)
	if base.Title == "" || base.Description == "" || base.CategoryID == "" {
		return nil, fmt.Errorf("%w: title, description and categoryId are required", domain.ErrInvalid)
	}
	if err := s.checkCategory(ctx, base.CategoryID); err != nil {
		return nil, err
	}

	base.ID = utils.NewID()
	base.ArtisanID = artisanID
	base.Status = domain.StatusPendingApproval
	base.RejectionReason = nil
	base.Artisan = nil
	base.Category = nil

	if err := s.listings.Create(ctx, m); err != nil {
		return nil, err
	}
	return s.listings.FindByID(ctx, base.ID)
}

func (s *ListingService[T]) Get(ctx context.Context, id string) (*T, error) {
	return s.listings.FindByID(ctx, id)
}

// GetPublic 公共详情只露 ACTIVE，其余一律当不存在
func (s *ListingService[T]) GetPublic(ctx context.Context, id string) (*T, error) {
	m, err := s.listings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if domain.BaseOf(m).Status != domain.StatusActive {
		return nil, domain.ErrNotFound
	}
	return m, nil
}

// List adminView=false 时默认只看 ACTIVE，且 ALL 不生效
func (s *ListingService[T]) List(ctx context.Context, f domain.ListingFilter, adminView bool) (Page[T], error) {
	f.Page, f.Limit = NormalizePage(f.Page, f.Limit)

	status := strings.ToUpper(strings.TrimSpace(f.Status))
	switch {
	case status == "":
		f.Status = domain.StatusActive
	case status == "ALL":
		if adminView {
			f.Status = ""
		} else {
			f.Status = domain.StatusActive
		}
	case domain.ValidStatus(status):
		f.Status = status
	default:
		return Page[T]{}, fmt.Errorf("%w: invalid status filter", domain.ErrInvalid)
	}

	items, total, err := s.listings.List(ctx, f)
	if err != nil {
		return Page[T]{}, err
	}
	return NewPage(items, f.Page, f.Limit, total), nil
}

// ListOwn 工匠个人后台：只看自己的，默认不按状态过滤
func (s *ListingService[T]) ListOwn(ctx context.Context, artisanID string, f domain.ListingFilter) (Page[T], error) {
	f.Page, f.Limit = NormalizePage(f.Page, f.Limit)
	f.ArtisanID = artisanID

	status := strings.ToUpper(strings.TrimSpace(f.Status))
	switch {
	case status == "" || status == "ALL":
		f.Status = ""
	case domain.ValidStatus(status):
		f.Status = status
	default:
		return Page[T]{}, fmt.Errorf("%w: invalid status filter", domain.ErrInvalid)
	}

	items, total, err := s.listings.List(ctx, f)
	if err != nil {
		return Page[T]{}, err
	}
	return NewPage(items, f.Page, f.Limit, total), nil
}

// Update 工匠只能改自己的；换分类要重新校验类型
func (s *ListingService[T]) Update(ctx context.Context, id, actorID string, isAdmin bool, fields map[string]any) (*T, error) {
	existing, err := s.listings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && domain.BaseOf(existing).ArtisanID != actorID {
		return nil, fmt.Errorf("%w: you can only modify your own listings", domain.ErrForbidden)
	}

	if v, ok := fields["title"]; ok {
		t, _ := v.(string)
		if strings.TrimSpace(t) == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", domain.ErrInvalid)
		}
		fields["title"] = strings.TrimSpace(t)
	}
	if v, ok := fields["category_id"]; ok {
		cid, _ := v.(string)
		if err := s.checkCategory(ctx, cid); err != nil {
			return nil, err
		}
	}
	// 状态机只走 UpdateStatus / Archive
	delete(fields, "status")
	delete(fields, "rejection_reason")

	if len(fields) == 0 {
		return existing, nil
	}
	return s.listings.Updates(ctx, id, fields)
}

// Archive 工匠侧的"删除"：归档并清掉历史驳回原因
func (s *ListingService[T]) Archive(ctx context.Context, id, actorID string, isAdmin bool) error {
	existing, err := s.listings.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !isAdmin && domain.BaseOf(existing).ArtisanID != actorID {
		return fmt.Errorf("%w: you can only modify your own listings", domain.ErrForbidden)
	}
	_, err = s.listings.Updates(ctx, id, map[string]any{
		"status":           domain.StatusArchived,
		"rejection_reason": nil,
	})
	return err
}

// UpdateStatus 审批动作：原因只在 REJECTED 下保留（可空），切到其它状态时清空
func (s *ListingService[T]) UpdateStatus(ctx context.Context, id, status string, reason string) (*T, error) {
	status = strings.ToUpper(strings.TrimSpace(status))
	if !domain.AdminSettableStatus(status) {
		return nil, fmt.Errorf("%w: status must be one of ACTIVE, REJECTED, INACTIVE", domain.ErrInvalid)
	}

	fields := map[string]any{"status": status, "rejection_reason": nil}
	if status == domain.StatusRejected {
		if reason = strings.TrimSpace(reason); reason != "" {
			fields["rejection_reason"] = reason
		}
	}
	return s.listings.Updates(ctx, id, fields)
}

func (s *ListingService[T]) CountByStatus(ctx context.Context, status string) (int64, error) {
	return s.listings.CountByStatus(ctx, status)
}
