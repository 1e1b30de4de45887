package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"artisan-market-api/internal/domain"
	"artisan-market-api/pkg/utils"
)

func newProductService() (*ListingService[domain.ProductListing], *fakeListingRepo[domain.ProductListing], *fakeCategoryRepo) {
	listings := newFakeListingRepo[domain.ProductListing]()
	cats := newFakeCategoryRepo()
	return NewListingService(domain.ListingKindProduct, listings, cats), listings, cats
}

func seedCategory(t *testing.T, cats *fakeCategoryRepo, ctype string) *domain.Category {
	t.Helper()
	c := &domain.Category{ID: utils.NewID(), Name: "Cat " + ctype, Slug: "cat-" + ctype, Type: ctype}
	require.NoError(t, cats.Create(context.Background(), c))
	return c
}

func seedProduct(t *testing.T, repo *fakeListingRepo[domain.ProductListing], artisanID, categoryID, status string) *domain.ProductListing {
	t.Helper()
	m := &domain.ProductListing{
		ListingBase: domain.ListingBase{
			ID:          utils.NewID(),
			Title:       "Carved stool",
			Description: "Hand carved",
			Status:      status,
			ArtisanID:   artisanID,
			CategoryID:  categoryID,
		},
		Price: 120, Currency: "GHS",
	}
	require.NoError(t, repo.Create(context.Background(), m))
	return m
}

func TestListingCreate(t *testing.T) {
	svc, _, cats := newProductService()
	ctx := context.Background()
	cat := seedCategory(t, cats, domain.CategoryTypeProduct)

	m := &domain.ProductListing{
		ListingBase: domain.ListingBase{Title: " Kente cloth ", Description: "Woven", CategoryID: cat.ID},
		Price:       250,
	}
	got, err := svc.Create(ctx, "artisan-1", m)
	require.NoError(t, err)

	b := domain.BaseOf(got)
	require.Equal(t, domain.StatusPendingApproval, b.Status)
	require.Equal(t, "artisan-1", b.ArtisanID)
	require.Equal(t, "Kente cloth", b.Title)
	require.NotEmpty(t, b.ID)
	require.Nil(t, b.RejectionReason)
}

func TestListingCreateCategoryTypeMismatch(t *testing.T) {
	svc, _, cats := newProductService()
	ctx := context.Background()
	serviceCat := seedCategory(t, cats, domain.CategoryTypeService)

	m := &domain.ProductListing{
		ListingBase: domain.ListingBase{Title: "Stool", Description: "Wood", CategoryID: serviceCat.ID},
	}
	_, err := svc.Create(ctx, "artisan-1", m)
	require.ErrorIs(t, err, domain.ErrInvalid)

	m.CategoryID = "missing"
	_, err = svc.Create(ctx, "artisan-1", m)
	require.ErrorIs(t, err, domain.ErrInvalid)
}

func TestListingUpdateStatus(t *testing.T) {
	svc, repo, cats := newProductService()
	ctx := context.Background()
	cat := seedCategory(t, cats, domain.CategoryTypeProduct)
	m := seedProduct(t, repo, "artisan-1", cat.ID, domain.StatusPendingApproval)

	// 驳回原因原文存储（去掉首尾空白）
	got, err := svc.UpdateStatus(ctx, m.ID, "REJECTED", "  photos are too blurry  ")
	require.NoError(t, err)
	require.Equal(t, domain.StatusRejected, got.Status)
	require.NotNil(t, got.RejectionReason)
	require.Equal(t, "photos are too blurry", *got.RejectionReason)

	// 转 ACTIVE 时原因清空
	got, err = svc.UpdateStatus(ctx, m.ID, "active", "ignored")
	require.NoError(t, err)
	require.Equal(t, domain.StatusActive, got.Status)
	require.Nil(t, got.RejectionReason)

	// 不带原因的驳回也合法，原因留空
	got, err = svc.UpdateStatus(ctx, m.ID, "REJECTED", "")
	require.NoError(t, err)
	require.Equal(t, domain.StatusRejected, got.Status)
	require.Nil(t, got.RejectionReason)

	// 管理端只能设 ACTIVE/REJECTED/INACTIVE
	_, err = svc.UpdateStatus(ctx, m.ID, "ARCHIVED", "")
	require.ErrorIs(t, err, domain.ErrInvalid)
	_, err = svc.UpdateStatus(ctx, m.ID, "PUBLISHED", "")
	require.ErrorIs(t, err, domain.ErrInvalid)

	_, err = svc.UpdateStatus(ctx, "missing", "ACTIVE", "")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListingGetPublic(t *testing.T) {
	svc, repo, cats := newProductService()
	ctx := context.Background()
	cat := seedCategory(t, cats, domain.CategoryTypeProduct)

	pending := seedProduct(t, repo, "a1", cat.ID, domain.StatusPendingApproval)
	active := seedProduct(t, repo, "a1", cat.ID, domain.StatusActive)

	_, err := svc.GetPublic(ctx, pending.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)

	got, err := svc.GetPublic(ctx, active.ID)
	require.NoError(t, err)
	require.Equal(t, active.ID, domain.BaseOf(got).ID)
}

func TestListingListStatusFilter(t *testing.T) {
	svc, repo, cats := newProductService()
	ctx := context.Background()
	cat := seedCategory(t, cats, domain.CategoryTypeProduct)

	seedProduct(t, repo, "a1", cat.ID, domain.StatusActive)
	seedProduct(t, repo, "a1", cat.ID, domain.StatusActive)
	seedProduct(t, repo, "a2", cat.ID, domain.StatusPendingApproval)
	seedProduct(t, repo, "a2", cat.ID, domain.StatusRejected)

	// 公共列表默认 ACTIVE
	page, err := svc.List(ctx, domain.ListingFilter{}, false)
	require.NoError(t, err)
	require.EqualValues(t, 2, page.TotalItems)

	// 公共侧的 ALL 不生效
	page, err = svc.List(ctx, domain.ListingFilter{Status: "ALL"}, false)
	require.NoError(t, err)
	require.EqualValues(t, 2, page.TotalItems)

	// 管理端 ALL 取消过滤
	page, err = svc.List(ctx, domain.ListingFilter{Status: "ALL"}, true)
	require.NoError(t, err)
	require.EqualValues(t, 4, page.TotalItems)

	page, err = svc.List(ctx, domain.ListingFilter{Status: "pending_approval"}, true)
	require.NoError(t, err)
	require.EqualValues(t, 1, page.TotalItems)

	_, err = svc.List(ctx, domain.ListingFilter{Status: "BOGUS"}, true)
	require.ErrorIs(t, err, domain.ErrInvalid)
}

func TestListingPagination(t *testing.T) {
	svc, repo, cats := newProductService()
	ctx := context.Background()
	cat := seedCategory(t, cats, domain.CategoryTypeProduct)
	for i := 0; i < 25; i++ {
		seedProduct(t, repo, "a1", cat.ID, domain.StatusActive)
	}

	page, err := svc.List(ctx, domain.ListingFilter{Page: 3, Limit: 10}, false)
	require.NoError(t, err)
	require.EqualValues(t, 25, page.TotalItems)
	require.Equal(t, 3, page.TotalPages)
	require.Equal(t, 3, page.CurrentPage)
	require.Len(t, page.Items, 5)

	// 非法分页参数回落默认值
	page, err = svc.List(ctx, domain.ListingFilter{Page: -1, Limit: 1000}, false)
	require.NoError(t, err)
	require.Equal(t, 1, page.CurrentPage)
	require.Equal(t, 100, page.Limit)
}

func TestListingOwnershipAndArchive(t *testing.T) {
	svc, repo, cats := newProductService()
	ctx := context.Background()
	cat := seedCategory(t, cats, domain.CategoryTypeProduct)

	reason := "bad photos"
	m := seedProduct(t, repo, "owner", cat.ID, domain.StatusRejected)
	_, err := repo.Updates(ctx, m.ID, map[string]any{"rejection_reason": reason})
	require.NoError(t, err)

	// 别人的 listing 改不了
	_, err = svc.Update(ctx, m.ID, "intruder", false, map[string]any{"title": "Hijacked"})
	require.ErrorIs(t, err, domain.ErrForbidden)
	err = svc.Archive(ctx, m.ID, "intruder", false)
	require.ErrorIs(t, err, domain.ErrForbidden)

	// 状态字段不走普通更新
	got, err := svc.Update(ctx, m.ID, "owner", false, map[string]any{"title": "New stool", "status": domain.StatusActive})
	require.NoError(t, err)
	require.Equal(t, "New stool", got.Title)
	require.Equal(t, domain.StatusRejected, got.Status)

	// 归档清掉历史驳回原因
	require.NoError(t, svc.Archive(ctx, m.ID, "owner", false))
	after, err := svc.Get(ctx, m.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusArchived, domain.BaseOf(after).Status)
	require.Nil(t, domain.BaseOf(after).RejectionReason)
}

func TestListingListOwn(t *testing.T) {
	svc, repo, cats := newProductService()
	ctx := context.Background()
	cat := seedCategory(t, cats, domain.CategoryTypeProduct)

	seedProduct(t, repo, "mine", cat.ID, domain.StatusPendingApproval)
	seedProduct(t, repo, "mine", cat.ID, domain.StatusRejected)
	seedProduct(t, repo, "other", cat.ID, domain.StatusActive)

	// 自己的列表默认不按状态过滤
	page, err := svc.ListOwn(ctx, "mine", domain.ListingFilter{})
	require.NoError(t, err)
	require.EqualValues(t, 2, page.TotalItems)

	page, err = svc.ListOwn(ctx, "mine", domain.ListingFilter{Status: "REJECTED"})
	require.NoError(t, err)
	require.EqualValues(t, 1, page.TotalItems)
}
