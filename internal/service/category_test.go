package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"artisan-market-api/internal/domain"
)

func newCategoryService() (*CategoryService, *fakeCategoryRepo) {
	repo := newFakeCategoryRepo()
	return NewCategoryService(repo, nil), repo
}

func TestCategoryCreateSlug(t *testing.T) {
	svc, _ := newCategoryService()
	ctx := context.Background()

	c1, err := svc.Create(ctx, CreateCategoryInput{Name: "Woodwork", Type: "PRODUCT"})
	require.NoError(t, err)
	require.Equal(t, "woodwork", c1.Slug)

	// 不同类型允许重名，slug 追加后缀保持唯一
	c2, err := svc.Create(ctx, CreateCategoryInput{Name: "Woodwork", Type: "SERVICE"})
	require.NoError(t, err)
	require.Equal(t, "woodwork-1", c2.Slug)

	c3, err := svc.Create(ctx, CreateCategoryInput{Name: "Woodwork", Type: "TRAINING"})
	require.NoError(t, err)
	require.Equal(t, "woodwork-2", c3.Slug)

	// 同名同类型冲突
	_, err = svc.Create(ctx, CreateCategoryInput{Name: "Woodwork", Type: "PRODUCT"})
	require.ErrorIs(t, err, domain.ErrConflict)
}

func TestCategoryCreateValidation(t *testing.T) {
	svc, _ := newCategoryService()
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateCategoryInput{Name: "X", Type: "FURNITURE"})
	require.ErrorIs(t, err, domain.ErrInvalid)

	parent, err := svc.Create(ctx, CreateCategoryInput{Name: "Crafts", Type: "PRODUCT"})
	require.NoError(t, err)

	// parent 类型不匹配
	_, err = svc.Create(ctx, CreateCategoryInput{Name: "Repairs", Type: "SERVICE", ParentID: &parent.ID})
	require.ErrorIs(t, err, domain.ErrInvalid)

	missing := "nope"
	_, err = svc.Create(ctx, CreateCategoryInput{Name: "Toys", Type: "PRODUCT", ParentID: &missing})
	require.ErrorIs(t, err, domain.ErrInvalid)

	child, err := svc.Create(ctx, CreateCategoryInput{Name: "Toys", Type: "PRODUCT", ParentID: &parent.ID})
	require.NoError(t, err)
	require.Equal(t, parent.ID, *child.ParentID)
}

func TestCategoryUpdate(t *testing.T) {
	svc, _ := newCategoryService()
	ctx := context.Background()

	a, err := svc.Create(ctx, CreateCategoryInput{Name: "Pottery", Type: "PRODUCT"})
	require.NoError(t, err)
	b, err := svc.Create(ctx, CreateCategoryInput{Name: "Glasswork", Type: "PRODUCT", ParentID: &a.ID})
	require.NoError(t, err)

	// 改名重算 slug
	name := "Ceramics & Pottery"
	got, err := svc.Update(ctx, a.ID, UpdateCategoryInput{Name: &name})
	require.NoError(t, err)
	require.Equal(t, "Ceramics & Pottery", got.Name)
	require.Equal(t, "ceramics-pottery", got.Slug)

	// 自己当自己的 parent
	_, err = svc.Update(ctx, a.ID, UpdateCategoryInput{ParentID: &a.ID})
	require.ErrorIs(t, err, domain.ErrInvalid)

	// 挂到自己的子孙下面会成环
	_, err = svc.Update(ctx, a.ID, UpdateCategoryInput{ParentID: &b.ID})
	require.ErrorIs(t, err, domain.ErrInvalid)

	// "" 清空 parent
	empty := ""
	got, err = svc.Update(ctx, b.ID, UpdateCategoryInput{ParentID: &empty})
	require.NoError(t, err)
	require.Nil(t, got.ParentID)
}

func TestCategoryDelete(t *testing.T) {
	svc, _ := newCategoryService()
	ctx := context.Background()

	parent, err := svc.Create(ctx, CreateCategoryInput{Name: "Leather", Type: "PRODUCT"})
	require.NoError(t, err)
	child, err := svc.Create(ctx, CreateCategoryInput{Name: "Bags", Type: "PRODUCT", ParentID: &parent.ID})
	require.NoError(t, err)

	err = svc.Delete(ctx, parent.ID)
	require.ErrorIs(t, err, domain.ErrInvalid)

	require.NoError(t, svc.Delete(ctx, child.ID))
	require.NoError(t, svc.Delete(ctx, parent.ID))

	err = svc.Delete(ctx, parent.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCategoryHierarchyDepth(t *testing.T) {
	svc, _ := newCategoryService()
	ctx := context.Background()

	// 四层链：L0 -> L1 -> L2 -> L3 -> L4
	prev, err := svc.Create(ctx, CreateCategoryInput{Name: "L0", Type: "PRODUCT"})
	require.NoError(t, err)
	root := prev
	for _, n := range []string{"L1", "L2", "L3", "L4"} {
		c, err := svc.Create(ctx, CreateCategoryInput{Name: n, Type: "PRODUCT", ParentID: &prev.ID})
		require.NoError(t, err)
		prev = c
	}

	tree, err := svc.Hierarchy(ctx, "PRODUCT", 0)
	require.NoError(t, err)
	require.Len(t, tree, 1)
	require.Equal(t, root.ID, tree[0].ID)

	// 默认深度 3：根下物化 3 代，L4 被截断
	n := tree[0]
	for _, want := range []string{"L1", "L2", "L3"} {
		require.Len(t, n.SubCategories, 1)
		n = n.SubCategories[0]
		require.Equal(t, want, n.Name)
	}
	require.Empty(t, n.SubCategories)

	// 提高深度后能看到 L4
	tree, err = svc.Hierarchy(ctx, "PRODUCT", 4)
	require.NoError(t, err)
	n = tree[0]
	for range 4 {
		require.Len(t, n.SubCategories, 1)
		n = n.SubCategories[0]
	}
	require.Equal(t, "L4", n.Name)
}

func TestCategoryFlatIgnoresInvalidType(t *testing.T) {
	svc, _ := newCategoryService()
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateCategoryInput{Name: "Weaving", Type: "PRODUCT"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateCategoryInput{Name: "Tailoring", Type: "SERVICE"})
	require.NoError(t, err)

	all, err := svc.Flat(ctx, "BOGUS")
	require.NoError(t, err)
	require.Len(t, all, 2)

	products, err := svc.Flat(ctx, "product")
	require.NoError(t, err)
	require.Len(t, products, 1)
	require.Equal(t, "Weaving", products[0].Name)
}
