package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"artisan-market-api/internal/core/cache"
	"artisan-market-api/internal/domain"
	"artisan-market-api/pkg/utils"
)

const (
	categoryCachePrefix = "categories:"
	categoryCacheTTL    = 5 * time.Minute

	DefaultHierarchyDepth = 3
	maxHierarchyDepth     = 6
)

type CategoryService struct {
	cats  domain.CategoryRepository
	cache *cache.Cache
}

func NewCategoryService(cats domain.CategoryRepository, c *cache.Cache) *CategoryService {
	if c == nil {
		c = cache.Disabled()
	}
	return &CategoryService{cats: cats, cache: c}
}

type CreateCategoryInput struct {
	Name        string  `json:"name" binding:"required"`
	Type        string  `json:"type" binding:"required"`
	Description *string `json:"description"`
	ParentID    *string `json:"parentId"`
}

func (s *CategoryService) Create(ctx context.Context, in CreateCategoryInput) (*domain.Category, error) {
	name := strings.TrimSpace(in.Name)
	ctype := strings.ToUpper(strings.TrimSpace(in.Type))
	if name == "" || ctype == "" {
		return nil, fmt.Errorf("%w: name and type are required", domain.ErrInvalid)
	}
	if !domain.ValidCategoryType(ctype) {
		return nil, fmt.Errorf("%w: category type must be PRODUCT, SERVICE or TRAINING", domain.ErrInvalid)
	}

	// 同名同类型只允许一个
	if _, err := s.cats.FindByNameAndType(ctx, name, ctype); err == nil {
		return nil, fmt.Errorf("%w: a category with the name %q and type %q already exists", domain.ErrConflict, name, ctype)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	slug, err := s.uniqueSlug(ctx, name, "")
	if err != nil {
		return nil, err
	}

	c := &domain.Category{
		ID:   utils.NewID(),
		Name: name,
		Slug: slug,
		Type: ctype,
	}
	if in.Description != nil && strings.TrimSpace(*in.Description) != "" {
		d := strings.TrimSpace(*in.Description)
		c.Description = &d
	}
	if in.ParentID != nil && *in.ParentID != "" {
		parent, err := s.cats.FindByID(ctx, *in.ParentID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("%w: parent category not found", domain.ErrInvalid)
			}
			return nil, err
		}
		if parent.Type != ctype {
			return nil, fmt.Errorf("%w: parent category must be of the same type", domain.ErrInvalid)
		}
		c.ParentID = in.ParentID
	}

	if err := s.cats.Create(ctx, c); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return c, nil
}

type UpdateCategoryInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Type        *string `json:"type"`
	// nil = 不动；"" = 置顶层；其它 = 换父节点
	ParentID *string `json:"parentId"`
}

func (s *CategoryService) Update(ctx context.Context, id string, in UpdateCategoryInput) (*domain.Category, error) {
	existing, err := s.cats.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}
	targetType := existing.Type

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", domain.ErrInvalid)
		}
		if name != existing.Name {
			fields["name"] = name
			// 改名只有在 slug 真正变化时才重新生成
			if newSlug := utils.Slugify(name); newSlug != existing.Slug {
				slug, err := s.uniqueSlug(ctx, name, id)
				if err != nil {
					return nil, err
				}
				fields["slug"] = slug
			}
		}
	}

	if in.Description != nil {
		if d := strings.TrimSpace(*in.Description); d == "" {
			fields["description"] = nil
		} else {
			fields["description"] = d
		}
	}

	if in.Type != nil {
		ctype := strings.ToUpper(strings.TrimSpace(*in.Type))
		if !domain.ValidCategoryType(ctype) {
			return nil, fmt.Errorf("%w: invalid category type", domain.ErrInvalid)
		}
		targetType = ctype
		if ctype != existing.Type {
			fields["type"] = ctype
			// 换类型后旧 parent 不再兼容：未同时提供新 parent 则清空
			if in.ParentID == nil || *in.ParentID == "" {
				fields["parent_id"] = nil
			}
		}
	}

	if in.ParentID != nil {
		switch pid := *in.ParentID; {
		case pid == id:
			return nil, fmt.Errorf("%w: a category cannot be its own parent", domain.ErrInvalid)
		case pid == "":
			fields["parent_id"] = nil
		default:
			parent, err := s.cats.FindByID(ctx, pid)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return nil, fmt.Errorf("%w: parent category not found", domain.ErrInvalid)
				}
				return nil, err
			}
			if parent.Type != targetType {
				return nil, fmt.Errorf("%w: parent category must be of type %s", domain.ErrInvalid, targetType)
			}
			if err := s.ensureNoCycle(ctx, id, parent); err != nil {
				return nil, err
			}
			fields["parent_id"] = pid
		}
	}

	if len(fields) == 0 {
		return existing, nil
	}
	if err := s.cats.Update(ctx, id, fields); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return s.cats.FindByIDWithParent(ctx, id)
}

func (s *CategoryService) Delete(ctx context.Context, id string) error {
	n, err := s.cats.CountChildren(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%w: cannot delete category with subcategories", domain.ErrInvalid)
	}
	// listing 仍引用该分类时由外键约束挡下，归一为 Conflict
	if err := s.cats.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *CategoryService) Get(ctx context.Context, id string) (*domain.Category, error) {
	return s.cats.FindByIDWithParent(ctx, id)
}

// Flat 平铺视图，type asc + name asc；非法 type 过滤与旧行为一致直接忽略
func (s *CategoryService) Flat(ctx context.Context, ctype string) ([]domain.Category, error) {
	ctype = strings.ToUpper(strings.TrimSpace(ctype))
	if ctype != "" && !domain.ValidCategoryType(ctype) {
		ctype = ""
	}
	key := categoryCachePrefix + "flat:" + ctype
	return cache.GetOrLoadJSON(s.cache, ctx, key, categoryCacheTTL, func(ctx context.Context) ([]domain.Category, error) {
		return s.cats.ListByType(ctx, ctype)
	})
}

// Hierarchy 顶层分类 + 嵌套 subCategories，物化到 depth 代子节点
func (s *CategoryService) Hierarchy(ctx context.Context, ctype string, depth int) ([]*domain.CategoryNode, error) {
	ctype = strings.ToUpper(strings.TrimSpace(ctype))
	if ctype != "" && !domain.ValidCategoryType(ctype) {
		ctype = ""
	}
	if depth <= 0 {
		depth = DefaultHierarchyDepth
	}
	if depth > maxHierarchyDepth {
		depth = maxHierarchyDepth
	}
	key := categoryCachePrefix + "tree:" + ctype + ":" + strconv.Itoa(depth)
	return cache.GetOrLoadJSON(s.cache, ctx, key, categoryCacheTTL, func(ctx context.Context) ([]*domain.CategoryNode, error) {
		cats, err := s.cats.ListByType(ctx, ctype)
		if err != nil {
			return nil, err
		}
		return buildTree(cats, depth), nil
	})
}

// uniqueSlug slug 冲突时追加 -1、-2… 直到唯一
func (s *CategoryService) uniqueSlug(ctx context.Context, name, excludeID string) (string, error) {
	base := utils.Slugify(name)
	if base == "" {
		return "", fmt.Errorf("%w: name does not yield a valid slug", domain.ErrInvalid)
	}
	slug := base
	for suffix := 1; ; suffix++ {
		taken, err := s.cats.SlugExists(ctx, slug, excludeID)
		if err != nil {
			return "", err
		}
		if !taken {
			return slug, nil
		}
		slug = base + "-" + strconv.Itoa(suffix)
	}
}

// ensureNoCycle 沿 parent 链向上走，撞到自己说明会成环
func (s *CategoryService) ensureNoCycle(ctx context.Context, id string, parent *domain.Category) error {
	cur := parent
	for cur != nil {
		if cur.ID == id {
			return fmt.Errorf("%w: cannot move a category under its own descendant", domain.ErrInvalid)
		}
		if cur.ParentID == nil {
			return nil
		}
		next, err := s.cats.FindByID(ctx, *cur.ParentID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil
			}
			return err
		}
		cur = next
	}
	return nil
}

func (s *CategoryService) invalidate(ctx context.Context) {
	s.cache.DelPrefix(ctx, categoryCachePrefix)
}

// buildTree 一次取全量行，在内存里按 parentId 分组后逐层物化
func buildTree(cats []domain.Category, depth int) []*domain.CategoryNode {
	children := map[string][]domain.Category{}
	var roots []domain.Category
	for _, c := range cats {
		if c.ParentID == nil {
			roots = append(roots, c)
		} else {
			children[*c.ParentID] = append(children[*c.ParentID], c)
		}
	}

	var mk func(c domain.Category, level int) *domain.CategoryNode
	mk = func(c domain.Category, level int) *domain.CategoryNode {
		n := &domain.CategoryNode{Category: c, SubCategories: []*domain.CategoryNode{}}
		if level >= depth {
			return n
		}
		for _, ch := range children[c.ID] {
			n.SubCategories = append(n.SubCategories, mk(ch, level+1))
		}
		return n
	}

	out := make([]*domain.CategoryNode, 0, len(roots))
	for _, c := range roots {
		out = append(out, mk(c, 0))
	}
	return out
}
