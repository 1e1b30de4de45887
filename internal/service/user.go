package service

import (
	"context"
	"fmt"
	"strings"

	"artisan-market-api/internal/domain"
)

type UserService struct {
	users domain.UserRepository
}

func NewUserService(users domain.UserRepository) *UserService {
	return &UserService{users: users}
}

func (s *UserService) List(ctx context.Context, f domain.UserFilter) (Page[domain.User], error) {
	f.Page, f.Limit = NormalizePage(f.Page, f.Limit)
	if f.Role != "" {
		f.Role = strings.ToUpper(f.Role)
		if !domain.ValidRole(f.Role) {
			// 与旧行为一致：非法 role 过滤直接忽略
			f.Role = ""
		}
	}
	users, total, err := s.users.List(ctx, f)
	if err != nil {
		return Page[domain.User]{}, err
	}
	return NewPage(users, f.Page, f.Limit, total), nil
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

type UpdateUserInput struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Role     *string `json:"role"`
	IsActive *bool   `json:"isActive"`
}

// Update 局部更新：只考虑请求里出现的字段
func (s *UserService) Update(ctx context.Context, id string, in UpdateUserInput) (*domain.User, error) {
	existing, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", domain.ErrInvalid)
		}
		if name != existing.Name {
			fields["name"] = name
		}
	}

	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if email == "" {
			return nil, fmt.Errorf("%w: email cannot be empty", domain.ErrInvalid)
		}
		if email != existing.Email {
			if owner, err := s.users.FindByEmail(ctx, email); err == nil && owner.ID != id {
				return nil, fmt.Errorf("%w: email is already in use by another account", domain.ErrConflict)
			}
			fields["email"] = email
		}
	}

	if in.Role != nil {
		role := strings.ToUpper(*in.Role)
		if !domain.ValidRole(role) {
			return nil, fmt.Errorf("%w: invalid role", domain.ErrInvalid)
		}
		if role != existing.Role {
			fields["role"] = role
		}
	}

	if in.IsActive != nil && *in.IsActive != existing.IsActive {
		fields["is_active"] = *in.IsActive
	}

	if len(fields) == 0 {
		return existing, nil
	}
	return s.users.Update(ctx, id, fields)
}

// SetActive 启用/停用开关（审批台和用户表共用）
func (s *UserService) SetActive(ctx context.Context, id string, active bool) (*domain.User, error) {
	if _, err := s.users.FindByID(ctx, id); err != nil {
		return nil, err
	}
	return s.users.Update(ctx, id, map[string]any{"is_active": active})
}
