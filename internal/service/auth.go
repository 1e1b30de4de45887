package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"artisan-market-api/internal/core/auth"
	"artisan-market-api/internal/domain"
	"artisan-market-api/pkg/utils"
)

type AuthService struct {
	users domain.UserRepository
	jwter *auth.JWTer
}

func NewAuthService(users domain.UserRepository, jwter *auth.JWTer) *AuthService {
	return &AuthService{users: users, jwter: jwter}
}

// AdminLogin 任何一步失败都返回同一句 "invalid credentials"，避免账号枚举
func (s *AuthService) AdminLogin(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", fmt.Errorf("%w: email and password are required", domain.ErrInvalid)
	}

	u, err := s.users.FindByEmail(ctx, email)
	if err != nil || u.Role != domain.RoleAdmin {
		return nil, "", fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)
	}
	if !utils.CheckPassword(password, u.PasswordHash) {
		return nil, "", fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)
	}

	now := time.Now()
	if err := s.users.TouchLastLogin(ctx, u.ID, now); err != nil {
		return nil, "", err
	}
	u.LastLogin = &now

	tok, err := s.jwter.IssueAdmin(u.ID, u.Email)
	if err != nil {
		return nil, "", err
	}
	return u, tok, nil
}

func (s *AuthService) ArtisanLogin(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", fmt.Errorf("%w: email and password are required", domain.ErrInvalid)
	}

	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)
	}
	if !utils.CheckPassword(password, u.PasswordHash) {
		return nil, "", fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)
	}
	if u.Role != domain.RoleArtisan {
		return nil, "", fmt.Errorf("%w: this login is for artisans only", domain.ErrForbidden)
	}
	// 停用账号：不发 token、不更新 lastLogin
	if !u.IsActive {
		return nil, "", fmt.Errorf("%w: account is inactive", domain.ErrForbidden)
	}

	now := time.Now()
	if err := s.users.TouchLastLogin(ctx, u.ID, now); err != nil {
		return nil, "", err
	}
	u.LastLogin = &now

	tok, err := s.jwter.IssueArtisan(u.ID, u.Email, u.Name)
	if err != nil {
		return nil, "", err
	}
	return u, tok, nil
}

type RegisterInput struct {
	Name        string
	Email       string
	Password    string
	PhoneNumber string
	NationalID  string
}

// 02x/03x/05x + 8 位，或 +233 开头
var ghanaPhoneRe = regexp.MustCompile(`^(0[235][0-9]{8}|(\+233)[235][0-9]{8})$`)

func (s *AuthService) ArtisanRegister(ctx context.Context, in RegisterInput) (*domain.User, string, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	phone := strings.ReplaceAll(strings.TrimSpace(in.PhoneNumber), " ", "")

	if name == "" || email == "" || in.Password == "" || phone == "" || in.NationalID == "" {
		return nil, "", fmt.Errorf("%w: name, email, password, phone number and national id are required", domain.ErrInvalid)
	}
	if len([]rune(name)) < 2 {
		return nil, "", fmt.Errorf("%w: full name must be at least 2 characters", domain.ErrInvalid)
	}
	if len(in.Password) < 6 {
		return nil, "", fmt.Errorf("%w: password must be at least 6 characters", domain.ErrInvalid)
	}
	if !ghanaPhoneRe.MatchString(phone) {
		return nil, "", fmt.Errorf("%w: invalid ghanaian phone number format", domain.ErrInvalid)
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, "", fmt.Errorf("%w: an account with this email already exists", domain.ErrConflict)
	}

	u := &domain.User{
		ID:           utils.NewID(),
		Name:         name,
		Email:        email,
		PasswordHash: utils.HashPassword(in.Password),
		Role:         domain.RoleArtisan,
		IsActive:     true,
		PhoneNumber:  phone,
		NationalID:   strings.ToUpper(strings.TrimSpace(in.NationalID)),
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, "", err
	}

	tok, err := s.jwter.IssueArtisan(u.ID, u.Email, u.Name)
	if err != nil {
		return nil, "", err
	}
	return u, tok, nil
}

// SeedAdmin 启动兜底管理员：存在则校正角色/密码，不存在则创建
func (s *AuthService) SeedAdmin(ctx context.Context, email, password, name string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil
	}
	if name == "" {
		name = "Super Admin"
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		_, err = s.users.Update(ctx, existing.ID, map[string]any{
			"role":          domain.RoleAdmin,
			"password_hash": utils.HashPassword(password),
			"name":          name,
		})
		return err
	}
	return s.users.Create(ctx, &domain.User{
		ID:           utils.NewID(),
		Name:         name,
		Email:        email,
		PasswordHash: utils.HashPassword(password),
		Role:         domain.RoleAdmin,
		IsActive:     true,
	})
}
