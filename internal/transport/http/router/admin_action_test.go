package router

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"artisan-market-api/internal/core/auth"
	"artisan-market-api/internal/domain"
	"artisan-market-api/internal/service"
	mdw "artisan-market-api/internal/transport/http/middleware"
)

// 内存假仓储：只覆盖路由测试会打到的语义

type stubUserRepo struct{ users map[string]*domain.User }

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *stubUserRepo) List(_ context.Context, _ domain.UserFilter) ([]domain.User, int64, error) {
	return nil, 0, nil
}

func (r *stubUserRepo) Update(_ context.Context, id string, fields map[string]any) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if v, ok := fields["is_active"]; ok {
		u.IsActive = v.(bool)
	}
	cp := *u
	return &cp, nil
}

func (r *stubUserRepo) TouchLastLogin(_ context.Context, _ string, _ time.Time) error { return nil }

func (r *stubUserRepo) CountByRole(_ context.Context, _ string) (int64, error) { return 0, nil }

type stubListingRepo[T domain.Listing] struct{ items map[string]*T }

func (r *stubListingRepo[T]) Create(_ context.Context, m *T) error {
	cp := *m
	r.items[domain.BaseOf(m).ID] = &cp
	return nil
}

func (r *stubListingRepo[T]) FindByID(_ context.Context, id string) (*T, error) {
	m, ok := r.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *m
	return &cp, nil
}

func (r *stubListingRepo[T]) List(_ context.Context, _ domain.ListingFilter) ([]T, int64, error) {
	return nil, 0, nil
}

func (r *stubListingRepo[T]) Updates(_ context.Context, id string, fields map[string]any) (*T, error) {
	m, ok := r.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	b := domain.BaseOf(m)
	if v, ok := fields["status"]; ok {
		b.Status = v.(string)
	}
	if v, ok := fields["rejection_reason"]; ok {
		if v == nil {
			b.RejectionReason = nil
		} else {
			s := v.(string)
			b.RejectionReason = &s
		}
	}
	cp := *m
	return &cp, nil
}

func (r *stubListingRepo[T]) CountByStatus(_ context.Context, _ string) (int64, error) {
	return 0, nil
}

func newAdminTestEngine(t *testing.T) (*gin.Engine, string, *stubUserRepo, *stubListingRepo[domain.ProductListing]) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwter := &auth.JWTer{
		Secret:     []byte("test-secret"),
		Issuer:     "artisan-market",
		AdminTTL:   time.Hour,
		ArtisanTTL: time.Hour,
	}

	users := &stubUserRepo{users: map[string]*domain.User{}}
	products := &stubListingRepo[domain.ProductListing]{items: map[string]*domain.ProductListing{}}
	services := &stubListingRepo[domain.ServiceListing]{items: map[string]*domain.ServiceListing{}}
	trainings := &stubListingRepo[domain.TrainingOffer]{items: map[string]*domain.TrainingOffer{}}

	d := Deps{
		Log: zap.NewNop(),
		JWT: jwter,

		Users:     service.NewUserService(users),
		Products:  service.NewListingService(domain.ListingKindProduct, products, nil),
		Services:  service.NewListingService(domain.ListingKindService, services, nil),
		Trainings: service.NewListingService(domain.ListingKindTraining, trainings, nil),
	}

	tok, err := jwter.IssueAdmin("admin-1", "admin@test.local")
	require.NoError(t, err)
	return NewAdminEngine(d), tok, users, products
}

func doAdmin(r *gin.Engine, tok, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if tok != "" {
		req.AddCookie(&http.Cookie{Name: mdw.AdminCookieName, Value: tok})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAdminListingStatusRoute(t *testing.T) {
	r, tok, _, products := newAdminTestEngine(t)
	products.items["p1"] = &domain.ProductListing{
		ListingBase: domain.ListingBase{ID: "p1", Title: "Stool", Status: domain.StatusPendingApproval},
	}

	// 状态流转走 PUT
	w := doAdmin(r, tok, http.MethodPut, "/admin/v1/products/p1/status", `{"status":"ACTIVE"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, domain.StatusActive, products.items["p1"].Status)

	// 不带原因的驳回也放行，原因留空
	w = doAdmin(r, tok, http.MethodPut, "/admin/v1/products/p1/status", `{"status":"REJECTED"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, domain.StatusRejected, products.items["p1"].Status)
	require.Nil(t, products.items["p1"].RejectionReason)

	// PATCH 未注册
	w = doAdmin(r, tok, http.MethodPatch, "/admin/v1/products/p1/status", `{"status":"ACTIVE"}`)
	require.Equal(t, http.StatusNotFound, w.Code)

	// 没有会话直接挡掉
	w = doAdmin(r, "", http.MethodPut, "/admin/v1/products/p1/status", `{"status":"ACTIVE"}`)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminUserStatusRoute(t *testing.T) {
	r, tok, users, _ := newAdminTestEngine(t)
	users.users["u1"] = &domain.User{ID: "u1", Email: "a@b.c", Role: domain.RoleArtisan, IsActive: true}

	w := doAdmin(r, tok, http.MethodPut, "/admin/v1/users/u1/status", `{"isActive":false}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.False(t, users.users["u1"].IsActive)

	w = doAdmin(r, tok, http.MethodPatch, "/admin/v1/users/u1/status", `{"isActive":true}`)
	require.Equal(t, http.StatusNotFound, w.Code)
}
