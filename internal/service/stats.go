package service

import (
	"context"

	"artisan-market-api/internal/domain"
)

// DashboardStats 管理端首页概览数字
type DashboardStats struct {
	TotalArtisans    int64 `json:"totalArtisans"`
	TotalCustomers   int64 `json:"totalCustomers"`
	PendingProducts  int64 `json:"pendingProducts"`
	PendingServices  int64 `json:"pendingServices"`
	PendingTrainings int64 `json:"pendingTrainings"`
	ActiveProducts   int64 `json:"activeProducts"`
	ActiveServices   int64 `json:"activeServices"`
	ActiveTrainings  int64 `json:"activeTrainings"`
}

type StatsService struct {
	users     domain.UserRepository
	products  domain.ListingRepository[domain.ProductListing]
	services  domain.ListingRepository[domain.ServiceListing]
	trainings domain.ListingRepository[domain.TrainingOffer]
}

func NewStatsService(
	users domain.UserRepository,
	products domain.ListingRepository[domain.ProductListing],
	services domain.ListingRepository[domain.ServiceListing],
	trainings domain.ListingRepository[domain.TrainingOffer],
) *StatsService {
	return &StatsService{users: users, products: products, services: services, trainings: trainings}
}

func (s *StatsService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	out := &DashboardStats{}

	steps := []struct {
		dst  *int64
		load func(context.Context) (int64, error)
	}{
		{&out.TotalArtisans, func(ctx context.Context) (int64, error) { return s.users.CountByRole(ctx, domain.RoleArtisan) }},
		{&out.TotalCustomers, func(ctx context.Context) (int64, error) { return s.users.CountByRole(ctx, domain.RoleCustomer) }},
		{&out.PendingProducts, func(ctx context.Context) (int64, error) {
			return s.products.CountByStatus(ctx, domain.StatusPendingApproval)
		}},
		{&out.PendingServices, func(ctx context.Context) (int64, error) {
			return s.services.CountByStatus(ctx, domain.StatusPendingApproval)
		}},
		{&out.PendingTrainings, func(ctx context.Context) (int64, error) {
			return s.trainings.CountByStatus(ctx, domain.StatusPendingApproval)
		}},
		{&out.ActiveProducts, func(ctx context.Context) (int64, error) { return s.products.CountByStatus(ctx, domain.StatusActive) }},
		{&out.ActiveServices, func(ctx context.Context) (int64, error) { return s.services.CountByStatus(ctx, domain.StatusActive) }},
		{&out.ActiveTrainings, func(ctx context.Context) (int64, error) { return s.trainings.CountByStatus(ctx, domain.StatusActive) }},
	}
	for _, st := range steps {
		n, err := st.load(ctx)
		if err != nil {
			return nil, err
		}
		*st.dst = n
	}
	return out, nil
}
