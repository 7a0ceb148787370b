package services

import (
	"context"

	"storefront/internal/domain"
	"storefront/internal/repository"

	"golang.org/x/sync/errgroup"
)

const recentOrdersLimit = 5

type DashboardStats struct {
	TotalProducts int64            `json:"totalProducts"`
	TotalOrders   int64            `json:"totalOrders"`
	TotalSales    int64            `json:"totalSales"`
	Degraded      map[string]int64 `json:"degraded"`
}

type Dashboard struct {
	Stats        DashboardStats `json:"stats"`
	RecentOrders []domain.Order `json:"recentOrders"`
}

type DashboardService struct {
	products     repository.ProductRepository
	orders       repository.OrderRepository
	degradations *Degradations
}

func NewDashboardService(p repository.ProductRepository, o repository.OrderRepository, d *Degradations) *DashboardService {
	return &DashboardService{products: p, orders: o, degradations: d}
}

// Dashboard reports paid orders only.
func (s *DashboardService) Dashboard(ctx context.Context) (*Dashboard, error) {
	var out Dashboard
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.products.Count(gctx)
		out.Stats.TotalProducts = n
		return err
	})
	g.Go(func() error {
		n, err := s.orders.CountPaid(gctx)
		out.Stats.TotalOrders = n
		return err
	})
	g.Go(func() error {
		n, err := s.orders.SumPaidAmount(gctx)
		out.Stats.TotalSales = n
		return err
	})
	g.Go(func() error {
		recent, err := s.orders.ListRecentPaid(gctx, recentOrdersLimit)
		out.RecentOrders = recent
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if out.RecentOrders == nil {
		out.RecentOrders = []domain.Order{}
	}
	out.Stats.Degraded = s.degradations.Snapshot(ctx)
	return &out, nil
}
