package services

import (
	"context"
	"errors"

	"luxejewel/internal/domain"
)

type AnalyticsService struct {
	Users  UserStore
	Prods  ProductStore
	Orders OrderStore
}

func NewAnalyticsService(users UserStore, prods ProductStore, orders OrderStore) *AnalyticsService {
	return &AnalyticsService{Users: users, Prods: prods, Orders: orders}
}

type Report struct {
	TotalProducts int64              `json:"total_products"`
	TotalOrders   int64              `json:"total_orders"`
	TotalUsers    int64              `json:"total_users"`
	TotalRevenue  float64            `json:"total_revenue"`
	RecentOrders  []domain.Order     `json:"recent_orders"`
	CategorySales map[string]float64 `json:"category_sales"`
}

// Snapshot recomputes the whole report on every call; nothing is cached
// or maintained incrementally. Category sales re-look-up each order
// line's product, one read per line.
func (s *AnalyticsService) Snapshot(ctx context.Context) (*Report, error) {
	totalProducts, err := s.Prods.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalOrders, err := s.Orders.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalUsers, err := s.Users.CountCustomers(ctx)
	if err != nil {
		return nil, err
	}

	completed, err := s.Orders.ListCompleted(ctx)
	if err != nil {
		return nil, err
	}
	revenue := 0.0
	for _, o := range completed {
		revenue += o.TotalAmount
	}

	recent, err := s.Orders.ListRecent(ctx, 10)
	if err != nil {
		return nil, err
	}

	sales := map[string]float64{}
	for _, o := range completed {
		for _, it := range o.Items {
			p, err := s.Prods.Get(ctx, it.ProductID)
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			if err != nil {
				return nil, err
			}
			sales[p.Category] += it.Price * float64(it.Quantity)
		}
	}

	return &Report{
		TotalProducts: totalProducts,
		TotalOrders:   totalOrders,
		TotalUsers:    totalUsers,
		TotalRevenue:  revenue,
		RecentOrders:  recent,
		CategorySales: sales,
	}, nil
}
