package services

import (
	"context"

	"luxejewel/internal/domain"
)

// Storage interfaces the services are written against. internal/store
// implements them over Mongo; tests substitute in-memory fakes. Every
// request round-trips to storage through these; nothing is cached
// in-process.

type UserStore interface {
	ByEmail(ctx context.Context, email string) (*domain.User, error)
	ByID(ctx context.Context, id string) (*domain.User, error)
	Insert(ctx context.Context, u *domain.User) error
	CountCustomers(ctx context.Context) (int64, error)
}

type ProductStore interface {
	List(ctx context.Context, category string) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Insert(ctx context.Context, p *domain.Product) error
	Update(ctx context.Context, id string, f domain.ProductFields) error
	Delete(ctx context.Context, id string) error
	Categories(ctx context.Context) ([]string, error)
	DecrementStock(ctx context.Context, id string, qty int) error
	Count(ctx context.Context) (int64, error)
}

type CartStore interface {
	ByUser(ctx context.Context, userID string) (*domain.Cart, error)
	Insert(ctx context.Context, c *domain.Cart) error
	SetItems(ctx context.Context, userID string, items []domain.CartItem) error
	DeleteByUser(ctx context.Context, userID string) error
}

type OrderStore interface {
	Insert(ctx context.Context, o *domain.Order) error
	Get(ctx context.Context, id string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
	ListRecent(ctx context.Context, limit int64) ([]domain.Order, error)
	ListCompleted(ctx context.Context) ([]domain.Order, error)
	SetStatus(ctx context.Context, id, status string) error
	MarkPaid(ctx context.Context, id, paymentID string) error
	MarkPaymentFailed(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}
