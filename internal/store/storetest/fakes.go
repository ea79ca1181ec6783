// Package storetest provides in-memory stand-ins for the Mongo-backed
// stores, implementing the interfaces in internal/services. Tests use
// these the way the document store is used in production: every call
// copies data in and out, nothing is shared by reference.
package storetest

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"luxejewel/internal/domain"
)

type Users struct {
	mu    sync.Mutex
	users []domain.User
}

func NewUsers() *Users { return &Users{} }

func (f *Users) ByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.users {
		if f.users[i].Email == email {
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, fmt.Errorf("%w: user %s", domain.ErrNotFound, email)
}

func (f *Users) ByID(_ context.Context, id string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.users {
		if f.users[i].ID == id {
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, fmt.Errorf("%w: user %s", domain.ErrNotFound, id)
}

func (f *Users) Insert(_ context.Context, u *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users = append(f.users, *u)
	return nil
}

func (f *Users) CountCustomers(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for i := range f.users {
		if !f.users[i].IsAdmin {
			n++
		}
	}
	return n, nil
}

func (f *Users) Delete(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.users {
		if f.users[i].ID == id {
			f.users = append(f.users[:i], f.users[i+1:]...)
			return
		}
	}
}

type Products struct {
	mu    sync.Mutex
	prods []domain.Product
}

func NewProducts(seed ...domain.Product) *Products {
	return &Products{prods: append([]domain.Product{}, seed...)}
}

func (f *Products) List(_ context.Context, category string) ([]domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []domain.Product{}
	for _, p := range f.prods {
		if category == "" || p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *Products) Get(_ context.Context, id string) (*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.prods {
		if f.prods[i].ID == id {
			p := f.prods[i]
			return &p, nil
		}
	}
	return nil, fmt.Errorf("%w: product %s", domain.ErrNotFound, id)
}

func (f *Products) Insert(_ context.Context, p *domain.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prods = append(f.prods, *p)
	return nil
}

func (f *Products) Update(_ context.Context, id string, fl domain.ProductFields) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.prods {
		if f.prods[i].ID == id {
			f.prods[i].Name = fl.Name
			f.prods[i].Description = fl.Description
			f.prods[i].Price = fl.Price
			f.prods[i].Category = fl.Category
			f.prods[i].ImageURL = fl.ImageURL
			f.prods[i].Stock = fl.Stock
			return nil
		}
	}
	return fmt.Errorf("%w: product %s", domain.ErrNotFound, id)
}

func (f *Products) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.prods {
		if f.prods[i].ID == id {
			f.prods = append(f.prods[:i], f.prods[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: product %s", domain.ErrNotFound, id)
}

func (f *Products) Categories(_ context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	seen := map[string]bool{}
	out := []string{}
	for _, p := range f.prods {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	return out, nil
}

func (f *Products) DecrementStock(_ context.Context, id string, qty int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.prods {
		if f.prods[i].ID == id {
			f.prods[i].Stock -= qty
			return nil
		}
	}
	return fmt.Errorf("%w: product %s", domain.ErrNotFound, id)
}

func (f *Products) Count(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.prods)), nil
}

type Carts struct {
	mu    sync.Mutex
	carts []domain.Cart
}

func NewCarts() *Carts { return &Carts{} }

func (f *Carts) ByUser(_ context.Context, userID string) (*domain.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.carts {
		if f.carts[i].UserID == userID {
			c := f.carts[i]
			c.Items = append([]domain.CartItem{}, f.carts[i].Items...)
			return &c, nil
		}
	}
	return nil, nil
}

func (f *Carts) Insert(_ context.Context, c *domain.Cart) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *c
	cp.Items = append([]domain.CartItem{}, c.Items...)
	f.carts = append(f.carts, cp)
	return nil
}

func (f *Carts) SetItems(_ context.Context, userID string, items []domain.CartItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.carts {
		if f.carts[i].UserID == userID {
			f.carts[i].Items = append([]domain.CartItem{}, items...)
			f.carts[i].UpdatedAt = time.Now().UTC().Format(time.RFC3339)
			return nil
		}
	}
	return nil
}

func (f *Carts) DeleteByUser(_ context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.carts {
		if f.carts[i].UserID == userID {
			f.carts = append(f.carts[:i], f.carts[i+1:]...)
			return nil
		}
	}
	return nil
}

type Orders struct {
	mu     sync.Mutex
	orders []domain.Order
}

func NewOrders() *Orders { return &Orders{} }

func (f *Orders) Insert(_ context.Context, o *domain.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *o
	cp.Items = append([]domain.OrderItem{}, o.Items...)
	f.orders = append(f.orders, cp)
	return nil
}

func (f *Orders) Get(_ context.Context, id string) (*domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.orders {
		if f.orders[i].ID == id {
			o := f.orders[i]
			o.Items = append([]domain.OrderItem{}, f.orders[i].Items...)
			return &o, nil
		}
	}
	return nil, fmt.Errorf("%w: order %s", domain.ErrNotFound, id)
}

func (f *Orders) snapshot(filter func(domain.Order) bool, limit int64) []domain.Order {
	out := []domain.Order{}
	for _, o := range f.orders {
		if filter(o) {
			out = append(out, o)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out
}

func (f *Orders) ListByUser(_ context.Context, userID string) ([]domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshot(func(o domain.Order) bool { return o.UserID == userID }, 0), nil
}

func (f *Orders) ListAll(_ context.Context) ([]domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshot(func(domain.Order) bool { return true }, 0), nil
}

func (f *Orders) ListRecent(_ context.Context, limit int64) ([]domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshot(func(domain.Order) bool { return true }, limit), nil
}

func (f *Orders) ListCompleted(_ context.Context) ([]domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshot(func(o domain.Order) bool { return o.PaymentStatus == domain.PaymentCompleted }, 0), nil
}

func (f *Orders) SetStatus(_ context.Context, id, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.orders {
		if f.orders[i].ID == id {
			f.orders[i].Status = status
			return nil
		}
	}
	return fmt.Errorf("%w: order %s", domain.ErrNotFound, id)
}

func (f *Orders) MarkPaid(_ context.Context, id, paymentID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.orders {
		if f.orders[i].ID == id {
			f.orders[i].PaymentStatus = domain.PaymentCompleted
			f.orders[i].Status = domain.OrderConfirmed
			f.orders[i].RazorpayPaymentID = paymentID
			return nil
		}
	}
	return nil
}

func (f *Orders) MarkPaymentFailed(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.orders {
		if f.orders[i].ID == id {
			f.orders[i].PaymentStatus = domain.PaymentFailed
			return nil
		}
	}
	return nil
}

func (f *Orders) Count(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.orders)), nil
}

// Gateway is a scripted payment gateway: it accepts exactly one
// signature value and records every remote order it creates.
type Gateway struct {
	mu             sync.Mutex
	Key            string
	ValidSignature string
	FailCreate     bool
	created        []int64
	nextID         int
}

func NewGateway() *Gateway {
	return &Gateway{Key: "rzp_test_key", ValidSignature: "valid-signature"}
}

func (g *Gateway) CreateOrder(amountMinorUnits int64, currency string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.FailCreate {
		return "", fmt.Errorf("gateway unavailable")
	}
	g.created = append(g.created, amountMinorUnits)
	g.nextID++
	return fmt.Sprintf("order_fake%03d", g.nextID), nil
}

func (g *Gateway) VerifySignature(_, _, signature string) bool {
	return signature == g.ValidSignature
}

func (g *Gateway) KeyID() string { return g.Key }

// CreatedAmounts returns the minor-unit amounts of every gateway order
// created so far, in order.
func (g *Gateway) CreatedAmounts() []int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]int64{}, g.created...)
}
