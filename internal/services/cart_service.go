package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"luxejewel/internal/domain"
)

type CartService struct {
	Carts CartStore
	Prods ProductStore
}

func NewCartService(carts CartStore, prods ProductStore) *CartService {
	return &CartService{Carts: carts, Prods: prods}
}

// Get returns the cart joined with live product documents. An absent cart
// is an empty list, never an error. Lines whose product has since been
// deleted are skipped.
func (s *CartService) Get(ctx context.Context, userID string) ([]domain.CartLine, error) {
	cart, err := s.Carts.ByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	lines := []domain.CartLine{}
	if cart == nil {
		return lines, nil
	}
	for _, it := range cart.Items {
		p, err := s.Prods.Get(ctx, it.ProductID)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		lines = append(lines, domain.CartLine{Product: *p, Quantity: it.Quantity})
	}
	return lines, nil
}

// Add puts qty units of a product into the user's cart, creating the cart
// on first add and accumulating quantity onto an existing line. Stock is
// not checked here; only checkout validates it.
func (s *CartService) Add(ctx context.Context, userID, productID string, qty int) error {
	if qty < 1 {
		qty = 1
	}
	if _, err := s.Prods.Get(ctx, productID); err != nil {
		return err
	}

	cart, err := s.Carts.ByUser(ctx, userID)
	if err != nil {
		return err
	}
	if cart == nil {
		return s.Carts.Insert(ctx, &domain.Cart{
			ID:        uuid.NewString(),
			UserID:    userID,
			Items:     []domain.CartItem{{ProductID: productID, Quantity: qty}},
			UpdatedAt: time.Now().UTC().Format(time.RFC3339),
		})
	}

	items := cart.Items
	found := false
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity += qty
			found = true
			break
		}
	}
	if !found {
		items = append(items, domain.CartItem{ProductID: productID, Quantity: qty})
	}
	return s.Carts.SetItems(ctx, userID, items)
}

// UpdateLine replaces a line's quantity; qty <= 0 removes the line.
// Missing cart or missing line is NotFound.
func (s *CartService) UpdateLine(ctx context.Context, userID, productID string, qty int) error {
	cart, err := s.Carts.ByUser(ctx, userID)
	if err != nil {
		return err
	}
	if cart == nil {
		return fmt.Errorf("%w: cart", domain.ErrNotFound)
	}

	items := cart.Items
	found := false
	for i := range items {
		if items[i].ProductID != productID {
			continue
		}
		if qty <= 0 {
			items = append(items[:i], items[i+1:]...)
		} else {
			items[i].Quantity = qty
		}
		found = true
		break
	}
	if !found {
		return fmt.Errorf("%w: item not in cart", domain.ErrNotFound)
	}
	return s.Carts.SetItems(ctx, userID, items)
}

// Clear deletes the cart document. Idempotent.
func (s *CartService) Clear(ctx context.Context, userID string) error {
	return s.Carts.DeleteByUser(ctx, userID)
}
