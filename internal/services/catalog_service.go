package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"luxejewel/internal/domain"
)

type CatalogService struct {
	Prods ProductStore
}

func NewCatalogService(prods ProductStore) *CatalogService {
	return &CatalogService{Prods: prods}
}

// List returns products, optionally filtered by exact category match.
// The result is capped by the store call; there is no pagination.
func (s *CatalogService) List(ctx context.Context, category string) ([]domain.Product, error) {
	return s.Prods.List(ctx, strings.TrimSpace(category))
}

func (s *CatalogService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.Prods.Get(ctx, id)
}

func checkFields(f domain.ProductFields) error {
	if strings.TrimSpace(f.Name) == "" {
		return fmt.Errorf("%w: product name is required", domain.ErrBadRequest)
	}
	if f.Price <= 0 {
		return fmt.Errorf("%w: price must be positive", domain.ErrBadRequest)
	}
	if f.Stock < 0 {
		return fmt.Errorf("%w: stock must not be negative", domain.ErrBadRequest)
	}
	return nil
}

func (s *CatalogService) Create(ctx context.Context, f domain.ProductFields) (*domain.Product, error) {
	if err := checkFields(f); err != nil {
		return nil, err
	}
	p := &domain.Product{
		ID:          uuid.NewString(),
		Name:        f.Name,
		Description: f.Description,
		Price:       f.Price,
		Category:    f.Category,
		ImageURL:    f.ImageURL,
		Stock:       f.Stock,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.Prods.Insert(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Update replaces the editable fields wholesale and returns the updated
// product. NotFound when the id does not exist.
func (s *CatalogService) Update(ctx context.Context, id string, f domain.ProductFields) (*domain.Product, error) {
	if err := checkFields(f); err != nil {
		return nil, err
	}
	if err := s.Prods.Update(ctx, id, f); err != nil {
		return nil, err
	}
	return s.Prods.Get(ctx, id)
}

func (s *CatalogService) Delete(ctx context.Context, id string) error {
	return s.Prods.Delete(ctx, id)
}

func (s *CatalogService) Categories(ctx context.Context) ([]string, error) {
	return s.Prods.Categories(ctx)
}
