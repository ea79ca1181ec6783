package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"luxejewel/internal/domain"
)

// listCap bounds unpaginated product listings. A known limitation of the
// API surface, not something callers can tune.
const listCap = 1000

type ProductStore struct{ col *mongo.Collection }

func NewProductStore(db *mongo.Database) *ProductStore {
	return &ProductStore{col: db.Collection(ColProducts)}
}

func (s *ProductStore) List(ctx context.Context, category string) ([]domain.Product, error) {
	filter := bson.M{}
	if category != "" {
		filter["category"] = category
	}
	cur, err := s.col.Find(ctx, filter, options.Find().SetLimit(listCap))
	if err != nil {
		return nil, err
	}
	out := []domain.Product{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *ProductStore) Get(ctx context.Context, id string) (*domain.Product, error) {
	var p domain.Product
	err := s.col.FindOne(ctx, bson.M{"id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: product %s", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *ProductStore) Insert(ctx context.Context, p *domain.Product) error {
	_, err := s.col.InsertOne(ctx, p)
	return err
}

// Update replaces all editable fields. Returns NotFound when no document
// matched.
func (s *ProductStore) Update(ctx context.Context, id string, f domain.ProductFields) error {
	res, err := s.col.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{
		"name":        f.Name,
		"description": f.Description,
		"price":       f.Price,
		"category":    f.Category,
		"image_url":   f.ImageURL,
		"stock":       f.Stock,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: product %s", domain.ErrNotFound, id)
	}
	return nil
}

func (s *ProductStore) Delete(ctx context.Context, id string) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%w: product %s", domain.ErrNotFound, id)
	}
	return nil
}

func (s *ProductStore) Categories(ctx context.Context) ([]string, error) {
	vals, err := s.col.Distinct(ctx, "category", bson.M{})
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if c, ok := v.(string); ok {
			out = append(out, c)
		}
	}
	return out, nil
}

// DecrementStock subtracts qty via $inc. A single-document atomic update;
// there is no cross-document coordination with concurrent checkouts.
func (s *ProductStore) DecrementStock(ctx context.Context, id string, qty int) error {
	_, err := s.col.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$inc": bson.M{"stock": -qty}})
	return err
}

func (s *ProductStore) Count(ctx context.Context) (int64, error) {
	return s.col.CountDocuments(ctx, bson.M{})
}
