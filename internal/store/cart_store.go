package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"luxejewel/internal/domain"
)

type CartStore struct{ col *mongo.Collection }

func NewCartStore(db *mongo.Database) *CartStore {
	return &CartStore{col: db.Collection(ColCarts)}
}

// ByUser returns the user's cart, or nil without error when none exists.
// An absent cart is not an error state at this layer.
func (s *CartStore) ByUser(ctx context.Context, userID string) (*domain.Cart, error) {
	var c domain.Cart
	err := s.col.FindOne(ctx, bson.M{"user_id": userID}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *CartStore) Insert(ctx context.Context, c *domain.Cart) error {
	_, err := s.col.InsertOne(ctx, c)
	return err
}

// SetItems replaces the cart's line list and bumps updated_at.
func (s *CartStore) SetItems(ctx context.Context, userID string, items []domain.CartItem) error {
	_, err := s.col.UpdateOne(ctx, bson.M{"user_id": userID}, bson.M{"$set": bson.M{
		"items":      items,
		"updated_at": time.Now().UTC().Format(time.RFC3339),
	}})
	return err
}

// DeleteByUser removes the cart document. Deleting a missing cart is not
// an error.
func (s *CartStore) DeleteByUser(ctx context.Context, userID string) error {
	_, err := s.col.DeleteOne(ctx, bson.M{"user_id": userID})
	return err
}
