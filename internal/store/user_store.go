package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"luxejewel/internal/domain"
)

type UserStore struct{ col *mongo.Collection }

func NewUserStore(db *mongo.Database) *UserStore {
	return &UserStore{col: db.Collection(ColUsers)}
}

func (s *UserStore) ByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := s.col.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: user %s", domain.ErrNotFound, email)
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *UserStore) ByID(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User
	err := s.col.FindOne(ctx, bson.M{"id": id}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: user %s", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *UserStore) Insert(ctx context.Context, u *domain.User) error {
	_, err := s.col.InsertOne(ctx, u)
	return err
}

// CountCustomers counts non-admin users, for the analytics dashboard.
func (s *UserStore) CountCustomers(ctx context.Context) (int64, error) {
	return s.col.CountDocuments(ctx, bson.M{"is_admin": false})
}
