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

type OrderStore struct{ col *mongo.Collection }

func NewOrderStore(db *mongo.Database) *OrderStore {
	return &OrderStore{col: db.Collection(ColOrders)}
}

func (s *OrderStore) Insert(ctx context.Context, o *domain.Order) error {
	_, err := s.col.InsertOne(ctx, o)
	return err
}

func (s *OrderStore) Get(ctx context.Context, id string) (*domain.Order, error) {
	var o domain.Order
	err := s.col.FindOne(ctx, bson.M{"id": id}).Decode(&o)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: order %s", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// newestFirst sorts on created_at; values are RFC3339 strings so the
// lexicographic sort matches chronological order.
var newestFirst = bson.D{{Key: "created_at", Value: -1}}

func (s *OrderStore) list(ctx context.Context, filter bson.M, limit int64) ([]domain.Order, error) {
	opts := options.Find().SetSort(newestFirst)
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	out := []domain.Order{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *OrderStore) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.list(ctx, bson.M{"user_id": userID}, 0)
}

func (s *OrderStore) ListAll(ctx context.Context) ([]domain.Order, error) {
	return s.list(ctx, bson.M{}, 0)
}

func (s *OrderStore) ListRecent(ctx context.Context, limit int64) ([]domain.Order, error) {
	return s.list(ctx, bson.M{}, limit)
}

func (s *OrderStore) ListCompleted(ctx context.Context) ([]domain.Order, error) {
	return s.list(ctx, bson.M{"payment_status": domain.PaymentCompleted}, 0)
}

// SetStatus stores the submitted status string as-is; no enum check at
// this boundary.
func (s *OrderStore) SetStatus(ctx context.Context, id, status string) error {
	res, err := s.col.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: order %s", domain.ErrNotFound, id)
	}
	return nil
}

// MarkPaid records a verified payment: confirmed/completed plus the
// gateway's payment id.
func (s *OrderStore) MarkPaid(ctx context.Context, id, paymentID string) error {
	_, err := s.col.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{
		"payment_status":      domain.PaymentCompleted,
		"status":              domain.OrderConfirmed,
		"razorpay_payment_id": paymentID,
	}})
	return err
}

func (s *OrderStore) MarkPaymentFailed(ctx context.Context, id string) error {
	_, err := s.col.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{
		"payment_status": domain.PaymentFailed,
	}})
	return err
}

func (s *OrderStore) Count(ctx context.Context) (int64, error) {
	return s.col.CountDocuments(ctx, bson.M{})
}
