package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names. Four flat collections, application-generated string ids.
const (
	ColUsers    = "users"
	ColProducts = "products"
	ColCarts    = "carts"
	ColOrders   = "orders"
)

// Open connects to Mongo, pings it, and seeds baseline data if the store
// is empty. The returned client is the injected dependency every repo is
// built on; there is no package-level handle.
func Open(url, dbName string) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(url))
	if err != nil {
		return nil, nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, nil, err
	}

	db := client.Database(dbName)
	if err := Seed(ctx, db); err != nil {
		return nil, nil, err
	}
	return client, db, nil
}
