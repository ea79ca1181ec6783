package store

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"luxejewel/internal/domain"
)

// Seed populates an empty store with one admin account and a demo catalog.
// Idempotent; safe to run on every startup. A convenience for demos, not
// part of the steady-state contract.
func Seed(ctx context.Context, db *mongo.Database) error {
	if err := seedAdmin(ctx, db); err != nil {
		return err
	}
	return seedProducts(ctx, db)
}

func seedAdmin(ctx context.Context, db *mongo.Database) error {
	users := db.Collection(ColUsers)
	err := users.FindOne(ctx, bson.M{"email": "admin@luxejewel.com"}).Err()
	if err == nil {
		return nil
	}
	if err != mongo.ErrNoDocuments {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := domain.User{
		ID:        uuid.NewString(),
		Email:     "admin@luxejewel.com",
		Name:      "Admin",
		Hash:      string(hash),
		IsAdmin:   true,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if _, err := users.InsertOne(ctx, admin); err != nil {
		return err
	}
	log.Println("[seed] admin user created: admin@luxejewel.com")
	return nil
}

func seedProducts(ctx context.Context, db *mongo.Database) error {
	products := db.Collection(ColProducts)
	n, err := products.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	type p struct {
		name, desc, category, image string
		price                       float64
		stock                       int
	}
	demo := []p{
		{"Rose Gold Drop Earrings", "Elegant rose gold plated drop earrings with pearl accents. Perfect for special occasions.", "Earrings", "https://images.unsplash.com/photo-1629297777138-6ae859d4d6df", 2499, 15},
		{"Crystal Stud Earrings", "Dainty crystal stud earrings with minimalist Korean design.", "Earrings", "https://images.unsplash.com/photo-1617030557822-c8c35f07c60b", 1299, 20},
		{"Pearl Hoop Earrings", "Classic hoop earrings adorned with freshwater pearls.", "Earrings", "https://images.unsplash.com/photo-1535632066927-ab7c9ab60908", 3499, 12},
		{"Delicate Gold Band Ring", "Minimalist gold band ring with subtle Korean aesthetic.", "Rings", "https://images.unsplash.com/photo-1588909006332-2e30f95291bc", 1899, 18},
		{"Vintage Rose Ring", "Vintage-inspired rose gold ring with intricate details.", "Rings", "https://images.unsplash.com/photo-1592752411501-b62f219cf9e2", 2799, 10},
		{"Moonstone Cocktail Ring", "Statement cocktail ring featuring a luminous moonstone centerpiece.", "Rings", "https://images.unsplash.com/photo-1605100804763-247f67b3557e", 4599, 8},
		{"Layered Chain Necklace", "Delicate layered chain necklace in rose gold.", "Necklaces", "https://images.pexels.com/photos/6889924/pexels-photo-6889924.jpeg", 3299, 14},
		{"Pendant Heart Necklace", "Romantic heart pendant necklace with Korean charm.", "Necklaces", "https://images.unsplash.com/photo-1629297777109-167b5d2bbba4", 2199, 16},
		{"Baroque Pearl Necklace", "Sophisticated baroque pearl necklace for elegant occasions.", "Necklaces", "https://images.unsplash.com/photo-1599643478518-a784e5dc4c8f", 5299, 7},
		{"Charm Bracelet Set", "Delicate charm bracelet set with Korean-inspired charms.", "Bracelets", "https://images.pexels.com/photos/7642066/pexels-photo-7642066.jpeg", 1799, 22},
		{"Tennis Bracelet", "Classic tennis bracelet with brilliant crystals.", "Bracelets", "https://images.unsplash.com/photo-1588559674156-c5984ed49b1c", 3899, 11},
		{"Bangle Set - Gold", "Set of three minimalist gold bangles.", "Bracelets", "https://images.unsplash.com/photo-1611591437281-460bfbe1220a", 2599, 13},
		{"Bridal Jewelry Set", "Complete bridal jewelry set including necklace, earrings, and bracelet.", "Sets", "https://images.unsplash.com/photo-1515562141207-7a88fb7ce338", 12999, 5},
		{"Everyday Elegance Set", "Perfect everyday jewelry set with earrings and necklace.", "Sets", "https://images.unsplash.com/photo-1611591437281-460bfbe1220a", 4999, 9},
	}

	now := time.Now().UTC().Format(time.RFC3339)
	docs := make([]interface{}, 0, len(demo))
	for _, d := range demo {
		docs = append(docs, domain.Product{
			ID:          uuid.NewString(),
			Name:        d.name,
			Description: d.desc,
			Price:       d.price,
			Category:    d.category,
			ImageURL:    d.image,
			Stock:       d.stock,
			CreatedAt:   now,
		})
	}
	if _, err := products.InsertMany(ctx, docs); err != nil {
		return err
	}
	log.Printf("[seed] inserted %d demo products", len(docs))
	return nil
}
