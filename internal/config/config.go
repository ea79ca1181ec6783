package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// TokenLifetime is fixed; there is no refresh mechanism.
const TokenLifetime = 30 * 24 * time.Hour

type Config struct {
	Port           string
	MongoURL       string
	DBName         string
	JWTSecret      string
	RazorpayKeyID  string
	RazorpaySecret string
	CORSOrigins    string
}

func Load() Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	mongoURL := os.Getenv("MONGO_URL")
	if mongoURL == "" {
		mongoURL = "mongodb://localhost:27017"
	}
	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		dbName = "luxejewel"
	}
	secret := os.Getenv("JWT_SECRET_KEY")
	if secret == "" {
		secret = "your-secret-key-change-in-production"
		log.Println("[config] JWT_SECRET_KEY not set, using insecure default")
	}
	origins := os.Getenv("CORS_ORIGINS")
	if origins == "" {
		origins = "*"
	}

	cfg := Config{
		Port:           port,
		MongoURL:       mongoURL,
		DBName:         dbName,
		JWTSecret:      secret,
		RazorpayKeyID:  os.Getenv("RAZORPAY_KEY_ID"),
		RazorpaySecret: os.Getenv("RAZORPAY_KEY_SECRET"),
		CORSOrigins:    origins,
	}
	log.Printf("[config] PORT=%s DB_NAME=%s CORS_ORIGINS=%s RAZORPAY_KEY_ID=%s",
		cfg.Port, cfg.DBName, cfg.CORSOrigins, maskKey(cfg.RazorpayKeyID))
	return cfg
}

func maskKey(k string) string {
	if len(k) <= 8 {
		return strings.Repeat("*", len(k))
	}
	return k[:8] + strings.Repeat("*", len(k)-8)
}
