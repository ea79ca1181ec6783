package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"luxejewel/internal/domain"
)

type AuthService struct {
	Users    UserStore
	Secret   []byte
	TokenTTL time.Duration
}

func NewAuthService(users UserStore, secret string, ttl time.Duration) *AuthService {
	return &AuthService{Users: users, Secret: []byte(secret), TokenTTL: ttl}
}

// Register creates a user with a bcrypt-hashed password and issues a
// token bound to the new id. Duplicate email is a Conflict.
func (s *AuthService) Register(ctx context.Context, email, password, name string) (*domain.User, string, error) {
	if _, err := s.Users.ByEmail(ctx, email); err == nil {
		return nil, "", fmt.Errorf("%w: email already registered", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}
	u := &domain.User{
		ID:        uuid.NewString(),
		Email:     email,
		Name:      name,
		Hash:      string(hash),
		IsAdmin:   false,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.Users.Insert(ctx, u); err != nil {
		return nil, "", err
	}
	tok, err := s.issueToken(u.ID)
	if err != nil {
		return nil, "", err
	}
	return u, tok, nil
}

// Login checks the password against the stored hash. Unknown email and
// hash mismatch are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	u, err := s.Users.ByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("%w: invalid email or password", domain.ErrUnauthorized)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, "", fmt.Errorf("%w: invalid email or password", domain.ErrUnauthorized)
	}
	tok, err := s.issueToken(u.ID)
	if err != nil {
		return nil, "", err
	}
	return u, tok, nil
}

// Resolve maps a bearer token to its user record. Malformed or expired
// tokens, and tokens whose subject no longer exists, all fail Unauthorized.
func (s *AuthService) Resolve(ctx context.Context, tokenString string) (*domain.User, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.Secret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: invalid or expired token", domain.ErrUnauthorized)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("%w: invalid token claims", domain.ErrUnauthorized)
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, fmt.Errorf("%w: token has no subject", domain.ErrUnauthorized)
	}
	u, err := s.Users.ByID(ctx, sub)
	if err != nil {
		return nil, fmt.Errorf("%w: user associated with token not found", domain.ErrUnauthorized)
	}
	return u, nil
}

func (s *AuthService) issueToken(userID string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID,
		"exp": now.Add(s.TokenTTL).Unix(),
		"iat": now.Unix(),
	})
	return token.SignedString(s.Secret)
}
