// Package auth verifies the operator secret and issues session tokens.
// There is exactly one operator identity; sessions are stateless JWTs, so no
// server-side session table exists.
package auth

import (
	"crypto/subtle"
	"errors"
	"time"

	apperrors "cardlink/internal/errors"
	"cardlink/internal/metrics"
	"cardlink/internal/models"

	"github.com/golang-jwt/jwt/v5"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// Config carries the injected operator credentials and token settings.
// SecretHash, when set, takes precedence over Secret and must be a bcrypt
// hash (see cmd/genhash).
type Config struct {
	Secret     string
	SecretHash string
	JWTSecret  string
	TokenTTL   time.Duration
}

type Service interface {
	// Login checks the submitted secret and returns a bearer token valid
	// for the configured TTL.
	Login(secret string) (string, error)

	// ValidateToken parses and verifies a bearer token.
	ValidateToken(tokenString string) (*models.OperatorClaims, error)
}

type service struct {
	cfg Config
}

func NewService(cfg Config) Service {
	if cfg.TokenTTL == 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	return &service{cfg: cfg}
}

func (s *service) Login(secret string) (string, error) {
	if !s.verifySecret(secret) {
		log.Warn("login failed: wrong operator secret")
		metrics.LoginFailuresTotal.Inc()
		return "", apperrors.ErrUnauthorized
	}

	now := time.Now()
	claims := models.OperatorClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "cardlink-api",
			Subject:   "operator",
		},
		Operator: true,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", err
	}
	return token, nil
}

// verifySecret compares in constant time regardless of which credential
// form is configured.
func (s *service) verifySecret(secret string) bool {
	if s.cfg.SecretHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(s.cfg.SecretHash), []byte(secret)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(s.cfg.Secret), []byte(secret)) == 1
}

func (s *service) ValidateToken(tokenString string) (*models.OperatorClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.OperatorClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, apperrors.ErrUnauthorized
	}

	claims, ok := token.Claims.(*models.OperatorClaims)
	if !ok || !token.Valid || !claims.Operator {
		return nil, apperrors.ErrUnauthorized
	}
	return claims, nil
}
