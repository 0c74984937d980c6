package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/Dan9191/trade-prices/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned for a wrong admin password
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAdminDisabled is returned when no admin password hash is configured
	ErrAdminDisabled = errors.New("admin login is disabled")
)

const tokenTTL = 24 * time.Hour

// Auth issues admin tokens for the maintenance endpoints
type Auth struct {
	secret       []byte
	passwordHash []byte
	log          *logrus.Logger
	now          func() time.Time
}

// NewAuth initializes the admin authenticator
func NewAuth(cfg *config.Config, log *logrus.Logger) *Auth {
	return &Auth{
		secret:       []byte(cfg.JWTSecret),
		passwordHash: []byte(cfg.AdminPasswordHash),
		log:          log,
		now:          time.Now,
	}
}

// Login checks the admin password and returns a signed JWT
func (a *Auth) Login(password string) (string, error) {
	if len(a.passwordHash) == 0 {
		return "", ErrAdminDisabled
	}
	if err := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password)); err != nil {
		a.log.Warn("Admin login failed")
		return "", ErrInvalidCredentials
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "admin",
		IssuedAt:  jwt.NewNumericDate(a.now()),
		ExpiresAt: jwt.NewNumericDate(a.now().Add(tokenTTL)),
	})
	tokenString, err := token.SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	a.log.Info("Admin logged in")
	return tokenString, nil
}
