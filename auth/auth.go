package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/farhanrmdhni/portfolio-backend/config"
	"github.com/farhanrmdhni/portfolio-backend/errs"
)

// User is the authenticated admin identity.
type User struct {
	Email string `json:"email"`
}

// Service checks the single admin's credentials and manages session
// tokens. There is exactly one admin identity, configured through the
// environment; everything else the identity layer of the hosted backend
// used to provide collapses into a signed session JWT.
type Service struct {
	adminEmail   string
	passwordHash string // bcrypt hash, preferred
	password     string // plain-text fallback for local development
	secret       []byte
	sessionTTL   time.Duration
	logger       zerolog.Logger
}

// NewService builds the auth service from environment configuration.
// ADMIN_EMAIL plus either ADMIN_PASSWORD_HASH (bcrypt) or ADMIN_PASSWORD
// select the admin identity. SESSION_SECRET signs session tokens; when
// absent a random secret is generated, which invalidates sessions on
// restart.
func NewService(c map[string]string) *Service {
	logger := log.With().Str("serviceName", "auth").Logger()

	secret := config.GetString(c, "SESSION_SECRET", "")
	if secret == "" {
		secret = uuid.NewString() + uuid.NewString()
		logger.Warn().Msg("SESSION_SECRET not set, using a generated secret; sessions will not survive restarts")
	}

	adminEmail := config.GetString(c, "ADMIN_EMAIL", "")
	if adminEmail == "" {
		logger.Warn().Msg("ADMIN_EMAIL not set, admin sign-in disabled")
	}

	return &Service{
		adminEmail:   adminEmail,
		passwordHash: config.GetString(c, "ADMIN_PASSWORD_HASH", ""),
		password:     config.GetString(c, "ADMIN_PASSWORD", ""),
		secret:       []byte(secret),
		sessionTTL:   time.Duration(config.GetInt(c, "SESSION_TTL_HOURS", 24)) * time.Hour,
		logger:       logger,
	}
}

// SignIn validates the email/password pair and issues a session token.
// Invalid credentials come back as errs.ErrInvalidCredentials so the
// login form can surface them inline.
func (s *Service) SignIn(email, password string) (string, *User, error) {
	if s.adminEmail == "" || email != s.adminEmail {
		return "", nil, errs.NewInvalidCredentialsError()
	}

	switch {
	case s.passwordHash != "":
		if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)); err != nil {
			return "", nil, errs.NewInvalidCredentialsError()
		}
	case s.password != "":
		if password != s.password {
			return "", nil, errs.NewInvalidCredentialsError()
		}
	default:
		s.logger.Error().Msg("Neither ADMIN_PASSWORD_HASH nor ADMIN_PASSWORD is set")
		return "", nil, errs.NewInvalidCredentialsError()
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   email,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.sessionTTL)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("signing session token: %w", err)
	}

	s.logger.Info().Str("email", email).Msg("Admin signed in")
	return token, &User{Email: email}, nil
}

// CurrentUser validates a session token and returns the identity it
// carries, or an invalid-token error for anything unparseable, expired,
// or signed with the wrong key.
func (s *Service) CurrentUser(tokenString string) (*User, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid || claims.Subject == "" {
		return nil, errs.NewInvalidTokenError()
	}
	return &User{Email: claims.Subject}, nil
}

// SessionTTL exposes the configured session lifetime for the login
// response.
func (s *Service) SessionTTL() time.Duration {
	return s.sessionTTL
}

// HashPassword produces a bcrypt hash suitable for ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
