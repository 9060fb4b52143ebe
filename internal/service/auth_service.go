package service

import (
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"claimlens/internal/config"
	"claimlens/internal/domain"
)

// Claims represents the JWT claims for the configured operator.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// TokenPair holds access and refresh tokens.
type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// LoginInput is the DTO for login requests.
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthService defines the authentication contract. ClaimLens is a
// single-operator tool; the one account comes from configuration, not a
// user store.
type AuthService interface {
	Login(input LoginInput) (*TokenPair, error)
	RefreshToken(refreshToken string) (*TokenPair, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type authService struct {
	jwtCfg  config.JWTConfig
	authCfg config.AuthConfig
}

// NewAuthService creates a new AuthService implementation.
func NewAuthService(jwtCfg config.JWTConfig, authCfg config.AuthConfig) AuthService {
	return &authService{jwtCfg: jwtCfg, authCfg: authCfg}
}

func (s *authService) Login(input LoginInput) (*TokenPair, error) {
	if input.Email != s.authCfg.Email {
		return nil, domain.ErrInvalidCredentials
	}
	if err := s.checkPassword(input.Password); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return s.generateTokenPair()
}

// checkPassword prefers the bcrypt hash; the plaintext fallback exists for
// local development only.
func (s *authService) checkPassword(password string) error {
	if s.authCfg.PasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(s.authCfg.PasswordHash), []byte(password))
	}
	if s.authCfg.Password == "" {
		return domain.ErrInvalidCredentials
	}
	if subtle.ConstantTimeCompare([]byte(s.authCfg.Password), []byte(password)) != 1 {
		return domain.ErrInvalidCredentials
	}
	return nil
}

func (s *authService) RefreshToken(refreshToken string) (*TokenPair, error) {
	if _, err := s.validateTokenString(refreshToken, "refresh"); err != nil {
		return nil, domain.ErrUnauthorized
	}
	return s.generateTokenPair()
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	return s.validateTokenString(tokenString, "access")
}

func (s *authService) generateTokenPair() (*TokenPair, error) {
	now := time.Now()
	accessExpiry := now.Add(s.jwtCfg.AccessTokenExpiry)
	refreshExpiry := now.Add(s.jwtCfg.RefreshTokenExpiry)

	accessToken, err := s.signToken(now, accessExpiry, "access")
	if err != nil {
		return nil, fmt.Errorf("signing access token: %w", err)
	}
	refreshToken, err := s.signToken(now, refreshExpiry, "refresh")
	if err != nil {
		return nil, fmt.Errorf("signing refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    accessExpiry,
	}, nil
}

func (s *authService) signToken(now, expiry time.Time, audience string) (string, error) {
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.authCfg.Email,
			Issuer:    s.jwtCfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiry),
			ID:        uuid.New().String(),
			Audience:  jwt.ClaimStrings{audience},
		},
		Email: s.authCfg.Email,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtCfg.Secret))
}

func (s *authService) validateTokenString(tokenString, audience string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.jwtCfg.Secret), nil
	}, jwt.WithIssuer(s.jwtCfg.Issuer), jwt.WithAudience(audience))
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, domain.ErrUnauthorized
	}
	return claims, nil
}
