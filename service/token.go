package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rsmanito/restaurant-api/models"
)

// IssueChefToken signs an HS256 token for the configured chef. A non-positive
// ttl yields a token without an expiry.
func (s *Service) IssueChefToken(ttl time.Duration) (string, error) {
	now := s.now()

	claims := jwt.RegisteredClaims{
		ID:       uuid.NewString(),
		Subject:  s.cfg.ChefUsername,
		IssuedAt: jwt.NewNumericDate(now),
	}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecretKey))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return token, nil
}

// ParseToken extracts the claims from tokenStr. The signature is only checked
// when JWT_VERIFY_SIGNATURE is enabled; expiry is always checked.
func (s *Service) ParseToken(tokenStr string) (*jwt.RegisteredClaims, error) {
	if s.cfg.VerifySignature() {
		return s.parseVerified(tokenStr)
	}

	return s.parseUnverified(tokenStr)
}

// IsChef reports whether claims belong to the configured chef.
func (s *Service) IsChef(claims *jwt.RegisteredClaims) bool {
	return claims != nil && claims.Subject != "" && claims.Subject == s.cfg.ChefUsername
}

func (s *Service) parseVerified(tokenStr string) (*jwt.RegisteredClaims, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&jwt.RegisteredClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(s.cfg.JWTSecretKey), nil
		},
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, models.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return nil, models.ErrInvalidToken
	}

	return claims, nil
}

func (s *Service) parseUnverified(tokenStr string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}

	if _, _, err := jwt.NewParser().ParseUnverified(tokenStr, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidToken, err)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidToken, err)
	}
	if exp != nil && !s.now().Before(exp.Time) {
		return nil, models.ErrTokenExpired
	}

	return claims, nil
}
