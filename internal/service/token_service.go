package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/uwosh/course-combine-api/internal/models"
	"github.com/uwosh/course-combine-api/pkg/config"
	appErrors "github.com/uwosh/course-combine-api/pkg/errors"
)

// TokenService mints and validates the session tokens that bind an LMS
// sign-in to one workflow instance.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService constructs TokenService.
func NewTokenService(cfg config.SessionConfig) *TokenService {
	return &TokenService{secret: []byte(cfg.Secret), ttl: cfg.TTL}
}

// Mint issues a session token for the requester and workflow.
func (s *TokenService) Mint(requester models.Requester, workflowID string) (string, error) {
	now := time.Now()
	claims := &models.SessionClaims{
		UserID:     requester.UserID,
		FirstName:  requester.FirstName,
		LastName:   requester.LastName,
		UniqueName: requester.UniqueName,
		WorkflowID: workflowID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign session token")
	}
	return signed, nil
}

// Validate parses and verifies a session token, returning its claims.
func (s *TokenService) Validate(tokenString string) (*models.SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid session token")
	}

	claims, ok := token.Claims.(*models.SessionClaims)
	if !ok || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid session token claims")
	}

	return claims, nil
}
