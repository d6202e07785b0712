package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uwosh/course-combine-api/internal/models"
	"github.com/uwosh/course-combine-api/pkg/config"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewTokenService(config.SessionConfig{Secret: "test-secret", TTL: time.Hour})

	token, err := svc.Mint(models.Requester{
		UserID: "42", FirstName: "Brent", LastName: "Looker", UniqueName: "lookerb",
	}, "wf-1")
	require.NoError(t, err)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.UserID)
	assert.Equal(t, "lookerb", claims.UniqueName)
	assert.Equal(t, "wf-1", claims.WorkflowID)
	assert.Equal(t, "Brent", claims.Requester().FirstName)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	minter := NewTokenService(config.SessionConfig{Secret: "secret-a", TTL: time.Hour})
	verifier := NewTokenService(config.SessionConfig{Secret: "secret-b", TTL: time.Hour})

	token, err := minter.Mint(models.Requester{UserID: "42"}, "wf-1")
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	assert.Error(t, err)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	svc := NewTokenService(config.SessionConfig{Secret: "test-secret", TTL: -time.Minute})

	token, err := svc.Mint(models.Requester{UserID: "42"}, "wf-1")
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	svc := NewTokenService(config.SessionConfig{Secret: "test-secret", TTL: time.Hour})
	_, err := svc.Validate("not-a-token")
	assert.Error(t, err)
}
