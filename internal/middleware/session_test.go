package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uwosh/course-combine-api/internal/models"
	"github.com/uwosh/course-combine-api/internal/service"
	"github.com/uwosh/course-combine-api/pkg/config"
)

func sessionRouter(t *testing.T, tokens *service.TokenService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(Session(tokens))
	r.GET("/protected", func(c *gin.Context) {
		claims := CurrentClaims(c)
		require.NotNil(t, claims)
		c.JSON(http.StatusOK, gin.H{"workflow_id": claims.WorkflowID})
	})
	return r
}

func TestSessionAcceptsValidToken(t *testing.T) {
	tokens := service.NewTokenService(config.SessionConfig{Secret: "secret", TTL: time.Hour})
	token, err := tokens.Mint(models.Requester{UserID: "42", UniqueName: "lookerb"}, "wf-1")
	require.NoError(t, err)

	r := sessionRouter(t, tokens)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "wf-1")
}

func TestSessionRejectsMissingHeader(t *testing.T) {
	tokens := service.NewTokenService(config.SessionConfig{Secret: "secret", TTL: time.Hour})

	r := sessionRouter(t, tokens)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionRejectsMalformedHeader(t *testing.T) {
	tokens := service.NewTokenService(config.SessionConfig{Secret: "secret", TTL: time.Hour})

	r := sessionRouter(t, tokens)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionRejectsForgedToken(t *testing.T) {
	minting := service.NewTokenService(config.SessionConfig{Secret: "other-secret", TTL: time.Hour})
	token, err := minting.Mint(models.Requester{UserID: "42"}, "wf-1")
	require.NoError(t, err)

	tokens := service.NewTokenService(config.SessionConfig{Secret: "secret", TTL: time.Hour})
	r := sessionRouter(t, tokens)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
