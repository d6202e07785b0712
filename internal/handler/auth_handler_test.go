package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uwosh/course-combine-api/internal/directory"
	"github.com/uwosh/course-combine-api/internal/models"
	"github.com/uwosh/course-combine-api/internal/service"
	"github.com/uwosh/course-combine-api/internal/session"
	"github.com/uwosh/course-combine-api/pkg/config"
	appErrors "github.com/uwosh/course-combine-api/pkg/errors"
)

func testTokenService() *service.TokenService {
	return service.NewTokenService(config.SessionConfig{
		Secret: "test-secret",
		TTL:    time.Hour,
	})
}

func TestStartSession(t *testing.T) {
	dir := directory.New()
	dir.Insert("0790", models.Section{ID: 7, Code: "UWOSH_0790_14W_CS_101_SEC1_11111", Label: "CS 101 SEC1"})
	dir.Insert("0795", models.Section{ID: 9, Code: "UWOSH_0795_14W_CS_201_SEC1_22222", Label: "CS 201 SEC1"})

	mock := &workflowMock{wc: &session.WorkflowContext{
		ID:        "wf-7",
		State:     session.StateSemesterUnselected,
		Directory: dir,
	}}
	h := NewAuthHandler(mock, testTokenService())

	c, w := testContext(t, http.MethodPost, "/auth/callback", map[string]interface{}{
		"user_id":     "42",
		"first_name":  "Brianna",
		"last_name":   "Looker",
		"unique_name": "lookerb",
	})
	h.StartSession(c)

	require.Equal(t, http.StatusCreated, w.Code)

	var body struct {
		Data struct {
			Token      string   `json:"token"`
			WorkflowID string   `json:"workflow_id"`
			State      string   `json:"state"`
			Semesters  []string `json:"semesters"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Data.Token)
	assert.Equal(t, "wf-7", body.Data.WorkflowID)
	assert.Equal(t, "semester_unselected", body.Data.State)
	assert.Equal(t, []string{"0790", "0795"}, body.Data.Semesters)
}

func TestStartSessionMissingIdentity(t *testing.T) {
	h := NewAuthHandler(&workflowMock{}, testTokenService())

	c, w := testContext(t, http.MethodPost, "/auth/callback", map[string]interface{}{"user_id": "42"})
	h.StartSession(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStartSessionAggregationFailure(t *testing.T) {
	h := NewAuthHandler(&workflowMock{err: appErrors.ErrRemoteFetch}, testTokenService())

	c, w := testContext(t, http.MethodPost, "/auth/callback", map[string]interface{}{
		"user_id":     "42",
		"first_name":  "Brianna",
		"last_name":   "Looker",
		"unique_name": "lookerb",
	})
	h.StartSession(c)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "REMOTE_FETCH_FAILED")
}
