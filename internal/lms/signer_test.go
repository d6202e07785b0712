package lms

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uwosh/course-combine-api/pkg/config"
)

func TestIDKeySignerParameters(t *testing.T) {
	signer := NewIDKeySigner(config.LMSConfig{
		AppID:   "app-id",
		AppKey:  "app-key",
		UserID:  "user-id",
		UserKey: "user-key",
	})
	signer.now = func() time.Time { return time.Unix(1700000000, 0) }

	req, err := http.NewRequest(http.MethodGet, "https://lms.example.edu/d2l/api/lp/1.9/orgstructure/", nil)
	require.NoError(t, err)
	require.NoError(t, signer.Sign(req))

	q := req.URL.Query()
	assert.Equal(t, "app-id", q.Get("x_a"))
	assert.Equal(t, "user-id", q.Get("x_b"))
	assert.Equal(t, "1700000000", q.Get("x_t"))

	mac := hmac.New(sha256.New, []byte("app-key"))
	mac.Write([]byte("GET&/d2l/api/lp/1.9/orgstructure/&1700000000"))
	assert.Equal(t, base64.RawURLEncoding.EncodeToString(mac.Sum(nil)), q.Get("x_c"))
	assert.NotEqual(t, q.Get("x_c"), q.Get("x_d"))
}

func TestIDKeySignerKeepsExistingQuery(t *testing.T) {
	signer := NewIDKeySigner(config.LMSConfig{AppID: "a", AppKey: "b", UserID: "c", UserKey: "d"})

	req, err := http.NewRequest(http.MethodGet, "https://lms.example.edu/d2l/api/lp/1.9/orgstructure/?orgUnitCode=UWOSH_0790", nil)
	require.NoError(t, err)
	require.NoError(t, signer.Sign(req))

	q := req.URL.Query()
	assert.Equal(t, "UWOSH_0790", q.Get("orgUnitCode"))
	assert.NotEmpty(t, q.Get("x_c"))
}
