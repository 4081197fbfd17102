// Package testutil builds gin contexts for handler tests without a router.
package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"talentika/internal/shared/constants"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// NewTestContext returns a context for method and path. A []byte body is sent verbatim so
// malformed JSON can be exercised; any other non-nil body is JSON encoded.
func NewTestContext(method, path string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
	case []byte:
		reader = bytes.NewReader(b)
	default:
		encoded, _ := json.Marshal(b)
		reader = bytes.NewReader(encoded)
	}

	var req *http.Request
	if reader == nil {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, reader)
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	return c, w
}

// NewWebhookContext builds a Xendit invoice callback carrying token in X-CALLBACK-TOKEN.
func NewWebhookContext(body []byte, token string) (*gin.Context, *httptest.ResponseRecorder) {
	c, w := NewTestContext(http.MethodPost, "/api/payments/webhook", body)
	if token != "" {
		c.Request.Header.Set(constants.HeaderCallbackToken, token)
	}
	return c, w
}

// SetAuthContext stands in for the auth middleware.
func SetAuthContext(c *gin.Context, userID, role string) {
	c.Set(constants.ContextKeyUserID, userID)
	c.Set(constants.ContextKeyUserRole, role)
}

func SetURLParam(c *gin.Context, key, value string) {
	c.Params = append(c.Params, gin.Param{Key: key, Value: value})
}

func SetQueryParams(c *gin.Context, params map[string]string) {
	q := url.Values{}
	for k, v := range params {
		q.Set(k, v)
	}
	c.Request.URL.RawQuery = q.Encode()
}

func ParseResponse(w *httptest.ResponseRecorder, target interface{}) error {
	return json.Unmarshal(w.Body.Bytes(), target)
}

// DecodeData unwraps the standard envelope and decodes its data field into target.
func DecodeData(t *testing.T, w *httptest.ResponseRecorder, target interface{}) APIResponse {
	t.Helper()
	var resp APIResponse
	require.NoError(t, ParseResponse(w, &resp))
	if target != nil {
		require.NotEmpty(t, resp.Data, "response has no data: %s", w.Body.String())
		require.NoError(t, json.Unmarshal(resp.Data, target))
	}
	return resp
}

type APIResponse struct {
	Success   bool            `json:"success"`
	Data      json.RawMessage `json:"data,omitempty"`
	Error     *ErrorInfo      `json:"error,omitempty"`
	Message   string          `json:"message,omitempty"`
	RequestID string          `json:"request_id,omitempty"`
}

type ErrorInfo struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}
