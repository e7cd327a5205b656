package http

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/shelfshare/shelfshare/internal/identity"
)

// asActor returns a middleware that injects a resolved actor, standing in for
// the identity middleware in handler tests.
func asActor(userID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(identity.ContextKeyUserID, userID)
		c.Next()
	}
}

func jsonBody(t *testing.T, payload any) *bytes.Buffer {
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	return bytes.NewBuffer(data)
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}
