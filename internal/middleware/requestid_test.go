package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requestIDFor(inbound string) string {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if inbound != "" {
		req.Header.Set(HeaderXRequestID, inbound)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Header().Get(HeaderXRequestID)
}

func TestRequestIDMintedWhenAbsent(t *testing.T) {
	rid := requestIDFor("")
	_, err := uuid.Parse(rid)
	require.NoError(t, err)
}

func TestRequestIDHonorsWellFormedID(t *testing.T) {
	inbound := uuid.New().String()
	assert.Equal(t, inbound, requestIDFor(inbound))
}

func TestRequestIDReplacesMalformedID(t *testing.T) {
	rid := requestIDFor("not-a-uuid\r\ninjected: header")
	_, err := uuid.Parse(rid)
	require.NoError(t, err)
}
