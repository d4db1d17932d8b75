package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlashRoundTrip(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/set", func(c *gin.Context) {
		SetFlash(c, FlashSuccess, "Patient added successfully.")
		c.Status(http.StatusOK)
	})
	r.GET("/pop", func(c *gin.Context) {
		c.JSON(http.StatusOK, NewSuccessResponse(nil).WithFlash(PopFlash(c)))
	})

	// Set the flash.
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/set", nil))
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	// Pop it on the next render.
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/pop", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	r.ServeHTTP(w, req)

	assert.Contains(t, w.Body.String(), "Patient added successfully.")
	assert.Contains(t, w.Body.String(), FlashSuccess)

	// The pop response must clear the cookie so the message shows once.
	var cleared bool
	for _, c := range w.Result().Cookies() {
		if c.Name == flashCookie && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared)
}

func TestPopFlashEmpty(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	assert.Nil(t, PopFlash(c))
}
