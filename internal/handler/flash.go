package handler

import (
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

// Flash severity levels, matching the classes the page templates style.
const (
	FlashSuccess = "success"
	FlashInfo    = "info"
	FlashWarning = "warning"
	FlashDanger  = "danger"
)

const flashCookie = "clinic_flash"

// Flash is a one-shot severity-tagged message shown on the next rendered
// page after a mutating action.
type Flash struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// SetFlash queues a message for the next page render.
func SetFlash(c *gin.Context, level, message string) {
	value := url.QueryEscape(level + "|" + message)
	c.SetCookie(flashCookie, value, 300, "/", "", false, true)
}

// PopFlash returns the pending message, clearing it so it renders once.
func PopFlash(c *gin.Context) *Flash {
	raw, err := c.Cookie(flashCookie)
	if err != nil {
		return nil
	}
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)

	decoded, err := url.QueryUnescape(raw)
	if err != nil {
		return nil
	}
	level, message, found := strings.Cut(decoded, "|")
	if !found || message == "" {
		return nil
	}
	return &Flash{Level: level, Message: message}
}
