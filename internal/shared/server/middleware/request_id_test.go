package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newRequestIDRouter(seen *string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID())
	router.GET("/api/v1/healthz", func(c *gin.Context) {
		*seen = RequestIDFromContext(c)
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router
}

func TestRequestIDGeneratedWhenAbsent(t *testing.T) {
	var seen string
	router := newRequestIDRouter(&seen)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/healthz", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if len(seen) != 32 {
		t.Fatalf("expected 32-char hex id, got %q", seen)
	}
	if echoed := resp.Header().Get("X-Request-Id"); echoed != seen {
		t.Fatalf("response header %q does not match context id %q", echoed, seen)
	}
}

func TestRequestIDHonorsInboundHeader(t *testing.T) {
	var seen string
	router := newRequestIDRouter(&seen)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/healthz", nil)
	req.Header.Set("X-Request-Id", "client-supplied-id")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if seen != "client-supplied-id" {
		t.Fatalf("expected inbound id to be kept, got %q", seen)
	}
	if echoed := resp.Header().Get("X-Request-Id"); echoed != "client-supplied-id" {
		t.Fatalf("unexpected echoed id %q", echoed)
	}
}

func TestRequestIDReplacesOversizedHeader(t *testing.T) {
	var seen string
	router := newRequestIDRouter(&seen)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/healthz", nil)
	req.Header.Set("X-Request-Id", strings.Repeat("x", maxInboundRequestID+1))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if strings.Contains(seen, "x") {
		t.Fatalf("oversized inbound id should be replaced, got %q", seen)
	}
	if len(seen) != 32 {
		t.Fatalf("expected minted hex id, got %q", seen)
	}
}
