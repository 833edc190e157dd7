package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestRateLimitExhaustsBurst(t *testing.T) {
	gin.SetMode(gin.TestMode)
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(func() time.Time { return now })

	r := gin.New()
	r.Use(RateLimit(RateLimitRule{Rate: 1, Burst: 2}, limiter))
	r.POST("/api/v1/analyses", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/analyses", nil)
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("request %d expected 200, got %d", i+1, resp.Code)
		}
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyses", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusTooManyRequests {
		t.Fatalf("request 3 expected 429, got %d", resp.Code)
	}
	if resp.Header().Get("Retry-After") == "" {
		t.Fatalf("expected Retry-After header")
	}

	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload["error"] != "rate_limited" {
		t.Fatalf("expected error=rate_limited")
	}
	if _, ok := payload["retryAfterMs"]; !ok {
		t.Fatalf("expected retryAfterMs in response")
	}
}

func TestRateLimitRefillsOverTime(t *testing.T) {
	gin.SetMode(gin.TestMode)
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(func() time.Time { return now })

	rule := RateLimitRule{Rate: 1, Burst: 1}
	if ok, _ := limiter.Allow("1.2.3.4", rule); !ok {
		t.Fatalf("expected first token available")
	}
	if ok, retry := limiter.Allow("1.2.3.4", rule); ok {
		t.Fatalf("expected bucket empty")
	} else if retry <= 0 {
		t.Fatalf("expected positive retry hint, got %v", retry)
	}

	now = now.Add(1100 * time.Millisecond)
	if ok, _ := limiter.Allow("1.2.3.4", rule); !ok {
		t.Fatalf("expected token after refill window")
	}
}

func TestRateLimitZeroRuleDisables(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limiter := NewRateLimiter(nil)

	r := gin.New()
	r.Use(RateLimit(RateLimitRule{}, limiter))
	r.GET("/free", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	for i := 0; i < 20; i++ {
		req := httptest.NewRequest(http.MethodGet, "/free", nil)
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("request %d expected 200, got %d", i+1, resp.Code)
		}
	}
}
