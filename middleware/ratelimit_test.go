package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestDuplicateGuard(t *testing.T) {
	SetDuplicateTTL(50 * time.Millisecond)
	key := "203.0.113.7"
	text := "Tomato pest control?"

	if ok := DuplicateGuard(key, text); !ok {
		t.Fatalf("expected first call to pass duplicate guard")
	}
	if ok := DuplicateGuard(key, text); ok {
		t.Fatalf("expected immediate duplicate to be blocked")
	}
	if ok := DuplicateGuard(key, text+"!"); !ok {
		t.Fatalf("expected different text to pass within TTL")
	}
	time.Sleep(70 * time.Millisecond)
	if ok := DuplicateGuard(key, text); !ok {
		t.Fatalf("expected same text to pass after TTL")
	}
}

func TestForgetDuplicateAllowsResend(t *testing.T) {
	SetDuplicateTTL(time.Minute)
	defer SetDuplicateTTL(45 * time.Second)
	key := "203.0.113.8"
	text := "Identify this plant disease"

	if ok := DuplicateGuard(key, text); !ok {
		t.Fatalf("expected first call to pass duplicate guard")
	}
	if ok := DuplicateGuard(key, text); ok {
		t.Fatalf("expected duplicate to be blocked before forget")
	}
	ForgetDuplicate(key)
	if ok := DuplicateGuard(key, text); !ok {
		t.Fatalf("expected same text to pass after the entry was forgotten")
	}
}

func TestRateLimitBucket(t *testing.T) {
	gin.SetMode(gin.TestMode)
	SetRateLimitConfig(time.Minute, 3, 5)
	defer SetRateLimitConfig(10*time.Second, 5, 2)

	r := gin.New()
	r.POST("/messages", RateLimit(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	do := func() int {
		req := httptest.NewRequest(http.MethodPost, "/messages", nil)
		req.RemoteAddr = "198.51.100.9:40000"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	for i := 0; i < 3; i++ {
		if code := do(); code != http.StatusOK {
			t.Fatalf("request %d: expected 200 within capacity, got %d", i+1, code)
		}
	}
	if code := do(); code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 once the bucket is drained, got %d", code)
	}
}
