package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	pkgLog "inventory-assistant/pkg/log"
)

func newTestRouter(mw Middleware) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw.RequestID())
	r.POST("/chat", mw.RateLimit(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestRateLimitBurstThenThrottle(t *testing.T) {
	mw := New(pkgLog.NewNopLogger(), RateLimitConfig{RequestsPerMinute: 1, Burst: 2})
	r := newTestRouter(mw)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/chat", nil)
		req.Header.Set("X-Owner-ID", "a@b.com")
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Errorf("burst requests got %v, want 200s", codes[:2])
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Errorf("third request got %d, want 429", codes[2])
	}
}

func TestRateLimitIsolatesOwners(t *testing.T) {
	mw := New(pkgLog.NewNopLogger(), RateLimitConfig{RequestsPerMinute: 1, Burst: 1})
	r := newTestRouter(mw)

	for _, owner := range []string{"a@b.com", "c@d.com"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/chat", nil)
		req.Header.Set("X-Owner-ID", owner)
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Errorf("first request for %s got %d, want 200", owner, w.Code)
		}
	}
}

func TestRequestIDMintedAndEchoed(t *testing.T) {
	mw := New(pkgLog.NewNopLogger(), RateLimitConfig{})
	r := newTestRouter(mw)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/chat", nil))
	if w.Header().Get(RequestIDHeader) == "" {
		t.Error("expected a minted request id")
	}

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/chat", nil)
	req.Header.Set(RequestIDHeader, "fixed-id")
	r.ServeHTTP(w, req)
	if got := w.Header().Get(RequestIDHeader); got != "fixed-id" {
		t.Errorf("request id = %q, want fixed-id", got)
	}
}
