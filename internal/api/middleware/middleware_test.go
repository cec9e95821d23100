package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(mw...)
	r.POST("/echo", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/echo", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/panic", func(c *gin.Context) { panic("kaboom") })
	r.GET("/slow", func(c *gin.Context) {
		<-c.Request.Context().Done()
	})
	return r
}

func serve(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimit(t *testing.T) {
	limiter := NewRateLimiter(2, time.Minute)
	defer limiter.Stop()
	r := newEngine(RateLimit(limiter, time.Minute))

	for i := 0; i < 2; i++ {
		if w := serve(r, http.MethodGet, "/echo", ""); w.Code != http.StatusOK {
			t.Fatalf("request %d status = %d", i, w.Code)
		}
	}

	w := serve(r, http.MethodGet, "/echo", "")
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", w.Code)
	}
	if w.Header().Get("Retry-After") != "60" {
		t.Errorf("Retry-After = %q", w.Header().Get("Retry-After"))
	}
}

func TestRateLimiterCleanup(t *testing.T) {
	limiter := NewRateLimiter(1, time.Second)
	limiter.Allow("10.0.0.1")

	limiter.cleanup(time.Now().Add(2 * staleLimiterAge))
	if len(limiter.limiters) != 0 {
		t.Errorf("stale limiter not removed")
	}
}

func TestDeduplication(t *testing.T) {
	d := NewDeduplicator(time.Minute)
	defer d.Stop()
	r := newEngine(Deduplication(d))

	if w := serve(r, http.MethodPost, "/echo", `{"a":1}`); w.Code != http.StatusOK {
		t.Fatalf("first status = %d", w.Code)
	}
	if w := serve(r, http.MethodPost, "/echo", `{"a":1}`); w.Code != http.StatusTooManyRequests {
		t.Errorf("duplicate status = %d, want 429", w.Code)
	}
	if w := serve(r, http.MethodPost, "/echo", `{"a":2}`); w.Code != http.StatusOK {
		t.Errorf("different body status = %d", w.Code)
	}
	if w := serve(r, http.MethodGet, "/echo", ""); w.Code != http.StatusOK {
		t.Errorf("GET should bypass dedup, status = %d", w.Code)
	}
}

func TestDeduplicationWindowExpires(t *testing.T) {
	d := NewDeduplicator(time.Second)
	current := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	d.now = func() time.Time { return current }

	if d.seen("fp") {
		t.Fatal("first request reported as duplicate")
	}
	if !d.seen("fp") {
		t.Fatal("second request within window should be duplicate")
	}

	current = current.Add(2 * time.Second)
	if d.seen("fp") {
		t.Error("request after window should pass")
	}

	current = current.Add(time.Hour)
	d.cleanup()
	if len(d.requests) != 0 {
		t.Error("cleanup should drop old fingerprints")
	}
}

func TestBodySizeLimit(t *testing.T) {
	r := newEngine(BodySizeLimit(8))

	w := serve(r, http.MethodPost, "/echo", strings.Repeat("x", 64))
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", w.Code)
	}
	if w := serve(r, http.MethodPost, "/echo", "tiny"); w.Code != http.StatusOK {
		t.Errorf("small body status = %d", w.Code)
	}
}

func TestRecovery(t *testing.T) {
	r := newEngine(Recovery())

	w := serve(r, http.MethodGet, "/panic", "")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if !strings.Contains(w.Body.String(), "internal_error") {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

func TestTimeout(t *testing.T) {
	r := newEngine(Timeout(20 * time.Millisecond))

	w := serve(r, http.MethodGet, "/slow", "")
	if w.Code != http.StatusGatewayTimeout {
		t.Errorf("status = %d, want 504", w.Code)
	}
}

func TestLoggerRecordsStatus(t *testing.T) {
	r := newEngine(Logger())

	if w := serve(r, http.MethodGet, "/echo", ""); w.Code != http.StatusOK {
		t.Errorf("status = %d", w.Code)
	}
	if w := serve(r, http.MethodGet, "/missing", ""); w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}
