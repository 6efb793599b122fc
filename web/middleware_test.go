package web

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func listFrom(router *gin.Engine, ip string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/blogs", nil)
	req.RemoteAddr = ip + ":40000"
	router.ServeHTTP(w, req)
	return w
}

func TestGetLimiter(t *testing.T) {
	rl := NewRateLimiter(rate.Limit(10), 20)

	a := rl.getLimiter("10.0.0.1")
	if a != rl.getLimiter("10.0.0.1") {
		t.Error("Expected the same bucket for the same IP")
	}
	if a == rl.getLimiter("10.0.0.2") {
		t.Error("Expected separate buckets per IP")
	}
	if a.Burst() != 20 {
		t.Errorf("Expected burst 20, got %d", a.Burst())
	}
}

func TestCleanup(t *testing.T) {
	rl := NewRateLimiter(rate.Limit(10), 20)

	for i := 0; i < maxTrackedLimiters; i++ {
		rl.getLimiter(fmt.Sprintf("10.%d.%d.%d", i>>16, (i>>8)&0xff, i&0xff))
	}
	rl.cleanup()
	if n := len(rl.limiters); n != maxTrackedLimiters {
		t.Fatalf("Expected buckets to be kept at the cap, got %d", n)
	}

	rl.getLimiter("192.168.0.1")
	rl.cleanup()
	if n := len(rl.limiters); n != 0 {
		t.Errorf("Expected buckets to be reset past the cap, got %d", n)
	}
}

func TestRouterRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		opts     Options
		requests int
		expected int
	}{
		{"disabled", Options{}, 50, http.StatusOK},
		{"within burst", Options{RequestsPerSecond: 1, Burst: 5}, 5, http.StatusOK},
		{"past burst", Options{RequestsPerSecond: 1, Burst: 5}, 6, http.StatusTooManyRequests},
		{"burst defaults to one", Options{RequestsPerSecond: 1}, 2, http.StatusTooManyRequests},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := Router(NewStore(), tt.opts)

			var w *httptest.ResponseRecorder
			for i := 0; i < tt.requests; i++ {
				w = listFrom(router, "192.168.1.100")
			}
			if w.Code != tt.expected {
				t.Errorf("Expected final status %d, got %d", tt.expected, w.Code)
			}
		})
	}
}

func TestRouterRateLimit_ErrorBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := Router(NewStore(), Options{RequestsPerSecond: 1, Burst: 1})

	listFrom(router, "192.168.1.1")
	w := listFrom(router, "192.168.1.1")

	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("Expected 429, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Rate limit exceeded") {
		t.Errorf("Expected rate limit error, got %s", w.Body.String())
	}
}

func TestRouterRateLimit_PerIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := Router(NewStore(), Options{RequestsPerSecond: 1, Burst: 1})

	if w := listFrom(router, "192.168.1.1"); w.Code != http.StatusOK {
		t.Errorf("Expected first client to pass, got %d", w.Code)
	}
	if w := listFrom(router, "192.168.1.2"); w.Code != http.StatusOK {
		t.Errorf("Expected second client to pass, got %d", w.Code)
	}
}

func TestRouterRateLimit_Recovers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := Router(NewStore(), Options{RequestsPerSecond: 10, Burst: 1})

	listFrom(router, "192.168.1.1")
	if w := listFrom(router, "192.168.1.1"); w.Code != http.StatusTooManyRequests {
		t.Fatalf("Expected 429, got %d", w.Code)
	}

	time.Sleep(150 * time.Millisecond)
	if w := listFrom(router, "192.168.1.1"); w.Code != http.StatusOK {
		t.Errorf("Expected bucket to refill, got %d", w.Code)
	}
}

func TestMaxBytesMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		size     int
		expected int
	}{
		{"small body reaches handler", 512, http.StatusBadRequest},
		{"body at limit reaches handler", 1024, http.StatusBadRequest},
		{"body over limit", 2048, http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(MaxBytesMiddleware(1024))
			router.POST("/api/login", handleLogin(NewStore()))

			w := httptest.NewRecorder()
			req, _ := http.NewRequest("POST", "/api/login", strings.NewReader(strings.Repeat("x", tt.size)))
			router.ServeHTTP(w, req)

			if w.Code != tt.expected {
				t.Errorf("Expected status %d, got %d", tt.expected, w.Code)
			}
		})
	}
}

func TestRouterRejectsLargeBody(t *testing.T) {
	ts := setupTestServer(t)
	s := ts.login(t, "dandan")

	body := `{"title":"` + strings.Repeat("x", maxBodyBytes) + `","author":"a","url":"u"}`
	w := ts.do("POST", "/api/blogs", s.Token, body)

	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("Expected 413, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Request body too large") {
		t.Errorf("Expected body size error, got %s", w.Body.String())
	}
	if n := len(ts.store.List()); n != 0 {
		t.Errorf("Expected nothing stored, got %d posts", n)
	}
}
