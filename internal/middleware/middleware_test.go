package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"opus-gate/internal/types"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(mw ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(mw...)
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return router
}

func TestRequestID_Generated(t *testing.T) {
	t.Parallel()

	router := newRouter(RequestID())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/ping", nil))

	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRequestID_PreservesInbound(t *testing.T) {
	t.Parallel()

	router := gin.New()
	router.Use(RequestID())
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestID(c))
	})

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("X-Request-ID", "req-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))
	assert.Equal(t, "req-123", w.Body.String())
}

func TestAuth_OpenWhenNoKeyConfigured(t *testing.T) {
	t.Parallel()

	router := newRouter(Auth(types.AuthConfig{}))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/ping", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuth_KeyConfigured(t *testing.T) {
	t.Parallel()

	router := newRouter(Auth(types.AuthConfig{Key: "secret"}))

	tests := []struct {
		name       string
		prepare    func(req *http.Request)
		wantStatus int
	}{
		{
			name:       "missing key",
			prepare:    func(req *http.Request) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "bearer token",
			prepare: func(req *http.Request) {
				req.Header.Set("Authorization", "Bearer secret")
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "api key header",
			prepare: func(req *http.Request) {
				req.Header.Set("X-Api-Key", "secret")
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "wrong key",
			prepare: func(req *http.Request) {
				req.Header.Set("Authorization", "Bearer wrong")
			},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest("GET", "/ping", nil)
			tt.prepare(req)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestAuth_QueryKeyIsStripped(t *testing.T) {
	t.Parallel()

	router := gin.New()
	router.Use(Auth(types.AuthConfig{Key: "secret"}))
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, c.Request.URL.RawQuery)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/ping?key=secret&foo=bar", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "foo=bar", w.Body.String())
}

func TestAuth_HealthBypassesAuth(t *testing.T) {
	t.Parallel()

	router := newRouter(Auth(types.AuthConfig{Key: "secret"}))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCORS_Preflight(t *testing.T) {
	t.Parallel()

	router := newRouter(CORS(types.CORSConfig{
		Enabled:        true,
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	req := httptest.NewRequest("OPTIONS", "/ping", nil)
	req.Header.Set("Origin", "https://example.com")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "DELETE")
}

func TestCORS_SpecificOrigin(t *testing.T) {
	t.Parallel()

	router := newRouter(CORS(types.CORSConfig{
		Enabled:        true,
		AllowedOrigins: []string{"https://allowed.example"},
		AllowedMethods: []string{"GET"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("Origin", "https://allowed.example")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "https://allowed.example", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "Origin", w.Header().Get("Vary"))

	req = httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("Origin", "https://denied.example")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimiter_RejectsWhenSaturated(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	started := make(chan struct{})

	router := gin.New()
	router.Use(RateLimiter(types.PerformanceConfig{MaxConcurrentRequests: 1}))
	router.GET("/slow", func(c *gin.Context) {
		close(started)
		<-release
		c.String(http.StatusOK, "done")
	})

	go func() {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/slow", nil))
	}()
	<-started

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/slow", nil))
	close(release)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, gjson.GetBytes(w.Body.Bytes(), "message").String(), "Too many concurrent requests")
}

func TestRequestBodySizeLimit(t *testing.T) {
	t.Parallel()

	router := gin.New()
	router.Use(RequestBodySizeLimit(16))
	router.POST("/echo", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("POST", "/echo", strings.NewReader("small")))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("POST", "/echo", strings.NewReader(strings.Repeat("x", 64))))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestSecurityHeaders(t *testing.T) {
	t.Parallel()

	router := newRouter(SecurityHeaders())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/ping", nil))

	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "SAMEORIGIN", w.Header().Get("X-Frame-Options"))
}
