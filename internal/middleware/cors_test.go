package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)

	config := CORSConfig{
		AllowedOrigins: []string{
			"https://app.example.com",
			"http://localhost:5173",
		},
	}

	tests := []struct {
		name        string
		method      string
		origin      string
		wantStatus  int
		wantAllowed string
	}{
		{
			name:       "no origin header",
			method:     http.MethodGet,
			origin:     "",
			wantStatus: http.StatusOK,
		},
		{
			name:        "allowed origin",
			method:      http.MethodGet,
			origin:      "https://app.example.com",
			wantStatus:  http.StatusOK,
			wantAllowed: "https://app.example.com",
		},
		{
			name:        "allowed origin different case",
			method:      http.MethodGet,
			origin:      "https://App.Example.com",
			wantStatus:  http.StatusOK,
			wantAllowed: "https://App.Example.com",
		},
		{
			name:       "disallowed origin gets no headers",
			method:     http.MethodGet,
			origin:     "https://evil.example.com",
			wantStatus: http.StatusOK,
		},
		{
			name:        "preflight for allowed origin",
			method:      http.MethodOptions,
			origin:      "http://localhost:5173",
			wantStatus:  http.StatusNoContent,
			wantAllowed: "http://localhost:5173",
		},
		{
			name:       "preflight for disallowed origin",
			method:     http.MethodOptions,
			origin:     "https://evil.example.com",
			wantStatus: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(CORS(config))
			router.GET("/", func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(tt.method, "/", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if got := w.Header().Get("Access-Control-Allow-Origin"); got != tt.wantAllowed {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tt.wantAllowed)
			}
		})
	}
}

func TestIsAllowedOrigin(t *testing.T) {
	allowed := map[string]bool{
		"https://app.example.com": true,
	}

	tests := []struct {
		name   string
		origin string
		want   bool
	}{
		{name: "exact match", origin: "https://app.example.com", want: true},
		{name: "trailing slash", origin: "https://app.example.com/", want: true},
		{name: "mixed case", origin: "HTTPS://APP.EXAMPLE.COM", want: true},
		{name: "different host", origin: "https://other.example.com", want: false},
		{name: "empty origin", origin: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isAllowedOrigin(tt.origin, allowed); got != tt.want {
				t.Errorf("isAllowedOrigin(%q) = %v, want %v", tt.origin, got, tt.want)
			}
		})
	}
}
