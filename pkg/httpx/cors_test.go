package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aussiebroadwan/rosterra/pkg/httpx"
	"github.com/stretchr/testify/require"
)

func TestCORS(t *testing.T) {
	reached := false
	final := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name        string
		origins     []string
		method      string
		origin      string
		wantStatus  int
		wantAllow   string
		wantReached bool
	}{
		{"wildcard preflight", []string{"*"}, http.MethodOptions, "http://a.example", http.StatusNoContent, "*", false},
		{"listed origin", []string{"http://a.example"}, http.MethodGet, "http://a.example", http.StatusOK, "http://a.example", true},
		{"unlisted origin", []string{"http://a.example"}, http.MethodGet, "http://b.example", http.StatusOK, "", true},
		{"disabled", nil, http.MethodGet, "http://a.example", http.StatusOK, "", true},
		{"same origin", []string{"*"}, http.MethodGet, "", http.StatusOK, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reached = false
			h := httpx.Chain(final, httpx.CORS(tt.origins))

			req := httptest.NewRequest(tt.method, "/api/roasters", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			if tt.method == http.MethodOptions {
				req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			require.Equal(t, tt.wantAllow, rec.Header().Get("Access-Control-Allow-Origin"))
			require.Equal(t, tt.wantReached, reached)
		})
	}
}
