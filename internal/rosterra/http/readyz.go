package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/rosterra/internal/rosterra/store"
	"github.com/aussiebroadwan/rosterra/pkg/httpx"
	"github.com/aussiebroadwan/rosterra/pkg/jwtx"
	"github.com/aussiebroadwan/rosterra/pkg/rostersdk"
)

// ReadyzHandler reports 503 when the database is unreachable or no token
// verifier is configured.
func ReadyzHandler(startTime time.Time, version string, st store.Store, verifier jwtx.Verifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := map[string]string{
			"database": "ok",
			"signer":   "ok",
		}
		overallStatus := "ok"
		statusCode := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			checks["database"] = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		if verifier == nil {
			checks["signer"] = "error: no verifier configured"
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, statusCode, rostersdk.HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).Round(time.Second).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
