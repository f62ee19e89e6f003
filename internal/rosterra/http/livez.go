package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/rosterra/pkg/httpx"
	"github.com/aussiebroadwan/rosterra/pkg/rostersdk"
)

// LivezHandler godoc
//
//	@Summary		Health Check Endpoint
//	@Description	Liveness check, always 200 while the process runs. Also served as /api/health.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	rostersdk.HealthResponse	"status, uptime, version"
//	@Router			/health [get].
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, rostersdk.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).Round(time.Second).String(),
			Version: version,
		})
	}
}
