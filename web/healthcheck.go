package web

import (
	"net/http"
	"time"

	"github.com/whisperwall/whisperwall/http/resp"
)

// healthStatus is the JSON body the healthcheck endpoint writes.
type healthStatus struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Uptime   string `json:"uptime"`
}

// Healthcheck reports liveness: process uptime and storage reachability.
//
// An unreachable database degrades the status and the response code to 503.
func (h *Handler) Healthcheck(w http.ResponseWriter, r *http.Request) {
	status := healthStatus{
		Status:   "ok",
		Database: "ok",
		Uptime:   time.Since(h.started).Round(time.Second).String(),
	}

	code := http.StatusOK
	if h.pinger != nil {
		if err := h.pinger.Ping(); err != nil {
			h.logger.Error("healthcheck failed pinging database: "+err.Error(), nil)
			status.Status = "degraded"
			status.Database = "unreachable"
			code = http.StatusServiceUnavailable
		}
	}

	h.Json(w, r, resp.Code(code), resp.Data(status))
}
