package httpserver

import (
	"context"
	"time"

	"moving-progress/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	HealthVersion = "1.0.0"
	ServiceName   = "moving-progress"

	readyTimeout = 2 * time.Second
)

// Pinger is a dependency the readiness probe checks.
type Pinger interface {
	Ping(ctx context.Context) error
}

type healthResp struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Service string `json:"service"`
}

func newHealthResp(status string) healthResp {
	return healthResp{Status: status, Version: HealthVersion, Service: ServiceName}
}

// healthCheck handles health check requests
// @Summary Health Check
// @Description Check if the API is healthy
// @Tags Health
// @Produce json
// @Success 200 {object} healthResp
// @Router /health [get]
func (srv HTTPServer) healthCheck(c *gin.Context) {
	response.OK(c, newHealthResp("healthy"))
}

// readyCheck pings every readiness dependency, currently the mutation journal.
// @Summary Readiness Check
// @Description Check that the mutation journal is reachable
// @Tags Health
// @Produce json
// @Success 200 {object} healthResp
// @Failure 503 {object} response.Resp
// @Router /ready [get]
func (srv HTTPServer) readyCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readyTimeout)
	defer cancel()

	for _, p := range srv.readiness {
		if err := p.Ping(ctx); err != nil {
			srv.l.Warnf(ctx, "httpserver.readyCheck: %v", err)
			response.ServiceUnavailable(c, "not ready")
			return
		}
	}
	response.OK(c, newHealthResp("ready"))
}

// liveCheck handles liveness check requests
// @Summary Liveness Check
// @Tags Health
// @Produce json
// @Success 200 {object} healthResp
// @Router /live [get]
func (srv HTTPServer) liveCheck(c *gin.Context) {
	response.OK(c, newHealthResp("alive"))
}
