package httpserver

import (
	"context"

	dashboardHTTP "moving-progress/internal/dashboard/delivery/http"
	"moving-progress/internal/middleware"

	"github.com/gin-gonic/gin"
)

// setupDashboardDomain registers /api/v1/dashboard.
// The usecase is built in main since the CLI shares the same wiring.
func (srv HTTPServer) setupDashboardDomain(ctx context.Context, api *gin.RouterGroup, mw middleware.Middleware) error {
	h := dashboardHTTP.New(srv.l, srv.dashboardUC)
	dashboardHTTP.RegisterRoutes(api.Group("/dashboard"), h, mw)

	srv.l.Infof(ctx, "Dashboard domain registered")
	return nil
}
