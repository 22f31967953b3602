package http

import (
	"moving-progress/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes maps HTTP verbs and paths to handler methods.
// Mutating routes go through the rate limiter.
func RegisterRoutes(rg *gin.RouterGroup, h *handler, mw middleware.Middleware) {
	rg.GET("", h.Snapshot)
	rg.POST("/load", mw.RateLimit(), h.Load)
	rg.GET("/tasks", h.ListTasks)
	rg.GET("/mutations", h.ListMutations)
	rg.PATCH("/move-details", mw.RateLimit(), h.UpdateMoveDetails)

	sections := rg.Group("/sections/:section_id")
	{
		sections.GET("/progress", h.SectionProgress)
		sections.POST("/custom-tasks", mw.RateLimit(), h.CreateCustomTask)
		sections.PATCH("/custom-tasks/:task_id/toggle", mw.RateLimit(), h.ToggleCustomTask)
		sections.DELETE("/custom-tasks/:task_id", mw.RateLimit(), h.DeleteCustomTask)
	}

	priority := rg.Group("/priority")
	{
		priority.GET("", h.ListPriority)
		priority.POST("", mw.RateLimit(), h.AddToPriority)
		priority.DELETE("/:task_id", mw.RateLimit(), h.RemoveFromPriority)
		priority.POST("/:task_id/complete", mw.RateLimit(), h.CompletePriorityTask)
	}
}
