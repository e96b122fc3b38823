package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler) {
	group := g.Group("/bookings")
	{
		group.GET("", h.List)
		group.GET("/:id", h.Get)
		group.POST("", h.Create)
		group.PATCH("/:id", h.Reschedule)
		group.POST("/:id/approve", h.Approve)
		group.POST("/:id/reject", h.Reject)
		group.POST("/:id/cancel", h.Cancel)
		group.DELETE("/:id", h.Delete)
	}

	// Availability probe lives under the resource it inspects.
	g.GET("/resources/:id/availability", h.CheckAvailability)
}
