package routes

import (
	"github.com/gin-gonic/gin"

	queuehandlers "lineup/internal/interfaces/http/handlers/queue"
	"lineup/internal/interfaces/http/middleware"
)

type QueueRouteConfig struct {
	QueueHandler     *queuehandlers.QueueHandler
	AuthMiddleware   *middleware.AuthMiddleware
	IssueRateLimiter gin.HandlerFunc
}

func SetupQueueRoutes(engine *gin.Engine, config *QueueRouteConfig) {
	q := engine.Group("/queue")

	// Holder-facing endpoints: no authentication, issuance is throttled.
	// Cancel accepts an optional staff token so the audit trail records who
	// voided the ticket.
	tickets := q.Group("/tickets")
	{
		if config.IssueRateLimiter != nil {
			tickets.POST("", config.IssueRateLimiter, config.QueueHandler.IssueTicket)
		} else {
			tickets.POST("", config.QueueHandler.IssueTicket)
		}
		tickets.GET("/:id", config.QueueHandler.GetTicket)
		tickets.POST("/:id/cancel",
			config.AuthMiddleware.OptionalStaff(),
			config.QueueHandler.CancelTicket)
	}

	counters := q.Group("/counters")
	{
		counters.GET("/:id/status", config.QueueHandler.QueueStatus)
	}

	// Staff-facing endpoints behind JWT auth.
	staff := q.Group("")
	staff.Use(config.AuthMiddleware.RequireStaff())
	{
		staff.POST("/counters/:id/call-next", config.QueueHandler.CallNext)
		staff.GET("/counters/:id/waiting", config.QueueHandler.ListWaiting)
		staff.POST("/tickets/:id/recall", config.QueueHandler.RecallTicket)
		staff.POST("/tickets/:id/start-serving", config.QueueHandler.StartServing)
		staff.POST("/tickets/:id/hold", config.QueueHandler.HoldTicket)
		staff.POST("/tickets/:id/resume", config.QueueHandler.ResumeTicket)
		staff.POST("/tickets/:id/done", config.QueueHandler.CompleteTicket)
	}
}
