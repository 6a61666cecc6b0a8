package queue

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lineup/internal/application/queue/usecases"
	"lineup/internal/interfaces/http/middleware"
	"lineup/internal/shared/logger"
	"lineup/internal/shared/utils"
)

type QueueHandler struct {
	issueTicketUC    usecases.IssueTicketExecutor
	callNextUC       usecases.CallNextExecutor
	recallTicketUC   usecases.RecallTicketExecutor
	startServingUC   usecases.StartServingExecutor
	holdTicketUC     usecases.HoldTicketExecutor
	resumeTicketUC   usecases.ResumeTicketExecutor
	completeTicketUC usecases.CompleteTicketExecutor
	cancelTicketUC   usecases.CancelTicketExecutor
	getTicketUC      usecases.GetTicketExecutor
	listWaitingUC    usecases.ListWaitingExecutor
	queueStatusUC    usecases.QueueStatusExecutor
	logger           logger.Interface
}

func NewQueueHandler(
	issueTicketUC usecases.IssueTicketExecutor,
	callNextUC usecases.CallNextExecutor,
	recallTicketUC usecases.RecallTicketExecutor,
	startServingUC usecases.StartServingExecutor,
	holdTicketUC usecases.HoldTicketExecutor,
	resumeTicketUC usecases.ResumeTicketExecutor,
	completeTicketUC usecases.CompleteTicketExecutor,
	cancelTicketUC usecases.CancelTicketExecutor,
	getTicketUC usecases.GetTicketExecutor,
	listWaitingUC usecases.ListWaitingExecutor,
	queueStatusUC usecases.QueueStatusExecutor,
) *QueueHandler {
	return &QueueHandler{
		issueTicketUC:    issueTicketUC,
		callNextUC:       callNextUC,
		recallTicketUC:   recallTicketUC,
		startServingUC:   startServingUC,
		holdTicketUC:     holdTicketUC,
		resumeTicketUC:   resumeTicketUC,
		completeTicketUC: completeTicketUC,
		cancelTicketUC:   cancelTicketUC,
		getTicketUC:      getTicketUC,
		listWaitingUC:    listWaitingUC,
		queueStatusUC:    queueStatusUC,
		logger:           logger.NewLogger(),
	}
}

// IssueTicket handles POST /queue/tickets
func (h *QueueHandler) IssueTicket(c *gin.Context) {
	var req IssueTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for issue ticket", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.issueTicketUC.Execute(c.Request.Context(), req.ToCommand())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result.Ticket, result.Message)
}

// GetTicket handles GET /queue/tickets/:id
func (h *QueueHandler) GetTicket(c *gin.Context) {
	ticketID, err := utils.ParseIDParam(c, "id", "ticket")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getTicketUC.Execute(c.Request.Context(), ticketID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// CancelTicket handles POST /queue/tickets/:id/cancel. Without staff
// authentication the cancellation is recorded as the holder's own.
func (h *QueueHandler) CancelTicket(c *gin.Context) {
	ticketID, err := utils.ParseIDParam(c, "id", "ticket")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req CancelTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.CancelTicketCommand{
		TicketID: ticketID,
		Reason:   req.Reason,
	}
	if staffID, ok := middleware.StaffID(c); ok {
		cmd.ActorID = &staffID
	}

	result, err := h.cancelTicketUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket cancelled", result)
}

// QueueStatus handles GET /queue/counters/:id/status
func (h *QueueHandler) QueueStatus(c *gin.Context) {
	counterID, err := utils.ParseIDParam(c, "id", "counter")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.queueStatusUC.Execute(c.Request.Context(), counterID, c.Query("date"))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListWaiting handles GET /queue/counters/:id/waiting
func (h *QueueHandler) ListWaiting(c *gin.Context) {
	counterID, err := utils.ParseIDParam(c, "id", "counter")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	tickets, err := h.listWaitingUC.Execute(c.Request.Context(), counterID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", tickets)
}

// CallNext handles POST /queue/counters/:id/call-next
func (h *QueueHandler) CallNext(c *gin.Context) {
	counterID, err := utils.ParseIDParam(c, "id", "counter")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	staffID, ok := middleware.StaffID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "staff authentication required")
		return
	}

	result, err := h.callNextUC.Execute(c.Request.Context(), usecases.CallNextCommand{
		CounterID: counterID,
		ActorID:   staffID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, result.Message, result.Ticket)
}

// RecallTicket handles POST /queue/tickets/:id/recall
func (h *QueueHandler) RecallTicket(c *gin.Context) {
	ticketID, staffID, ok := h.ticketAndStaff(c)
	if !ok {
		return
	}

	result, err := h.recallTicketUC.Execute(c.Request.Context(), usecases.RecallTicketCommand{
		TicketID: ticketID,
		ActorID:  staffID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, result.Message, result.Ticket)
}

// StartServing handles POST /queue/tickets/:id/start-serving
func (h *QueueHandler) StartServing(c *gin.Context) {
	ticketID, staffID, ok := h.ticketAndStaff(c)
	if !ok {
		return
	}

	result, err := h.startServingUC.Execute(c.Request.Context(), usecases.StartServingCommand{
		TicketID: ticketID,
		ActorID:  staffID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Serving started", result)
}

// HoldTicket handles POST /queue/tickets/:id/hold
func (h *QueueHandler) HoldTicket(c *gin.Context) {
	ticketID, staffID, ok := h.ticketAndStaff(c)
	if !ok {
		return
	}

	var req HoldTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for hold ticket", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.holdTicketUC.Execute(c.Request.Context(), usecases.HoldTicketCommand{
		TicketID: ticketID,
		ActorID:  staffID,
		Reason:   req.Reason,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket held", result)
}

// ResumeTicket handles POST /queue/tickets/:id/resume
func (h *QueueHandler) ResumeTicket(c *gin.Context) {
	ticketID, staffID, ok := h.ticketAndStaff(c)
	if !ok {
		return
	}

	result, err := h.resumeTicketUC.Execute(c.Request.Context(), usecases.ResumeTicketCommand{
		TicketID: ticketID,
		ActorID:  staffID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket resumed", result)
}

// CompleteTicket handles POST /queue/tickets/:id/done
func (h *QueueHandler) CompleteTicket(c *gin.Context) {
	ticketID, staffID, ok := h.ticketAndStaff(c)
	if !ok {
		return
	}

	result, err := h.completeTicketUC.Execute(c.Request.Context(), usecases.CompleteTicketCommand{
		TicketID: ticketID,
		ActorID:  staffID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket completed", result)
}

func (h *QueueHandler) ticketAndStaff(c *gin.Context) (uint, uint, bool) {
	ticketID, err := utils.ParseIDParam(c, "id", "ticket")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return 0, 0, false
	}

	staffID, ok := middleware.StaffID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "staff authentication required")
		return 0, 0, false
	}

	return ticketID, staffID, true
}
