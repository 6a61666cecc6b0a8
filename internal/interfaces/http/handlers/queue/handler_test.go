package queue

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	queuedto "lineup/internal/application/queue/dto"
	"lineup/internal/application/queue/usecases"
	"lineup/internal/interfaces/http/handlers/testutil"
	"lineup/internal/shared/errors"
)

// =====================================================================
// Mock use cases
// =====================================================================

type mockIssueTicketUC struct {
	result *usecases.IssueTicketResult
	err    error
	gotCmd usecases.IssueTicketCommand
}

func (m *mockIssueTicketUC) Execute(_ context.Context, cmd usecases.IssueTicketCommand) (*usecases.IssueTicketResult, error) {
	m.gotCmd = cmd
	return m.result, m.err
}

type mockCallNextUC struct {
	result *usecases.CallNextResult
	err    error
	gotCmd usecases.CallNextCommand
}

func (m *mockCallNextUC) Execute(_ context.Context, cmd usecases.CallNextCommand) (*usecases.CallNextResult, error) {
	m.gotCmd = cmd
	return m.result, m.err
}

type mockRecallTicketUC struct {
	result *usecases.RecallTicketResult
	err    error
}

func (m *mockRecallTicketUC) Execute(_ context.Context, _ usecases.RecallTicketCommand) (*usecases.RecallTicketResult, error) {
	return m.result, m.err
}

type mockStartServingUC struct {
	result *queuedto.TicketDTO
	err    error
}

func (m *mockStartServingUC) Execute(_ context.Context, _ usecases.StartServingCommand) (*queuedto.TicketDTO, error) {
	return m.result, m.err
}

type mockHoldTicketUC struct {
	result *queuedto.TicketDTO
	err    error
	gotCmd usecases.HoldTicketCommand
}

func (m *mockHoldTicketUC) Execute(_ context.Context, cmd usecases.HoldTicketCommand) (*queuedto.TicketDTO, error) {
	m.gotCmd = cmd
	return m.result, m.err
}

type mockResumeTicketUC struct {
	result *queuedto.TicketDTO
	err    error
}

func (m *mockResumeTicketUC) Execute(_ context.Context, _ usecases.ResumeTicketCommand) (*queuedto.TicketDTO, error) {
	return m.result, m.err
}

type mockCompleteTicketUC struct {
	result *queuedto.TicketDTO
	err    error
}

func (m *mockCompleteTicketUC) Execute(_ context.Context, _ usecases.CompleteTicketCommand) (*queuedto.TicketDTO, error) {
	return m.result, m.err
}

type mockCancelTicketUC struct {
	result *queuedto.TicketDTO
	err    error
	gotCmd usecases.CancelTicketCommand
}

func (m *mockCancelTicketUC) Execute(_ context.Context, cmd usecases.CancelTicketCommand) (*queuedto.TicketDTO, error) {
	m.gotCmd = cmd
	return m.result, m.err
}

type mockGetTicketUC struct {
	result *usecases.GetTicketResult
	err    error
}

func (m *mockGetTicketUC) Execute(_ context.Context, _ uint) (*usecases.GetTicketResult, error) {
	return m.result, m.err
}

type mockListWaitingUC struct {
	result []*queuedto.TicketDTO
	err    error
}

func (m *mockListWaitingUC) Execute(_ context.Context, _ uint) ([]*queuedto.TicketDTO, error) {
	return m.result, m.err
}

type mockQueueStatusUC struct {
	result  *usecases.QueueStatusResult
	err     error
	gotDate string
}

func (m *mockQueueStatusUC) Execute(_ context.Context, _ uint, dateFor string) (*usecases.QueueStatusResult, error) {
	m.gotDate = dateFor
	return m.result, m.err
}

// =====================================================================
// Test helper
// =====================================================================

type testDeps struct {
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
}

func newTestQueueHandler(deps testDeps) *QueueHandler {
	return NewQueueHandler(
		deps.issueTicketUC,
		deps.callNextUC,
		deps.recallTicketUC,
		deps.startServingUC,
		deps.holdTicketUC,
		deps.resumeTicketUC,
		deps.completeTicketUC,
		deps.cancelTicketUC,
		deps.getTicketUC,
		deps.listWaitingUC,
		deps.queueStatusUC,
	)
}

func ticketDTO(id uint, status string) *queuedto.TicketDTO {
	holderID := uint(7)
	return &queuedto.TicketDTO{
		ID:          id,
		LocationID:  1,
		CounterID:   2,
		HolderID:    &holderID,
		DateFor:     "2026-08-29",
		Sequence:    1,
		QueueNumber: "A001",
		Status:      status,
		CreatedAt:   time.Now().UTC(),
	}
}

// =====================================================================
// IssueTicket
// =====================================================================

func TestQueueHandler_IssueTicket_Success(t *testing.T) {
	mockUC := &mockIssueTicketUC{
		result: &usecases.IssueTicketResult{
			Ticket:  ticketDTO(1, "waiting"),
			Message: "Ticket issued",
		},
	}
	handler := newTestQueueHandler(testDeps{issueTicketUC: mockUC})

	reqBody := IssueTicketRequest{LocationID: 1, CounterID: 2}
	c, w := testutil.NewTestContext(http.MethodPost, "/queue/tickets", reqBody)

	handler.IssueTicket(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, uint(1), mockUC.gotCmd.LocationID)
	assert.Equal(t, uint(2), mockUC.gotCmd.CounterID)
	assert.Nil(t, mockUC.gotCmd.HolderID)

	var resp testutil.APIResponse
	err := testutil.ParseResponse(w, &resp)
	require.NoError(t, err)
	assert.True(t, resp.Success)
}

func TestQueueHandler_IssueTicket_BindError(t *testing.T) {
	handler := newTestQueueHandler(testDeps{})

	// Missing counter_id
	reqBody := map[string]uint{"location_id": 1}
	c, w := testutil.NewTestContext(http.MethodPost, "/queue/tickets", reqBody)

	handler.IssueTicket(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp testutil.APIResponse
	err := testutil.ParseResponse(w, &resp)
	require.NoError(t, err)
	assert.False(t, resp.Success)
}

func TestQueueHandler_IssueTicket_CapacityExhausted(t *testing.T) {
	mockUC := &mockIssueTicketUC{
		err: errors.NewCapacityError("Counter A", 50),
	}
	handler := newTestQueueHandler(testDeps{issueTicketUC: mockUC})

	reqBody := IssueTicketRequest{LocationID: 1, CounterID: 2}
	c, w := testutil.NewTestContext(http.MethodPost, "/queue/tickets", reqBody)

	handler.IssueTicket(c)

	assert.NotEqual(t, http.StatusCreated, w.Code)

	var resp testutil.APIResponse
	err := testutil.ParseResponse(w, &resp)
	require.NoError(t, err)
	assert.False(t, resp.Success)
}

// =====================================================================
// CallNext
// =====================================================================

func TestQueueHandler_CallNext_Success(t *testing.T) {
	mockUC := &mockCallNextUC{
		result: &usecases.CallNextResult{
			Ticket:      ticketDTO(1, "calling"),
			QueueNumber: "A001",
			Message:     "Ticket called",
		},
	}
	handler := newTestQueueHandler(testDeps{callNextUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodPost, "/queue/counters/2/call-next", nil)
	testutil.SetStaffContext(c, 9)
	testutil.SetURLParam(c, "id", "2")

	handler.CallNext(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(2), mockUC.gotCmd.CounterID)
	assert.Equal(t, uint(9), mockUC.gotCmd.ActorID)
}

func TestQueueHandler_CallNext_EmptyQueue(t *testing.T) {
	mockUC := &mockCallNextUC{
		result: &usecases.CallNextResult{Message: "no tickets waiting"},
	}
	handler := newTestQueueHandler(testDeps{callNextUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodPost, "/queue/counters/2/call-next", nil)
	testutil.SetStaffContext(c, 9)
	testutil.SetURLParam(c, "id", "2")

	handler.CallNext(c)

	// An empty queue is a successful call with no ticket payload.
	assert.Equal(t, http.StatusOK, w.Code)

	var resp testutil.APIResponse
	err := testutil.ParseResponse(w, &resp)
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "no tickets waiting", resp.Message)
}

func TestQueueHandler_CallNext_NotAuthenticated(t *testing.T) {
	handler := newTestQueueHandler(testDeps{})

	c, w := testutil.NewTestContext(http.MethodPost, "/queue/counters/2/call-next", nil)
	testutil.SetURLParam(c, "id", "2")

	handler.CallNext(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestQueueHandler_CallNext_InvalidCounterID(t *testing.T) {
	handler := newTestQueueHandler(testDeps{})

	c, w := testutil.NewTestContext(http.MethodPost, "/queue/counters/abc/call-next", nil)
	testutil.SetStaffContext(c, 9)
	testutil.SetURLParam(c, "id", "abc")

	handler.CallNext(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// =====================================================================
// Lifecycle actions
// =====================================================================

func TestQueueHandler_RecallTicket_Success(t *testing.T) {
	mockUC := &mockRecallTicketUC{
		result: &usecases.RecallTicketResult{
			Ticket:  ticketDTO(1, "calling"),
			Message: "Ticket recalled",
		},
	}
	handler := newTestQueueHandler(testDeps{recallTicketUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodPost, "/queue/tickets/1/recall", nil)
	testutil.SetStaffContext(c, 9)
	testutil.SetURLParam(c, "id", "1")

	handler.RecallTicket(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestQueueHandler_StartServing_WrongState(t *testing.T) {
	mockUC := &mockStartServingUC{
		err: errors.NewInvalidTicketStatusError("start_serving", "waiting", []string{"calling"}),
	}
	handler := newTestQueueHandler(testDeps{startServingUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodPost, "/queue/tickets/1/start-serving", nil)
	testutil.SetStaffContext(c, 9)
	testutil.SetURLParam(c, "id", "1")

	handler.StartServing(c)

	assert.NotEqual(t, http.StatusOK, w.Code)

	var resp testutil.APIResponse
	err := testutil.ParseResponse(w, &resp)
	require.NoError(t, err)
	assert.False(t, resp.Success)
}

func TestQueueHandler_HoldTicket_Success(t *testing.T) {
	mockUC := &mockHoldTicketUC{result: ticketDTO(1, "hold")}
	handler := newTestQueueHandler(testDeps{holdTicketUC: mockUC})

	reqBody := HoldTicketRequest{Reason: "holder stepped away"}
	c, w := testutil.NewTestContext(http.MethodPost, "/queue/tickets/1/hold", reqBody)
	testutil.SetStaffContext(c, 9)
	testutil.SetURLParam(c, "id", "1")

	handler.HoldTicket(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "holder stepped away", mockUC.gotCmd.Reason)
	assert.Equal(t, uint(9), mockUC.gotCmd.ActorID)
}

func TestQueueHandler_HoldTicket_MissingReason(t *testing.T) {
	handler := newTestQueueHandler(testDeps{})

	c, w := testutil.NewTestContext(http.MethodPost, "/queue/tickets/1/hold", map[string]string{})
	testutil.SetStaffContext(c, 9)
	testutil.SetURLParam(c, "id", "1")

	handler.HoldTicket(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestQueueHandler_ResumeTicket_Success(t *testing.T) {
	mockUC := &mockResumeTicketUC{result: ticketDTO(1, "waiting")}
	handler := newTestQueueHandler(testDeps{resumeTicketUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodPost, "/queue/tickets/1/resume", nil)
	testutil.SetStaffContext(c, 9)
	testutil.SetURLParam(c, "id", "1")

	handler.ResumeTicket(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestQueueHandler_CompleteTicket_Success(t *testing.T) {
	mockUC := &mockCompleteTicketUC{result: ticketDTO(1, "done")}
	handler := newTestQueueHandler(testDeps{completeTicketUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodPost, "/queue/tickets/1/done", nil)
	testutil.SetStaffContext(c, 9)
	testutil.SetURLParam(c, "id", "1")

	handler.CompleteTicket(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

// =====================================================================
// CancelTicket
// =====================================================================

func TestQueueHandler_CancelTicket_HolderSelf(t *testing.T) {
	mockUC := &mockCancelTicketUC{result: ticketDTO(1, "cancelled")}
	handler := newTestQueueHandler(testDeps{cancelTicketUC: mockUC})

	// No staff context: the actor stays nil.
	c, w := testutil.NewTestContext(http.MethodPost, "/queue/tickets/1/cancel", nil)
	testutil.SetURLParam(c, "id", "1")

	handler.CancelTicket(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, mockUC.gotCmd.ActorID)
}

func TestQueueHandler_CancelTicket_ByStaffWithReason(t *testing.T) {
	mockUC := &mockCancelTicketUC{result: ticketDTO(1, "cancelled")}
	handler := newTestQueueHandler(testDeps{cancelTicketUC: mockUC})

	reqBody := CancelTicketRequest{Reason: "duplicate request"}
	c, w := testutil.NewTestContext(http.MethodPost, "/queue/tickets/1/cancel", reqBody)
	testutil.SetStaffContext(c, 9)
	testutil.SetURLParam(c, "id", "1")

	handler.CancelTicket(c)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, mockUC.gotCmd.ActorID)
	assert.Equal(t, uint(9), *mockUC.gotCmd.ActorID)
	assert.Equal(t, "duplicate request", mockUC.gotCmd.Reason)
}

func TestQueueHandler_CancelTicket_AlreadyTerminal(t *testing.T) {
	mockUC := &mockCancelTicketUC{
		err: errors.NewBusinessLogicError("ticket is already finished"),
	}
	handler := newTestQueueHandler(testDeps{cancelTicketUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodPost, "/queue/tickets/1/cancel", nil)
	testutil.SetURLParam(c, "id", "1")

	handler.CancelTicket(c)

	assert.NotEqual(t, http.StatusOK, w.Code)
}

// =====================================================================
// Queries
// =====================================================================

func TestQueueHandler_GetTicket_Success(t *testing.T) {
	mockUC := &mockGetTicketUC{
		result: &usecases.GetTicketResult{
			Ticket: ticketDTO(1, "waiting"),
			Events: []*queuedto.TicketEventDTO{},
		},
	}
	handler := newTestQueueHandler(testDeps{getTicketUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/queue/tickets/1", nil)
	testutil.SetURLParam(c, "id", "1")

	handler.GetTicket(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestQueueHandler_GetTicket_NotFound(t *testing.T) {
	mockUC := &mockGetTicketUC{err: errors.NewNotFoundError("ticket not found")}
	handler := newTestQueueHandler(testDeps{getTicketUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/queue/tickets/99", nil)
	testutil.SetURLParam(c, "id", "99")

	handler.GetTicket(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestQueueHandler_QueueStatus_PassesDateQuery(t *testing.T) {
	mockUC := &mockQueueStatusUC{
		result: &usecases.QueueStatusResult{Waiting: 3, Open: true},
	}
	handler := newTestQueueHandler(testDeps{queueStatusUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/queue/counters/2/status", nil)
	testutil.SetURLParam(c, "id", "2")
	testutil.SetQueryParams(c, map[string]string{"date": "2026-08-29"})

	handler.QueueStatus(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2026-08-29", mockUC.gotDate)
}

func TestQueueHandler_ListWaiting_Success(t *testing.T) {
	mockUC := &mockListWaitingUC{
		result: []*queuedto.TicketDTO{ticketDTO(1, "waiting"), ticketDTO(2, "waiting")},
	}
	handler := newTestQueueHandler(testDeps{listWaitingUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/queue/counters/2/waiting", nil)
	testutil.SetStaffContext(c, 9)
	testutil.SetURLParam(c, "id", "2")

	handler.ListWaiting(c)

	assert.Equal(t, http.StatusOK, w.Code)
}
