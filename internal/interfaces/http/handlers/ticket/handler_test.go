package ticket

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ticketdto "github.com/orris-inc/supportdesk/internal/application/ticket/dto"
	"github.com/orris-inc/supportdesk/internal/application/ticket/usecases"
	"github.com/orris-inc/supportdesk/internal/domain/ticket"
	"github.com/orris-inc/supportdesk/internal/interfaces/http/handlers/testutil"
	apperrors "github.com/orris-inc/supportdesk/internal/shared/errors"
)

// =====================================================================
// Mock use cases
// =====================================================================

type stubStoreOpener struct {
	opened int
}

func (s *stubStoreOpener) Open(_ context.Context) ticket.Store {
	s.opened++
	return nil
}

type mockCreateTicketUC struct {
	result *ticketdto.TicketDTO
	err    error
	cmd    *usecases.CreateTicketCommand
}

func (m *mockCreateTicketUC) Execute(_ context.Context, _ ticket.Store, cmd usecases.CreateTicketCommand) (*ticketdto.TicketDTO, error) {
	m.cmd = &cmd
	return m.result, m.err
}

type mockListTicketsUC struct {
	result []*ticketdto.TicketDTO
	err    error
}

func (m *mockListTicketsUC) Execute(_ context.Context, _ ticket.Store) ([]*ticketdto.TicketDTO, error) {
	return m.result, m.err
}

type mockGetTicketUC struct {
	result *ticketdto.TicketDTO
	err    error
	query  *usecases.GetTicketQuery
}

func (m *mockGetTicketUC) Execute(_ context.Context, _ ticket.Store, query usecases.GetTicketQuery) (*ticketdto.TicketDTO, error) {
	m.query = &query
	return m.result, m.err
}

type mockChangeStatusUC struct {
	result *usecases.ChangeStatusResult
	err    error
	cmd    *usecases.ChangeStatusCommand
}

func (m *mockChangeStatusUC) Execute(_ context.Context, _ ticket.Store, cmd usecases.ChangeStatusCommand) (*usecases.ChangeStatusResult, error) {
	m.cmd = &cmd
	return m.result, m.err
}

type mockAddCommentUC struct {
	result *usecases.AddCommentResult
	err    error
	cmd    *usecases.AddCommentCommand
}

func (m *mockAddCommentUC) Execute(_ context.Context, _ ticket.Store, cmd usecases.AddCommentCommand) (*usecases.AddCommentResult, error) {
	m.cmd = &cmd
	return m.result, m.err
}

type mockDeleteTicketUC struct {
	err error
	cmd *usecases.DeleteTicketCommand
}

func (m *mockDeleteTicketUC) Execute(_ context.Context, _ ticket.Store, cmd usecases.DeleteTicketCommand) error {
	m.cmd = &cmd
	return m.err
}

// =====================================================================
// Test helper
// =====================================================================

type testDeps struct {
	stores         *stubStoreOpener
	createTicketUC usecases.CreateTicketExecutor
	listTicketsUC  usecases.ListTicketsExecutor
	getTicketUC    usecases.GetTicketExecutor
	changeStatusUC usecases.ChangeStatusExecutor
	addCommentUC   usecases.AddCommentExecutor
	deleteTicketUC usecases.DeleteTicketExecutor
}

func newTestTicketHandler(deps testDeps) *TicketHandler {
	if deps.stores == nil {
		deps.stores = &stubStoreOpener{}
	}
	return NewTicketHandler(
		deps.stores,
		deps.createTicketUC,
		deps.listTicketsUC,
		deps.getTicketUC,
		deps.changeStatusUC,
		deps.addCommentUC,
		deps.deleteTicketUC,
		testutil.NewMockLogger(),
	)
}

func sampleTicketDTO() *ticketdto.TicketDTO {
	return &ticketdto.TicketDTO{
		ID:          1,
		Title:       "Login broken",
		Category:    "bug",
		Description: "Cannot log in",
		Status:      "OPEN",
		Comments:    []string{},
	}
}

// =====================================================================
// TestTicketHandler_CreateTicket
// =====================================================================

func TestTicketHandler_CreateTicket_Success(t *testing.T) {
	stores := &stubStoreOpener{}
	mockUC := &mockCreateTicketUC{result: sampleTicketDTO()}
	handler := newTestTicketHandler(testDeps{stores: stores, createTicketUC: mockUC})

	reqBody := CreateTicketRequest{
		Title:       "Login broken",
		Category:    "bug",
		Description: "Cannot log in",
	}
	c, w := testutil.NewTestContext(http.MethodPost, "/tickets", reqBody)

	handler.CreateTicket(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t,
		`{"id":1,"title":"Login broken","category":"bug","description":"Cannot log in","status":"OPEN","comments":[]}`,
		w.Body.String())
	require.NotNil(t, mockUC.cmd)
	assert.Equal(t, "Login broken", mockUC.cmd.Title)
	assert.Equal(t, "bug", mockUC.cmd.Category)
	assert.Equal(t, "Cannot log in", mockUC.cmd.Description)
	assert.Equal(t, 1, stores.opened)
}

func TestTicketHandler_CreateTicket_MissingFields(t *testing.T) {
	tests := []struct {
		name string
		body map[string]string
	}{
		{name: "only title", body: map[string]string{"title": "only title"}},
		{name: "missing description", body: map[string]string{"title": "t", "category": "c"}},
		{name: "empty object", body: map[string]string{}},
		{name: "empty category", body: map[string]string{"title": "t", "category": "", "description": "d"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockCreateTicketUC{}
			handler := newTestTicketHandler(testDeps{createTicketUC: mockUC})

			c, w := testutil.NewTestContext(http.MethodPost, "/tickets", tt.body)
			handler.CreateTicket(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			var resp testutil.ErrorBody
			require.NoError(t, testutil.ParseResponse(w, &resp))
			assert.Equal(t, usecases.MsgMissingTicketFields, resp.Error)
			assert.Nil(t, mockUC.cmd, "use case must not run")
		})
	}
}

func TestTicketHandler_CreateTicket_MalformedBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: "title=x"},
		{name: "empty body", body: ""},
		{name: "wrong type", body: `{"title": 5, "category": "bug", "description": "d"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockCreateTicketUC{}
			handler := newTestTicketHandler(testDeps{createTicketUC: mockUC})

			c, w := testutil.NewRawTestContext(http.MethodPost, "/tickets", tt.body)
			handler.CreateTicket(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			var resp testutil.ErrorBody
			require.NoError(t, testutil.ParseResponse(w, &resp))
			assert.Equal(t, msgInvalidBody, resp.Error)
			assert.Nil(t, mockUC.cmd)
		})
	}
}

func TestTicketHandler_CreateTicket_UseCaseError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{
			name:     "blank after trim",
			err:      apperrors.NewValidationError(usecases.MsgMissingTicketFields),
			wantCode: http.StatusBadRequest,
			wantMsg:  usecases.MsgMissingTicketFields,
		},
		{
			name:     "unexpected failure is not leaked",
			err:      errors.New("disk I/O error"),
			wantCode: http.StatusInternalServerError,
			wantMsg:  apperrors.InternalMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestTicketHandler(testDeps{createTicketUC: &mockCreateTicketUC{err: tt.err}})

			reqBody := CreateTicketRequest{Title: " ", Category: "bug", Description: "d"}
			c, w := testutil.NewTestContext(http.MethodPost, "/tickets", reqBody)
			handler.CreateTicket(c)

			assert.Equal(t, tt.wantCode, w.Code)
			var resp testutil.ErrorBody
			require.NoError(t, testutil.ParseResponse(w, &resp))
			assert.Equal(t, tt.wantMsg, resp.Error)
		})
	}
}

// =====================================================================
// TestTicketHandler_ListTickets
// =====================================================================

func TestTicketHandler_ListTickets_Success(t *testing.T) {
	second := sampleTicketDTO()
	second.ID = 2
	second.Title = "Billing"
	second.Comments = []string{"newer", "older"}
	mockUC := &mockListTicketsUC{result: []*ticketdto.TicketDTO{second, sampleTicketDTO()}}
	handler := newTestTicketHandler(testDeps{listTicketsUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/tickets", nil)
	handler.ListTickets(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp []ticketdto.TicketDTO
	require.NoError(t, testutil.ParseResponse(w, &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, uint(2), resp[0].ID)
	assert.Equal(t, []string{"newer", "older"}, resp[0].Comments)
	assert.Equal(t, uint(1), resp[1].ID)
}

func TestTicketHandler_ListTickets_Empty(t *testing.T) {
	handler := newTestTicketHandler(testDeps{listTicketsUC: &mockListTicketsUC{result: []*ticketdto.TicketDTO{}}})

	c, w := testutil.NewTestContext(http.MethodGet, "/tickets", nil)
	handler.ListTickets(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestTicketHandler_ListTickets_Error(t *testing.T) {
	handler := newTestTicketHandler(testDeps{listTicketsUC: &mockListTicketsUC{err: apperrors.NewInternalError(errors.New("boom"))}})

	c, w := testutil.NewTestContext(http.MethodGet, "/tickets", nil)
	handler.ListTickets(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, w.Body.String())
}

// =====================================================================
// TestTicketHandler_GetTicket
// =====================================================================

func TestTicketHandler_GetTicket_Success(t *testing.T) {
	mockUC := &mockGetTicketUC{result: sampleTicketDTO()}
	handler := newTestTicketHandler(testDeps{getTicketUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/tickets/1", nil)
	testutil.SetURLParam(c, "id", "1")

	handler.GetTicket(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp ticketdto.TicketDTO
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.Equal(t, uint(1), resp.ID)
	assert.Equal(t, "OPEN", resp.Status)
	require.NotNil(t, mockUC.query)
	assert.Equal(t, uint(1), mockUC.query.TicketID)
}

func TestTicketHandler_GetTicket_InvalidID(t *testing.T) {
	for _, id := range []string{"abc", "-1", "1.5", "12abc", ""} {
		t.Run("id="+id, func(t *testing.T) {
			stores := &stubStoreOpener{}
			mockUC := &mockGetTicketUC{}
			handler := newTestTicketHandler(testDeps{stores: stores, getTicketUC: mockUC})

			c, w := testutil.NewTestContext(http.MethodGet, "/tickets/"+id, nil)
			testutil.SetURLParam(c, "id", id)

			handler.GetTicket(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.JSONEq(t, `{"error":"Invalid ticket ID"}`, w.Body.String())
			assert.Nil(t, mockUC.query)
			assert.Zero(t, stores.opened)
		})
	}
}

func TestTicketHandler_GetTicket_NotFound(t *testing.T) {
	mockUC := &mockGetTicketUC{err: apperrors.NewNotFoundError(usecases.MsgTicketNotFound)}
	handler := newTestTicketHandler(testDeps{getTicketUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/tickets/999", nil)
	testutil.SetURLParam(c, "id", "999")

	handler.GetTicket(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Ticket not found"}`, w.Body.String())
}

// =====================================================================
// TestTicketHandler_UpdateStatus
// =====================================================================

func TestTicketHandler_UpdateStatus_Success(t *testing.T) {
	mockUC := &mockChangeStatusUC{
		result: &usecases.ChangeStatusResult{TicketID: 1, OldStatus: "OPEN", NewStatus: "IN_PROGRESS"},
	}
	handler := newTestTicketHandler(testDeps{changeStatusUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodPut, "/tickets/1/status", nil)
	testutil.SetURLParam(c, "id", "1")
	testutil.SetQueryParams(c, map[string]string{"status": "IN_PROGRESS"})

	handler.UpdateStatus(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp testutil.MessageBody
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.Equal(t, "Ticket status updated successfully", resp.Message)
	require.NotNil(t, mockUC.cmd)
	assert.Equal(t, uint(1), mockUC.cmd.TicketID)
	assert.Equal(t, "IN_PROGRESS", mockUC.cmd.Status)
}

func TestTicketHandler_UpdateStatus_MissingStatusReachesUseCase(t *testing.T) {
	mockUC := &mockChangeStatusUC{err: apperrors.NewValidationError(usecases.MsgInvalidStatus)}
	handler := newTestTicketHandler(testDeps{changeStatusUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodPut, "/tickets/1/status", nil)
	testutil.SetURLParam(c, "id", "1")

	handler.UpdateStatus(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp testutil.ErrorBody
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.Equal(t, usecases.MsgInvalidStatus, resp.Error)
	require.NotNil(t, mockUC.cmd)
	assert.Empty(t, mockUC.cmd.Status)
}

func TestTicketHandler_UpdateStatus_InvalidID(t *testing.T) {
	mockUC := &mockChangeStatusUC{}
	handler := newTestTicketHandler(testDeps{changeStatusUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodPut, "/tickets/x/status", nil)
	testutil.SetURLParam(c, "id", "x")
	testutil.SetQueryParams(c, map[string]string{"status": "CLOSED"})

	handler.UpdateStatus(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Invalid ticket ID"}`, w.Body.String())
	assert.Nil(t, mockUC.cmd)
}

func TestTicketHandler_UpdateStatus_NotFound(t *testing.T) {
	mockUC := &mockChangeStatusUC{err: apperrors.NewNotFoundError(usecases.MsgTicketNotFound)}
	handler := newTestTicketHandler(testDeps{changeStatusUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodPut, "/tickets/42/status", nil)
	testutil.SetURLParam(c, "id", "42")
	testutil.SetQueryParams(c, map[string]string{"status": "CLOSED"})

	handler.UpdateStatus(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

// =====================================================================
// TestTicketHandler_AddComment
// =====================================================================

func TestTicketHandler_AddComment_Success(t *testing.T) {
	mockUC := &mockAddCommentUC{result: &usecases.AddCommentResult{CommentID: 7}}
	handler := newTestTicketHandler(testDeps{addCommentUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodPost, "/tickets/1/comment", AddCommentRequest{Comment: "Investigating"})
	testutil.SetURLParam(c, "id", "1")

	handler.AddComment(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Comment added successfully"}`, w.Body.String())
	require.NotNil(t, mockUC.cmd)
	assert.Equal(t, uint(1), mockUC.cmd.TicketID)
	assert.Equal(t, "Investigating", mockUC.cmd.Comment)
}

func TestTicketHandler_AddComment_MissingComment(t *testing.T) {
	mockUC := &mockAddCommentUC{}
	handler := newTestTicketHandler(testDeps{addCommentUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodPost, "/tickets/1/comment", map[string]string{})
	testutil.SetURLParam(c, "id", "1")

	handler.AddComment(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp testutil.ErrorBody
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.Equal(t, usecases.MsgMissingComment, resp.Error)
	assert.Nil(t, mockUC.cmd)
}

func TestTicketHandler_AddComment_InvalidIDCheckedFirst(t *testing.T) {
	mockUC := &mockAddCommentUC{}
	handler := newTestTicketHandler(testDeps{addCommentUC: mockUC})

	c, w := testutil.NewRawTestContext(http.MethodPost, "/tickets/abc/comment", "not json")
	testutil.SetURLParam(c, "id", "abc")

	handler.AddComment(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Invalid ticket ID"}`, w.Body.String())
}

func TestTicketHandler_AddComment_NotFound(t *testing.T) {
	mockUC := &mockAddCommentUC{err: apperrors.NewNotFoundError(usecases.MsgTicketNotFound)}
	handler := newTestTicketHandler(testDeps{addCommentUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodPost, "/tickets/9/comment", AddCommentRequest{Comment: "hi"})
	testutil.SetURLParam(c, "id", "9")

	handler.AddComment(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Ticket not found"}`, w.Body.String())
}

// =====================================================================
// TestTicketHandler_DeleteTicket
// =====================================================================

func TestTicketHandler_DeleteTicket_Success(t *testing.T) {
	mockUC := &mockDeleteTicketUC{}
	handler := newTestTicketHandler(testDeps{deleteTicketUC: mockUC})

	c, w := testutil.NewTestContext(http.MethodDelete, "/tickets/3", nil)
	testutil.SetURLParam(c, "id", "3")

	handler.DeleteTicket(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Ticket deleted successfully"}`, w.Body.String())
	require.NotNil(t, mockUC.cmd)
	assert.Equal(t, uint(3), mockUC.cmd.TicketID)
}

func TestTicketHandler_DeleteTicket_Errors(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		err      error
		wantCode int
	}{
		{name: "invalid id", id: "abc", wantCode: http.StatusBadRequest},
		{name: "not found", id: "5", err: apperrors.NewNotFoundError(usecases.MsgTicketNotFound), wantCode: http.StatusNotFound},
		{name: "internal", id: "5", err: apperrors.NewInternalError(errors.New("locked")), wantCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestTicketHandler(testDeps{deleteTicketUC: &mockDeleteTicketUC{err: tt.err}})

			c, w := testutil.NewTestContext(http.MethodDelete, "/tickets/"+tt.id, nil)
			testutil.SetURLParam(c, "id", tt.id)

			handler.DeleteTicket(c)

			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}
