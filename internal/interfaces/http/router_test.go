package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	ticketdto "github.com/orris-inc/supportdesk/internal/application/ticket/dto"
	"github.com/orris-inc/supportdesk/internal/infrastructure/config"
	"github.com/orris-inc/supportdesk/internal/infrastructure/database"
	"github.com/orris-inc/supportdesk/internal/infrastructure/migration"
	"github.com/orris-inc/supportdesk/internal/infrastructure/persistence/models"
	sharedConfig "github.com/orris-inc/supportdesk/internal/shared/config"
	"github.com/orris-inc/supportdesk/internal/shared/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	db      *gorm.DB
	handler http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	cfg := &config.Config{
		Server: sharedConfig.ServerConfig{
			APIPrefix:      "/api",
			ServiceName:    "supportdesk",
			AllowedOrigins: []string{"http://localhost:5173"},
		},
		Database: sharedConfig.DatabaseConfig{
			Driver: sharedConfig.DriverSQLite,
			Path:   filepath.Join(t.TempDir(), "router.db"),
		},
	}
	log := logger.NewNopLogger()

	gdb, err := database.Open(&cfg.Database)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	require.NoError(t, migration.NewManager("development", cfg.Database.Driver, log).Migrate(gdb))

	router := NewRouter(gdb, cfg, log)
	router.SetupRoutes()
	t.Cleanup(router.Shutdown)

	return &testServer{db: gdb, handler: router.Handler()}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)
	return w
}

func (s *testServer) storedTicket(t *testing.T, id uint) models.TicketModel {
	t.Helper()
	var m models.TicketModel
	require.NoError(t, s.db.First(&m, id).Error)
	return m
}

func decodeTicket(t *testing.T, w *httptest.ResponseRecorder) ticketdto.TicketDTO {
	t.Helper()
	var out ticketdto.TicketDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func createLoginTicket(t *testing.T, s *testServer) ticketdto.TicketDTO {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/tickets", map[string]string{
		"title":       "Login broken",
		"category":    "bug",
		"description": "Cannot log in",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decodeTicket(t, w)
}

func TestRouter_TicketLifecycle(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/tickets", map[string]string{
		"title":       "Login broken",
		"category":    "bug",
		"description": "Cannot log in",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t,
		`{"id":1,"title":"Login broken","category":"bug","description":"Cannot log in","status":"OPEN","comments":[]}`,
		w.Body.String())

	w = s.do(t, http.MethodPut, "/api/tickets/1/status?status=IN_PROGRESS", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Ticket status updated successfully"}`, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/tickets/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "IN_PROGRESS", decodeTicket(t, w).Status)

	w = s.do(t, http.MethodPost, "/api/tickets/1/comment", map[string]string{"comment": "First look"})
	require.Equal(t, http.StatusOK, w.Code)
	time.Sleep(5 * time.Millisecond)
	w = s.do(t, http.MethodPost, "/api/tickets/1/comment", map[string]string{"comment": "Investigating"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Comment added successfully"}`, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/tickets/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"Investigating", "First look"}, decodeTicket(t, w).Comments)

	w = s.do(t, http.MethodDelete, "/api/tickets/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Ticket deleted successfully"}`, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/tickets/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Ticket not found"}`, w.Body.String())

	var remaining int64
	require.NoError(t, s.db.Model(&models.CommentModel{}).Where("ticket_id = ?", 1).Count(&remaining).Error)
	assert.Zero(t, remaining)
}

func TestRouter_CreateTicketMissingFieldPersistsNothing(t *testing.T) {
	s := newTestServer(t)

	bodies := []map[string]string{
		{"title": "only title"},
		{"title": "t", "category": "c", "description": "   "},
		{},
	}
	for _, body := range bodies {
		w := s.do(t, http.MethodPost, "/api/tickets", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Missing required fields: title, category, description"}`, w.Body.String())
	}

	var count int64
	require.NoError(t, s.db.Model(&models.TicketModel{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRouter_ListTicketsNewestFirst(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/tickets", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	for _, title := range []string{"first", "second", "third"} {
		w := s.do(t, http.MethodPost, "/api/tickets", map[string]string{
			"title": title, "category": "general", "description": "d",
		})
		require.Equal(t, http.StatusOK, w.Code)
	}

	w = s.do(t, http.MethodPost, "/api/tickets/1/comment", map[string]string{"comment": "on first"})
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/api/tickets", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []ticketdto.TicketDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 3)
	assert.Equal(t, "third", list[0].Title)
	assert.Equal(t, "second", list[1].Title)
	assert.Equal(t, "first", list[2].Title)
	assert.Equal(t, []string{"on first"}, list[2].Comments)
	assert.Equal(t, []string{}, list[0].Comments)
}

func TestRouter_InvalidStatusLeavesTicketUnchanged(t *testing.T) {
	s := newTestServer(t)
	created := createLoginTicket(t, s)
	before := s.storedTicket(t, created.ID)

	for _, query := range []string{"", "?status=", "?status=DONE", "?status=open"} {
		w := s.do(t, http.MethodPut, "/api/tickets/1/status"+query, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, query)
		assert.JSONEq(t, `{"error":"Invalid status. Must be OPEN, IN_PROGRESS, or CLOSED"}`, w.Body.String())
	}

	after := s.storedTicket(t, created.ID)
	assert.Equal(t, "OPEN", after.Status)
	assert.Equal(t, before.UpdatedAt, after.UpdatedAt)
}

func TestRouter_UpdatedAtAdvancesOnlyOnMutation(t *testing.T) {
	s := newTestServer(t)
	created := createLoginTicket(t, s)
	initial := s.storedTicket(t, created.ID)

	s.do(t, http.MethodGet, "/api/tickets/1", nil)
	s.do(t, http.MethodGet, "/api/tickets", nil)
	assert.Equal(t, initial.UpdatedAt, s.storedTicket(t, created.ID).UpdatedAt)

	time.Sleep(5 * time.Millisecond)
	require.Equal(t, http.StatusOK, s.do(t, http.MethodPut, "/api/tickets/1/status?status=CLOSED", nil).Code)
	afterStatus := s.storedTicket(t, created.ID)
	assert.Greater(t, afterStatus.UpdatedAt, initial.UpdatedAt)
	assert.Equal(t, initial.CreatedAt, afterStatus.CreatedAt)

	time.Sleep(5 * time.Millisecond)
	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/api/tickets/1/comment", map[string]string{"comment": "x"}).Code)
	afterComment := s.storedTicket(t, created.ID)
	assert.Greater(t, afterComment.UpdatedAt, afterStatus.UpdatedAt)
}

func TestRouter_ErrorScenarios(t *testing.T) {
	s := newTestServer(t)
	createLoginTicket(t, s)

	tests := []struct {
		name     string
		method   string
		path     string
		body     interface{}
		wantCode int
		wantBody string
	}{
		{name: "get bad id", method: http.MethodGet, path: "/api/tickets/abc", wantCode: http.StatusBadRequest, wantBody: `{"error":"Invalid ticket ID"}`},
		{name: "delete missing", method: http.MethodDelete, path: "/api/tickets/999", wantCode: http.StatusNotFound, wantBody: `{"error":"Ticket not found"}`},
		{name: "status missing ticket", method: http.MethodPut, path: "/api/tickets/999/status?status=CLOSED", wantCode: http.StatusNotFound, wantBody: `{"error":"Ticket not found"}`},
		{name: "comment missing ticket", method: http.MethodPost, path: "/api/tickets/999/comment", body: map[string]string{"comment": "hi"}, wantCode: http.StatusNotFound, wantBody: `{"error":"Ticket not found"}`},
		{name: "blank comment", method: http.MethodPost, path: "/api/tickets/1/comment", body: map[string]string{"comment": "  "}, wantCode: http.StatusBadRequest, wantBody: `{"error":"Missing required field: comment"}`},
		{name: "delete bad id", method: http.MethodDelete, path: "/api/tickets/1x", wantCode: http.StatusBadRequest, wantBody: `{"error":"Invalid ticket ID"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.wantCode, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestRouter_Health(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/health", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, "supportdesk", resp["service"])
	_, err := time.Parse(time.RFC3339, resp["timestamp"])
	assert.NoError(t, err)
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}

func TestRouter_OutsidePrefix(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/tickets", "/health", "/"} {
		w := s.do(t, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusNotFound, w.Code, path)
	}

	w := s.do(t, http.MethodGet, "/api/unknown", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_CORSPreflight(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/tickets", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_SwaggerDocument(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/swagger/doc.json", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/tickets/{id}/status")
}
