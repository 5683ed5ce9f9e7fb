package web

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/supportdesk/internal/shared/logger"
	"github.com/orris-inc/supportdesk/internal/shared/services/markdown"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	h, err := NewHandler("/api", markdown.NewService(), logger.NewNopLogger())
	require.NoError(t, err)
	return h
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHandler_Pages(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		path     string
		page     string
		contains []string
	}{
		{
			path:     "/",
			page:     pageHome,
			contains: []string{"Customer Support Ticket System", `href="/new"`, `href="/tickets"`},
		},
		{
			path:     "/tickets",
			page:     pageList,
			contains: []string{"Loading tickets...", "Try Again", `id="ticket-card"`},
		},
		{
			path:     "/new",
			page:     pageNew,
			contains: []string{`id="ticket-form"`, `name="title"`, `name="category"`, `name="description"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := get(h, tt.path)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
			body := w.Body.String()
			assert.Contains(t, body, `data-page="`+tt.page+`"`)
			assert.Contains(t, body, `data-api-base="/api"`)
			assert.Contains(t, body, "Support Tickets")
			assert.Contains(t, body, "All rights reserved.")
			for _, s := range tt.contains {
				assert.Contains(t, body, s)
			}
		})
	}
}

func TestHandler_UnknownPathRendersNotFoundPage(t *testing.T) {
	h := newTestHandler(t)

	w := get(h, "/does/not/exist")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Page not found")
	assert.Contains(t, w.Body.String(), "Go Home")
}

func TestHandler_StaticAssets(t *testing.T) {
	h := newTestHandler(t)

	js := get(h, "/static/app.js")
	assert.Equal(t, http.StatusOK, js.Code)
	assert.Contains(t, js.Body.String(), "Failed to create ticket")
	assert.Contains(t, js.Body.String(), "/status?status=")

	css := get(h, "/static/app.css")
	assert.Equal(t, http.StatusOK, css.Code)
	assert.Contains(t, css.Header().Get("Content-Type"), "text/css")
}

func TestHandler_LandingPageIsSanitized(t *testing.T) {
	h := newTestHandler(t)

	body := get(h, "/").Body.String()

	assert.NotContains(t, body, "<script>")
	assert.Contains(t, body, "<h1")
}
