package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_ConvertsMarkdown(t *testing.T) {
	svc := NewService()

	out, err := svc.Render("# Track Progress\n\nMonitor tickets from **open** to closed.\n\n[View All Tickets](/tickets)")
	require.NoError(t, err)

	html := string(out)
	assert.Contains(t, html, `<h1 id="track-progress">Track Progress</h1>`)
	assert.Contains(t, html, "<strong>open</strong>")
	assert.Contains(t, html, `href="/tickets"`)
}

func TestRender_StripsScripts(t *testing.T) {
	svc := NewService()

	out, err := svc.Render("hello <script>alert(1)</script> <a href=\"javascript:alert(1)\">x</a>")
	require.NoError(t, err)

	assert.NotContains(t, string(out), "<script>")
	assert.NotContains(t, string(out), "javascript:")
}

func TestRender_GFMTable(t *testing.T) {
	out, err := NewService().Render("| Status | Meaning |\n|---|---|\n| OPEN | new |\n")
	require.NoError(t, err)
	assert.Contains(t, string(out), "<table>")
}
