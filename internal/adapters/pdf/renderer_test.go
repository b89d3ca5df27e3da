package pdf

import (
	"bytes"
	"compress/zlib"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quotecraft/quotecraft/internal/ports"
)

func testMeta() ports.ExportMetadata {
	return ports.ExportMetadata{
		ClientName:        "Jordan Reyes",
		ClientCompanyName: "Acme Ltd",
		YourCompanyName:   "Studio North",
	}
}

func fixedClock() func() time.Time {
	return func() time.Time {
		return time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	}
}

func TestRenderer_Render(t *testing.T) {
	r := NewRenderer()
	r.now = fixedClock()

	out, err := r.Render(`<h2>Introduction</h2><p>Dear Jordan, thanks for reaching out.</p>`, testMeta())

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "%PDF-"), "output should be a PDF document")
	assert.Greater(t, len(out), 1000)
}

// contentStreams inflates every Flate-compressed stream in the document
// and returns the concatenated text operators, so tests can assert on the
// strings the renderer actually drew.
func contentStreams(t *testing.T, out []byte) string {
	t.Helper()

	var sb strings.Builder

	rest := out
	for {
		i := bytes.Index(rest, []byte("\nstream\n"))
		if i < 0 {
			break
		}
		rest = rest[i+len("\nstream\n"):]

		j := bytes.Index(rest, []byte("endstream"))
		if j < 0 {
			break
		}

		if zr, err := zlib.NewReader(bytes.NewReader(rest[:j])); err == nil {
			inflated, err := io.ReadAll(zr)
			require.NoError(t, err)
			zr.Close()
			sb.Write(inflated)
		}

		rest = rest[j+len("endstream"):]
	}

	return sb.String()
}

func TestRenderer_Render_HeaderMetadata(t *testing.T) {
	r := NewRenderer()
	r.now = fixedClock()

	out, err := r.Render(`<h2>Scope</h2><p>Site rebuild and CMS migration.</p>`, testMeta())
	require.NoError(t, err)

	text := contentStreams(t, out)
	require.NotEmpty(t, text, "document should carry at least one content stream")

	assert.Contains(t, text, "Quotation")
	assert.Contains(t, text, "For: Jordan Reyes")
	assert.Contains(t, text, "Acme Ltd")
	assert.Contains(t, text, "From: Studio North")
	assert.Contains(t, text, "Date: 3/14/2026")
}

func TestRenderer_Render_Deterministic(t *testing.T) {
	body := `<h2>Pricing Estimate</h2><ul><li>Design: $4,000</li><li>Development: $9,500</li></ul>`

	first := NewRenderer()
	first.now = fixedClock()
	second := NewRenderer()
	second.now = fixedClock()

	a, err := first.Render(body, testMeta())
	require.NoError(t, err)

	b, err := second.Render(body, testMeta())
	require.NoError(t, err)

	assert.Equal(t, a, b, "same input must produce identical bytes")
}

func TestRenderer_Render_LongDocument(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 40; i++ {
		sb.WriteString("<h3>Section</h3>")
		sb.WriteString("<p>")
		sb.WriteString(strings.Repeat("A detailed sentence about the engagement scope. ", 12))
		sb.WriteString("</p>")
	}

	r := NewRenderer()
	r.now = fixedClock()

	out, err := r.Render(sb.String(), testMeta())

	require.NoError(t, err)
	// A document this long must have spilled onto additional pages.
	assert.Greater(t, strings.Count(string(out), "/Type /Page"), 2)
}

func TestRenderer_Render_EmptyBody(t *testing.T) {
	r := NewRenderer()

	_, err := r.Render("   ", testMeta())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no renderable content")
}

func TestRenderer_Render_PlainTextBody(t *testing.T) {
	r := NewRenderer()
	r.now = fixedClock()

	out, err := r.Render("A quotation without markup still renders.", testMeta())

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "%PDF-"))
}
