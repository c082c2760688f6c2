package docconvert

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amritamcare/amritam-cms/internal/pkg/apierror"
)

func TestRenderTextPages_HeadingHeuristic(t *testing.T) {
	t.Parallel()

	pages := []string{
		"INTRODUCTION\n\nThis is the first paragraph of the\narticle body, joined across lines.\n\nSymptoms to watch:\n\n" +
			strings.Repeat("A VERY LONG SHOUTY PARAGRAPH ", 10),
	}

	html := RenderTextPages(pages)

	// Short all-caps block becomes a heading.
	assert.Contains(t, html, ">INTRODUCTION</h3>")
	// Colon-terminated block becomes a heading with the colon stripped.
	assert.Contains(t, html, ">Symptoms to watch</h3>")
	// Lines inside a block are joined with single spaces.
	assert.Contains(t, html, "<p class=\"text-gray-700 leading-relaxed mb-4\">This is the first paragraph of the article body, joined across lines.</p>")
	// A long block is never a heading, even when upper-case.
	assert.Equal(t, 2, strings.Count(html, "<h3"))
}

func TestRenderTextPages_EscapesUntrustedText(t *testing.T) {
	t.Parallel()

	pages := []string{`<script>alert("x&y")</script> 'quoted'`}
	html := RenderTextPages(pages)

	for _, forbidden := range []string{"<script>", `"x&y"`, "'quoted'"} {
		assert.NotContains(t, html, forbidden)
	}
	assert.Contains(t, html, "&lt;script&gt;alert(&quot;x&amp;y&quot;)&lt;/script&gt; &#39;quoted&#39;")
}

func TestRenderTextPages_BlankDocumentYieldsEmptyHTML(t *testing.T) {
	t.Parallel()

	assert.Empty(t, RenderTextPages(nil))
	assert.Empty(t, RenderTextPages([]string{"", "   \n \n\t ", "\n\n"}))
}

func TestRenderTextPages_MultiplePages(t *testing.T) {
	t.Parallel()

	pages := []string{"First page paragraph.", "", "Third page paragraph."}
	html := RenderTextPages(pages)

	assert.Equal(t, 2, strings.Count(html, "<p "))
	assert.Contains(t, html, "First page paragraph.")
	assert.Contains(t, html, "Third page paragraph.")
}

func TestIsHeading(t *testing.T) {
	t.Parallel()

	assert.True(t, isHeading("OVERVIEW"))
	assert.True(t, isHeading("Warning signs:"))
	assert.True(t, isHeading("2024")) // no letters counts as upper-case, accepted lossy rule
	assert.False(t, isHeading("A normal sentence."))
	assert.False(t, isHeading(strings.Repeat("X", headingMaxLen)))
}

func TestConvertPDF_UnparsableInput(t *testing.T) {
	t.Parallel()

	_, err := ConvertPDF([]byte("this is not a pdf"))
	require.Error(t, err)

	var apiErr *apierror.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, apierror.KindConversion, apiErr.Kind)
}

func TestFetchAndConvertPDF_SourceErrors(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/missing.pdf":
			http.NotFound(w, r)
		default:
			_, _ = w.Write([]byte("garbage bytes"))
		}
	}))
	defer srv.Close()

	_, err := FetchAndConvertPDF(context.Background(), srv.URL+"/missing.pdf")
	var apiErr *apierror.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, apierror.KindValidation, apiErr.Kind)
	assert.Equal(t, http.StatusNotFound, apiErr.UpstreamStatus)

	_, err = FetchAndConvertPDF(context.Background(), srv.URL+"/garbage.pdf")
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, apierror.KindConversion, apiErr.Kind)

	_, err = FetchAndConvertPDF(context.Background(), "http://127.0.0.1:1/unreachable.pdf")
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, apierror.KindValidation, apiErr.Kind)
}
