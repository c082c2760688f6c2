package docconvert

import (
	"archive/zip"
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amritamcare/amritam-cms/internal/pkg/apierror"
)

func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(documentXML))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

const docxHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
	`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
	`<w:body>`

const docxFooter = `</w:body></w:document>`

func TestConvertDocx_StructuralMapping(t *testing.T) {
	t.Parallel()

	doc := docxHeader +
		`<w:p><w:pPr><w:pStyle w:val="Heading1"/></w:pPr><w:r><w:t>Heart Health</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>Plain body text.</w:t></w:r></w:p>` +
		`<w:p><w:pPr><w:numPr><w:ilvl w:val="0"/></w:numPr></w:pPr><w:r><w:t>First item</w:t></w:r></w:p>` +
		`<w:p><w:pPr><w:numPr><w:ilvl w:val="0"/></w:numPr></w:pPr><w:r><w:t>Second item</w:t></w:r></w:p>` +
		`<w:p><w:r><w:rPr><w:b/></w:rPr><w:t>bold</w:t></w:r><w:r><w:t> and </w:t></w:r><w:r><w:rPr><w:i/></w:rPr><w:t>italic</w:t></w:r></w:p>` +
		docxFooter

	result, err := ConvertDocx(buildDocx(t, doc))
	require.NoError(t, err)

	assert.Contains(t, result.HTML, "<h1>Heart Health</h1>")
	assert.Contains(t, result.HTML, "<p>Plain body text.</p>")
	assert.Contains(t, result.HTML, "<ul>\n<li>First item</li>\n<li>Second item</li>\n</ul>")
	assert.Contains(t, result.HTML, "<strong>bold</strong>")
	assert.Contains(t, result.HTML, "<em>italic</em>")
	assert.Empty(t, result.Messages)
}

func TestConvertDocx_EscapesTextAndHonorsToggles(t *testing.T) {
	t.Parallel()

	doc := docxHeader +
		`<w:p><w:r><w:rPr><w:b w:val="false"/></w:rPr><w:t>a &lt;tag&gt; &amp; more</w:t></w:r></w:p>` +
		docxFooter

	result, err := ConvertDocx(buildDocx(t, doc))
	require.NoError(t, err)

	// w:val="false" means the toggle is off, so no <strong> wrapper.
	assert.Equal(t, "<p>a &lt;tag&gt; &amp; more</p>\n", result.HTML)
}

func TestConvertDocx_SkipsDrawingsWithWarning(t *testing.T) {
	t.Parallel()

	doc := docxHeader +
		`<w:p><w:r><w:drawing><a:t xmlns:a="http://example.com/a">embedded label</a:t></w:drawing></w:r><w:r><w:t>visible text</w:t></w:r></w:p>` +
		docxFooter

	result, err := ConvertDocx(buildDocx(t, doc))
	require.NoError(t, err)

	assert.NotContains(t, result.HTML, "embedded label")
	assert.Contains(t, result.HTML, "visible text")
	require.Len(t, result.Messages, 1)
	assert.Contains(t, result.Messages[0], "Images")
}

func TestConvertDocx_MalformedInputs(t *testing.T) {
	t.Parallel()

	var apiErr *apierror.Error

	_, err := ConvertDocx([]byte("not a zip archive"))
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, apierror.KindConversion, apiErr.Kind)

	// Valid zip, but no word/document.xml entry.
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, werr := zw.Create("unrelated.txt")
	require.NoError(t, werr)
	_, _ = w.Write([]byte("x"))
	require.NoError(t, zw.Close())

	_, err = ConvertDocx(buf.Bytes())
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, apierror.KindConversion, apiErr.Kind)

	// Broken XML inside the document part.
	_, err = ConvertDocx(buildDocx(t, docxHeader+"<w:p><w:r>"))
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, apierror.KindConversion, apiErr.Kind)
}

func TestIsDocx(t *testing.T) {
	t.Parallel()

	assert.True(t, IsDocx("report.docx", "application/octet-stream"))
	assert.True(t, IsDocx("Report.DOCX", ""))
	assert.True(t, IsDocx("upload", "application/vnd.openxmlformats-officedocument.wordprocessingml.document"))
	assert.False(t, IsDocx("report.doc", "application/msword"))
	assert.False(t, IsDocx("report.pdf", "application/pdf"))
}
