package docconvert

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"

	"github.com/amritamcare/amritam-cms/internal/pkg/apierror"
)

// Paragraphs shorter than this are heading candidates.
const headingMaxLen = 100

// maxPDFBytes bounds how much we pull from a source URL.
const maxPDFBytes = 32 * 1024 * 1024

var pdfHTTPClient = &http.Client{Timeout: 30 * time.Second}

var blankLine = regexp.MustCompile(`\n\s*\n`)

// PDFInfo carries the bibliographic metadata a PDF exposes.
type PDFInfo struct {
	Title   string `json:"title"`
	Author  string `json:"author"`
	Subject string `json:"subject"`
}

// PDFResult is the outcome of a PDF-to-HTML conversion.
type PDFResult struct {
	HTML      string  `json:"html"`
	PageCount int     `json:"pageCount"`
	Info      PDFInfo `json:"info"`
}

// FetchAndConvertPDF downloads the PDF at url and converts its text content
// to HTML. A missing or non-200 source is the caller's mistake and reported
// as a validation failure, matching the API contract.
func FetchAndConvertPDF(ctx context.Context, url string) (*PDFResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apierror.Validation("Invalid PDF URL")
	}

	resp, err := pdfHTTPClient.Do(req)
	if err != nil {
		return nil, apierror.Wrap(apierror.KindValidation, "Failed to fetch PDF", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &apierror.Error{
			Kind:           apierror.KindValidation,
			Message:        "Failed to fetch PDF",
			UpstreamStatus: resp.StatusCode,
		}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPDFBytes))
	if err != nil {
		return nil, apierror.Wrap(apierror.KindUpstream, "Failed to read PDF response", err)
	}

	return ConvertPDF(data)
}

// ConvertPDF extracts the text of each page and renders it as escaped HTML
// using the paragraph/heading heuristic.
func ConvertPDF(data []byte) (result *PDFResult, err error) {
	// The parser panics on some malformed files instead of returning an error.
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = &apierror.Error{
				Kind:    apierror.KindConversion,
				Message: "Failed to convert PDF to HTML",
				Detail:  fmt.Sprint(r),
			}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, apierror.Wrap(apierror.KindConversion, "Failed to parse PDF", err)
	}

	pageCount := reader.NumPage()
	pages := make([]string, 0, pageCount)
	for i := 1; i <= pageCount; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// Pages that fail text extraction are skipped, not fatal.
			pages = append(pages, "")
			continue
		}
		pages = append(pages, text)
	}

	return &PDFResult{
		HTML:      RenderTextPages(pages),
		PageCount: pageCount,
		Info:      readPDFInfo(reader),
	}, nil
}

// RenderTextPages turns per-page raw text into an HTML fragment. Within each
// page, blank-line separated blocks become paragraphs; a short block that is
// entirely upper-case or ends with a colon is rendered as a heading. All text
// is escaped before it is wrapped in markup: the source is untrusted and must
// never be interpreted as HTML. When no block survives the structured pass,
// a coarser fallback wraps every block of the collapsed text as a paragraph.
func RenderTextPages(pages []string) string {
	var b strings.Builder

	for _, pageText := range pages {
		if strings.TrimSpace(pageText) == "" {
			continue
		}
		for _, block := range blankLine.Split(pageText, -1) {
			paragraph := joinLines(block)
			if paragraph == "" {
				continue
			}
			escaped := escapeHTML(paragraph)
			if isHeading(paragraph) {
				// The colon is part of the heading cue, not the heading text.
				b.WriteString(`<h3 class="text-2xl font-bold text-gray-900 mb-4 mt-6">`)
				b.WriteString(strings.Replace(escaped, ":", "", 1))
				b.WriteString("</h3>\n")
			} else {
				b.WriteString(`<p class="text-gray-700 leading-relaxed mb-4">`)
				b.WriteString(escaped)
				b.WriteString("</p>\n")
			}
		}
	}

	if b.Len() > 0 {
		return b.String()
	}

	// Degenerate input: no structured content detected. Collapse page breaks
	// to blank lines and wrap every remaining block as a plain paragraph.
	text := strings.Join(pages, "\n\n")
	for _, block := range blankLine.Split(text, -1) {
		paragraph := joinLines(block)
		if paragraph == "" {
			continue
		}
		b.WriteString(`<p class="text-gray-700 leading-relaxed mb-4">`)
		b.WriteString(escapeHTML(paragraph))
		b.WriteString("</p>\n")
	}
	return b.String()
}

// joinLines merges the lines of a block into a single space-separated string.
func joinLines(block string) string {
	var lines []string
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, " ")
}

// isHeading applies the lossy heading heuristic: short, and either entirely
// upper-case or ending with a colon. Short shouty sentences will be
// misclassified; accepted, this is not a structural parser.
func isHeading(paragraph string) bool {
	if len([]rune(paragraph)) >= headingMaxLen {
		return false
	}
	return paragraph == strings.ToUpper(paragraph) || strings.HasSuffix(paragraph, ":")
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

func escapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

func readPDFInfo(reader *pdf.Reader) PDFInfo {
	info := reader.Trailer().Key("Info")
	if info.IsNull() {
		return PDFInfo{}
	}
	get := func(key string) string {
		v := info.Key(key)
		if v.Kind() != pdf.String {
			return ""
		}
		return v.Text()
	}
	return PDFInfo{
		Title:   get("Title"),
		Author:  get("Author"),
		Subject: get("Subject"),
	}
}
