package docconvert

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/amritamcare/amritam-cms/internal/pkg/apierror"
)

// DocxResult is the outcome of a DOCX-to-HTML conversion. Messages carries
// non-fatal warnings (skipped images, flattened tables).
type DocxResult struct {
	HTML     string   `json:"html"`
	Messages []string `json:"messages"`
}

// IsDocx reports whether the upload claims to be a word-processing document.
func IsDocx(filename, contentType string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".docx") ||
		strings.Contains(contentType, "wordprocessingml")
}

// ConvertDocx converts a DOCX document into an HTML fragment with headings,
// paragraphs, lists and basic inline formatting. Images, complex layout and
// styling are not preserved.
func ConvertDocx(data []byte) (*DocxResult, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, apierror.Wrap(apierror.KindConversion, "Failed to read DOCX archive", err)
	}

	var docFile *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return nil, apierror.New(apierror.KindConversion, "Not a valid DOCX document: word/document.xml is missing")
	}

	rc, err := docFile.Open()
	if err != nil {
		return nil, apierror.Wrap(apierror.KindConversion, "Failed to open DOCX document part", err)
	}
	defer rc.Close()

	return convertDocumentXML(rc)
}

type docxConverter struct {
	html     strings.Builder
	messages []string

	inParagraph bool
	inRunProps  bool
	inText      bool
	paragraph   strings.Builder
	style       string
	isListItem  bool
	bold        bool
	italic      bool
	listOpen    bool

	warnedImages bool
	warnedTables bool
}

func convertDocumentXML(r io.Reader) (*DocxResult, error) {
	dec := xml.NewDecoder(r)
	conv := &docxConverter{}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apierror.Wrap(apierror.KindConversion, "Malformed DOCX document XML", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if err := conv.startElement(dec, t); err != nil {
				return nil, err
			}
		case xml.EndElement:
			conv.endElement(t)
		case xml.CharData:
			conv.charData(t)
		}
	}

	conv.closeList()
	return &DocxResult{HTML: conv.html.String(), Messages: conv.messages}, nil
}

func (c *docxConverter) startElement(dec *xml.Decoder, t xml.StartElement) error {
	switch t.Name.Local {
	case "p":
		c.inParagraph = true
		c.paragraph.Reset()
		c.style = ""
		c.isListItem = false
	case "pStyle":
		c.style = attrVal(t, "val")
	case "numPr":
		c.isListItem = true
	case "r":
		c.bold = false
		c.italic = false
	case "rPr":
		c.inRunProps = true
	case "b":
		if c.inRunProps && !isToggleOff(t) {
			c.bold = true
		}
	case "i":
		if c.inRunProps && !isToggleOff(t) {
			c.italic = true
		}
	case "t":
		c.inText = true
	case "br":
		if c.inParagraph {
			c.paragraph.WriteString("<br/>")
		}
	case "tab":
		if c.inParagraph {
			c.paragraph.WriteString(" ")
		}
	case "tbl":
		c.warnTables()
	case "drawing", "pict", "object":
		c.warnImages()
		// Skip the whole subtree so DrawingML text runs are not captured.
		if err := dec.Skip(); err != nil && err != io.EOF {
			return apierror.Wrap(apierror.KindConversion, "Malformed DOCX document XML", err)
		}
	}
	return nil
}

func (c *docxConverter) endElement(t xml.EndElement) {
	switch t.Name.Local {
	case "p":
		c.flushParagraph()
		c.inParagraph = false
	case "rPr":
		c.inRunProps = false
	case "t":
		c.inText = false
	}
}

func (c *docxConverter) charData(t xml.CharData) {
	if !c.inText || !c.inParagraph {
		return
	}
	text := escapeHTML(string(t))
	if c.bold {
		text = "<strong>" + text + "</strong>"
	}
	if c.italic {
		text = "<em>" + text + "</em>"
	}
	c.paragraph.WriteString(text)
}

func (c *docxConverter) flushParagraph() {
	content := strings.TrimSpace(c.paragraph.String())
	if content == "" {
		return
	}

	if c.isListItem {
		if !c.listOpen {
			c.html.WriteString("<ul>\n")
			c.listOpen = true
		}
		c.html.WriteString("<li>" + content + "</li>\n")
		return
	}

	c.closeList()
	tag := paragraphTag(c.style)
	c.html.WriteString("<" + tag + ">" + content + "</" + tag + ">\n")
}

func (c *docxConverter) closeList() {
	if c.listOpen {
		c.html.WriteString("</ul>\n")
		c.listOpen = false
	}
}

func (c *docxConverter) warnImages() {
	if !c.warnedImages {
		c.messages = append(c.messages, "Images are not converted and were skipped")
		c.warnedImages = true
	}
}

func (c *docxConverter) warnTables() {
	if !c.warnedTables {
		c.messages = append(c.messages, "Tables are flattened to plain paragraphs")
		c.warnedTables = true
	}
}

// paragraphTag maps a Word paragraph style to a semantic tag.
func paragraphTag(style string) string {
	if style == "Title" {
		return "h1"
	}
	if strings.HasPrefix(style, "Heading") {
		level := 0
		if _, err := fmt.Sscanf(style, "Heading%d", &level); err == nil && level >= 1 {
			if level > 6 {
				level = 6
			}
			return fmt.Sprintf("h%d", level)
		}
	}
	return "p"
}

// isToggleOff reports whether a run property like <w:b w:val="false"/> is
// explicitly switched off.
func isToggleOff(t xml.StartElement) bool {
	val := attrVal(t, "val")
	return val == "0" || val == "false" || val == "none"
}

func attrVal(t xml.StartElement, name string) string {
	for _, a := range t.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}
