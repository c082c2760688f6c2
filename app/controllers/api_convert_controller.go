package controllers

import (
	"io"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"

	"github.com/amritamcare/amritam-cms/internal/pkg/apierror"
	"github.com/amritamcare/amritam-cms/internal/pkg/docconvert"
)

// The converters are stateless and never touch the content store, so they
// are plain handlers without controller wiring.

// HandleDocxToHTML converts an uploaded word-processing document into an
// HTML fragment.
func HandleDocxToHTML(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return apierror.Respond(c, apierror.Validation("No file uploaded"))
	}

	if !docconvert.IsDocx(fileHeader.Filename, fileHeader.Header.Get("Content-Type")) {
		return apierror.Respond(c, apierror.Validation("Only .docx files are allowed"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return apierror.Respond(c, apierror.Wrap(apierror.KindValidation, "Failed to read uploaded file", err))
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return apierror.Respond(c, apierror.Wrap(apierror.KindValidation, "Failed to read uploaded file", err))
	}

	result, err := docconvert.ConvertDocx(data)
	if err != nil {
		fiberlog.Errorf("docx conversion failed for %s: %v", fileHeader.Filename, err)
		return apierror.Respond(c, err)
	}

	messages := result.Messages
	if messages == nil {
		messages = []string{}
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"html":     result.HTML,
		"messages": messages,
	})
}

// HandlePDFToHTML fetches a PDF by URL and converts its text to HTML using
// the heuristic paragraph/heading pass.
func HandlePDFToHTML(c *fiber.Ctx) error {
	var req struct {
		PDFURL string `json:"pdfUrl"`
	}
	if err := c.BodyParser(&req); err != nil {
		return apierror.Respond(c, apierror.Wrap(apierror.KindValidation, "Invalid request body", err))
	}
	if req.PDFURL == "" {
		return apierror.Respond(c, apierror.Validation("PDF URL is required"))
	}

	result, err := docconvert.FetchAndConvertPDF(c.Context(), req.PDFURL)
	if err != nil {
		fiberlog.Errorf("pdf conversion failed for %s: %v", req.PDFURL, err)
		return apierror.Respond(c, err)
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"html":      result.HTML,
		"pageCount": result.PageCount,
		"info":      result.Info,
	})
}
