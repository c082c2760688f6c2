package controllers

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"

	"github.com/amritamcare/amritam-cms/internal/pkg/apierror"
	"github.com/amritamcare/amritam-cms/internal/pkg/mediahost"
	"github.com/amritamcare/amritam-cms/internal/pkg/s3backup"
	"github.com/amritamcare/amritam-cms/internal/pkg/upload"
)

// UploadController fronts the media host for cover image uploads
type UploadController struct {
	uploader mediahost.Uploader
	archive  *s3backup.Client // nil when the S3 archive is disabled
}

// NewUploadController creates a new upload controller
func NewUploadController(uploader mediahost.Uploader, archive *s3backup.Client) *UploadController {
	return &UploadController{uploader: uploader, archive: archive}
}

var uploadController *UploadController

// InitializeUploadController wires the media host client and the optional
// S3 archive from the environment.
func InitializeUploadController() {
	var uploader mediahost.Uploader
	if cfg, err := mediahost.LoadConfig(); err != nil {
		fiberlog.Warnf("[Upload] Media host not configured, image uploads disabled: %v", err)
	} else if client, err := mediahost.NewClient(cfg); err != nil {
		fiberlog.Errorf("[Upload] Failed to initialize media host client: %v", err)
	} else {
		uploader = client
	}

	var archive *s3backup.Client
	if cfg, err := s3backup.LoadConfig(); err != nil {
		fiberlog.Errorf("[Upload] Invalid S3 backup configuration: %v", err)
	} else if cfg.IsEnabled() {
		if client, err := s3backup.NewClient(cfg); err != nil {
			fiberlog.Errorf("[Upload] Failed to initialize S3 archive: %v", err)
		} else {
			archive = client
		}
	}

	uploadController = &UploadController{uploader: uploader, archive: archive}
}

// GetUploadController returns the global upload controller instance
func GetUploadController() *UploadController {
	if uploadController == nil {
		panic("Upload controller not initialized. Call InitializeUploadController first.")
	}
	return uploadController
}

// HandleUploadImage accepts a multipart cover image, validates it locally and
// forwards it to the media host. The size cap is enforced before any bytes
// leave the process.
func (uc *UploadController) HandleUploadImage(c *fiber.Ctx) error {
	if uc.uploader == nil {
		return apierror.Respond(c, apierror.New(apierror.KindUpstream,
			"Media host configuration is missing. Please check your environment variables."))
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return apierror.Respond(c, apierror.Validation("No file uploaded"))
	}

	if err := upload.ValidateImageSize(fileHeader.Size); err != nil {
		return apierror.Respond(c, err)
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

	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	mimeType, err := upload.ValidateImageBySniff(fileHeader.Filename, head)
	if err != nil {
		return apierror.Respond(c, err)
	}

	payload := mediahost.ShrinkOversized(data, mimeType)

	result, err := uc.uploader.Upload(c.Context(), payload, mimeType)
	if err != nil {
		fiberlog.Errorf("[Upload] Media host upload failed: %v", err)
		return apierror.Respond(c, err)
	}

	uc.archiveOriginal(result.PublicID, fileHeader.Filename, mimeType, data)

	return c.JSON(fiber.Map{
		"success":  true,
		"url":      result.URL,
		"publicId": result.PublicID,
		"width":    result.Width,
		"height":   result.Height,
	})
}

// archiveOriginal stores the untransformed upload bytes; failures are logged
// and never affect the upload response.
func (uc *UploadController) archiveOriginal(publicID, filename, mimeType string, data []byte) {
	if uc.archive == nil {
		return
	}

	cfg, err := s3backup.LoadConfig()
	if err != nil {
		return
	}
	ext := strings.ToLower(filepath.Ext(filename))
	key := cfg.ObjectKey(publicID, ext, time.Now().UTC())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := uc.archive.UploadBytes(ctx, key, mimeType, data); err != nil {
		fiberlog.Errorf("[Upload] Failed to archive original upload: %v", err)
	}
}

// HandleUploadImageAPI is the router-facing adapter.
func HandleUploadImageAPI(c *fiber.Ctx) error {
	return GetUploadController().HandleUploadImage(c)
}
