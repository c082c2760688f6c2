package mediahost

import (
	"bytes"
	"context"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gofiber/fiber/v2/log"

	"github.com/amritamcare/amritam-cms/internal/pkg/apierror"
)

// transformation bounds every stored cover image to a 1200x800 box with
// automatic quality selection. The original aspect ratio is preserved.
const transformation = "c_limit,w_1200,h_800,q_auto"

// Result describes the hosted image after upload and transformation.
type Result struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

// Uploader turns raw image bytes into a publicly addressable URL.
type Uploader interface {
	Upload(ctx context.Context, data []byte, mimeType string) (*Result, error)
}

// Client wraps the Cloudinary SDK with blog-specific upload behavior
type Client struct {
	cld    *cloudinary.Cloudinary
	config *Config
}

// NewClient creates a new media host client
func NewClient(cfg *Config) (*Client, error) {
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize media host client: %w", err)
	}

	log.Infof("[MediaHost] Initialized Cloudinary client for cloud: %s", cfg.CloudName)
	return &Client{cld: cld, config: cfg}, nil
}

// Upload sends the image to the media host and returns the hosted URL. The
// call races against UploadTimeout: the first of {success, timeout} wins and
// the slower branch is discarded. A timeout is reported as a distinguished
// error so the caller can suggest a smaller file instead of a blind retry.
func (c *Client) Upload(ctx context.Context, data []byte, mimeType string) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, UploadTimeout)
	defer cancel()

	type outcome struct {
		result *Result
		err    error
	}
	done := make(chan outcome, 1)

	go func() {
		resp, err := c.cld.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
			Folder:         c.config.Folder,
			Transformation: transformation,
		})
		if err != nil {
			done <- outcome{err: apierror.Wrap(apierror.KindUpstream, "Failed to upload image to media host", err)}
			return
		}
		if resp.Error.Message != "" {
			done <- outcome{err: &apierror.Error{
				Kind:    apierror.KindUpstream,
				Message: "Media host rejected the upload",
				Detail:  resp.Error.Message,
			}}
			return
		}
		done <- outcome{result: &Result{
			URL:      resp.SecureURL,
			PublicID: resp.PublicID,
			Width:    resp.Width,
			Height:   resp.Height,
		}}
	}()

	select {
	case out := <-done:
		if out.err != nil && ctx.Err() == context.DeadlineExceeded {
			// The SDK surfaced the cancellation itself; report it as a timeout.
			return nil, timeoutError()
		}
		return out.result, out.err
	case <-ctx.Done():
		log.Warnf("[MediaHost] Upload exceeded %s window, discarding result", UploadTimeout)
		return nil, timeoutError()
	}
}

func timeoutError() *apierror.Error {
	return &apierror.Error{
		Kind:    apierror.KindTimeout,
		Message: "Upload timeout",
		Detail:  "The upload took too long. Please try again with a smaller image file (under 2MB recommended).",
	}
}
