package mediahost

import (
	"bytes"

	"github.com/disintegration/imaging"
	"github.com/gofiber/fiber/v2/log"
)

const (
	maxUploadWidth  = 1200
	maxUploadHeight = 800
)

// ShrinkOversized downsizes bitmaps that exceed the remote bounding box
// before they leave the process. The media host applies the same bound
// again server-side; shrinking locally keeps slow uploads inside the
// timeout window. Inputs that cannot be decoded (or would lose animation)
// pass through unchanged.
func ShrinkOversized(data []byte, mimeType string) []byte {
	switch mimeType {
	case "image/webp":
		// no webp decoder without cgo
		return data
	case "image/gif":
		// re-encoding would drop all frames but the first
		return data
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return data
	}

	bounds := img.Bounds()
	if bounds.Dx() <= maxUploadWidth && bounds.Dy() <= maxUploadHeight {
		return data
	}

	fitted := imaging.Fit(img, maxUploadWidth, maxUploadHeight, imaging.Lanczos)

	format := imaging.JPEG
	var opts []imaging.EncodeOption
	if mimeType == "image/png" {
		format = imaging.PNG
	} else {
		opts = append(opts, imaging.JPEGQuality(85))
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, fitted, format, opts...); err != nil {
		return data
	}
	if buf.Len() >= len(data) {
		return data
	}

	log.Infof("[MediaHost] Pre-shrunk upload from %dx%d (%d bytes) to %d bytes",
		bounds.Dx(), bounds.Dy(), len(data), buf.Len())
	return buf.Bytes()
}
