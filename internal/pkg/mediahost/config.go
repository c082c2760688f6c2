package mediahost

import (
	"errors"
	"time"

	"github.com/amritamcare/amritam-cms/internal/pkg/env"
)

// UploadTimeout bounds a single upload against the media host. The window is
// separate from the general transport timeout; see Client.Upload.
const UploadTimeout = 60 * time.Second

// Config holds the media host (Cloudinary) configuration
type Config struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

// LoadConfig loads the media host configuration from environment variables
func LoadConfig() (*Config, error) {
	config := &Config{
		CloudName: env.GetEnv("CLOUDINARY_CLOUD_NAME", ""),
		APIKey:    env.GetEnv("CLOUDINARY_API_KEY", ""),
		APISecret: env.GetEnv("CLOUDINARY_API_SECRET", ""),
		Folder:    env.GetEnv("CLOUDINARY_FOLDER", "amritam-blogs"),
	}

	if config.CloudName == "" {
		return nil, errors.New("CLOUDINARY_CLOUD_NAME is required")
	}
	if config.APIKey == "" {
		return nil, errors.New("CLOUDINARY_API_KEY is required")
	}
	if config.APISecret == "" {
		return nil, errors.New("CLOUDINARY_API_SECRET is required")
	}

	return config, nil
}
