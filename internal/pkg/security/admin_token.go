package security

import (
	"crypto/subtle"

	"github.com/amritamcare/amritam-cms/internal/pkg/env"
)

// AdminToken returns the shared admin secret. The development fallback only
// applies when APP_ENV=dev; in production an unset token disables the panel.
func AdminToken() string {
	token := env.GetEnv("ADMIN_TOKEN", "")
	if token == "" && env.IsDev() {
		return "admin123"
	}
	return token
}

// VerifyAdminToken compares a submitted secret in constant time.
func VerifyAdminToken(provided string) bool {
	token := AdminToken()
	if token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(provided), []byte(token)) == 1
}
