package postid

import (
	"crypto/rand"
	"fmt"
	"time"
)

// Alphabet for the random suffix (36 characters: 0-9, a-z)
const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// SuffixLength is the number of random characters appended to a blog ID.
const SuffixLength = 9

// New mints a blog post identifier of the form blog-<unix-millis>-<suffix>.
// The millisecond prefix plus 36^9 random suffixes makes collisions
// structurally impossible for a single-writer admin surface.
func New() (string, error) {
	suffix, err := GenerateSuffix(SuffixLength)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("blog-%d-%s", time.Now().UnixMilli(), suffix), nil
}

// GenerateSuffix creates a cryptographically secure random base36 string.
func GenerateSuffix(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("invalid suffix length: %d", length)
	}

	// Rejection sampling to avoid modulo bias.
	// 252 is the largest multiple of 36 below 256.
	const maxRandomByte = 252

	suffix := make([]byte, length)
	buf := make([]byte, length*2)
	written := 0

	for written < length {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("failed to read secure random bytes: %w", err)
		}

		for _, b := range buf {
			if b >= maxRandomByte {
				continue
			}
			suffix[written] = alphabet[int(b)%len(alphabet)]
			written++
			if written == length {
				break
			}
		}
	}

	return string(suffix), nil
}
