package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"
)

// Default expiry duration for presigned URLs
const DefaultPresignedURLExpiry = 15 * time.Minute

// ObjectStore defines the interface for object storage operations.
type ObjectStore interface {
	// Upload stores raw bytes under the given key and returns a fetchable
	// URL for the object.
	Upload(ctx context.Context, objectKey string, contentType string, body io.Reader) (string, error)

	// GeneratePresignedDownloadURL creates a temporary URL that allows GET
	// requests for the object directly from the storage provider.
	GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error)

	// DeleteObject removes an object from the storage provider.
	DeleteObject(ctx context.Context, objectKey string) error
}

// VideoKey derives the object key for a form video:
// {userID}/{exerciseName}/{timestamp}.mp4. The millisecond timestamp keeps
// repeated uploads of the same exercise from colliding.
func VideoKey(userID, exerciseName string, now time.Time) string {
	return fmt.Sprintf("%s/%s/%d.mp4", userID, sanitizeKeyPart(exerciseName), now.UnixMilli())
}

// sanitizeKeyPart makes a free-text exercise name safe inside an object key
// and the URL built from it.
func sanitizeKeyPart(part string) string {
	var b strings.Builder
	for _, r := range part {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('-')
		}
	}
	if b.Len() == 0 {
		return "exercise"
	}
	return b.String()
}
