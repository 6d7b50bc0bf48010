// Package storage keeps uploaded images and hands back their public URL.
package storage

import (
	"context"
	"fmt"
	"regexp"

	"github.com/google/uuid"
)

type Upload struct {
	Filename    string
	ContentType string
	Content     []byte
}

type Store interface {
	// Save stores the upload under a fresh unique name and returns its URL.
	Save(ctx context.Context, in Upload) (string, error)
}

var illegalFilenameChars = regexp.MustCompile(`[^\w\-.]`)

func SanitizeFilename(filename string) string {
	if filename == "" {
		return "unnamed"
	}
	return illegalFilenameChars.ReplaceAllString(filename, "_")
}

// ObjectName prefixes the sanitized filename with a random id.
func ObjectName(filename string) string {
	return fmt.Sprintf("%s_%s", uuid.NewString(), SanitizeFilename(filename))
}
