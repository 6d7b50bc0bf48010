package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Local writes images into a directory. Serving that directory is left to
// whatever sits in front of the server.
type Local struct {
	dir       string
	urlPrefix string
}

func NewLocal(dir, urlPrefix string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	if !strings.HasSuffix(urlPrefix, "/") {
		urlPrefix += "/"
	}
	return &Local{dir: dir, urlPrefix: urlPrefix}, nil
}

func (s *Local) Save(_ context.Context, in Upload) (string, error) {
	name := ObjectName(in.Filename)
	if err := os.WriteFile(filepath.Join(s.dir, name), in.Content, 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return s.urlPrefix + name, nil
}
