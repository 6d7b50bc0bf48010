// Package auth turns bearer tokens into verified identities.
package auth

import (
	"context"
	"strings"
	"time"
)

// Identity is what a verified token says about the caller.
type Identity struct {
	UID       string
	Email     string
	Name      string
	Admin     bool // admin custom claim
	ExpiresAt time.Time
}

type Verifier interface {
	// Verify checks token (with or without a "Bearer " prefix) and fails with
	// errs.ErrUnauthenticated when it is missing, malformed, expired or not
	// signed by the identity provider.
	Verify(ctx context.Context, token string) (*Identity, error)
}

func StripBearer(header string) string {
	header = strings.TrimSpace(header)
	if strings.EqualFold(header, "bearer") {
		return ""
	}
	if len(header) >= 7 && strings.EqualFold(header[:7], "bearer ") {
		header = strings.TrimSpace(header[7:])
	}
	return header
}
