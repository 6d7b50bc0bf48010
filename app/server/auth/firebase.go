package auth

import (
	"context"
	"errors"
	"fmt"
	"library-articles/app/server/errs"
	"strings"
	"time"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// IDTokenVerifier is the part of the Firebase Admin auth client we use.
// *fbauth.Client satisfies it.
type IDTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
}

// NewFirebaseClient builds an Admin SDK auth client for projectID. Verifying
// ID tokens needs no service account, only the public signing keys, so no
// credentials are loaded. FIREBASE_AUTH_EMULATOR_HOST is honored by the SDK.
func NewFirebaseClient(ctx context.Context, projectID string) (*fbauth.Client, error) {
	if len(projectID) == 0 {
		return nil, errors.New("firebase project id is empty")
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, option.WithoutAuthentication())
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("init firebase auth: %w", err)
	}
	return client, nil
}

type FirebaseVerifier struct {
	client  IDTokenVerifier
	timeout time.Duration
}

func NewFirebaseVerifier(client IDTokenVerifier, timeout time.Duration) (*FirebaseVerifier, error) {
	if client == nil {
		return nil, errors.New("firebase client is nil")
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &FirebaseVerifier{
		client:  client,
		timeout: timeout,
	}, nil
}

func (v *FirebaseVerifier) Verify(ctx context.Context, token string) (*Identity, error) {
	// check if present
	tokenString := StripBearer(token)
	if len(tokenString) == 0 {
		return nil, fmt.Errorf("%w: token string is empty", errs.ErrUnauthenticated)
	}

	// key refreshes hit the network
	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	type result struct {
		tok *fbauth.Token
		err error
	}
	done := make(chan result, 1)
	go func() {
		tok, err := v.client.VerifyIDToken(ctx, tokenString)
		done <- result{tok, err}
	}()

	var tok *fbauth.Token
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: verify token: %v", errs.ErrUnauthenticated, ctx.Err())
	case r := <-done:
		if r.err != nil {
			return nil, fmt.Errorf("%w: verify token: %v", errs.ErrUnauthenticated, r.err)
		}
		tok = r.tok
	}
	if tok == nil || tok.UID == "" {
		return nil, fmt.Errorf("%w: token has no subject", errs.ErrUnauthenticated)
	}

	email, _ := tok.Claims["email"].(string)
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, fmt.Errorf("%w: token has no email", errs.ErrUnauthenticated)
	}
	name, _ := tok.Claims["name"].(string)
	admin, _ := tok.Claims["admin"].(bool) // custom claim set by the admin script

	return &Identity{
		UID:       tok.UID,
		Email:     email,
		Name:      name,
		Admin:     admin,
		ExpiresAt: time.Unix(tok.Expires, 0),
	}, nil
}
