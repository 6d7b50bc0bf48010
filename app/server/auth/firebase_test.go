package auth

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"library-articles/app/server/errs"
	"testing"
	"time"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testProject = "library-test"

// staticClient checks RS256 tokens against one key, standing in for the
// Admin SDK client.
type staticClient struct {
	key *rsa.PublicKey
}

func (c staticClient) VerifyIDToken(_ context.Context, idToken string) (*fbauth.Token, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(idToken, claims, func(*jwt.Token) (interface{}, error) {
		return c.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithAudience(testProject),
		jwt.WithIssuer("https://securetoken.google.com/"+testProject),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}

	sub, _ := claims.GetSubject()
	exp, _ := claims.GetExpirationTime()
	return &fbauth.Token{
		Subject: sub,
		UID:     sub,
		Expires: exp.Unix(),
		Claims:  claims,
	}, nil
}

type blockingClient struct{}

func (blockingClient) VerifyIDToken(ctx context.Context, _ string) (*fbauth.Token, error) {
	time.Sleep(time.Second)
	return &fbauth.Token{UID: "late", Claims: map[string]interface{}{"email": "late@example.com"}}, nil
}

func newTestKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return key
}

func signToken(t *testing.T, key *rsa.PrivateKey, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	require.NoError(t, err)
	return signed
}

func validClaims() jwt.MapClaims {
	now := time.Now()
	return jwt.MapClaims{
		"aud":   testProject,
		"iss":   "https://securetoken.google.com/" + testProject,
		"sub":   "uid-1",
		"email": "Reader@Example.com",
		"name":  "Reader",
		"iat":   now.Add(-time.Minute).Unix(),
		"exp":   now.Add(time.Hour).Unix(),
	}
}

func newTestVerifier(t *testing.T, key *rsa.PrivateKey) *FirebaseVerifier {
	t.Helper()
	v, err := NewFirebaseVerifier(staticClient{key: &key.PublicKey}, time.Second)
	require.NoError(t, err)
	return v
}

func TestFirebaseVerifierAcceptsValidToken(t *testing.T) {
	key := newTestKey(t)
	v := newTestVerifier(t, key)

	identity, err := v.Verify(context.Background(), signToken(t, key, validClaims()))
	require.NoError(t, err)
	assert.Equal(t, "uid-1", identity.UID)
	assert.Equal(t, "reader@example.com", identity.Email)
	assert.Equal(t, "Reader", identity.Name)
	assert.False(t, identity.Admin)
	assert.True(t, identity.ExpiresAt.After(time.Now()))
}

func TestFirebaseVerifierBearerPrefixAndAdminClaim(t *testing.T) {
	key := newTestKey(t)
	v := newTestVerifier(t, key)

	claims := validClaims()
	claims["admin"] = true
	identity, err := v.Verify(context.Background(), "bearer "+signToken(t, key, claims))
	require.NoError(t, err)
	assert.True(t, identity.Admin)
}

func TestFirebaseVerifierRejects(t *testing.T) {
	key := newTestKey(t)
	other := newTestKey(t)
	v := newTestVerifier(t, key)

	hmacToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, validClaims()).SignedString([]byte("secret"))
	require.NoError(t, err)

	cases := map[string]string{
		"empty":     "",
		"garbage":   "not-a-jwt",
		"bearer":    "Bearer ",
		"hmac":      hmacToken,
		"signature": signToken(t, other, validClaims()),
		"expired": signToken(t, key, with(validClaims(), func(c jwt.MapClaims) {
			c["exp"] = time.Now().Add(-time.Hour).Unix()
		})),
		"audience": signToken(t, key, with(validClaims(), func(c jwt.MapClaims) {
			c["aud"] = "someone-else"
		})),
		"no subject": signToken(t, key, with(validClaims(), func(c jwt.MapClaims) {
			delete(c, "sub")
		})),
		"no email": signToken(t, key, with(validClaims(), func(c jwt.MapClaims) {
			delete(c, "email")
		})),
	}

	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := v.Verify(context.Background(), token)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errs.ErrUnauthenticated))
			assert.Equal(t, errs.KindUnauthenticated, errs.KindOf(err))
		})
	}
}

func TestFirebaseVerifierTimesOut(t *testing.T) {
	v, err := NewFirebaseVerifier(blockingClient{}, 50*time.Millisecond)
	require.NoError(t, err)

	start := time.Now()
	_, err = v.Verify(context.Background(), "some-token")
	assert.ErrorIs(t, err, errs.ErrUnauthenticated)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestNewFirebaseVerifierValidates(t *testing.T) {
	_, err := NewFirebaseVerifier(nil, time.Second)
	assert.Error(t, err)

	_, err = NewFirebaseClient(context.Background(), "")
	assert.Error(t, err)
}

func TestStripBearer(t *testing.T) {
	assert.Equal(t, "abc", StripBearer("Bearer abc"))
	assert.Equal(t, "abc", StripBearer("BEARER  abc "))
	assert.Equal(t, "abc", StripBearer("abc"))
	assert.Equal(t, "", StripBearer("Bearer"))
}

func with(claims jwt.MapClaims, mutate func(jwt.MapClaims)) jwt.MapClaims {
	mutate(claims)
	return claims
}
