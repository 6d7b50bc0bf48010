package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"library-articles/app/server/constants"
	"library-articles/app/server/errs"
	"library-articles/app/server/types"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// CachedVerifier remembers verified tokens in redis until they expire (capped
// at an hour), so repeated requests skip signature checks. Failures are never
// cached.
type CachedVerifier struct {
	next Verifier
	rdb  *redis.Client
	l    *zap.Logger
	now  func() time.Time
}

func NewCachedVerifier(next Verifier, rdb *redis.Client, l *zap.Logger) *CachedVerifier {
	return &CachedVerifier{
		next: next,
		rdb:  rdb,
		l:    l,
		now:  time.Now,
	}
}

func (v *CachedVerifier) Verify(ctx context.Context, token string) (*Identity, error) {
	tokenString := StripBearer(token)
	if len(tokenString) == 0 {
		return nil, fmt.Errorf("%w: token string is empty", errs.ErrUnauthenticated)
	}

	sum := sha256.Sum256([]byte(tokenString))
	cacheKey := fmt.Sprintf(constants.CacheKeyIdentity, hex.EncodeToString(sum[:]))

	// cache first
	var cached types.CacheIdentity
	if cacheBytes, err := v.rdb.Get(ctx, cacheKey).Bytes(); err != nil {
		if !errors.Is(err, redis.Nil) {
			v.l.Error("failed to query cache for identity", zap.Error(err))
		}
	} else if err = json.Unmarshal(cacheBytes, &cached); err != nil {
		v.l.Error("failed to unmarshal identity", zap.ByteString("cacheBytes", cacheBytes), zap.Error(err))
		v.rdb.Del(ctx, cacheKey)
	} else if expiresAt := time.Unix(cached.ExpiresAt, 0); v.now().Before(expiresAt) {
		return &Identity{
			UID:       cached.UID,
			Email:     cached.Email,
			Name:      cached.Name,
			Admin:     cached.Admin,
			ExpiresAt: expiresAt,
		}, nil
	}

	identity, err := v.next.Verify(ctx, tokenString)
	if err != nil {
		return nil, err
	}

	ttl := identity.ExpiresAt.Sub(v.now())
	if ttl > constants.CacheExpireIdentityMax {
		ttl = constants.CacheExpireIdentityMax
	}
	if ttl <= 0 {
		return identity, nil
	}

	if cacheBytes, err := json.Marshal(&types.CacheIdentity{
		UID:       identity.UID,
		Email:     identity.Email,
		Name:      identity.Name,
		Admin:     identity.Admin,
		ExpiresAt: identity.ExpiresAt.Unix(),
	}); err != nil {
		v.l.Error("failed to marshal identity", zap.Error(err))
	} else if err = v.rdb.Set(ctx, cacheKey, cacheBytes, ttl).Err(); err != nil {
		v.l.Error("failed to cache identity", zap.Error(err))
	}

	return identity, nil
}
