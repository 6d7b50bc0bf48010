package constants

import "time"

const (
	CacheKeyIdentity   = "library:auth:identity:%s" // %s -> sha256 of the raw token
	CacheKeyTechDetail = "library:techdetail:%s"    // %s -> slug
)

const (
	CacheExpireIdentityMax = 1 * time.Hour
	CacheExpireTechDetail  = 12 * time.Hour
)
