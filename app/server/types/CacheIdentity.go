package types

// CacheIdentity is the redis payload of a verified token.
type CacheIdentity struct {
	UID       string `json:"uid"`
	Email     string `json:"email"`
	Name      string `json:"name,omitempty"`
	Admin     bool   `json:"admin,omitempty"`
	ExpiresAt int64  `json:"exp"` // Unix second
}
