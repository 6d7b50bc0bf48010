package config

import "time"

type Config struct {
	System struct {
		IsProd                bool     // production mode
		Listen                string   // listen address
		DBConnectionString    string   // Postgres connection string
		RedisConnectionString string   // Redis connection string, empty disables caching
		CORSOrigins           []string // allowed browser origins
		RateLimit             float64  // requests per second per client, 0 disables
	}
	Security struct {
		FirebaseProjectID string        // audience and issuer of accepted ID tokens
		AdminEmails       []string      // admin registry, in addition to the admin custom claim
		AuthTimeout       time.Duration // bound on calls to the identity provider
	}
	Loan struct {
		Period      time.Duration // how long a checkout or renewal lasts
		MaxRenewals int           // renewals allowed per loan
	}
	Upload struct {
		Dir       string // local directory for uploaded images
		URLPrefix string // public URL prefix of the local directory

		S3Bucket    string // when set, images go to S3 instead of the local directory
		S3Region    string
		S3Endpoint  string // custom endpoint (MinIO, Spaces), optional
		S3AccessKey string
		S3SecretKey string
		S3PublicURL string // public base URL of the bucket
	}
}
