package inits

import (
	"fmt"
	"library-articles/app/server/config"
	"library-articles/app/server/constants"
	"os"
	"strconv"
	"strings"
	"time"
)

func Config() (cfg *config.Config, err error) {
	cfg = &config.Config{}

	// map env vars by hand
	{
		mode, exist := os.LookupEnv("MODE")
		cfg.System.IsProd = exist && strings.HasPrefix(strings.ToLower(mode), "p")
	}

	if listen, exist := os.LookupEnv("LISTEN"); !exist {
		cfg.System.Listen = ":8080" // default listen address
	} else {
		cfg.System.Listen = listen
	}

	if dbconn, exist := os.LookupEnv("DB_CONN"); !exist {
		return nil, fmt.Errorf("DB_CONN environment variable not set")
	} else {
		cfg.System.DBConnectionString = dbconn
	}

	// optional, caching is off without it
	cfg.System.RedisConnectionString = os.Getenv("REDIS_CONN")

	cfg.System.CORSOrigins = splitList(envOr("CORS_ORIGINS", "http://localhost:3000"))

	if cfg.System.RateLimit, err = strconv.ParseFloat(envOr("RATE_LIMIT", "20"), 64); err != nil || cfg.System.RateLimit < 0 {
		return nil, fmt.Errorf("RATE_LIMIT must be a non-negative number")
	}

	if projectID, exist := os.LookupEnv("FIREBASE_PROJECT_ID"); !exist || projectID == "" {
		return nil, fmt.Errorf("FIREBASE_PROJECT_ID environment variable not set")
	} else {
		cfg.Security.FirebaseProjectID = projectID
	}

	cfg.Security.AdminEmails = splitList(strings.ToLower(os.Getenv("ADMIN_EMAILS")))

	if cfg.Security.AuthTimeout, err = time.ParseDuration(envOr("AUTH_TIMEOUT", "5s")); err != nil || cfg.Security.AuthTimeout <= 0 {
		return nil, fmt.Errorf("AUTH_TIMEOUT must be a positive duration")
	}

	if days, exist := os.LookupEnv("LOAN_DAYS"); !exist {
		cfg.Loan.Period = constants.DefaultLoanPeriod
	} else if n, err := strconv.Atoi(days); err != nil || n <= 0 {
		return nil, fmt.Errorf("LOAN_DAYS must be a positive integer")
	} else {
		cfg.Loan.Period = time.Duration(n) * 24 * time.Hour
	}

	if renewals, exist := os.LookupEnv("LOAN_MAX_RENEWALS"); !exist {
		cfg.Loan.MaxRenewals = constants.DefaultMaxRenewals
	} else if n, err := strconv.Atoi(renewals); err != nil || n < 0 {
		return nil, fmt.Errorf("LOAN_MAX_RENEWALS must be a non-negative integer")
	} else {
		cfg.Loan.MaxRenewals = n
	}

	cfg.Upload.Dir = envOr("UPLOAD_DIR", "uploads")
	cfg.Upload.URLPrefix = envOr("UPLOAD_URL_PREFIX", "/uploads/")
	cfg.Upload.S3Bucket = os.Getenv("S3_BUCKET")
	cfg.Upload.S3Region = envOr("S3_REGION", "us-east-1")
	cfg.Upload.S3Endpoint = os.Getenv("S3_ENDPOINT")
	cfg.Upload.S3AccessKey = os.Getenv("S3_ACCESS_KEY")
	cfg.Upload.S3SecretKey = os.Getenv("S3_SECRET_KEY")
	cfg.Upload.S3PublicURL = os.Getenv("S3_PUBLIC_URL")

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v, exist := os.LookupEnv(key); exist && v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
