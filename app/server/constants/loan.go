package constants

import "time"

const (
	DefaultLoanPeriod  = 7 * 24 * time.Hour
	DefaultMaxRenewals = 2
)

// Book list paging
const (
	DefaultPageSize = 5
	MaxPageSize     = 100
)
