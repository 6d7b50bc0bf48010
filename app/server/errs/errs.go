// Package errs holds the typed failures shared by services and handlers.
//
// Every failure a client can observe is an *Error carrying a Kind, which
// decides the HTTP status, and a stable Code for machines.
package errs

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	KindUnauthenticated Kind = "unauthenticated"
	KindForbidden       Kind = "forbidden"
	KindNotFound        Kind = "not_found"
	KindConflict        Kind = "conflict"
	KindInvalidInput    Kind = "invalid_input"
	KindUnavailable     Kind = "unavailable"
	KindInternal        Kind = "internal"
)

type Error struct {
	Kind    Kind
	Code    string
	Message string
}

func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

func (e *Error) Error() string {
	return e.Message
}

// Is matches any *Error with the same code, so messages may vary per call site.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

var (
	ErrUnauthenticated = New(KindUnauthenticated, "unauthenticated", "missing, malformed or expired token")
	ErrForbidden       = New(KindForbidden, "forbidden", "admin role required")
	ErrInvalidInput    = New(KindInvalidInput, "invalid_input", "invalid input")
	ErrInternal        = New(KindInternal, "internal", "internal server error")

	ErrBookNotFound         = New(KindNotFound, "book_not_found", "book not found")
	ErrAlreadyCheckedOut    = New(KindConflict, "already_checked_out", "book is already checked out by this user")
	ErrNotAvailable         = New(KindUnavailable, "not_available", "no copies of this book are available")
	ErrNoActiveLoan         = New(KindNotFound, "no_active_loan", "no active loan for this book")
	ErrRenewalLimitExceeded = New(KindUnavailable, "renewal_limit_exceeded", "renewal limit reached for this loan")
	ErrLoanOverdue          = New(KindUnavailable, "loan_overdue", "overdue loans cannot be renewed")

	ErrArticleNotFound    = New(KindNotFound, "article_not_found", "article not found")
	ErrSlugTaken          = New(KindConflict, "slug_taken", "slug is already in use")
	ErrTechDetailNotFound = New(KindNotFound, "tech_detail_not_found", "tech detail not found")
	ErrDuplicateScore     = New(KindConflict, "duplicate_score", "score already posted for this article, use PUT to change it")
	ErrScoreNotFound      = New(KindNotFound, "score_not_found", "no score posted for this article yet")
)

// Invalid returns an invalid-input error with a specific message.
func Invalid(format string, args ...any) *Error {
	return New(KindInvalidInput, ErrInvalidInput.Code, fmt.Sprintf(format, args...))
}

// From extracts the client-facing error from err. Anything untyped is internal.
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return ErrInternal
}

func KindOf(err error) Kind {
	return From(err).Kind
}

func Status(kind Kind) int {
	switch kind {
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindInvalidInput, KindUnavailable:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// FromStatus maps a bare status code (router and binder failures) onto a kind.
func FromStatus(status int) *Error {
	msg := http.StatusText(status)
	switch {
	case status == http.StatusUnauthorized:
		return New(KindUnauthenticated, ErrUnauthenticated.Code, msg)
	case status == http.StatusForbidden:
		return New(KindForbidden, ErrForbidden.Code, msg)
	case status == http.StatusNotFound:
		return New(KindNotFound, "not_found", msg)
	case status == http.StatusConflict:
		return New(KindConflict, "conflict", msg)
	case status >= 400 && status < 500:
		return New(KindInvalidInput, ErrInvalidInput.Code, msg)
	default:
		return ErrInternal
	}
}
