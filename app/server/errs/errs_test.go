package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("post score: %w", Invalid("score must be between %d and %d", 0, 5))
	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.False(t, errors.Is(err, ErrDuplicateScore))
	assert.Equal(t, "score must be between 0 and 5", From(err).Message)
}

func TestFromUntypedIsInternal(t *testing.T) {
	err := From(errors.New("connection reset"))
	assert.Equal(t, KindInternal, err.Kind)
	assert.Equal(t, "internal server error", err.Message)
}

func TestStatusMapping(t *testing.T) {
	cases := map[error]int{
		ErrUnauthenticated:      http.StatusUnauthorized,
		ErrForbidden:            http.StatusForbidden,
		ErrArticleNotFound:      http.StatusNotFound,
		ErrNoActiveLoan:         http.StatusNotFound,
		ErrDuplicateScore:       http.StatusConflict,
		ErrAlreadyCheckedOut:    http.StatusConflict,
		ErrNotAvailable:         http.StatusBadRequest,
		ErrRenewalLimitExceeded: http.StatusBadRequest,
		ErrInvalidInput:         http.StatusBadRequest,
		errors.New("boom"):      http.StatusInternalServerError,
	}
	for err, want := range cases {
		assert.Equal(t, want, Status(KindOf(err)), err.Error())
	}
}

func TestFromStatus(t *testing.T) {
	assert.Equal(t, KindNotFound, FromStatus(http.StatusNotFound).Kind)
	assert.Equal(t, KindInvalidInput, FromStatus(http.StatusMethodNotAllowed).Kind)
	assert.Equal(t, KindInternal, FromStatus(http.StatusBadGateway).Kind)
}
