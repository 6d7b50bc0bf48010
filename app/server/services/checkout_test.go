package services

import (
	"context"
	"fmt"
	"library-articles/app/server/errs"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const reader = "reader@example.com"

func newTestCheckout(t *testing.T) (*CheckoutService, *BookService) {
	t.Helper()
	store := newTestStore(t)
	return NewCheckoutService(store, 7*24*time.Hour, 2), NewBookService(store)
}

func TestCheckoutThenIsCheckedOut(t *testing.T) {
	checkout, books := newTestCheckout(t)
	ctx := context.Background()
	book := addBook(t, checkout.store, "Dune", 2)

	checkedOut, err := checkout.IsCheckedOutByUser(ctx, reader, book.ID)
	require.NoError(t, err)
	assert.False(t, checkedOut)

	after, err := checkout.Checkout(ctx, reader, book.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, after.CopiesAvailable)

	checkedOut, err = checkout.IsCheckedOutByUser(ctx, reader, book.ID)
	require.NoError(t, err)
	assert.True(t, checkedOut)

	stored, err := books.Get(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.CopiesAvailable)

	count, err := checkout.CountLoans(ctx, reader)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	_, err = checkout.Checkout(ctx, reader, book.ID)
	assert.ErrorIs(t, err, errs.ErrAlreadyCheckedOut)
}

func TestCheckoutUnavailableCreatesNoLoan(t *testing.T) {
	checkout, _ := newTestCheckout(t)
	ctx := context.Background()
	book := addBook(t, checkout.store, "Dune", 0)

	_, err := checkout.Checkout(ctx, reader, book.ID)
	assert.ErrorIs(t, err, errs.ErrNotAvailable)
	assert.Equal(t, errs.KindUnavailable, errs.KindOf(err))

	count, err := checkout.CountLoans(ctx, reader)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestCheckoutUnknownBook(t *testing.T) {
	checkout, _ := newTestCheckout(t)
	_, err := checkout.Checkout(context.Background(), reader, 404)
	assert.ErrorIs(t, err, errs.ErrBookNotFound)
}

func TestReturnWithoutLoan(t *testing.T) {
	checkout, _ := newTestCheckout(t)
	book := addBook(t, checkout.store, "Dune", 1)
	assert.ErrorIs(t, checkout.Return(context.Background(), reader, book.ID), errs.ErrNoActiveLoan)
}

func TestReturnRestoresAvailability(t *testing.T) {
	checkout, books := newTestCheckout(t)
	ctx := context.Background()
	book := addBook(t, checkout.store, "Dune", 1)

	_, err := checkout.Checkout(ctx, reader, book.ID)
	require.NoError(t, err)
	require.NoError(t, checkout.Return(ctx, reader, book.ID))

	stored, err := books.Get(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.CopiesAvailable)

	checkedOut, err := checkout.IsCheckedOutByUser(ctx, reader, book.ID)
	require.NoError(t, err)
	assert.False(t, checkedOut)

	assert.ErrorIs(t, checkout.Return(ctx, reader, book.ID), errs.ErrNoActiveLoan)

	// the book can be borrowed again
	_, err = checkout.Checkout(ctx, reader, book.ID)
	assert.NoError(t, err)
}

func TestConcurrentCheckoutOfLastCopy(t *testing.T) {
	checkout, books := newTestCheckout(t)
	ctx := context.Background()
	book := addBook(t, checkout.store, "Dune", 1)

	const readers = 2
	results := make([]error, readers)
	var wg sync.WaitGroup
	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = checkout.Checkout(ctx, fmt.Sprintf("reader%d@example.com", i), book.ID)
		}(i)
	}
	wg.Wait()

	var succeeded, unavailable int
	for _, err := range results {
		switch {
		case err == nil:
			succeeded++
		case errs.KindOf(err) == errs.KindUnavailable:
			unavailable++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, unavailable)

	stored, err := books.Get(ctx, book.ID)
	require.NoError(t, err)
	assert.Zero(t, stored.CopiesAvailable)
}

func TestRenew(t *testing.T) {
	checkout, _ := newTestCheckout(t)
	ctx := context.Background()
	book := addBook(t, checkout.store, "Dune", 1)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	checkout.now = func() time.Time { return now }

	_, err := checkout.Renew(ctx, reader, book.ID)
	assert.ErrorIs(t, err, errs.ErrNoActiveLoan)

	_, err = checkout.Checkout(ctx, reader, book.ID)
	require.NoError(t, err)

	now = now.Add(3 * 24 * time.Hour)
	loan, err := checkout.Renew(ctx, reader, book.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, loan.Renewals)
	assert.True(t, loan.DueDate.Equal(now.Add(7*24*time.Hour)))

	_, err = checkout.Renew(ctx, reader, book.ID)
	require.NoError(t, err)

	_, err = checkout.Renew(ctx, reader, book.ID)
	assert.ErrorIs(t, err, errs.ErrRenewalLimitExceeded)
}

func TestRenewOverdue(t *testing.T) {
	checkout, _ := newTestCheckout(t)
	ctx := context.Background()
	book := addBook(t, checkout.store, "Dune", 1)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	checkout.now = func() time.Time { return now }
	_, err := checkout.Checkout(ctx, reader, book.ID)
	require.NoError(t, err)

	now = now.Add(8 * 24 * time.Hour)
	_, err = checkout.Renew(ctx, reader, book.ID)
	assert.ErrorIs(t, err, errs.ErrLoanOverdue)
}

func TestCurrentLoansDaysLeft(t *testing.T) {
	checkout, _ := newTestCheckout(t)
	ctx := context.Background()
	first := addBook(t, checkout.store, "Dune", 1)
	second := addBook(t, checkout.store, "Emma", 1)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	checkout.now = func() time.Time { return now }
	_, err := checkout.Checkout(ctx, reader, first.ID)
	require.NoError(t, err)

	now = now.Add(2 * 24 * time.Hour)
	_, err = checkout.Checkout(ctx, reader, second.ID)
	require.NoError(t, err)

	now = now.Add(7 * 24 * time.Hour)
	loans, err := checkout.CurrentLoans(ctx, reader)
	require.NoError(t, err)
	require.Len(t, loans, 2)
	assert.Equal(t, "Dune", loans[0].Book.Title)
	assert.Equal(t, -2, loans[0].DaysLeft)
	assert.Equal(t, "Emma", loans[1].Book.Title)
	assert.Equal(t, 0, loans[1].DaysLeft)
}
