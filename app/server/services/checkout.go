package services

import (
	"context"
	"errors"
	"library-articles/app/server/errs"
	"library-articles/app/server/models"
	"library-articles/app/server/repositories"
	"time"
)

// LoanSummary is one current loan as shown on the shelf page.
type LoanSummary struct {
	Book     models.Book
	DueDate  time.Time
	Renewals int
	DaysLeft int // negative once overdue
}

type CheckoutService struct {
	store       *repositories.Store
	period      time.Duration
	maxRenewals int
	now         func() time.Time
}

func NewCheckoutService(store *repositories.Store, period time.Duration, maxRenewals int) *CheckoutService {
	return &CheckoutService{
		store:       store,
		period:      period,
		maxRenewals: maxRenewals,
		now:         time.Now,
	}
}

// Checkout lends one copy of bookID to email and returns the book as it is
// after the checkout.
func (s *CheckoutService) Checkout(ctx context.Context, email string, bookID uint) (*models.Book, error) {
	var book *models.Book
	err := s.store.InTx(ctx, func(tx *repositories.Store) (err error) {
		// row lock, held until commit
		if book, err = tx.Books.GetForUpdate(ctx, bookID); err != nil {
			return err
		}

		if _, err = tx.Loans.Active(ctx, email, bookID); err == nil {
			return errs.ErrAlreadyCheckedOut
		} else if !errors.Is(err, errs.ErrNoActiveLoan) {
			return err
		}

		if book.CopiesAvailable <= 0 {
			return errs.ErrNotAvailable
		}
		if err = tx.Books.TakeCopy(ctx, bookID); err != nil {
			return err
		}

		now := s.now()
		if err = tx.Loans.Create(ctx, &models.Loan{
			UserEmail:    email,
			BookID:       bookID,
			CheckoutDate: now,
			DueDate:      now.Add(s.period),
		}); err != nil {
			return err
		}

		book.CopiesAvailable--
		return nil
	})
	if err != nil {
		return nil, err
	}
	return book, nil
}

func (s *CheckoutService) Return(ctx context.Context, email string, bookID uint) error {
	return s.store.InTx(ctx, func(tx *repositories.Store) error {
		loan, err := tx.Loans.ActiveForUpdate(ctx, email, bookID)
		if err != nil {
			return err
		}
		if err = tx.Loans.Close(ctx, loan.ID, s.now()); err != nil {
			return err
		}
		return tx.Books.PutBackCopy(ctx, bookID)
	})
}

// Renew pushes the due date to one loan period from now.
func (s *CheckoutService) Renew(ctx context.Context, email string, bookID uint) (*models.Loan, error) {
	var loan *models.Loan
	err := s.store.InTx(ctx, func(tx *repositories.Store) (err error) {
		if loan, err = tx.Loans.ActiveForUpdate(ctx, email, bookID); err != nil {
			return err
		}

		now := s.now()
		if now.After(loan.DueDate) {
			return errs.ErrLoanOverdue
		}
		if loan.Renewals >= s.maxRenewals {
			return errs.ErrRenewalLimitExceeded
		}

		due := now.Add(s.period)
		if err = tx.Loans.Extend(ctx, loan.ID, due); err != nil {
			return err
		}
		loan.DueDate = due
		loan.Renewals++
		return nil
	})
	if err != nil {
		return nil, err
	}
	return loan, nil
}

func (s *CheckoutService) IsCheckedOutByUser(ctx context.Context, email string, bookID uint) (bool, error) {
	if _, err := s.store.Loans.Active(ctx, email, bookID); err != nil {
		if errors.Is(err, errs.ErrNoActiveLoan) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *CheckoutService) CountLoans(ctx context.Context, email string) (int64, error) {
	return s.store.Loans.CountActive(ctx, email)
}

func (s *CheckoutService) CurrentLoans(ctx context.Context, email string) ([]LoanSummary, error) {
	loans, err := s.store.Loans.ListActive(ctx, email)
	if err != nil {
		return nil, err
	}

	today := truncateDay(s.now())
	summaries := make([]LoanSummary, 0, len(loans))
	for _, loan := range loans {
		summaries = append(summaries, LoanSummary{
			Book:     loan.Book,
			DueDate:  loan.DueDate,
			Renewals: loan.Renewals,
			DaysLeft: int(truncateDay(loan.DueDate).Sub(today).Hours() / 24),
		})
	}
	return summaries, nil
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
