package repositories

import (
	"context"
	"fmt"
	"library-articles/app/server/errs"
	"library-articles/app/server/models"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LoanRepository interface {
	// Active returns the open loan of email on bookID, or errs.ErrNoActiveLoan.
	Active(ctx context.Context, email string, bookID uint) (*models.Loan, error)
	ActiveForUpdate(ctx context.Context, email string, bookID uint) (*models.Loan, error)
	CountActive(ctx context.Context, email string) (int64, error)
	// ListActive preloads the book of every loan, soonest due first.
	ListActive(ctx context.Context, email string) ([]models.Loan, error)
	// Create fails with errs.ErrAlreadyCheckedOut when an open loan exists.
	Create(ctx context.Context, loan *models.Loan) error
	Close(ctx context.Context, id uint, at time.Time) error
	Extend(ctx context.Context, id uint, due time.Time) error
}

type gormLoanRepository struct {
	db *gorm.DB
}

func (r *gormLoanRepository) active(db *gorm.DB, email string, bookID uint) (*models.Loan, error) {
	var loan models.Loan
	if err := db.Where("user_email = ? AND book_id = ? AND returned_at IS NULL", email, bookID).First(&loan).Error; err != nil {
		return nil, notFound(err, errs.ErrNoActiveLoan)
	}
	return &loan, nil
}

func (r *gormLoanRepository) Active(ctx context.Context, email string, bookID uint) (*models.Loan, error) {
	return r.active(r.db.WithContext(ctx), email, bookID)
}

func (r *gormLoanRepository) ActiveForUpdate(ctx context.Context, email string, bookID uint) (*models.Loan, error) {
	return r.active(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), email, bookID)
}

func (r *gormLoanRepository) CountActive(ctx context.Context, email string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Loan{}).
		Where("user_email = ? AND returned_at IS NULL", email).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count loans: %w", err)
	}
	return count, nil
}

func (r *gormLoanRepository) ListActive(ctx context.Context, email string) ([]models.Loan, error) {
	var loans []models.Loan
	if err := r.db.WithContext(ctx).Preload("Book").
		Where("user_email = ? AND returned_at IS NULL", email).
		Order("due_date ASC").
		Find(&loans).Error; err != nil {
		return nil, fmt.Errorf("list loans: %w", err)
	}
	return loans, nil
}

func (r *gormLoanRepository) Create(ctx context.Context, loan *models.Loan) error {
	if err := r.db.WithContext(ctx).Omit("Book").Create(loan).Error; err != nil {
		if isUniqueViolation(err) {
			return errs.ErrAlreadyCheckedOut
		}
		return fmt.Errorf("create loan: %w", err)
	}
	return nil
}

func (r *gormLoanRepository) Close(ctx context.Context, id uint, at time.Time) error {
	result := r.db.WithContext(ctx).Model(&models.Loan{}).
		Where("id = ? AND returned_at IS NULL", id).
		Update("returned_at", at)
	if result.Error != nil {
		return fmt.Errorf("close loan: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.ErrNoActiveLoan
	}
	return nil
}

func (r *gormLoanRepository) Extend(ctx context.Context, id uint, due time.Time) error {
	result := r.db.WithContext(ctx).Model(&models.Loan{}).
		Where("id = ? AND returned_at IS NULL", id).
		Updates(map[string]any{
			"due_date": due,
			"renewals": gorm.Expr("renewals + 1"),
		})
	if result.Error != nil {
		return fmt.Errorf("extend loan: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.ErrNoActiveLoan
	}
	return nil
}
