// Package repositories holds one explicit gorm-backed repository per entity.
//
// Repositories translate storage failures into typed errors from errs: a
// missing row becomes the entity's not-found error and a unique violation
// becomes the matching conflict.
package repositories

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// PageQuery selects a 0-based page of Size rows.
type PageQuery struct {
	Page int
	Size int
}

// offset saturates instead of wrapping, so a huge page reads past the end.
func (q PageQuery) offset() int {
	if q.Size > 0 && q.Page > math.MaxInt/q.Size {
		return math.MaxInt
	}
	return q.Page * q.Size
}

type Store struct {
	db *gorm.DB

	Books       BookRepository
	Loans       LoanRepository
	Articles    ArticleRepository
	TechDetails TechDetailRepository
	Scores      ReviewScoreRepository
	Users       UserRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db: db,

		Books:       &gormBookRepository{db: db},
		Loans:       &gormLoanRepository{db: db},
		Articles:    &gormArticleRepository{db: db},
		TechDetails: &gormTechDetailRepository{db: db},
		Scores:      &gormReviewScoreRepository{db: db},
		Users:       &gormUserRepository{db: db},
	}
}

// InTx runs fn with repositories bound to one transaction. Everything fn does
// must go through tx; it is committed when fn returns nil.
func (s *Store) InTx(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("get sql db: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	// sqlite, when the dialector did not translate
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// notFound maps gorm.ErrRecordNotFound onto the entity's typed error.
func notFound(err error, typed error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return typed
	}
	return err
}
