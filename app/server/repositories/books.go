package repositories

import (
	"context"
	"errors"
	"fmt"
	"library-articles/app/server/errs"
	"library-articles/app/server/models"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookFilter struct {
	Title    string // case-insensitive substring
	Category string // exact match
}

type BookRepository interface {
	List(ctx context.Context, filter BookFilter, q PageQuery) ([]models.Book, int64, error)
	Get(ctx context.Context, id uint) (*models.Book, error)
	// GetForUpdate locks the row until the surrounding transaction ends.
	GetForUpdate(ctx context.Context, id uint) (*models.Book, error)
	// TakeCopy decrements availability, failing with errs.ErrNotAvailable when none is left.
	TakeCopy(ctx context.Context, id uint) error
	PutBackCopy(ctx context.Context, id uint) error
	// Upsert matches on title and author.
	Upsert(ctx context.Context, book *models.Book) (created bool, err error)
}

type gormBookRepository struct {
	db *gorm.DB
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func (r *gormBookRepository) List(ctx context.Context, filter BookFilter, q PageQuery) ([]models.Book, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Book{})
	if filter.Title != "" {
		query = query.Where(`LOWER(title) LIKE ? ESCAPE '\'`, "%"+escapeLike(strings.ToLower(filter.Title))+"%")
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count books: %w", err)
	}

	var books []models.Book
	if err := query.Order("id ASC").Offset(q.offset()).Limit(q.Size).Find(&books).Error; err != nil {
		return nil, 0, fmt.Errorf("list books: %w", err)
	}

	return books, total, nil
}

func (r *gormBookRepository) Get(ctx context.Context, id uint) (*models.Book, error) {
	var book models.Book
	if err := r.db.WithContext(ctx).First(&book, id).Error; err != nil {
		return nil, notFound(err, errs.ErrBookNotFound)
	}
	return &book, nil
}

func (r *gormBookRepository) GetForUpdate(ctx context.Context, id uint) (*models.Book, error) {
	var book models.Book
	if err := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).First(&book, id).Error; err != nil {
		return nil, notFound(err, errs.ErrBookNotFound)
	}
	return &book, nil
}

func (r *gormBookRepository) TakeCopy(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Model(&models.Book{}).
		Where("id = ? AND copies_available > 0", id).
		Update("copies_available", gorm.Expr("copies_available - 1"))
	if result.Error != nil {
		return fmt.Errorf("take copy: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.ErrNotAvailable
	}
	return nil
}

func (r *gormBookRepository) PutBackCopy(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Model(&models.Book{}).
		Where("id = ? AND copies_available < copies", id).
		Update("copies_available", gorm.Expr("copies_available + 1"))
	if result.Error != nil {
		return fmt.Errorf("put back copy: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("put back copy of book %d: all copies already on the shelf", id)
	}
	return nil
}

func (r *gormBookRepository) Upsert(ctx context.Context, book *models.Book) (bool, error) {
	var existing models.Book
	err := r.db.WithContext(ctx).Where("title = ? AND author = ?", book.Title, book.Author).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err = r.db.WithContext(ctx).Create(book).Error; err != nil {
			return false, fmt.Errorf("create book: %w", err)
		}
		return true, nil
	} else if err != nil {
		return false, fmt.Errorf("find book: %w", err)
	}

	// keep loans consistent: only the shelf delta changes
	onLoan := existing.Copies - existing.CopiesAvailable
	if book.Copies < onLoan {
		return false, fmt.Errorf("book %q has %d copies on loan, cannot shrink to %d", book.Title, onLoan, book.Copies)
	}
	book.ID = existing.ID
	book.CreatedAt = existing.CreatedAt
	book.CopiesAvailable = book.Copies - onLoan
	if err = r.db.WithContext(ctx).Save(book).Error; err != nil {
		return false, fmt.Errorf("update book: %w", err)
	}
	return false, nil
}
