// Package services holds the business rules, composed from repositories and
// the caller's verified identity.
package services

import (
	"context"
	"library-articles/app/server/errs"
	"library-articles/app/server/models"
	"library-articles/app/server/repositories"
	"strings"
)

type BookService struct {
	store *repositories.Store
}

func NewBookService(store *repositories.Store) *BookService {
	return &BookService{store: store}
}

func (s *BookService) List(ctx context.Context, q repositories.PageQuery) ([]models.Book, int64, error) {
	return s.store.Books.List(ctx, repositories.BookFilter{}, q)
}

func (s *BookService) SearchByTitle(ctx context.Context, title string, q repositories.PageQuery) ([]models.Book, int64, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, 0, errs.Invalid("title is required")
	}
	return s.store.Books.List(ctx, repositories.BookFilter{Title: title}, q)
}

func (s *BookService) SearchByCategory(ctx context.Context, category string, q repositories.PageQuery) ([]models.Book, int64, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, 0, errs.Invalid("category is required")
	}
	return s.store.Books.List(ctx, repositories.BookFilter{Category: category}, q)
}

func (s *BookService) Get(ctx context.Context, id uint) (*models.Book, error) {
	return s.store.Books.Get(ctx, id)
}
