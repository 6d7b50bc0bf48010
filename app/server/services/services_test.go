package services

import (
	"context"
	"library-articles/app/server/internal/testdb"
	"library-articles/app/server/models"
	"library-articles/app/server/repositories"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *repositories.Store {
	t.Helper()
	return repositories.NewStore(testdb.New(t))
}

func addBook(t *testing.T, store *repositories.Store, title string, copies int) *models.Book {
	t.Helper()
	book := &models.Book{Title: title, Author: "Author of " + title, Category: "Fiction", Copies: copies, CopiesAvailable: copies}
	_, err := store.Books.Upsert(context.Background(), book)
	require.NoError(t, err)
	return book
}
