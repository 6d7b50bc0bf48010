package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"library-articles/app/server/errs"
	"library-articles/app/server/models"
	"library-articles/app/server/repositories"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

var catalogColumns = []string{"title", "author", "description", "copies", "category", "img"}

type ImportResult struct {
	Created int
	Updated int
}

// ImportBooks upserts every row of a title,author,description,copies,category,img
// CSV. A header row is optional. Any bad row aborts the whole import.
func ImportBooks(ctx context.Context, store *repositories.Store, r io.Reader, l *zap.Logger) (*ImportResult, error) {
	books, err := readCatalog(r)
	if err != nil {
		return nil, err
	}

	res := &ImportResult{}
	err = store.InTx(ctx, func(tx *repositories.Store) error {
		for _, book := range books {
			created, err := tx.Books.Upsert(ctx, book)
			if err != nil {
				return fmt.Errorf("import %q: %w", book.Title, err)
			}
			if created {
				res.Created++
			} else {
				res.Updated++
			}
			l.Debug("book imported", zap.String("title", book.Title), zap.Bool("created", created))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

func readCatalog(r io.Reader) ([]*models.Book, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(catalogColumns)
	reader.TrimLeadingSpace = true

	var books []*models.Book
	for line := 1; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return nil, errs.Invalid("malformed csv: %v", err)
		}

		if line == 1 && strings.EqualFold(strings.TrimSpace(record[0]), catalogColumns[0]) {
			continue
		}

		book, err := parseCatalogRow(record)
		if err != nil {
			return nil, errs.Invalid("line %d: %v", line, err)
		}
		books = append(books, book)
	}

	return books, nil
}

func parseCatalogRow(record []string) (*models.Book, error) {
	for i := range record {
		record[i] = strings.TrimSpace(record[i])
	}

	title, author := record[0], record[1]
	if title == "" || author == "" {
		return nil, errors.New("title and author are required")
	}

	copies, err := strconv.Atoi(record[3])
	if err != nil || copies < 0 {
		return nil, fmt.Errorf("copies must be a non-negative integer, got %q", record[3])
	}

	return &models.Book{
		Title:           title,
		Author:          author,
		Description:     record[2],
		Copies:          copies,
		CopiesAvailable: copies,
		Category:        record[4],
		Img:             record[5],
	}, nil
}
