package handlers

import (
	"math"
	"library-articles/app/server/constants"
	"library-articles/app/server/errs"
	"library-articles/app/server/repositories"

	"github.com/labstack/echo/v4"
)

type PageResponse[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int64 `json:"totalPages"`
	Number        int   `json:"number"` // 0-based
	Size          int   `json:"size"`
}

// parsePagination reads page (0-based, default 0) and size (default 5,
// capped at 100) from the query string.
func (a *App) parsePagination(c echo.Context) (repositories.PageQuery, error) {
	q := repositories.PageQuery{
		Page: 0,
		Size: constants.DefaultPageSize,
	}
	if err := echo.QueryParamsBinder(c).Int("page", &q.Page).Int("size", &q.Size).BindError(); err != nil {
		return q, errs.Invalid("page and size must be integers")
	}

	if q.Page < 0 {
		return q, errs.Invalid("page must not be negative")
	}
	if q.Size <= 0 {
		return q, errs.Invalid("size must be positive")
	}
	if q.Size > constants.MaxPageSize {
		q.Size = constants.MaxPageSize
	}
	if q.Page > math.MaxInt/q.Size {
		return q, errs.Invalid("page is out of range")
	}

	return q, nil
}

func (a *App) calcMaxPage(count int64, size int) int64 {
	pageMax := count / int64(size)
	if (count % int64(size)) != 0 {
		pageMax++
	}
	return pageMax
}

func newPage[T any](a *App, content []T, total int64, q repositories.PageQuery) *PageResponse[T] {
	if content == nil {
		content = []T{}
	}
	return &PageResponse[T]{
		Content:       content,
		TotalElements: total,
		TotalPages:    a.calcMaxPage(total, q.Size),
		Number:        q.Page,
		Size:          q.Size,
	}
}
