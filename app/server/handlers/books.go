package handlers

import (
	"library-articles/app/server/errs"
	"library-articles/app/server/models"
	"library-articles/app/server/repositories"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type BookInfo struct {
	ID              uint   `json:"id"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	Description     string `json:"description"`
	Copies          int    `json:"copies"`
	CopiesAvailable int    `json:"copiesAvailable"`
	Category        string `json:"category"`
	Img             string `json:"img"`
}

func bookInfo(book *models.Book) BookInfo {
	return BookInfo{
		ID:              book.ID,
		Title:           book.Title,
		Author:          book.Author,
		Description:     book.Description,
		Copies:          book.Copies,
		CopiesAvailable: book.CopiesAvailable,
		Category:        book.Category,
		Img:             book.Img,
	}
}

func bookInfos(books []models.Book) []BookInfo {
	res := make([]BookInfo, 0, len(books))
	for i := range books {
		res = append(res, bookInfo(&books[i]))
	}
	return res
}

// bookID reads the required bookId query parameter.
func bookID(c echo.Context) (uint, error) {
	var id uint
	if err := echo.QueryParamsBinder(c).MustUint("bookId", &id).BindError(); err != nil || id == 0 {
		return 0, errs.Invalid("bookId must be a positive integer")
	}
	return id, nil
}

func (a *App) bookPage(c echo.Context, books []models.Book, total int64, q repositories.PageQuery) error {
	return c.JSON(http.StatusOK, newPage(a, bookInfos(books), total, q))
}

func (a *App) BookList(c echo.Context) error {
	q, err := a.parsePagination(c)
	if err != nil {
		return a.er(c, err)
	}

	books, total, err := a.svc.Books.List(c.Request().Context(), q)
	if err != nil {
		return a.er(c, err)
	}
	return a.bookPage(c, books, total, q)
}

func (a *App) BookSearchByTitle(c echo.Context) error {
	q, err := a.parsePagination(c)
	if err != nil {
		return a.er(c, err)
	}

	title := c.QueryParam("title")
	books, total, err := a.svc.Books.SearchByTitle(c.Request().Context(), title, q)
	if err != nil {
		return a.er(c, err, zap.String("title", title))
	}
	return a.bookPage(c, books, total, q)
}

func (a *App) BookSearchByCategory(c echo.Context) error {
	q, err := a.parsePagination(c)
	if err != nil {
		return a.er(c, err)
	}

	category := c.QueryParam("category")
	books, total, err := a.svc.Books.SearchByCategory(c.Request().Context(), category, q)
	if err != nil {
		return a.er(c, err, zap.String("category", category))
	}
	return a.bookPage(c, books, total, q)
}

func (a *App) BookGet(c echo.Context) error {
	id, err := bookID(c)
	if err != nil {
		return a.er(c, err)
	}

	book, err := a.svc.Books.Get(c.Request().Context(), id)
	if err != nil {
		return a.er(c, err, zap.Uint("book_id", id))
	}
	return c.JSON(http.StatusOK, bookInfo(book))
}
