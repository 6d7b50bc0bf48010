package handlers

import (
	"library-articles/app/server/middlewares"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type LoanInfo struct {
	BookID   uint      `json:"bookId"`
	DueDate  time.Time `json:"dueDate"`
	Renewals int       `json:"renewals"`
}

type ShelfLoan struct {
	Book     BookInfo  `json:"book"`
	DueDate  time.Time `json:"dueDate"`
	DaysLeft int       `json:"daysLeft"`
	Renewals int       `json:"renewals"`
}

func (a *App) LoanCount(c echo.Context) error {
	identity := middlewares.IdentityFrom(c)

	count, err := a.svc.Checkout.CountLoans(c.Request().Context(), identity.Email)
	if err != nil {
		return a.er(c, err)
	}
	return c.JSON(http.StatusOK, count)
}

func (a *App) LoanIsCheckedOut(c echo.Context) error {
	identity := middlewares.IdentityFrom(c)
	id, err := bookID(c)
	if err != nil {
		return a.er(c, err)
	}

	checkedOut, err := a.svc.Checkout.IsCheckedOutByUser(c.Request().Context(), identity.Email, id)
	if err != nil {
		return a.er(c, err, zap.Uint("book_id", id))
	}
	return c.JSON(http.StatusOK, checkedOut)
}

func (a *App) LoanCheckout(c echo.Context) error {
	identity := middlewares.IdentityFrom(c)
	id, err := bookID(c)
	if err != nil {
		return a.er(c, err)
	}

	book, err := a.svc.Checkout.Checkout(c.Request().Context(), identity.Email, id)
	if err != nil {
		return a.er(c, err, zap.Uint("book_id", id))
	}

	a.log(c).Info("book checked out", zap.Uint("book_id", id))
	return c.JSON(http.StatusOK, bookInfo(book))
}

func (a *App) LoanReturn(c echo.Context) error {
	identity := middlewares.IdentityFrom(c)
	id, err := bookID(c)
	if err != nil {
		return a.er(c, err)
	}

	if err = a.svc.Checkout.Return(c.Request().Context(), identity.Email, id); err != nil {
		return a.er(c, err, zap.Uint("book_id", id))
	}

	a.log(c).Info("book returned", zap.Uint("book_id", id))
	return c.NoContent(http.StatusOK)
}

func (a *App) LoanRenew(c echo.Context) error {
	identity := middlewares.IdentityFrom(c)
	id, err := bookID(c)
	if err != nil {
		return a.er(c, err)
	}

	loan, err := a.svc.Checkout.Renew(c.Request().Context(), identity.Email, id)
	if err != nil {
		return a.er(c, err, zap.Uint("book_id", id))
	}

	return c.JSON(http.StatusOK, &LoanInfo{
		BookID:   loan.BookID,
		DueDate:  loan.DueDate,
		Renewals: loan.Renewals,
	})
}

func (a *App) LoanCurrent(c echo.Context) error {
	identity := middlewares.IdentityFrom(c)

	loans, err := a.svc.Checkout.CurrentLoans(c.Request().Context(), identity.Email)
	if err != nil {
		return a.er(c, err)
	}

	res := make([]ShelfLoan, 0, len(loans))
	for i := range loans {
		res = append(res, ShelfLoan{
			Book:     bookInfo(&loans[i].Book),
			DueDate:  loans[i].DueDate,
			DaysLeft: loans[i].DaysLeft,
			Renewals: loans[i].Renewals,
		})
	}
	return c.JSON(http.StatusOK, res)
}
