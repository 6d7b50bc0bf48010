package handlers

import (
	"errors"
	"library-articles/app/server/errs"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type ErrorMessage struct {
	Kind    string `json:"kind"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// er logs err with fields and renders it. Internal causes stay in the log.
func (a *App) er(c echo.Context, err error, fields ...zap.Field) error {
	e := errs.From(err)
	a.logFailure(c, e, err, fields...)
	return a.writeError(c, errs.Status(e.Kind), e)
}

func (a *App) logFailure(c echo.Context, e *errs.Error, cause error, fields ...zap.Field) {
	l := a.log(c).With(fields...)
	if e.Kind == errs.KindInternal {
		l.Error("request failed", zap.Error(cause))
	} else {
		l.Info("request rejected", zap.String("code", e.Code), zap.Error(cause))
	}
}

func (a *App) writeError(c echo.Context, status int, e *errs.Error) error {
	if c.Request().Method == http.MethodHead {
		return c.NoContent(status)
	}
	return c.JSON(status, &ErrorMessage{
		Kind:    string(e.Kind),
		Code:    e.Code,
		Message: e.Message,
	})
}

// HTTPErrorHandler renders errors that reach echo: gate rejections, unknown
// routes, rate limiting and oversized bodies.
func (a *App) HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var (
		e      *errs.Error
		status int
		he     *echo.HTTPError
	)
	if errors.As(err, &he) {
		status = he.Code
		e = errs.FromStatus(he.Code)
		if msg, ok := he.Message.(string); ok && status < http.StatusInternalServerError {
			e = errs.New(e.Kind, e.Code, msg)
		}
	} else {
		e = errs.From(err)
		status = errs.Status(e.Kind)
	}

	a.logFailure(c, e, err)
	if err = a.writeError(c, status, e); err != nil {
		a.log(c).Error("failed to write error response", zap.Error(err))
	}
}
