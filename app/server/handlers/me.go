package handlers

import (
	"library-articles/app/server/middlewares"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type UserInfo struct {
	ID          uint      `json:"id"`
	UID         string    `json:"uid"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	Admin       bool      `json:"admin"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (a *App) Me(c echo.Context) error {
	identity := middlewares.IdentityFrom(c)

	user, err := a.svc.Users.Resolve(c.Request().Context(), identity)
	if err != nil {
		return a.er(c, err)
	}

	return c.JSON(http.StatusOK, &UserInfo{
		ID:          user.ID,
		UID:         user.UID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Admin:       identity.Admin,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	})
}
