package handlers

import (
	"library-articles/app/server/middlewares"
	"library-articles/app/server/repositories"
	"library-articles/app/server/services"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type Services struct {
	Books       *services.BookService
	Checkout    *services.CheckoutService
	Articles    *services.ArticleService
	TechDetails *services.TechDetailService
	Scores      *services.ReviewScoreService
	Users       *services.UserService
}

type App struct {
	l     *zap.Logger         // logger
	gate  *middlewares.Gate   // route policies
	store *repositories.Store // health check
	svc   Services
}

func NewApp(l *zap.Logger, gate *middlewares.Gate, store *repositories.Store, svc Services) *App {
	return &App{
		l:     l,
		gate:  gate,
		store: store,
		svc:   svc,
	}
}

// log returns the request logger, tagged with the caller when known.
func (a *App) log(c echo.Context) *zap.Logger {
	l := middlewares.Logger(c, a.l)
	if identity := middlewares.IdentityFrom(c); identity != nil {
		l = l.With(zap.String("email", identity.Email))
	}
	return l
}
