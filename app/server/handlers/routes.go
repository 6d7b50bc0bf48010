package handlers

import (
	"library-articles/app/server/middlewares"

	"github.com/labstack/echo/v4"
)

// Register mounts every route on g with its access policy.
func (a *App) Register(g *echo.Group) {
	optional := a.gate.Require(middlewares.Optional)
	authenticated := a.gate.Require(middlewares.Authenticated)
	admin := a.gate.Require(middlewares.AdminOnly)

	g.GET("/healthz", a.HealthCheck)

	// books, public
	g.GET("/books", a.BookList)
	g.GET("/books/search/title", a.BookSearchByTitle)
	g.GET("/books/search/category", a.BookSearchByCategory)
	g.GET("/books/checkout", a.BookGet)

	// loans
	secure := g.Group("/books/secure", authenticated)
	secure.GET("/currentloans/count", a.LoanCount)
	secure.GET("/ischeckout/byuser", a.LoanIsCheckedOut)
	secure.PUT("/checkout", a.LoanCheckout)
	secure.PUT("/return", a.LoanReturn)
	secure.PUT("/renew", a.LoanRenew)
	secure.GET("/currentloans", a.LoanCurrent)

	// articles
	g.GET("/articles", a.ArticleListPublished)
	g.GET("/articles/:slug", a.ArticleGetBySlug, optional)
	g.GET("/tech-details", a.TechDetailList)
	g.GET("/tech-details/:slug", a.TechDetailGet)

	g.GET("/review-scores", a.ScoreList, authenticated)
	g.POST("/review-scores", a.ScorePost, authenticated)
	g.PUT("/review-scores/:id", a.ScorePut, authenticated)

	g.GET("/me", a.Me, authenticated)

	// admin
	adm := g.Group("/admin", admin)
	adm.GET("", a.AdminCheck)
	adm.POST("/articles", a.AdminArticleCreate)
	adm.GET("/articles", a.AdminArticleList)
	adm.PUT("/articles/:slug/toggle", a.AdminArticleToggle)
	adm.GET("/article/:id", a.AdminArticleGet)
	adm.PUT("/article/:id", a.AdminArticleUpdate)
	adm.DELETE("/article/:id", a.AdminArticleDelete)
}
