package handlers

import (
	"library-articles/app/server/middlewares"
	"library-articles/app/server/models"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type ArticleInfo struct {
	ID           uint      `json:"id"`
	Slug         string    `json:"slug"`
	Title        string    `json:"title"`
	SectionTitle string    `json:"sectionTitle"`
	Category     string    `json:"category"`
	Content      string    `json:"content"`
	ContentHTML  string    `json:"contentHtml"`
	ImageURL     string    `json:"imageUrl"`
	Published    bool      `json:"published"`
	UserEmail    string    `json:"userEmail"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (a *App) articleInfo(article *models.Article) (*ArticleInfo, error) {
	html, err := a.svc.Articles.RenderContent(article.Content)
	if err != nil {
		return nil, err
	}

	return &ArticleInfo{
		ID:           article.ID,
		Slug:         article.Slug,
		Title:        article.Title,
		SectionTitle: article.SectionTitle,
		Category:     article.Category,
		Content:      article.Content,
		ContentHTML:  html,
		ImageURL:     article.ImageURL,
		Published:    article.Published,
		UserEmail:    article.UserEmail,
		CreatedAt:    article.CreatedAt,
		UpdatedAt:    article.UpdatedAt,
	}, nil
}

func (a *App) articleList(c echo.Context, articles []models.Article) error {
	res := make([]*ArticleInfo, 0, len(articles))
	for i := range articles {
		info, err := a.articleInfo(&articles[i])
		if err != nil {
			return a.er(c, err, zap.Uint("article_id", articles[i].ID))
		}
		res = append(res, info)
	}
	return c.JSON(http.StatusOK, res)
}

func (a *App) articleJSON(c echo.Context, status int, article *models.Article) error {
	info, err := a.articleInfo(article)
	if err != nil {
		return a.er(c, err, zap.Uint("article_id", article.ID))
	}
	return c.JSON(status, info)
}

func (a *App) ArticleListPublished(c echo.Context) error {
	articles, err := a.svc.Articles.ListPublished(c.Request().Context())
	if err != nil {
		return a.er(c, err)
	}
	return a.articleList(c, articles)
}

// ArticleGetBySlug shows unpublished articles to admins only.
func (a *App) ArticleGetBySlug(c echo.Context) error {
	slug := c.Param("slug")
	admin := a.gate.IsAdmin(middlewares.IdentityFrom(c))

	article, err := a.svc.Articles.GetBySlug(c.Request().Context(), slug, admin)
	if err != nil {
		return a.er(c, err, zap.String("slug", slug))
	}
	return a.articleJSON(c, http.StatusOK, article)
}
