package handlers

import (
	"io"
	"library-articles/app/server/constants"
	"library-articles/app/server/errs"
	"library-articles/app/server/middlewares"
	"library-articles/app/server/services"
	"library-articles/app/server/storage"
	"library-articles/app/server/utils"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type ArticleRequest struct {
	Slug         *string `json:"slug"`
	Title        *string `json:"title"`
	SectionTitle *string `json:"sectionTitle"`
	Category     *string `json:"category"`
	Content      *string `json:"content"`
	Published    *bool   `json:"published"`
}

type AdminInfo struct {
	Email string `json:"email"`
	Admin bool   `json:"admin"`
}

func articleID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, errs.Invalid("article id must be a positive integer")
	}
	return uint(id), nil
}

func readUpload(fh *multipart.FileHeader) (*storage.Upload, error) {
	if fh.Size > constants.UploadMaxBytes {
		return nil, errs.Invalid("image exceeds %d bytes", constants.UploadMaxBytes)
	}

	f, err := fh.Open()
	if err != nil {
		return nil, errs.Invalid("unreadable image")
	}
	defer f.Close()

	content, err := io.ReadAll(io.LimitReader(f, constants.UploadMaxBytes+1))
	if err != nil {
		return nil, errs.Invalid("unreadable image")
	}
	if len(content) > constants.UploadMaxBytes {
		return nil, errs.Invalid("image exceeds %d bytes", constants.UploadMaxBytes)
	}

	contentType := fh.Header.Get(echo.HeaderContentType)
	if contentType == "" || contentType == echo.MIMEOctetStream {
		contentType = http.DetectContentType(content)
	}

	return &storage.Upload{
		Filename:    fh.Filename,
		ContentType: contentType,
		Content:     content,
	}, nil
}

// bindArticle accepts either a JSON body or a multipart form with an
// optional "image" file part.
func (a *App) bindArticle(c echo.Context) (services.ArticleInput, error) {
	var in services.ArticleInput

	if !strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		var req ArticleRequest
		if err := c.Bind(&req); err != nil {
			return in, errs.Invalid("malformed request body")
		}
		in.Slug = req.Slug
		in.Title = req.Title
		in.SectionTitle = req.SectionTitle
		in.Category = req.Category
		in.Content = req.Content
		in.Published = req.Published
		return in, nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return in, errs.Invalid("malformed multipart body")
	}

	field := func(name string) *string {
		if v := form.Value[name]; len(v) > 0 {
			return utils.P(v[0])
		}
		return nil
	}
	in.Slug = field("slug")
	in.Title = field("title")
	in.SectionTitle = field("sectionTitle")
	in.Category = field("category")
	in.Content = field("content")
	if published := field("published"); published != nil {
		b, err := strconv.ParseBool(*published)
		if err != nil {
			return in, errs.Invalid("published must be true or false")
		}
		in.Published = utils.P(b)
	}

	if files := form.File["image"]; len(files) > 0 {
		if in.Image, err = readUpload(files[0]); err != nil {
			return in, err
		}
	}

	return in, nil
}

func (a *App) AdminCheck(c echo.Context) error {
	identity := middlewares.IdentityFrom(c)
	return c.JSON(http.StatusOK, &AdminInfo{
		Email: identity.Email,
		Admin: true,
	})
}

func (a *App) AdminArticleCreate(c echo.Context) error {
	identity := middlewares.IdentityFrom(c)

	in, err := a.bindArticle(c)
	if err != nil {
		return a.er(c, err)
	}

	article, err := a.svc.Articles.Create(c.Request().Context(), identity.Email, in)
	if err != nil {
		return a.er(c, err)
	}

	a.log(c).Info("article created", zap.Uint("article_id", article.ID), zap.String("slug", article.Slug))
	return a.articleJSON(c, http.StatusCreated, article)
}

func (a *App) AdminArticleList(c echo.Context) error {
	articles, err := a.svc.Articles.ListAll(c.Request().Context())
	if err != nil {
		return a.er(c, err)
	}
	return a.articleList(c, articles)
}

func (a *App) AdminArticleToggle(c echo.Context) error {
	slug := c.Param("slug")

	article, err := a.svc.Articles.TogglePublished(c.Request().Context(), slug)
	if err != nil {
		return a.er(c, err, zap.String("slug", slug))
	}

	a.log(c).Info("article publish toggled", zap.String("slug", slug), zap.Bool("published", article.Published))
	return a.articleJSON(c, http.StatusOK, article)
}

func (a *App) AdminArticleGet(c echo.Context) error {
	id, err := articleID(c)
	if err != nil {
		return a.er(c, err)
	}

	article, err := a.svc.Articles.GetByID(c.Request().Context(), id)
	if err != nil {
		return a.er(c, err, zap.Uint("article_id", id))
	}
	return a.articleJSON(c, http.StatusOK, article)
}

func (a *App) AdminArticleUpdate(c echo.Context) error {
	id, err := articleID(c)
	if err != nil {
		return a.er(c, err)
	}

	in, err := a.bindArticle(c)
	if err != nil {
		return a.er(c, err, zap.Uint("article_id", id))
	}

	article, err := a.svc.Articles.Update(c.Request().Context(), id, in)
	if err != nil {
		return a.er(c, err, zap.Uint("article_id", id))
	}

	a.log(c).Info("article updated", zap.Uint("article_id", id))
	return a.articleJSON(c, http.StatusOK, article)
}

func (a *App) AdminArticleDelete(c echo.Context) error {
	id, err := articleID(c)
	if err != nil {
		return a.er(c, err)
	}

	if err = a.svc.Articles.Delete(c.Request().Context(), id); err != nil {
		return a.er(c, err, zap.Uint("article_id", id))
	}

	a.log(c).Info("article deleted", zap.Uint("article_id", id))
	return c.NoContent(http.StatusNoContent)
}
