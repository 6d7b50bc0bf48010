package handlers

import (
	"library-articles/app/server/models"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type TechDetailInfo struct {
	Slug         string `json:"slug"`
	Title        string `json:"title"`
	SectionTitle string `json:"sectionTitle"`
	Content      string `json:"content"`
	ContentHTML  string `json:"contentHtml"`
	ImageURL     string `json:"imageUrl"`
}

func (a *App) techDetailInfo(detail *models.TechDetail) (*TechDetailInfo, error) {
	html, err := a.svc.TechDetails.RenderContent(detail.Content)
	if err != nil {
		return nil, err
	}
	return &TechDetailInfo{
		Slug:         detail.Slug,
		Title:        detail.Title,
		SectionTitle: detail.SectionTitle,
		Content:      detail.Content,
		ContentHTML:  html,
		ImageURL:     detail.ImageURL,
	}, nil
}

func (a *App) TechDetailList(c echo.Context) error {
	details, err := a.svc.TechDetails.List(c.Request().Context())
	if err != nil {
		return a.er(c, err)
	}

	res := make([]*TechDetailInfo, 0, len(details))
	for i := range details {
		info, err := a.techDetailInfo(&details[i])
		if err != nil {
			return a.er(c, err, zap.String("slug", details[i].Slug))
		}
		res = append(res, info)
	}
	return c.JSON(http.StatusOK, res)
}

func (a *App) TechDetailGet(c echo.Context) error {
	slug := c.Param("slug")

	detail, err := a.svc.TechDetails.GetBySlug(c.Request().Context(), slug)
	if err != nil {
		return a.er(c, err, zap.String("slug", slug))
	}

	info, err := a.techDetailInfo(detail)
	if err != nil {
		return a.er(c, err, zap.String("slug", slug))
	}
	return c.JSON(http.StatusOK, info)
}
