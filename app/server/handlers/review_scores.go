package handlers

import (
	"library-articles/app/server/errs"
	"library-articles/app/server/middlewares"
	"library-articles/app/server/models"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type ScoreRequest struct {
	ArticleID uint     `json:"articleId"`
	Score     *float64 `json:"score"`
}

type ScoreInfo struct {
	ID        uint      `json:"id"`
	ArticleID uint      `json:"articleId"`
	UserID    uint      `json:"userId"`
	UserEmail string    `json:"userEmail"`
	Score     float64   `json:"score"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func scoreInfo(rs *models.ReviewScore) *ScoreInfo {
	return &ScoreInfo{
		ID:        rs.ID,
		ArticleID: rs.ArticleID,
		UserID:    rs.UserID,
		UserEmail: rs.UserEmail,
		Score:     rs.Score,
		CreatedAt: rs.CreatedAt,
		UpdatedAt: rs.UpdatedAt,
	}
}

func bindScore(c echo.Context) (*ScoreRequest, error) {
	var req ScoreRequest
	if err := c.Bind(&req); err != nil {
		return nil, errs.Invalid("malformed request body")
	}
	if req.ArticleID == 0 {
		return nil, errs.Invalid("articleId is required")
	}
	if req.Score == nil {
		return nil, errs.Invalid("score is required")
	}
	return &req, nil
}

func (a *App) ScoreList(c echo.Context) error {
	var articleID uint
	if err := echo.QueryParamsBinder(c).MustUint("articleId", &articleID).BindError(); err != nil || articleID == 0 {
		return a.er(c, errs.Invalid("articleId must be a positive integer"))
	}

	scores, err := a.svc.Scores.List(c.Request().Context(), articleID)
	if err != nil {
		return a.er(c, err, zap.Uint("article_id", articleID))
	}

	res := make([]*ScoreInfo, 0, len(scores))
	for i := range scores {
		res = append(res, scoreInfo(&scores[i]))
	}
	return c.JSON(http.StatusOK, res)
}

func (a *App) ScorePost(c echo.Context) error {
	rctx := c.Request().Context()

	req, err := bindScore(c)
	if err != nil {
		return a.er(c, err)
	}

	user, err := a.svc.Users.Resolve(rctx, middlewares.IdentityFrom(c))
	if err != nil {
		return a.er(c, err)
	}

	rs, err := a.svc.Scores.Post(rctx, user, req.ArticleID, *req.Score)
	if err != nil {
		return a.er(c, err, zap.Uint("article_id", req.ArticleID))
	}
	return c.JSON(http.StatusCreated, scoreInfo(rs))
}

// ScorePut updates the caller's score on the article named in the body.
func (a *App) ScorePut(c echo.Context) error {
	rctx := c.Request().Context()

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return a.er(c, errs.Invalid("score id must be an integer"))
	}

	req, err := bindScore(c)
	if err != nil {
		return a.er(c, err)
	}

	user, err := a.svc.Users.Resolve(rctx, middlewares.IdentityFrom(c))
	if err != nil {
		return a.er(c, err)
	}

	rs, err := a.svc.Scores.Put(rctx, user, uint(id), req.ArticleID, *req.Score)
	if err != nil {
		return a.er(c, err, zap.Uint64("score_id", id), zap.Uint("article_id", req.ArticleID))
	}
	return c.JSON(http.StatusOK, scoreInfo(rs))
}
