package services

import (
	"context"
	"errors"
	"library-articles/app/server/errs"
	"library-articles/app/server/models"
	"library-articles/app/server/repositories"
	"math"
)

const (
	MinScore = 0
	MaxScore = 5
)

type ReviewScoreService struct {
	store *repositories.Store
}

func NewReviewScoreService(store *repositories.Store) *ReviewScoreService {
	return &ReviewScoreService{store: store}
}

func validateScore(score float64) error {
	if math.IsNaN(score) || score < MinScore || score > MaxScore {
		return errs.Invalid("score must be between %d and %d", MinScore, MaxScore)
	}
	return nil
}

func (s *ReviewScoreService) List(ctx context.Context, articleID uint) ([]models.ReviewScore, error) {
	if _, err := s.store.Articles.Get(ctx, articleID); err != nil {
		return nil, err
	}
	return s.store.Scores.ListByArticle(ctx, articleID)
}

// Post records the first score of user on articleID.
func (s *ReviewScoreService) Post(ctx context.Context, user *models.User, articleID uint, score float64) (*models.ReviewScore, error) {
	if err := validateScore(score); err != nil {
		return nil, err
	}
	if _, err := s.store.Articles.Get(ctx, articleID); err != nil {
		return nil, err
	}

	if _, err := s.store.Scores.Find(ctx, user.ID, articleID); err == nil {
		return nil, errs.ErrDuplicateScore
	} else if !errors.Is(err, errs.ErrScoreNotFound) {
		return nil, err
	}

	// the unique index catches a concurrent post
	rs := &models.ReviewScore{
		UserID:    user.ID,
		UserEmail: user.Email,
		ArticleID: articleID,
		Score:     score,
	}
	if err := s.store.Scores.Create(ctx, rs); err != nil {
		return nil, err
	}
	return rs, nil
}

// Put changes the existing score of user on articleID. A non-zero id must
// name that same score.
func (s *ReviewScoreService) Put(ctx context.Context, user *models.User, id, articleID uint, score float64) (*models.ReviewScore, error) {
	if err := validateScore(score); err != nil {
		return nil, err
	}

	rs, err := s.store.Scores.Find(ctx, user.ID, articleID)
	if err != nil {
		return nil, err
	}
	if id != 0 && rs.ID != id {
		return nil, errs.ErrScoreNotFound
	}

	if err = s.store.Scores.UpdateScore(ctx, rs, score); err != nil {
		return nil, err
	}
	return rs, nil
}
