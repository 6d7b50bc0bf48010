package repositories

import (
	"context"
	"fmt"
	"library-articles/app/server/errs"
	"library-articles/app/server/models"

	"gorm.io/gorm"
)

type ReviewScoreRepository interface {
	ListByArticle(ctx context.Context, articleID uint) ([]models.ReviewScore, error)
	// Find returns the score of userID on articleID, or errs.ErrScoreNotFound.
	Find(ctx context.Context, userID, articleID uint) (*models.ReviewScore, error)
	// Create fails with errs.ErrDuplicateScore when the pair already scored.
	Create(ctx context.Context, score *models.ReviewScore) error
	// UpdateScore changes the value and reloads score.
	UpdateScore(ctx context.Context, score *models.ReviewScore, value float64) error
	DeleteByArticle(ctx context.Context, articleID uint) error
}

type gormReviewScoreRepository struct {
	db *gorm.DB
}

func (r *gormReviewScoreRepository) ListByArticle(ctx context.Context, articleID uint) ([]models.ReviewScore, error) {
	var scores []models.ReviewScore
	if err := r.db.WithContext(ctx).Where("article_id = ?", articleID).Order("id ASC").Find(&scores).Error; err != nil {
		return nil, fmt.Errorf("list scores: %w", err)
	}
	return scores, nil
}

func (r *gormReviewScoreRepository) Find(ctx context.Context, userID, articleID uint) (*models.ReviewScore, error) {
	var score models.ReviewScore
	if err := r.db.WithContext(ctx).Where("user_id = ? AND article_id = ?", userID, articleID).First(&score).Error; err != nil {
		return nil, notFound(err, errs.ErrScoreNotFound)
	}
	return &score, nil
}

func (r *gormReviewScoreRepository) Create(ctx context.Context, score *models.ReviewScore) error {
	if err := r.db.WithContext(ctx).Create(score).Error; err != nil {
		if isUniqueViolation(err) {
			return errs.ErrDuplicateScore
		}
		return fmt.Errorf("create score: %w", err)
	}
	return nil
}

func (r *gormReviewScoreRepository) UpdateScore(ctx context.Context, score *models.ReviewScore, value float64) error {
	result := r.db.WithContext(ctx).Model(score).Update("score", value)
	if result.Error != nil {
		return fmt.Errorf("update score: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.ErrScoreNotFound
	}

	// reload for the new updated_at
	if err := r.db.WithContext(ctx).First(score, score.ID).Error; err != nil {
		return notFound(err, errs.ErrScoreNotFound)
	}
	return nil
}

func (r *gormReviewScoreRepository) DeleteByArticle(ctx context.Context, articleID uint) error {
	if err := r.db.WithContext(ctx).Unscoped().Where("article_id = ?", articleID).Delete(&models.ReviewScore{}).Error; err != nil {
		return fmt.Errorf("delete scores: %w", err)
	}
	return nil
}
