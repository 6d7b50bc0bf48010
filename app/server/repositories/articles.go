package repositories

import (
	"context"
	"fmt"
	"library-articles/app/server/errs"
	"library-articles/app/server/models"

	"gorm.io/gorm"
)

type ArticleRepository interface {
	Create(ctx context.Context, article *models.Article) error
	// Save writes every field of an existing article.
	Save(ctx context.Context, article *models.Article) error
	Get(ctx context.Context, id uint) (*models.Article, error)
	GetBySlug(ctx context.Context, slug string) (*models.Article, error)
	// List returns newest first.
	List(ctx context.Context, publishedOnly bool) ([]models.Article, error)
	// Delete removes the row for good.
	Delete(ctx context.Context, id uint) error
	// TogglePublished flips the flag in place and returns the updated article.
	TogglePublished(ctx context.Context, slug string) (*models.Article, error)
}

type gormArticleRepository struct {
	db *gorm.DB
}

func (r *gormArticleRepository) Create(ctx context.Context, article *models.Article) error {
	if err := r.db.WithContext(ctx).Create(article).Error; err != nil {
		if isUniqueViolation(err) {
			return errs.ErrSlugTaken
		}
		return fmt.Errorf("create article: %w", err)
	}
	return nil
}

func (r *gormArticleRepository) Save(ctx context.Context, article *models.Article) error {
	if err := r.db.WithContext(ctx).Save(article).Error; err != nil {
		if isUniqueViolation(err) {
			return errs.ErrSlugTaken
		}
		return fmt.Errorf("save article: %w", err)
	}
	return nil
}

func (r *gormArticleRepository) Get(ctx context.Context, id uint) (*models.Article, error) {
	var article models.Article
	if err := r.db.WithContext(ctx).First(&article, id).Error; err != nil {
		return nil, notFound(err, errs.ErrArticleNotFound)
	}
	return &article, nil
}

func (r *gormArticleRepository) GetBySlug(ctx context.Context, slug string) (*models.Article, error) {
	var article models.Article
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&article).Error; err != nil {
		return nil, notFound(err, errs.ErrArticleNotFound)
	}
	return &article, nil
}

func (r *gormArticleRepository) List(ctx context.Context, publishedOnly bool) ([]models.Article, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC")
	if publishedOnly {
		query = query.Where("published = ?", true)
	}

	var articles []models.Article
	if err := query.Find(&articles).Error; err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	return articles, nil
}

func (r *gormArticleRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Unscoped().Delete(&models.Article{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete article: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.ErrArticleNotFound
	}
	return nil
}

func (r *gormArticleRepository) TogglePublished(ctx context.Context, slug string) (*models.Article, error) {
	result := r.db.WithContext(ctx).Model(&models.Article{}).
		Where("slug = ?", slug).
		UpdateColumn("published", gorm.Expr("NOT published"))
	if result.Error != nil {
		return nil, fmt.Errorf("toggle article: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, errs.ErrArticleNotFound
	}
	return r.GetBySlug(ctx, slug)
}
