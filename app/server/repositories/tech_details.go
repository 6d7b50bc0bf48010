package repositories

import (
	"context"
	"fmt"
	"library-articles/app/server/errs"
	"library-articles/app/server/models"

	"gorm.io/gorm"
)

type TechDetailRepository interface {
	GetBySlug(ctx context.Context, slug string) (*models.TechDetail, error)
	List(ctx context.Context) ([]models.TechDetail, error)
}

type gormTechDetailRepository struct {
	db *gorm.DB
}

func (r *gormTechDetailRepository) GetBySlug(ctx context.Context, slug string) (*models.TechDetail, error) {
	var detail models.TechDetail
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&detail).Error; err != nil {
		return nil, notFound(err, errs.ErrTechDetailNotFound)
	}
	return &detail, nil
}

func (r *gormTechDetailRepository) List(ctx context.Context) ([]models.TechDetail, error) {
	var details []models.TechDetail
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&details).Error; err != nil {
		return nil, fmt.Errorf("list tech details: %w", err)
	}
	return details, nil
}
