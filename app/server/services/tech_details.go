package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"library-articles/app/server/constants"
	"library-articles/app/server/models"
	"library-articles/app/server/repositories"
	"library-articles/app/server/types"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type TechDetailService struct {
	store *repositories.Store
	rdb   *redis.Client // nil disables caching
	l     *zap.Logger
	md    *Markdown
}

func NewTechDetailService(store *repositories.Store, rdb *redis.Client, l *zap.Logger, md *Markdown) *TechDetailService {
	return &TechDetailService{
		store: store,
		rdb:   rdb,
		l:     l,
		md:    md,
	}
}

func (s *TechDetailService) GetBySlug(ctx context.Context, slug string) (*models.TechDetail, error) {
	cacheKey := fmt.Sprintf(constants.CacheKeyTechDetail, slug)

	// cache first
	if s.rdb != nil {
		var cached types.CacheTechDetail
		if cacheBytes, err := s.rdb.Get(ctx, cacheKey).Bytes(); err != nil {
			if !errors.Is(err, redis.Nil) {
				s.l.Error("failed to query cache for tech detail", zap.String("slug", slug), zap.Error(err))
			}
		} else if err = json.Unmarshal(cacheBytes, &cached); err != nil {
			s.l.Error("failed to unmarshal tech detail", zap.String("slug", slug), zap.ByteString("cacheBytes", cacheBytes), zap.Error(err))
			s.rdb.Del(ctx, cacheKey)
		} else {
			detail := &models.TechDetail{
				Slug:         cached.Slug,
				Title:        cached.Title,
				SectionTitle: cached.SectionTitle,
				Content:      cached.Content,
				ImageURL:     cached.ImageURL,
			}
			detail.ID = cached.ID
			return detail, nil
		}
	}

	detail, err := s.store.TechDetails.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if cacheBytes, err := json.Marshal(&types.CacheTechDetail{
			ID:           detail.ID,
			Slug:         detail.Slug,
			Title:        detail.Title,
			SectionTitle: detail.SectionTitle,
			Content:      detail.Content,
			ImageURL:     detail.ImageURL,
		}); err != nil {
			s.l.Error("failed to marshal tech detail", zap.String("slug", slug), zap.Error(err))
		} else {
			s.rdb.Set(ctx, cacheKey, cacheBytes, constants.CacheExpireTechDetail)
		}
	}

	return detail, nil
}

func (s *TechDetailService) List(ctx context.Context) ([]models.TechDetail, error) {
	return s.store.TechDetails.List(ctx)
}

func (s *TechDetailService) RenderContent(content string) (string, error) {
	return s.md.Render(content)
}
