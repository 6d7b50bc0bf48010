package services

import (
	"context"
	"errors"
	"fmt"
	"library-articles/app/server/constants"
	"library-articles/app/server/errs"
	"library-articles/app/server/models"
	"library-articles/app/server/repositories"
	"library-articles/app/server/storage"
	"regexp"
	"strings"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// ArticleInput carries the fields of a create or update request. Nil fields
// are left as they are on update.
type ArticleInput struct {
	Slug         *string
	Title        *string
	SectionTitle *string
	Category     *string
	Content      *string
	Published    *bool
	Image        *storage.Upload
}

type ArticleService struct {
	store  *repositories.Store
	images storage.Store
	md     *Markdown
}

func NewArticleService(store *repositories.Store, images storage.Store, md *Markdown) *ArticleService {
	return &ArticleService{
		store:  store,
		images: images,
		md:     md,
	}
}

func ValidateSlug(slug string) error {
	if !slugPattern.MatchString(slug) {
		return errs.Invalid("slug %q must be lowercase letters and digits separated by single dashes", slug)
	}
	return nil
}

func validateImage(image *storage.Upload) error {
	if !strings.HasPrefix(image.ContentType, constants.UploadContentPrefix) {
		return errs.Invalid("image must be an image, got %q", image.ContentType)
	}
	if len(image.Content) == 0 {
		return errs.Invalid("image is empty")
	}
	if len(image.Content) > constants.UploadMaxBytes {
		return errs.Invalid("image exceeds %d bytes", constants.UploadMaxBytes)
	}
	return nil
}

func (s *ArticleService) mapFields(in *ArticleInput, article *models.Article) {
	if in.Slug != nil {
		article.Slug = strings.TrimSpace(*in.Slug)
	}
	if in.Title != nil {
		article.Title = strings.TrimSpace(*in.Title)
	}
	if in.SectionTitle != nil {
		article.SectionTitle = *in.SectionTitle
	}
	if in.Category != nil {
		article.Category = *in.Category
	}
	if in.Content != nil {
		article.Content = *in.Content
	}
	if in.Published != nil {
		article.Published = *in.Published
	}
}

func (s *ArticleService) validate(article *models.Article) error {
	if err := ValidateSlug(article.Slug); err != nil {
		return err
	}
	if article.Title == "" {
		return errs.Invalid("title is required")
	}
	if strings.TrimSpace(article.Content) == "" {
		return errs.Invalid("content is required")
	}
	return nil
}

// slugFree checks the slug before any image is stored. Concurrent writers are
// settled by the unique index.
func (s *ArticleService) slugFree(ctx context.Context, slug string, selfID uint) error {
	existing, err := s.store.Articles.GetBySlug(ctx, slug)
	if errors.Is(err, errs.ErrArticleNotFound) {
		return nil
	} else if err != nil {
		return err
	}
	if existing.ID != selfID {
		return errs.ErrSlugTaken
	}
	return nil
}

func (s *ArticleService) saveImage(ctx context.Context, image *storage.Upload, article *models.Article) error {
	if image == nil {
		return nil
	}
	if err := validateImage(image); err != nil {
		return err
	}
	url, err := s.images.Save(ctx, *image)
	if err != nil {
		return fmt.Errorf("save article image: %w", err)
	}
	article.ImageURL = url
	return nil
}

func (s *ArticleService) Create(ctx context.Context, authorEmail string, in ArticleInput) (*models.Article, error) {
	article := models.Article{
		Published: true,
		UserEmail: authorEmail,
	}
	s.mapFields(&in, &article)

	if err := s.validate(&article); err != nil {
		return nil, err
	}
	if err := s.slugFree(ctx, article.Slug, 0); err != nil {
		return nil, err
	}
	if err := s.saveImage(ctx, in.Image, &article); err != nil {
		return nil, err
	}

	if err := s.store.Articles.Create(ctx, &article); err != nil {
		return nil, err
	}
	return &article, nil
}

func (s *ArticleService) Update(ctx context.Context, id uint, in ArticleInput) (*models.Article, error) {
	article, err := s.store.Articles.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	s.mapFields(&in, article)
	if err = s.validate(article); err != nil {
		return nil, err
	}
	if in.Slug != nil {
		if err = s.slugFree(ctx, article.Slug, article.ID); err != nil {
			return nil, err
		}
	}
	if err = s.saveImage(ctx, in.Image, article); err != nil {
		return nil, err
	}

	if err = s.store.Articles.Save(ctx, article); err != nil {
		return nil, err
	}
	return article, nil
}

// Delete removes the article and its review scores.
func (s *ArticleService) Delete(ctx context.Context, id uint) error {
	return s.store.InTx(ctx, func(tx *repositories.Store) error {
		if err := tx.Scores.DeleteByArticle(ctx, id); err != nil {
			return err
		}
		return tx.Articles.Delete(ctx, id)
	})
}

func (s *ArticleService) TogglePublished(ctx context.Context, slug string) (*models.Article, error) {
	return s.store.Articles.TogglePublished(ctx, slug)
}

// GetBySlug hides unpublished articles from everyone but admins.
func (s *ArticleService) GetBySlug(ctx context.Context, slug string, admin bool) (*models.Article, error) {
	article, err := s.store.Articles.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !article.Published && !admin {
		return nil, errs.ErrArticleNotFound
	}
	return article, nil
}

func (s *ArticleService) GetByID(ctx context.Context, id uint) (*models.Article, error) {
	return s.store.Articles.Get(ctx, id)
}

func (s *ArticleService) ListPublished(ctx context.Context) ([]models.Article, error) {
	return s.store.Articles.List(ctx, true)
}

func (s *ArticleService) ListAll(ctx context.Context) ([]models.Article, error) {
	return s.store.Articles.List(ctx, false)
}

func (s *ArticleService) RenderContent(content string) (string, error) {
	return s.md.Render(content)
}
