package repositories

import (
	"context"
	"library-articles/app/server/errs"
	"library-articles/app/server/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArticleSlugUnique(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Articles.Create(ctx, &models.Article{Slug: "hello", Title: "Hello"}))
	assert.ErrorIs(t, s.Articles.Create(ctx, &models.Article{Slug: "hello", Title: "Again"}), errs.ErrSlugTaken)

	other := &models.Article{Slug: "other", Title: "Other"}
	require.NoError(t, s.Articles.Create(ctx, other))
	other.Slug = "hello"
	assert.ErrorIs(t, s.Articles.Save(ctx, other), errs.ErrSlugTaken)
}

func TestArticleToggleAndList(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Articles.Create(ctx, &models.Article{Slug: "draft", Title: "Draft", Published: false}))
	require.NoError(t, s.Articles.Create(ctx, &models.Article{Slug: "live", Title: "Live", Published: true}))

	published, err := s.Articles.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, published, 1)
	assert.Equal(t, "live", published[0].Slug)

	all, err := s.Articles.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	toggled, err := s.Articles.TogglePublished(ctx, "draft")
	require.NoError(t, err)
	assert.True(t, toggled.Published)
	assert.Equal(t, "Draft", toggled.Title)

	toggled, err = s.Articles.TogglePublished(ctx, "draft")
	require.NoError(t, err)
	assert.False(t, toggled.Published)

	_, err = s.Articles.TogglePublished(ctx, "missing")
	assert.ErrorIs(t, err, errs.ErrArticleNotFound)
}

func TestArticleToggleKeepsUpdatedAt(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	article := &models.Article{Slug: "stamp", Title: "Stamp"}
	require.NoError(t, s.Articles.Create(ctx, article))
	before, err := s.Articles.GetBySlug(ctx, "stamp")
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	toggled, err := s.Articles.TogglePublished(ctx, "stamp")
	require.NoError(t, err)
	assert.True(t, toggled.Published)
	assert.True(t, before.UpdatedAt.Equal(toggled.UpdatedAt), "publishing must not bump updated_at")
}

func TestArticleDeleteIsHard(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	article := &models.Article{Slug: "gone", Title: "Gone"}
	require.NoError(t, s.Articles.Create(ctx, article))
	require.NoError(t, s.Articles.Delete(ctx, article.ID))
	assert.ErrorIs(t, s.Articles.Delete(ctx, article.ID), errs.ErrArticleNotFound)

	_, err := s.Articles.Get(ctx, article.ID)
	assert.ErrorIs(t, err, errs.ErrArticleNotFound)

	// the slug is free again
	require.NoError(t, s.Articles.Create(ctx, &models.Article{Slug: "gone", Title: "Back"}))
}
