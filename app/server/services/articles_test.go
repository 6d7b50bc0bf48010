package services

import (
	"context"
	"library-articles/app/server/errs"
	"library-articles/app/server/storage"
	"library-articles/app/server/utils"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestArticles(t *testing.T) *ArticleService {
	t.Helper()
	images, err := storage.NewLocal(t.TempDir(), "/uploads/")
	require.NoError(t, err)
	return NewArticleService(newTestStore(t), images, NewMarkdown())
}

func articleInput(slug string) ArticleInput {
	return ArticleInput{
		Slug:    utils.P(slug),
		Title:   utils.P("Title of " + slug),
		Content: utils.P("# Heading\n\nBody"),
	}
}

func TestArticleCreateDefaultsToPublished(t *testing.T) {
	s := newTestArticles(t)
	ctx := context.Background()

	article, err := s.Create(ctx, "admin@example.com", articleInput("first-post"))
	require.NoError(t, err)
	assert.True(t, article.Published)
	assert.Equal(t, "admin@example.com", article.UserEmail)

	in := articleInput("draft")
	in.Published = utils.P(false)
	draft, err := s.Create(ctx, "admin@example.com", in)
	require.NoError(t, err)
	assert.False(t, draft.Published)

	_, err = s.Create(ctx, "admin@example.com", articleInput("first-post"))
	assert.ErrorIs(t, err, errs.ErrSlugTaken)
}

func TestArticleCreateValidates(t *testing.T) {
	s := newTestArticles(t)
	ctx := context.Background()

	for _, slug := range []string{"", "Upper", "two--dashes", "-lead", "trail-", "white space"} {
		_, err := s.Create(ctx, "admin@example.com", articleInput(slug))
		assert.ErrorIs(t, err, errs.ErrInvalidInput, slug)
	}

	in := articleInput("no-title")
	in.Title = nil
	_, err := s.Create(ctx, "admin@example.com", in)
	assert.ErrorIs(t, err, errs.ErrInvalidInput)

	in = articleInput("bad-image")
	in.Image = &storage.Upload{Filename: "a.txt", ContentType: "text/plain", Content: []byte("x")}
	_, err = s.Create(ctx, "admin@example.com", in)
	assert.ErrorIs(t, err, errs.ErrInvalidInput)
}

func TestArticleUpdateIsPartial(t *testing.T) {
	s := newTestArticles(t)
	ctx := context.Background()

	in := articleInput("with-image")
	in.Image = &storage.Upload{Filename: "cover.png", ContentType: "image/png", Content: []byte("png")}
	article, err := s.Create(ctx, "admin@example.com", in)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(article.ImageURL, "/uploads/"))

	updated, err := s.Update(ctx, article.ID, ArticleInput{SectionTitle: utils.P("New section")})
	require.NoError(t, err)
	assert.Equal(t, "New section", updated.SectionTitle)
	assert.Equal(t, article.Title, updated.Title)
	assert.Equal(t, article.ImageURL, updated.ImageURL)
	assert.True(t, updated.Published)

	_, err = s.Create(ctx, "admin@example.com", articleInput("taken"))
	require.NoError(t, err)
	_, err = s.Update(ctx, article.ID, ArticleInput{Slug: utils.P("taken")})
	assert.ErrorIs(t, err, errs.ErrSlugTaken)

	_, err = s.Update(ctx, 999, ArticleInput{Title: utils.P("x")})
	assert.ErrorIs(t, err, errs.ErrArticleNotFound)
}

func TestTogglePublishedIsItsOwnInverse(t *testing.T) {
	s := newTestArticles(t)
	ctx := context.Background()

	article, err := s.Create(ctx, "admin@example.com", articleInput("toggle-me"))
	require.NoError(t, err)

	once, err := s.TogglePublished(ctx, "toggle-me")
	require.NoError(t, err)
	assert.Equal(t, !article.Published, once.Published)

	twice, err := s.TogglePublished(ctx, "toggle-me")
	require.NoError(t, err)
	assert.Equal(t, article.Published, twice.Published)
	assert.Equal(t, article.Title, twice.Title)
	assert.Equal(t, article.Content, twice.Content)

	_, err = s.TogglePublished(ctx, "nope")
	assert.ErrorIs(t, err, errs.ErrArticleNotFound)
}

func TestGetBySlugRespectsPublished(t *testing.T) {
	s := newTestArticles(t)
	ctx := context.Background()

	in := articleInput("hidden")
	in.Published = utils.P(false)
	_, err := s.Create(ctx, "admin@example.com", in)
	require.NoError(t, err)

	_, err = s.GetBySlug(ctx, "hidden", false)
	assert.ErrorIs(t, err, errs.ErrArticleNotFound)

	article, err := s.GetBySlug(ctx, "hidden", true)
	require.NoError(t, err)
	assert.Equal(t, "Title of hidden", article.Title)

	published, err := s.ListPublished(ctx)
	require.NoError(t, err)
	assert.Empty(t, published)

	all, err := s.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestArticleDeleteRemovesScores(t *testing.T) {
	s := newTestArticles(t)
	ctx := context.Background()
	scores := NewReviewScoreService(s.store)
	users := NewUserService(s.store)

	article, err := s.Create(ctx, "admin@example.com", articleInput("doomed"))
	require.NoError(t, err)
	user, err := users.Resolve(ctx, testIdentity())
	require.NoError(t, err)
	_, err = scores.Post(ctx, user, article.ID, 4)
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, article.ID))
	assert.ErrorIs(t, s.Delete(ctx, article.ID), errs.ErrArticleNotFound)

	left, err := s.store.Scores.ListByArticle(ctx, article.ID)
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestMarkdownRender(t *testing.T) {
	html, err := NewMarkdown().Render("# Title\n\n~~gone~~ <script>alert(1)</script>")
	require.NoError(t, err)
	assert.Contains(t, html, "<h1>Title</h1>")
	assert.Contains(t, html, "<del>gone</del>")
	assert.NotContains(t, html, "<script>")
}
