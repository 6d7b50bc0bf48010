package services

import (
	"context"
	"library-articles/app/server/auth"
	"library-articles/app/server/errs"
	"library-articles/app/server/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testIdentity() *auth.Identity {
	return &auth.Identity{UID: "uid-1", Email: reader, Name: "Reader"}
}

func newTestScores(t *testing.T) (*ReviewScoreService, *models.User, *models.Article) {
	t.Helper()
	articles := newTestArticles(t)
	ctx := context.Background()

	article, err := articles.Create(ctx, "admin@example.com", articleInput("scored"))
	require.NoError(t, err)
	user, err := NewUserService(articles.store).Resolve(ctx, testIdentity())
	require.NoError(t, err)

	return NewReviewScoreService(articles.store), user, article
}

func TestPostTwiceIsDuplicate(t *testing.T) {
	s, user, article := newTestScores(t)
	ctx := context.Background()

	_, err := s.Post(ctx, user, article.ID, 3)
	require.NoError(t, err)

	_, err = s.Post(ctx, user, article.ID, 4)
	assert.ErrorIs(t, err, errs.ErrDuplicateScore)
	assert.Equal(t, errs.KindConflict, errs.KindOf(err))
}

func TestPutAfterPostUpdates(t *testing.T) {
	s, user, article := newTestScores(t)
	ctx := context.Background()

	posted, err := s.Post(ctx, user, article.ID, 3)
	require.NoError(t, err)
	postedAt := posted.UpdatedAt

	time.Sleep(20 * time.Millisecond)
	updated, err := s.Put(ctx, user, posted.ID, article.ID, 4.5)
	require.NoError(t, err)
	assert.Equal(t, posted.ID, updated.ID)
	assert.Equal(t, 4.5, updated.Score)
	assert.True(t, updated.UpdatedAt.After(postedAt))

	scores, err := s.List(ctx, article.ID)
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, 4.5, scores[0].Score)
}

func TestPutWithoutPost(t *testing.T) {
	s, user, article := newTestScores(t)
	_, err := s.Put(context.Background(), user, 0, article.ID, 2)
	assert.ErrorIs(t, err, errs.ErrScoreNotFound)
}

func TestPutWrongID(t *testing.T) {
	s, user, article := newTestScores(t)
	ctx := context.Background()

	posted, err := s.Post(ctx, user, article.ID, 3)
	require.NoError(t, err)
	_, err = s.Put(ctx, user, posted.ID+1, article.ID, 2)
	assert.ErrorIs(t, err, errs.ErrScoreNotFound)
}

func TestScoreValidation(t *testing.T) {
	s, user, article := newTestScores(t)
	ctx := context.Background()

	for _, score := range []float64{-0.5, 5.1} {
		_, err := s.Post(ctx, user, article.ID, score)
		assert.ErrorIs(t, err, errs.ErrInvalidInput)
	}

	_, err := s.Post(ctx, user, article.ID+100, 3)
	assert.ErrorIs(t, err, errs.ErrArticleNotFound)

	_, err = s.List(ctx, article.ID+100)
	assert.ErrorIs(t, err, errs.ErrArticleNotFound)
}
