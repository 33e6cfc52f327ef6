package sqlite_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"cms-api/internal/domain/models"
	"cms-api/internal/storage"
	"cms-api/internal/storage/sqlite"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStorage(t *testing.T) *sqlite.Storage {
	t.Helper()

	st, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	return st
}

func saveUser(t *testing.T, st *sqlite.Storage, email string) int64 {
	t.Helper()

	id, err := st.SaveUser(context.Background(), "User "+email, email, []byte("hash"))
	require.NoError(t, err)

	return id
}

func saveArticle(t *testing.T, st *sqlite.Storage, authorID int64, slug string) int64 {
	t.Helper()

	id, err := st.SaveArticle(context.Background(), models.Article{
		Title:       "Title " + slug,
		Content:     "Content",
		Slug:        slug,
		PublishDate: models.NewDate(time.Date(2024, 5, 17, 0, 0, 0, 0, time.UTC)),
		AuthorID:    authorID,
	})
	require.NoError(t, err)

	return id
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	st := newStorage(t)

	id := saveUser(t, st, "ann@example.com")

	_, err := st.SaveUser(ctx, "Other", "ann@example.com", []byte("x"))
	assert.ErrorIs(t, err, storage.ErrUserExists)

	byEmail, err := st.UserByEmail(ctx, "ann@example.com")
	require.NoError(t, err)
	assert.Equal(t, id, byEmail.ID)
	assert.Equal(t, []byte("hash"), byEmail.PassHash)

	byID, err := st.UserByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", byID.Email)

	_, err = st.UserByID(ctx, id+100)
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
}

func TestMigrateIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	require.NoError(t, sqlite.Migrate(path))
	require.NoError(t, sqlite.Migrate(path))
	require.NoError(t, sqlite.Rollback(path))
	require.NoError(t, sqlite.Migrate(path))
}

func TestArticleRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := newStorage(t)

	uid := saveUser(t, st, "ann@example.com")
	id := saveArticle(t, st, uid, "test")

	art, err := st.ArticleByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Title test", art.Title)
	assert.Equal(t, "test", art.Slug)
	assert.Equal(t, uid, art.AuthorID)
	assert.Equal(t, "User ann@example.com", art.AuthorName)
	assert.Equal(t, "2024-05-17", art.PublishDate.Format(models.DateLayout))
	assert.False(t, art.CreatedAt.IsZero())

	bySlug, err := st.ArticleBySlug(ctx, "test")
	require.NoError(t, err)
	assert.Equal(t, id, bySlug.ID)

	_, err = st.ArticleByID(ctx, id+1)
	assert.ErrorIs(t, err, storage.ErrArticleNotFound)
}

func TestSaveArticleConstraints(t *testing.T) {
	ctx := context.Background()
	st := newStorage(t)

	uid := saveUser(t, st, "ann@example.com")
	saveArticle(t, st, uid, "dup")

	_, err := st.SaveArticle(ctx, models.Article{Title: "t", Content: "c", Slug: "dup", AuthorID: uid})
	assert.ErrorIs(t, err, storage.ErrArticleExists)

	_, err = st.SaveArticle(ctx, models.Article{Title: "t", Content: "c", Slug: "ghost", AuthorID: uid + 50})
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
}

func TestArticlesPaging(t *testing.T) {
	ctx := context.Background()
	st := newStorage(t)

	uid := saveUser(t, st, "ann@example.com")
	for i, day := range []int{1, 3, 2} {
		_, err := st.SaveArticle(ctx, models.Article{
			Title:       "t",
			Content:     "c",
			Slug:        []string{"a", "b", "c"}[i],
			PublishDate: models.NewDate(time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC)),
			AuthorID:    uid,
		})
		require.NoError(t, err)
	}

	all, err := st.Articles(ctx, models.Page{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"b", "c", "a"}, []string{all[0].Slug, all[1].Slug, all[2].Slug})

	page, err := st.Articles(ctx, models.Page{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "c", page[0].Slug)

	tail, err := st.Articles(ctx, models.Page{Offset: 2})
	require.NoError(t, err)
	require.Len(t, tail, 1)
	assert.Equal(t, "a", tail[0].Slug)
}

func TestUpdateArticle(t *testing.T) {
	ctx := context.Background()
	st := newStorage(t)

	uid := saveUser(t, st, "ann@example.com")
	id := saveArticle(t, st, uid, "keep-me")

	date := time.Date(2030, 12, 31, 0, 0, 0, 0, time.UTC)
	require.NoError(t, st.UpdateArticle(ctx, id, "New", "Body", date))

	art, err := st.ArticleByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "New", art.Title)
	assert.Equal(t, "Body", art.Content)
	assert.Equal(t, "keep-me", art.Slug)
	assert.True(t, date.Equal(art.PublishDate.Time))

	assert.ErrorIs(t, st.UpdateArticle(ctx, id+1, "x", "y", date), storage.ErrArticleNotFound)
}

func TestRemoveArticleCascades(t *testing.T) {
	ctx := context.Background()
	st := newStorage(t)

	uid := saveUser(t, st, "ann@example.com")
	id := saveArticle(t, st, uid, "doomed")
	other := saveArticle(t, st, uid, "survivor")

	var revIDs []int64
	for _, rating := range []int{5, 0} {
		rid, err := st.SaveReview(ctx, models.Review{Rating: rating, Comment: "c", AuthorID: uid, ArticleID: id})
		require.NoError(t, err)
		revIDs = append(revIDs, rid)
	}
	keep, err := st.SaveReview(ctx, models.Review{Rating: 3, Comment: "c", AuthorID: uid, ArticleID: other})
	require.NoError(t, err)

	require.NoError(t, st.RemoveArticle(ctx, id))

	_, err = st.ArticleByID(ctx, id)
	assert.ErrorIs(t, err, storage.ErrArticleNotFound)
	for _, rid := range revIDs {
		_, err := st.ReviewByID(ctx, rid)
		assert.ErrorIs(t, err, storage.ErrReviewNotFound)
	}
	revs, err := st.ReviewsByArticle(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, revs)

	_, err = st.ReviewByID(ctx, keep)
	assert.NoError(t, err)

	assert.ErrorIs(t, st.RemoveArticle(ctx, id), storage.ErrArticleNotFound)
}

func TestRemoveArticleConcurrently(t *testing.T) {
	ctx := context.Background()
	st := newStorage(t)

	uid := saveUser(t, st, "ann@example.com")
	id := saveArticle(t, st, uid, "race")
	_, err := st.SaveReview(ctx, models.Review{Rating: 4, Comment: "c", AuthorID: uid, ArticleID: id})
	require.NoError(t, err)

	const workers = 2
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = st.RemoveArticle(ctx, id)
		}(i)
	}
	wg.Wait()

	var ok, notFound int
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, storage.ErrArticleNotFound)
		notFound++
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, notFound)
}

func TestReviews(t *testing.T) {
	ctx := context.Background()
	st := newStorage(t)

	uid := saveUser(t, st, "ann@example.com")
	aid := saveArticle(t, st, uid, "reviewed")

	_, err := st.SaveReview(ctx, models.Review{Rating: 3, Comment: "c", AuthorID: uid, ArticleID: aid + 10})
	assert.ErrorIs(t, err, storage.ErrArticleNotFound)
	_, err = st.SaveReview(ctx, models.Review{Rating: 3, Comment: "c", AuthorID: uid + 10, ArticleID: aid})
	assert.ErrorIs(t, err, storage.ErrUserNotFound)

	first, err := st.SaveReview(ctx, models.Review{Rating: 5, Comment: "great", AuthorID: uid, ArticleID: aid})
	require.NoError(t, err)
	second, err := st.SaveReview(ctx, models.Review{Rating: 0, Comment: "awful", AuthorID: uid, ArticleID: aid})
	require.NoError(t, err)

	rev, err := st.ReviewByID(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, 5, rev.Rating)
	assert.Equal(t, "great", rev.Comment)
	assert.Equal(t, "User ann@example.com", rev.AuthorName)

	revs, err := st.ReviewsByArticle(ctx, aid)
	require.NoError(t, err)
	require.Len(t, revs, 2)
	assert.Equal(t, first, revs[0].ID)
	assert.Equal(t, second, revs[1].ID)

	ratings, err := st.Ratings(ctx, aid)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{5, 0}, ratings)

	require.NoError(t, st.UpdateReview(ctx, second, 2, "meh"))
	rev, err = st.ReviewByID(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, 2, rev.Rating)
	assert.Equal(t, "meh", rev.Comment)

	require.NoError(t, st.RemoveReview(ctx, first))
	assert.ErrorIs(t, st.RemoveReview(ctx, first), storage.ErrReviewNotFound)
	assert.ErrorIs(t, st.UpdateReview(ctx, first, 1, "x"), storage.ErrReviewNotFound)

	_, err = st.ArticleByID(ctx, aid)
	assert.NoError(t, err)
}
