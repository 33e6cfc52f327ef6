package article

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"cms-api/internal/domain/models"
	"cms-api/internal/lib/logger/sl"
	"cms-api/internal/service"
	"cms-api/internal/storage"

	"github.com/gosimple/slug"
)

const (
	excerptLength   = 180
	maxSlugAttempts = 100
	fallbackSlug    = "article"
)

var (
	ErrArticleNotFound = fmt.Errorf("article %w", service.ErrNotFound)
	ErrSlugExhausted   = errors.New("no free slug for title")
)

type Storage interface {
	Articles(ctx context.Context, page models.Page) ([]models.Article, error)
	ArticleByID(ctx context.Context, id int64) (models.Article, error)
	ArticleBySlug(ctx context.Context, slug string) (models.Article, error)
	ReviewsByArticle(ctx context.Context, articleID int64) ([]models.Review, error)
	SaveArticle(ctx context.Context, art models.Article) (int64, error)
	UpdateArticle(ctx context.Context, id int64, title, content string, publishDate time.Time) error
	RemoveArticle(ctx context.Context, id int64) error
}

type Service struct {
	log     *slog.Logger
	storage Storage
}

func New(log *slog.Logger, storage Storage) *Service {
	return &Service{
		log:     log,
		storage: storage,
	}
}

// List returns article summaries newest first. A zero page limit returns every article.
func (s *Service) List(ctx context.Context, page models.Page) ([]models.ArticleSummary, error) {
	const op = "service.article.List"

	log := s.log.With(slog.String("op", op))

	arts, err := s.storage.Articles(ctx, page)
	if err != nil {
		log.Error("failed to get articles", sl.Error(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	summaries := make([]models.ArticleSummary, 0, len(arts))
	for _, art := range arts {
		summaries = append(summaries, models.ArticleSummary{
			ID:          art.ID,
			Slug:        art.Slug,
			Title:       art.Title,
			Excerpt:     Excerpt(art.Content),
			PublishDate: art.PublishDate,
			AuthorID:    art.AuthorID,
			AuthorName:  art.AuthorName,
		})
	}

	return summaries, nil
}

func (s *Service) Get(ctx context.Context, id int64) (models.ArticleDetail, error) {
	const op = "service.article.Get"

	art, err := s.storage.ArticleByID(ctx, id)
	if err != nil {
		return models.ArticleDetail{}, s.lookupError(op, err)
	}

	return s.detail(ctx, op, art)
}

func (s *Service) GetBySlug(ctx context.Context, slug string) (models.ArticleDetail, error) {
	const op = "service.article.GetBySlug"

	art, err := s.storage.ArticleBySlug(ctx, slug)
	if err != nil {
		return models.ArticleDetail{}, s.lookupError(op, err)
	}

	return s.detail(ctx, op, art)
}

func (s *Service) detail(ctx context.Context, op string, art models.Article) (models.ArticleDetail, error) {
	revs, err := s.storage.ReviewsByArticle(ctx, art.ID)
	if err != nil {
		s.log.Error("failed to get reviews", slog.String("op", op), sl.Error(err))
		return models.ArticleDetail{}, fmt.Errorf("%s: %w", op, err)
	}

	ratings := make([]int, 0, len(revs))
	for _, rev := range revs {
		ratings = append(ratings, rev.Rating)
	}

	return models.ArticleDetail{
		Article:       art,
		Reviews:       revs,
		ReviewCount:   len(revs),
		AverageRating: service.AverageRating(ratings),
	}, nil
}

// Create stores a new article owned by caller and returns its id.
func (s *Service) Create(ctx context.Context, caller models.Caller, in models.ArticleInput) (int64, error) {
	const op = "service.article.Create"

	log := s.log.With(slog.String("op", op))

	if !caller.Authenticated() {
		return 0, fmt.Errorf("%s: %w", op, service.ErrUnauthenticated)
	}

	publishDate, err := validate(in)
	if err != nil {
		log.Debug("invalid article", sl.Error(err))
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	base := MakeSlug(in.Title)
	for attempt := 1; attempt <= maxSlugAttempts; attempt++ {
		candidate := base
		if attempt > 1 {
			candidate = fmt.Sprintf("%s-%d", base, attempt)
		}

		id, err := s.storage.SaveArticle(ctx, models.Article{
			Title:       in.Title,
			Content:     in.Content,
			Slug:        candidate,
			PublishDate: models.NewDate(publishDate),
			AuthorID:    caller.UserID,
		})
		if err == nil {
			log.Info("article created", slog.Int64("id", id), slog.String("slug", candidate))
			return id, nil
		}
		if errors.Is(err, storage.ErrArticleExists) {
			continue
		}
		if errors.Is(err, storage.ErrUserNotFound) {
			log.Info("caller no longer exists", slog.Int64("user_id", caller.UserID))
			return 0, fmt.Errorf("%s: %w", op, service.ErrUnauthenticated)
		}

		log.Error("failed to save article", sl.Error(err))
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	log.Error("slug attempts exhausted", slog.String("slug", base))
	return 0, fmt.Errorf("%s: %w", op, ErrSlugExhausted)
}

// Update replaces title, content and publish date. The slug never changes.
func (s *Service) Update(ctx context.Context, caller models.Caller, id int64, in models.ArticleInput) error {
	const op = "service.article.Update"

	log := s.log.With(slog.String("op", op), slog.Int64("id", id))

	art, err := s.storage.ArticleByID(ctx, id)
	if err != nil {
		return s.lookupError(op, err)
	}

	if !service.CanMutate(caller, art.AuthorID) {
		log.Info("update rejected", slog.Int64("caller", caller.UserID))
		return fmt.Errorf("%s: %w", op, service.ErrForbidden)
	}

	publishDate, err := validate(in)
	if err != nil {
		log.Debug("invalid article", sl.Error(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	err = s.storage.UpdateArticle(ctx, id, in.Title, in.Content, publishDate)
	if err != nil {
		return s.lookupError(op, err)
	}

	log.Info("article updated")

	return nil
}

// Delete removes the article together with all of its reviews.
func (s *Service) Delete(ctx context.Context, caller models.Caller, id int64) error {
	const op = "service.article.Delete"

	log := s.log.With(slog.String("op", op), slog.Int64("id", id))

	art, err := s.storage.ArticleByID(ctx, id)
	if err != nil {
		return s.lookupError(op, err)
	}

	if !service.CanMutate(caller, art.AuthorID) {
		log.Info("delete rejected", slog.Int64("caller", caller.UserID))
		return fmt.Errorf("%s: %w", op, service.ErrForbidden)
	}

	if err := s.storage.RemoveArticle(ctx, id); err != nil {
		return s.lookupError(op, err)
	}

	log.Info("article removed")

	return nil
}

func (s *Service) lookupError(op string, err error) error {
	if errors.Is(err, storage.ErrArticleNotFound) {
		return fmt.Errorf("%s: %w", op, ErrArticleNotFound)
	}
	s.log.Error("storage failure", slog.String("op", op), sl.Error(err))
	return fmt.Errorf("%s: %w", op, err)
}

func validate(in models.ArticleInput) (time.Time, error) {
	if err := service.RequireText("title", in.Title); err != nil {
		return time.Time{}, err
	}
	if err := service.RequireText("content", in.Content); err != nil {
		return time.Time{}, err
	}
	return service.ParseDate("publish_date", in.PublishDate)
}

// MakeSlug derives the base slug for a title: lowercase ASCII words joined by single dashes.
func MakeSlug(title string) string {
	words := strings.FieldsFunc(slug.Make(title), func(r rune) bool {
		return r == '-' || r == '_'
	})
	if len(words) == 0 {
		return fallbackSlug
	}
	return strings.Join(words, "-")
}

// Excerpt cuts content to the listing preview length.
func Excerpt(content string) string {
	runes := []rune(content)
	if len(runes) <= excerptLength {
		return content
	}
	return string(runes[:excerptLength]) + "..."
}
