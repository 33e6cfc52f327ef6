package review

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"cms-api/internal/domain/models"
	"cms-api/internal/lib/logger/sl"
	"cms-api/internal/service"
	"cms-api/internal/storage"
)

var (
	ErrReviewNotFound  = fmt.Errorf("review %w", service.ErrNotFound)
	ErrArticleNotFound = fmt.Errorf("article %w", service.ErrNotFound)
)

type Storage interface {
	ArticleByID(ctx context.Context, id int64) (models.Article, error)
	ReviewByID(ctx context.Context, id int64) (models.Review, error)
	Ratings(ctx context.Context, articleID int64) ([]int, error)
	SaveReview(ctx context.Context, rev models.Review) (int64, error)
	UpdateReview(ctx context.Context, id int64, rating int, comment string) error
	RemoveReview(ctx context.Context, id int64) error
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

// Create adds a review by caller to the article. Authors may review their own articles.
func (s *Service) Create(ctx context.Context, caller models.Caller, articleID int64, in models.ReviewInput) (int64, error) {
	const op = "service.review.Create"

	log := s.log.With(slog.String("op", op), slog.Int64("article_id", articleID))

	if !caller.Authenticated() {
		return 0, fmt.Errorf("%s: %w", op, service.ErrUnauthenticated)
	}

	if _, err := s.storage.ArticleByID(ctx, articleID); err != nil {
		return 0, s.lookupError(op, err)
	}

	if err := validate(in); err != nil {
		log.Debug("invalid review", sl.Error(err))
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	id, err := s.storage.SaveReview(ctx, models.Review{
		Rating:    in.Rating,
		Comment:   in.Comment,
		AuthorID:  caller.UserID,
		ArticleID: articleID,
	})
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			log.Info("caller no longer exists", slog.Int64("user_id", caller.UserID))
			return 0, fmt.Errorf("%s: %w", op, service.ErrUnauthenticated)
		}
		return 0, s.lookupError(op, err)
	}

	log.Info("review created", slog.Int64("id", id))

	return id, nil
}

func (s *Service) Get(ctx context.Context, id int64) (models.Review, error) {
	const op = "service.review.Get"

	rev, err := s.storage.ReviewByID(ctx, id)
	if err != nil {
		return models.Review{}, s.lookupError(op, err)
	}

	return rev, nil
}

// Update replaces rating and comment of caller's own review.
func (s *Service) Update(ctx context.Context, caller models.Caller, id int64, in models.ReviewInput) error {
	const op = "service.review.Update"

	log := s.log.With(slog.String("op", op), slog.Int64("id", id))

	rev, err := s.storage.ReviewByID(ctx, id)
	if err != nil {
		return s.lookupError(op, err)
	}

	if !service.CanMutate(caller, rev.AuthorID) {
		log.Info("update rejected", slog.Int64("caller", caller.UserID))
		return fmt.Errorf("%s: %w", op, service.ErrForbidden)
	}

	if err := validate(in); err != nil {
		log.Debug("invalid review", sl.Error(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.storage.UpdateReview(ctx, id, in.Rating, in.Comment); err != nil {
		return s.lookupError(op, err)
	}

	log.Info("review updated")

	return nil
}

// Delete removes caller's own review. The article is left untouched.
func (s *Service) Delete(ctx context.Context, caller models.Caller, id int64) error {
	const op = "service.review.Delete"

	log := s.log.With(slog.String("op", op), slog.Int64("id", id))

	rev, err := s.storage.ReviewByID(ctx, id)
	if err != nil {
		return s.lookupError(op, err)
	}

	if !service.CanMutate(caller, rev.AuthorID) {
		log.Info("delete rejected", slog.Int64("caller", caller.UserID))
		return fmt.Errorf("%s: %w", op, service.ErrForbidden)
	}

	if err := s.storage.RemoveReview(ctx, id); err != nil {
		return s.lookupError(op, err)
	}

	log.Info("review removed")

	return nil
}

// AggregateRating is computed from the current reviews on every call.
// It returns nil for an article without reviews.
func (s *Service) AggregateRating(ctx context.Context, articleID int64) (*float64, error) {
	const op = "service.review.AggregateRating"

	if _, err := s.storage.ArticleByID(ctx, articleID); err != nil {
		return nil, s.lookupError(op, err)
	}

	ratings, err := s.storage.Ratings(ctx, articleID)
	if err != nil {
		s.log.Error("failed to get ratings", slog.String("op", op), sl.Error(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return service.AverageRating(ratings), nil
}

func (s *Service) lookupError(op string, err error) error {
	switch {
	case errors.Is(err, storage.ErrReviewNotFound):
		return fmt.Errorf("%s: %w", op, ErrReviewNotFound)
	case errors.Is(err, storage.ErrArticleNotFound):
		return fmt.Errorf("%s: %w", op, ErrArticleNotFound)
	}
	s.log.Error("storage failure", slog.String("op", op), sl.Error(err))
	return fmt.Errorf("%s: %w", op, err)
}

func validate(in models.ReviewInput) error {
	if err := service.RequireRating("rating", in.Rating); err != nil {
		return err
	}
	return service.RequireText("comment", in.Comment)
}
