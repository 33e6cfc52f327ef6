package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"cms-api/internal/domain/models"
	"cms-api/internal/storage"

	"github.com/mattn/go-sqlite3"
)

const reviewColumns = `r.id, r.rating, r.comment, r.author_id, u.name, r.article_id, r.created_at`

func scanReview(row rowScanner) (models.Review, error) {
	var rev models.Review
	err := row.Scan(
		&rev.ID,
		&rev.Rating,
		&rev.Comment,
		&rev.AuthorID,
		&rev.AuthorName,
		&rev.ArticleID,
		&rev.CreatedAt,
	)
	return rev, err
}

func (s *Storage) ReviewByID(ctx context.Context, id int64) (models.Review, error) {
	const op = "storage.sqlite.ReviewByID"

	row := s.db.QueryRowContext(ctx, `
		SELECT `+reviewColumns+`
		FROM reviews r
		JOIN users u ON u.id = r.author_id
		WHERE r.id = ?`, id)

	rev, err := scanReview(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Review{}, fmt.Errorf("%s: %w", op, storage.ErrReviewNotFound)
		}
		return models.Review{}, fmt.Errorf("%s: %w", op, err)
	}

	return rev, nil
}

// ReviewsByArticle returns the article's reviews oldest first.
func (s *Storage) ReviewsByArticle(ctx context.Context, articleID int64) ([]models.Review, error) {
	const op = "storage.sqlite.ReviewsByArticle"

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+reviewColumns+`
		FROM reviews r
		JOIN users u ON u.id = r.author_id
		WHERE r.article_id = ?
		ORDER BY r.id`, articleID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	revs := make([]models.Review, 0)
	for rows.Next() {
		rev, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		revs = append(revs, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return revs, nil
}

func (s *Storage) Ratings(ctx context.Context, articleID int64) ([]int, error) {
	const op = "storage.sqlite.Ratings"

	rows, err := s.db.QueryContext(ctx, `SELECT rating FROM reviews WHERE article_id = ?`, articleID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var ratings []int
	for rows.Next() {
		var r int
		if err := rows.Scan(&r); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		ratings = append(ratings, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return ratings, nil
}

// SaveReview inserts rev and returns its id.
// A missing article yields ErrArticleNotFound, a missing author ErrUserNotFound.
func (s *Storage) SaveReview(ctx context.Context, rev models.Review) (int64, error) {
	const op = "storage.sqlite.SaveReview"

	stmt, err := s.db.PrepareContext(ctx, `
		INSERT INTO reviews (rating, comment, author_id, article_id, created_at)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer stmt.Close()

	res, err := stmt.ExecContext(ctx, rev.Rating, rev.Comment, rev.AuthorID, rev.ArticleID, time.Now().UTC())
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey {
			return 0, fmt.Errorf("%s: %w", op, s.missingReviewParent(ctx, rev.ArticleID))
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

// missingReviewParent tells which foreign key a rejected review insert broke.
func (s *Storage) missingReviewParent(ctx context.Context, articleID int64) error {
	var found int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM articles WHERE id = ?`, articleID).Scan(&found)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return storage.ErrArticleNotFound
	case err != nil:
		return err
	}
	return storage.ErrUserNotFound
}

func (s *Storage) UpdateReview(ctx context.Context, id int64, rating int, comment string) error {
	const op = "storage.sqlite.UpdateReview"

	res, err := s.db.ExecContext(ctx, `UPDATE reviews SET rating = ?, comment = ? WHERE id = ?`, rating, comment, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrReviewNotFound)
	}

	return nil
}

func (s *Storage) RemoveReview(ctx context.Context, id int64) error {
	const op = "storage.sqlite.RemoveReview"

	res, err := s.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrReviewNotFound)
	}

	return nil
}
