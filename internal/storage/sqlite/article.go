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

const articleColumns = `a.id, a.title, a.content, a.slug, a.publish_date, a.author_id, u.name, a.created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArticle(row rowScanner) (models.Article, error) {
	var (
		art         models.Article
		publishDate string
	)

	err := row.Scan(
		&art.ID,
		&art.Title,
		&art.Content,
		&art.Slug,
		&publishDate,
		&art.AuthorID,
		&art.AuthorName,
		&art.CreatedAt,
	)
	if err != nil {
		return models.Article{}, err
	}

	art.PublishDate.Time, err = time.Parse(models.DateLayout, publishDate)
	if err != nil {
		return models.Article{}, fmt.Errorf("bad publish_date %q: %w", publishDate, err)
	}

	return art, nil
}

// Articles returns articles newest publish date first.
func (s *Storage) Articles(ctx context.Context, page models.Page) ([]models.Article, error) {
	const op = "storage.sqlite.Articles"

	limit := page.Limit
	if limit <= 0 {
		limit = -1
	}
	offset := page.Offset
	if offset < 0 {
		offset = 0
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+articleColumns+`
		FROM articles a
		JOIN users u ON u.id = a.author_id
		ORDER BY a.publish_date DESC, a.id DESC
		LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	arts := make([]models.Article, 0)
	for rows.Next() {
		art, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		arts = append(arts, art)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return arts, nil
}

func (s *Storage) ArticleByID(ctx context.Context, id int64) (models.Article, error) {
	const op = "storage.sqlite.ArticleByID"

	row := s.db.QueryRowContext(ctx, `
		SELECT `+articleColumns+`
		FROM articles a
		JOIN users u ON u.id = a.author_id
		WHERE a.id = ?`, id)

	art, err := scanArticle(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Article{}, fmt.Errorf("%s: %w", op, storage.ErrArticleNotFound)
		}
		return models.Article{}, fmt.Errorf("%s: %w", op, err)
	}

	return art, nil
}

func (s *Storage) ArticleBySlug(ctx context.Context, slug string) (models.Article, error) {
	const op = "storage.sqlite.ArticleBySlug"

	row := s.db.QueryRowContext(ctx, `
		SELECT `+articleColumns+`
		FROM articles a
		JOIN users u ON u.id = a.author_id
		WHERE a.slug = ?`, slug)

	art, err := scanArticle(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Article{}, fmt.Errorf("%s: %w", op, storage.ErrArticleNotFound)
		}
		return models.Article{}, fmt.Errorf("%s: %w", op, err)
	}

	return art, nil
}

// SaveArticle inserts art and returns its id. A taken slug yields ErrArticleExists.
func (s *Storage) SaveArticle(ctx context.Context, art models.Article) (int64, error) {
	const op = "storage.sqlite.SaveArticle"

	stmt, err := s.db.PrepareContext(ctx, `
		INSERT INTO articles (title, content, slug, publish_date, author_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer stmt.Close()

	res, err := stmt.ExecContext(ctx,
		art.Title,
		art.Content,
		art.Slug,
		art.PublishDate.Format(models.DateLayout),
		art.AuthorID,
		time.Now().UTC(),
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) {
			switch sqliteErr.ExtendedCode {
			case sqlite3.ErrConstraintUnique:
				return 0, fmt.Errorf("%s: %w", op, storage.ErrArticleExists)
			case sqlite3.ErrConstraintForeignKey:
				return 0, fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
			}
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

// UpdateArticle rewrites the mutable fields in a single statement. Slug and author are left alone.
func (s *Storage) UpdateArticle(ctx context.Context, id int64, title, content string, publishDate time.Time) error {
	const op = "storage.sqlite.UpdateArticle"

	res, err := s.db.ExecContext(ctx, `
		UPDATE articles
		SET title = ?,
			content = ?,
			publish_date = ?
		WHERE id = ?`, title, content, publishDate.Format(models.DateLayout), id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrArticleNotFound)
	}

	return nil
}

// RemoveArticle deletes the article and its reviews in one transaction.
func (s *Storage) RemoveArticle(ctx context.Context, id int64) (err error) {
	const op = "storage.sqlite.RemoveArticle"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM reviews WHERE article_id = ?`, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM articles WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrArticleNotFound)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
