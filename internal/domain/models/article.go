package models

import (
	"fmt"
	"strconv"
	"time"
)

// DateLayout is the wire and storage format of an article publish date.
const DateLayout = "2006-01-02"

// Date is a calendar date. It travels as "YYYY-MM-DD" in JSON so a value read
// from the API can be sent back unchanged.
type Date struct {
	time.Time
}

func NewDate(t time.Time) Date {
	return Date{Time: t}
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(d.String())), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	raw, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}

	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		return err
	}

	d.Time = t
	return nil
}

type Article struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Slug        string    `json:"slug"`
	PublishDate Date      `json:"publish_date"`
	AuthorID    int64     `json:"author_id"`
	AuthorName  string    `json:"author_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// ArticleInput carries the user-editable fields of an article.
// PublishDate is validated and parsed by the service.
type ArticleInput struct {
	Title       string
	Content     string
	PublishDate string
}

type ArticleSummary struct {
	ID          int64  `json:"id"`
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Excerpt     string `json:"excerpt"`
	PublishDate Date   `json:"publish_date"`
	AuthorID    int64  `json:"author_id"`
	AuthorName  string `json:"author_name"`
}

type ArticleDetail struct {
	Article
	Reviews       []Review `json:"reviews"`
	ReviewCount   int      `json:"review_count"`
	AverageRating *float64 `json:"average_rating"`
}

// Page bounds a listing. A zero Limit means no limit.
type Page struct {
	Limit  int
	Offset int
}
