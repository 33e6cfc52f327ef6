package models

import "time"

const (
	MinRating = 0
	MaxRating = 5
)

type Review struct {
	ID         int64     `json:"id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	AuthorID   int64     `json:"author_id"`
	AuthorName string    `json:"author_name"`
	ArticleID  int64     `json:"article_id"`
	CreatedAt  time.Time `json:"created_at"`
}

type ReviewInput struct {
	Rating  int
	Comment string
}
