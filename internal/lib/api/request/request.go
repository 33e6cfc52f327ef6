package request

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"

	"cms-api/internal/domain/models"
	"cms-api/internal/service"
)

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *Credentials) Bind(r *http.Request) error {
	if c.Email == "" || c.Password == "" {
		return errors.New("email and password are required")
	}
	return nil
}

type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (reg *Registration) Bind(r *http.Request) error { return nil }

type Article struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	PublishDate string `json:"publish_date"`
}

func (a *Article) Bind(r *http.Request) error { return nil }

func (a *Article) Input() models.ArticleInput {
	return models.ArticleInput{
		Title:       a.Title,
		Content:     a.Content,
		PublishDate: a.PublishDate,
	}
}

var errRatingNotInteger = &service.ValidationError{Field: "rating", Reason: "must be an integer between 0 and 5"}

// Review is the payload of review create and update requests.
// Rating is a pointer so that a missing rating is not mistaken for 0.
type Review struct {
	ArticleID int64  `json:"article_id,omitempty"`
	Rating    *int   `json:"rating"`
	Comment   string `json:"comment"`
}

// UnmarshalJSON reports a rating that is not a whole number as a validation
// error instead of a decoding failure.
func (rv *Review) UnmarshalJSON(data []byte) error {
	var raw struct {
		ArticleID int64           `json:"article_id"`
		Rating    json.RawMessage `json:"rating"`
		Comment   string          `json:"comment"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	rv.ArticleID = raw.ArticleID
	rv.Comment = raw.Comment
	rv.Rating = nil

	if len(raw.Rating) == 0 || string(raw.Rating) == "null" {
		return nil
	}

	var n float64
	if err := json.Unmarshal(raw.Rating, &n); err != nil || n != math.Trunc(n) {
		return errRatingNotInteger
	}
	// Out of range values are left to the service, but must fit in an int first.
	if math.Abs(n) > math.MaxInt32 {
		return errRatingNotInteger
	}

	rating := int(n)
	rv.Rating = &rating
	return nil
}

func (rv *Review) Bind(r *http.Request) error {
	if rv.Rating == nil {
		return &service.ValidationError{Field: "rating", Reason: "is required"}
	}
	return nil
}

func (rv *Review) Input() models.ReviewInput {
	in := models.ReviewInput{Comment: rv.Comment}
	if rv.Rating != nil {
		in.Rating = *rv.Rating
	}
	return in
}
