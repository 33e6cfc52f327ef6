package service

import (
	"strings"
	"time"

	"cms-api/internal/domain/models"
)

func RequireText(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Field: field, Reason: "must not be empty"}
	}
	return nil
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(field, value string) (time.Time, error) {
	d, err := time.Parse(models.DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, &ValidationError{Field: field, Reason: "must be a date in YYYY-MM-DD format"}
	}
	return d, nil
}

func RequireRating(field string, rating int) error {
	if rating < models.MinRating || rating > models.MaxRating {
		return &ValidationError{Field: field, Reason: "must be an integer between 0 and 5"}
	}
	return nil
}
