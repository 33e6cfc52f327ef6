package models_test

import (
	"encoding/json"
	"testing"
	"time"

	"cms-api/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateJSON(t *testing.T) {
	d := models.NewDate(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))

	raw, err := json.Marshal(models.ArticleSummary{PublishDate: d})
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"publish_date":"2024-03-01"`)

	var back models.ArticleSummary
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.True(t, d.Equal(back.PublishDate.Time))
	assert.Equal(t, "2024-03-01", back.PublishDate.String())
}

func TestDetailKeepsReviewsNextToDate(t *testing.T) {
	avg := 5.0
	raw, err := json.Marshal(models.ArticleDetail{
		Article:       models.Article{Slug: "test", PublishDate: models.NewDate(time.Date(2099, 1, 1, 0, 0, 0, 0, time.UTC))},
		Reviews:       []models.Review{{Rating: 5}},
		ReviewCount:   1,
		AverageRating: &avg,
	})
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(raw, &payload))
	assert.Equal(t, "2099-01-01", payload["publish_date"])
	assert.Equal(t, "test", payload["slug"])
	assert.Equal(t, float64(1), payload["review_count"])
	assert.Len(t, payload["reviews"], 1)
}

func TestDateRejectsTimestamps(t *testing.T) {
	var d models.Date
	assert.Error(t, json.Unmarshal([]byte(`"2024-03-01T00:00:00Z"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`20240301`), &d))
	assert.NoError(t, json.Unmarshal([]byte(`null`), &d))
	assert.True(t, d.IsZero())
}
