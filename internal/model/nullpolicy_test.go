package model

import (
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
)

func ptr[T any](v T) *T { return &v }

func TestPlaceRowSummaryDefaults(t *testing.T) {
	t.Parallel()

	s := PlaceRow{ID: 7, Name: "Quiet Park"}.Summary()

	if s.AvgRating != 0 || s.ReviewCount != 0 {
		t.Errorf("aggregates = (%v, %v), want zeros", s.AvgRating, s.ReviewCount)
	}
	if s.ImageURL != "" || s.Category != "" || s.Description != "" {
		t.Errorf("text fields should default to empty: %+v", s)
	}

	body, err := json.Marshal(s)
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{`"avg_rating":0`, `"review_count":0`, `"image_url":""`, `"category":""`} {
		if !strings.Contains(string(body), key) {
			t.Errorf("JSON %s missing %s", body, key)
		}
	}
}

func TestPlaceStatisticsRowDefaults(t *testing.T) {
	t.Parallel()

	got := PlaceStatisticsRow{PlaceID: 1, Name: "Empty", TotalReviews: ptr(int64(0))}.Statistics()
	want := PlaceStatistics{PlaceID: 1, Name: "Empty"}
	if got != want {
		t.Errorf("Statistics() = %+v, want %+v", got, want)
	}
}

func TestUserStatisticsOmitsLastRatedAt(t *testing.T) {
	t.Parallel()

	never := UserStatisticsRow{UserID: 1, Username: "ana"}.Statistics()
	body, _ := json.Marshal(never)
	if strings.Contains(string(body), "last_rated_at") {
		t.Errorf("last_rated_at should be omitted: %s", body)
	}
	if !strings.Contains(string(body), `"average_rating_given":0`) {
		t.Errorf("average_rating_given should default to 0: %s", body)
	}

	when := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	rated := UserStatisticsRow{UserID: 2, LastRatedAt: &when}.Statistics()
	if rated.LastRatedAt == nil || !rated.LastRatedAt.Equal(when) {
		t.Errorf("LastRatedAt = %v, want %v", rated.LastRatedAt, when)
	}
}

func TestNearbyEnrichment(t *testing.T) {
	t.Parallel()

	row := PlaceRow{ID: 3, Name: "Pier"}

	plain := row.Nearby(1.5, false)
	if plain.AvgRating != nil || plain.ReviewCount != nil {
		t.Error("aggregates should be nil without enrichment")
	}
	body, _ := json.Marshal(plain)
	if strings.Contains(string(body), "avg_rating") {
		t.Errorf("avg_rating should be omitted: %s", body)
	}

	enriched := row.Nearby(1.5, true)
	if enriched.AvgRating == nil || *enriched.AvgRating != 0 {
		t.Errorf("AvgRating = %v, want pointer to 0", enriched.AvgRating)
	}
	if enriched.ReviewCount == nil || *enriched.ReviewCount != 0 {
		t.Errorf("ReviewCount = %v, want pointer to 0", enriched.ReviewCount)
	}
}

func TestReviewRowComment(t *testing.T) {
	t.Parallel()

	if got := (ReviewRow{Comment: nil}).Review().Comment; got != "" {
		t.Errorf("Comment = %q, want empty", got)
	}
	if got := (ReviewRow{Comment: ptr("great")}).Review().Comment; got != "great" {
		t.Errorf("Comment = %q, want great", got)
	}
}

func TestPlaceDetailCarriesCreatedAt(t *testing.T) {
	t.Parallel()

	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	detail := PlaceDetail{
		PlaceSummary: PlaceRow{ID: 1, Name: "P", CreatedAt: created}.Summary(),
		Reviews:      []Review{},
	}

	body, err := json.Marshal(detail)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(body), `"created_at":"2025-01-02T03:04:05Z"`) {
		t.Errorf("JSON %s missing the place created_at", body)
	}
}
