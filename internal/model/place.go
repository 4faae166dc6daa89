// Package model holds the records the services return and the handlers
// serialise. Field tags are the wire names clients depend on.
package model

import "time"

// PlaceSummary is a place with its rating aggregates, as returned by list
// and detail lookups.
type PlaceSummary struct {
	ID          int64   `json:"place_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	ImageURL    string  `json:"image_url"`
	Category    string  `json:"category"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	AvgRating   float64 `json:"avg_rating"`
	ReviewCount int64   `json:"review_count"`

	CreatedAt time.Time `json:"created_at"`
}

// PlaceDetail is a summary plus its reviews, newest first.
type PlaceDetail struct {
	PlaceSummary
	Reviews []Review `json:"reviews"`
}

// Review is one rating joined with its author's username.
type Review struct {
	RatingID  int64     `json:"rating_id"`
	UserID    int64     `json:"user_id"`
	Username  string    `json:"username"`
	Stars     int       `json:"stars"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// TopRatedPlace is one entry of the top-rated ranking.
type TopRatedPlace struct {
	ID            int64   `json:"place_id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int64   `json:"review_count"`
}

// NearbyPlace is a place inside a search radius. AvgRating and ReviewCount
// are nil, and left out of the JSON, when nearby enrichment is disabled.
type NearbyPlace struct {
	ID          int64    `json:"place_id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	ImageURL    string   `json:"image_url"`
	Category    string   `json:"category"`
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	DistanceKm  float64  `json:"distance_km"`
	AvgRating   *float64 `json:"avg_rating,omitempty"`
	ReviewCount *int64   `json:"review_count,omitempty"`
}

// PlaceInput carries the writable fields of a place.
type PlaceInput struct {
	Name        string
	Description string
	ImageURL    string
	Category    string
	Latitude    float64
	Longitude   float64
}
