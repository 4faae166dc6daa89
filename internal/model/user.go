package model

import "time"

// User is a registered account. Password is never serialised.
type User struct {
	ID        int64     `json:"user_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// UserStatistics summarises one user's rating activity. LastRatedAt is
// omitted for users who never rated.
type UserStatistics struct {
	UserID             int64      `json:"user_id"`
	Username           string     `json:"username"`
	TotalReviews       int64      `json:"total_reviews"`
	AverageRatingGiven float64    `json:"average_rating_given"`
	PlacesRated        int64      `json:"places_rated"`
	LastRatedAt        *time.Time `json:"last_rated_at,omitempty"`
}

// ReviewedPlace is a place a user rated, with that user's own rating and
// the place's overall aggregates.
type ReviewedPlace struct {
	PlaceID       int64     `json:"place_id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	ImageURL      string    `json:"image_url"`
	Category      string    `json:"category"`
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
	UserRating    int       `json:"user_rating"`
	UserComment   string    `json:"user_comment"`
	UserRatedAt   time.Time `json:"user_rated_at"`
	AverageRating float64   `json:"average_rating"`
	ReviewCount   int64     `json:"review_count"`
}
