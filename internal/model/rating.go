package model

// Outcome tells whether a submission inserted a rating or overwrote one.
type Outcome string

const (
	OutcomeCreated Outcome = "created"
	OutcomeUpdated Outcome = "updated"
)

// MinStars and MaxStars bound a rating.
const (
	MinStars = 1
	MaxStars = 5
)

// SubmitResult reports what a rating submission did.
type SubmitResult struct {
	Outcome  Outcome `json:"outcome"`
	RatingID int64   `json:"rating_id"`
}

// PlaceStatistics is the per-place distribution of ratings.
type PlaceStatistics struct {
	PlaceID       int64   `json:"place_id"`
	Name          string  `json:"name"`
	TotalReviews  int64   `json:"total_reviews"`
	AverageRating float64 `json:"average_rating"`
	LowestRating  int64   `json:"lowest_rating"`
	HighestRating int64   `json:"highest_rating"`
	SumOfRatings  int64   `json:"sum_of_ratings"`
	FiveStarCount int64   `json:"five_star_count"`
	OneStarCount  int64   `json:"one_star_count"`
}
