package model

import "time"

// Aggregates computed over zero rows come back from the store as NULL. The
// rows below keep them as pointers and the methods on each row apply one
// policy everywhere:
//
//	AVG                 -> 0.0
//	MIN, MAX, SUM, COUNT -> 0
//	optional text        -> ""
//	nullable timestamp   -> omitted (nil pointer, omitempty)

// Float returns *p or 0.
func Float(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

// Int returns *p or 0.
func Int(p *int64) int64 {
	if p == nil {
		return 0
	}
	return *p
}

// Text returns *p or "".
func Text(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// Timestamp keeps a nullable time nil so the field is dropped from JSON.
func Timestamp(p *time.Time) *time.Time {
	if p == nil || p.IsZero() {
		return nil
	}
	t := *p
	return &t
}

// PlaceRow is a place as read from the store, optionally joined with its
// rating aggregates.
type PlaceRow struct {
	ID          int64
	Name        string
	Description *string
	ImageURL    *string
	Category    *string
	Latitude    float64
	Longitude   float64
	CreatedAt   time.Time
	AvgRating   *float64
	ReviewCount *int64
}

// Summary applies the policy to the aggregates.
func (r PlaceRow) Summary() PlaceSummary {
	return PlaceSummary{
		ID:          r.ID,
		Name:        r.Name,
		Description: Text(r.Description),
		ImageURL:    Text(r.ImageURL),
		Category:    Text(r.Category),
		Latitude:    r.Latitude,
		Longitude:   r.Longitude,
		AvgRating:   Float(r.AvgRating),
		ReviewCount: Int(r.ReviewCount),
		CreatedAt:   r.CreatedAt,
	}
}

// Nearby builds a proximity result. With enrich set the aggregates are
// defaulted and attached; otherwise they stay nil.
func (r PlaceRow) Nearby(distanceKm float64, enrich bool) NearbyPlace {
	n := NearbyPlace{
		ID:          r.ID,
		Name:        r.Name,
		Description: Text(r.Description),
		ImageURL:    Text(r.ImageURL),
		Category:    Text(r.Category),
		Latitude:    r.Latitude,
		Longitude:   r.Longitude,
		DistanceKm:  distanceKm,
	}
	if enrich {
		avg := Float(r.AvgRating)
		count := Int(r.ReviewCount)
		n.AvgRating = &avg
		n.ReviewCount = &count
	}
	return n
}

// ReviewRow is a rating joined with its author.
type ReviewRow struct {
	RatingID  int64
	UserID    int64
	PlaceID   int64
	Username  string
	Stars     int
	Comment   *string
	CreatedAt time.Time
}

func (r ReviewRow) Review() Review {
	return Review{
		RatingID:  r.RatingID,
		UserID:    r.UserID,
		Username:  r.Username,
		Stars:     r.Stars,
		Comment:   Text(r.Comment),
		CreatedAt: r.CreatedAt,
	}
}

// TopRatedRow is one ranked place.
type TopRatedRow struct {
	ID            int64
	Name          string
	Description   *string
	Latitude      float64
	Longitude     float64
	AverageRating *float64
	ReviewCount   *int64
}

func (r TopRatedRow) TopRated() TopRatedPlace {
	return TopRatedPlace{
		ID:            r.ID,
		Name:          r.Name,
		Description:   Text(r.Description),
		Latitude:      r.Latitude,
		Longitude:     r.Longitude,
		AverageRating: Float(r.AverageRating),
		ReviewCount:   Int(r.ReviewCount),
	}
}

// PlaceStatisticsRow is one group of the per-place statistics query.
type PlaceStatisticsRow struct {
	PlaceID       int64
	Name          string
	TotalReviews  *int64
	AverageRating *float64
	LowestRating  *int64
	HighestRating *int64
	SumOfRatings  *int64
	FiveStarCount *int64
	OneStarCount  *int64
}

func (r PlaceStatisticsRow) Statistics() PlaceStatistics {
	return PlaceStatistics{
		PlaceID:       r.PlaceID,
		Name:          r.Name,
		TotalReviews:  Int(r.TotalReviews),
		AverageRating: Float(r.AverageRating),
		LowestRating:  Int(r.LowestRating),
		HighestRating: Int(r.HighestRating),
		SumOfRatings:  Int(r.SumOfRatings),
		FiveStarCount: Int(r.FiveStarCount),
		OneStarCount:  Int(r.OneStarCount),
	}
}

// UserStatisticsRow is one group of the per-user statistics query.
type UserStatisticsRow struct {
	UserID             int64
	Username           string
	TotalReviews       *int64
	AverageRatingGiven *float64
	PlacesRated        *int64
	LastRatedAt        *time.Time
}

func (r UserStatisticsRow) Statistics() UserStatistics {
	return UserStatistics{
		UserID:             r.UserID,
		Username:           r.Username,
		TotalReviews:       Int(r.TotalReviews),
		AverageRatingGiven: Float(r.AverageRatingGiven),
		PlacesRated:        Int(r.PlacesRated),
		LastRatedAt:        Timestamp(r.LastRatedAt),
	}
}

// ReviewedPlaceRow is a place rated by one user.
type ReviewedPlaceRow struct {
	PlaceID       int64
	Name          string
	Description   *string
	ImageURL      *string
	Category      *string
	Latitude      float64
	Longitude     float64
	UserRating    int
	UserComment   *string
	UserRatedAt   time.Time
	AverageRating *float64
	ReviewCount   *int64
}

func (r ReviewedPlaceRow) ReviewedPlace() ReviewedPlace {
	return ReviewedPlace{
		PlaceID:       r.PlaceID,
		Name:          r.Name,
		Description:   Text(r.Description),
		ImageURL:      Text(r.ImageURL),
		Category:      Text(r.Category),
		Latitude:      r.Latitude,
		Longitude:     r.Longitude,
		UserRating:    r.UserRating,
		UserComment:   Text(r.UserComment),
		UserRatedAt:   r.UserRatedAt,
		AverageRating: Float(r.AverageRating),
		ReviewCount:   Int(r.ReviewCount),
	}
}
