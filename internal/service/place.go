package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/deppfellow/placerate/internal/errs"
	"github.com/deppfellow/placerate/internal/geo"
	"github.com/deppfellow/placerate/internal/model"
	"github.com/deppfellow/placerate/internal/repository"
)

const (
	DefaultTopRatedLimit = 10
	MaxTopRatedLimit     = 100
)

type PlaceService struct {
	places repository.PlaceStore
	logger *zerolog.Logger
}

func NewPlaceService(places repository.PlaceStore, logger *zerolog.Logger) *PlaceService {
	return &PlaceService{places: places, logger: logger}
}

// ListPlaces returns every place with its average rating and review count.
func (s *PlaceService) ListPlaces(ctx context.Context) ([]model.PlaceSummary, error) {
	rows, err := s.places.ListPlaces(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]model.PlaceSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.Summary())
	}
	return out, nil
}

// GetPlace returns one place with its reviews, newest first.
func (s *PlaceService) GetPlace(ctx context.Context, placeID int64) (model.PlaceDetail, error) {
	if placeID <= 0 {
		return model.PlaceDetail{}, errs.InvalidField("place_id", "must be a positive id")
	}

	row, err := s.places.GetPlace(ctx, placeID)
	if err != nil {
		return model.PlaceDetail{}, err
	}

	reviews, err := s.places.ListReviews(ctx, placeID)
	if err != nil {
		return model.PlaceDetail{}, err
	}

	return model.PlaceDetail{
		PlaceSummary: row.Summary(),
		Reviews:      toReviews(reviews),
	}, nil
}

// ListPlaceRatings returns the reviews of one place, newest first.
func (s *PlaceService) ListPlaceRatings(ctx context.Context, placeID int64) ([]model.Review, error) {
	if placeID <= 0 {
		return nil, errs.InvalidField("place_id", "must be a positive id")
	}

	if _, err := s.places.GetPlace(ctx, placeID); err != nil {
		return nil, err
	}

	reviews, err := s.places.ListReviews(ctx, placeID)
	if err != nil {
		return nil, err
	}
	return toReviews(reviews), nil
}

func toReviews(rows []model.ReviewRow) []model.Review {
	out := make([]model.Review, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.Review())
	}
	return out
}

// TopRated ranks rated places by average stars, then review count, then
// place id. A zero limit means DefaultTopRatedLimit.
func (s *PlaceService) TopRated(ctx context.Context, limit int) ([]model.TopRatedPlace, error) {
	if limit == 0 {
		limit = DefaultTopRatedLimit
	}
	if limit < 1 || limit > MaxTopRatedLimit {
		return nil, errs.InvalidField("limit", "must be between 1 and 100")
	}

	rows, err := s.places.TopRated(ctx, limit)
	if err != nil {
		return nil, err
	}

	out := make([]model.TopRatedPlace, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.TopRated())
	}
	return out, nil
}

// AddPlace stores a new place and returns its id.
func (s *PlaceService) AddPlace(ctx context.Context, in model.PlaceInput) (int64, error) {
	in, err := normalizePlace(in)
	if err != nil {
		return 0, err
	}

	placeID, err := s.places.CreatePlace(ctx, in)
	if err != nil {
		return 0, err
	}

	s.logger.Info().Int64("place_id", placeID).Str("name", in.Name).Msg("place added")
	return placeID, nil
}

// UpdatePlace overwrites every writable field of a place.
func (s *PlaceService) UpdatePlace(ctx context.Context, placeID int64, in model.PlaceInput) error {
	if placeID <= 0 {
		return errs.InvalidField("place_id", "must be a positive id")
	}

	in, err := normalizePlace(in)
	if err != nil {
		return err
	}

	return s.places.UpdatePlace(ctx, placeID, in)
}

// DeletePlace removes a place together with its ratings.
func (s *PlaceService) DeletePlace(ctx context.Context, placeID int64) error {
	if placeID <= 0 {
		return errs.InvalidField("place_id", "must be a positive id")
	}

	if err := s.places.DeletePlace(ctx, placeID); err != nil {
		return err
	}

	s.logger.Info().Int64("place_id", placeID).Msg("place deleted")
	return nil
}

func normalizePlace(in model.PlaceInput) (model.PlaceInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return in, errs.InvalidField("name", "is required")
	}
	if !geo.ValidLatitude(in.Latitude) {
		return in, errs.InvalidField("latitude", "must be between -90 and 90")
	}
	if !geo.ValidLongitude(in.Longitude) {
		return in, errs.InvalidField("longitude", "must be between -180 and 180")
	}
	return in, nil
}
