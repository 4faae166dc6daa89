package service

import (
	"context"

	"github.com/deppfellow/placerate/internal/errs"
	"github.com/deppfellow/placerate/internal/model"
	"github.com/deppfellow/placerate/internal/repository"
)

type StatisticsService struct {
	stats repository.StatisticsStore
	users repository.UserStore
}

func NewStatisticsService(stats repository.StatisticsStore, users repository.UserStore) *StatisticsService {
	return &StatisticsService{stats: stats, users: users}
}

// RatingStatistics returns the rating distribution of every place, places
// without ratings included.
func (s *StatisticsService) RatingStatistics(ctx context.Context) ([]model.PlaceStatistics, error) {
	rows, err := s.stats.PlaceStatistics(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]model.PlaceStatistics, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.Statistics())
	}
	return out, nil
}

// UserStatistics returns the rating activity of every user.
func (s *StatisticsService) UserStatistics(ctx context.Context) ([]model.UserStatistics, error) {
	rows, err := s.stats.UserStatistics(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]model.UserStatistics, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.Statistics())
	}
	return out, nil
}

// ReviewedPlaces lists the places userID rated, newest rating first. An
// unknown user is a not found error rather than an empty list.
func (s *StatisticsService) ReviewedPlaces(ctx context.Context, userID int64) ([]model.ReviewedPlace, error) {
	if userID <= 0 {
		return nil, errs.InvalidField("user_id", "must be a positive id")
	}

	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}

	rows, err := s.stats.ReviewedPlaces(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]model.ReviewedPlace, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.ReviewedPlace())
	}
	return out, nil
}
