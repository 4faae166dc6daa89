// Package repository handles all interactions with the database.
//
// It contains the SQL and the row scanning; every failure leaves through
// sqlerr.HandleError so services only ever see *errs.HTTPError values.
// Each call runs under its own deadline (database.query_timeout) and holds
// a pooled connection only for its own duration.
package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/deppfellow/placerate/internal/geo"
	"github.com/deppfellow/placerate/internal/metrics"
	"github.com/deppfellow/placerate/internal/model"
	"github.com/deppfellow/placerate/internal/sqlerr"
)

// PlaceReader and PlaceWriter are split so read-only services can depend on
// the smaller interface.
type PlaceReader interface {
	ListPlaces(ctx context.Context) ([]model.PlaceRow, error)
	GetPlace(ctx context.Context, placeID int64) (model.PlaceRow, error)
	ListReviews(ctx context.Context, placeID int64) ([]model.ReviewRow, error)
	TopRated(ctx context.Context, limit int) ([]model.TopRatedRow, error)

	// PlacesInBox returns places with their aggregates. A nil box returns
	// every place.
	PlacesInBox(ctx context.Context, box *geo.Box) ([]model.PlaceRow, error)
}

type PlaceWriter interface {
	CreatePlace(ctx context.Context, in model.PlaceInput) (int64, error)
	UpdatePlace(ctx context.Context, placeID int64, in model.PlaceInput) error
	DeletePlace(ctx context.Context, placeID int64) error
}

type PlaceStore interface {
	PlaceReader
	PlaceWriter
}

type RatingStore interface {
	// Upsert inserts or overwrites the rating of (userID, placeID) in one
	// statement. created is false when an existing row was overwritten.
	Upsert(ctx context.Context, userID, placeID int64, stars int, comment string) (ratingID int64, created bool, err error)
}

type UserStore interface {
	CreateUser(ctx context.Context, username, email, password string) (int64, error)
	GetUserByEmail(ctx context.Context, email string) (model.User, error)
	GetUserByID(ctx context.Context, userID int64) (model.User, error)
}

type StatisticsStore interface {
	PlaceStatistics(ctx context.Context) ([]model.PlaceStatisticsRow, error)
	UserStatistics(ctx context.Context) ([]model.UserStatisticsRow, error)
	ReviewedPlaces(ctx context.Context, userID int64) ([]model.ReviewedPlaceRow, error)
}

// store is embedded by every pgx repository.
type store struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

func (s store) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

// observe classifies err and records the call. Use it deferred:
//
//	defer func(start time.Time) { err = observe("op", "table", start, err) }(time.Now())
func observe(operation, table string, start time.Time, err error) error {
	err = sqlerr.HandleError(err)
	metrics.RecordDBQuery(operation, table, time.Since(start), err)
	return err
}
