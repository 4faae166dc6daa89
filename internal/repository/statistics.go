package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/deppfellow/placerate/internal/model"
)

type StatisticsRepository struct {
	store
}

func NewStatisticsRepository(pool *pgxpool.Pool, timeout time.Duration) *StatisticsRepository {
	return &StatisticsRepository{store{pool: pool, timeout: timeout}}
}

// PlaceStatistics is a single grouped aggregation over places LEFT JOIN
// ratings, so places without ratings appear with NULL aggregates.
func (r *StatisticsRepository) PlaceStatistics(ctx context.Context) (stats []model.PlaceStatisticsRow, err error) {
	defer func(start time.Time) { err = observe("place_statistics", "ratings", start, err) }(time.Now())

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.pool.Query(ctx, `
		SELECT
			p.place_id,
			p.name,
			COUNT(r.rating_id)                              AS total_reviews,
			AVG(r.stars)::float8                            AS average_rating,
			MIN(r.stars)::bigint                            AS lowest_rating,
			MAX(r.stars)::bigint                            AS highest_rating,
			SUM(r.stars)::bigint                            AS sum_of_ratings,
			COUNT(r.rating_id) FILTER (WHERE r.stars = 5)   AS five_star_count,
			COUNT(r.rating_id) FILTER (WHERE r.stars = 1)   AS one_star_count
		FROM places p
		LEFT JOIN ratings r ON r.place_id = p.place_id
		GROUP BY p.place_id
		ORDER BY average_rating DESC NULLS LAST, p.place_id ASC`)
	if err != nil {
		return nil, errors.Wrap(err, "place statistics")
	}

	stats, err = pgx.CollectRows(rows, pgx.RowToStructByPos[model.PlaceStatisticsRow])
	if err != nil {
		return nil, errors.Wrap(err, "scan place statistics")
	}
	return stats, nil
}

func (r *StatisticsRepository) UserStatistics(ctx context.Context) (stats []model.UserStatisticsRow, err error) {
	defer func(start time.Time) { err = observe("user_statistics", "ratings", start, err) }(time.Now())

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.pool.Query(ctx, `
		SELECT
			u.user_id,
			u.username,
			COUNT(r.rating_id)         AS total_reviews,
			AVG(r.stars)::float8       AS average_rating_given,
			COUNT(DISTINCT r.place_id) AS places_rated,
			MAX(r.created_at)          AS last_rated_at
		FROM users u
		LEFT JOIN ratings r ON r.user_id = u.user_id
		GROUP BY u.user_id
		ORDER BY total_reviews DESC, u.user_id ASC`)
	if err != nil {
		return nil, errors.Wrap(err, "user statistics")
	}

	stats, err = pgx.CollectRows(rows, pgx.RowToStructByPos[model.UserStatisticsRow])
	if err != nil {
		return nil, errors.Wrap(err, "scan user statistics")
	}
	return stats, nil
}

// ReviewedPlaces aggregates over every rating of each place, the user's
// own included, so a sole rating averages to itself.
func (r *StatisticsRepository) ReviewedPlaces(ctx context.Context, userID int64) (places []model.ReviewedPlaceRow, err error) {
	defer func(start time.Time) { err = observe("reviewed_places", "ratings", start, err) }(time.Now())

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.pool.Query(ctx, `
		SELECT
			p.place_id,
			p.name,
			p.description,
			p.image_url,
			p.category,
			p.latitude,
			p.longitude,
			ur.stars      AS user_rating,
			ur.comment    AS user_comment,
			ur.created_at AS user_rated_at,
			agg.average_rating,
			agg.review_count
		FROM ratings ur
		JOIN places p ON p.place_id = ur.place_id
		CROSS JOIN LATERAL (
			SELECT AVG(a.stars)::float8 AS average_rating, COUNT(*) AS review_count
			FROM ratings a
			WHERE a.place_id = ur.place_id
		) agg
		WHERE ur.user_id = $1
		ORDER BY ur.created_at DESC, ur.rating_id DESC`, userID)
	if err != nil {
		return nil, errors.Wrap(err, "reviewed places")
	}

	places, err = pgx.CollectRows(rows, pgx.RowToStructByPos[model.ReviewedPlaceRow])
	if err != nil {
		return nil, errors.Wrap(err, "scan reviewed places")
	}
	return places, nil
}
