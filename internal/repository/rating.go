package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
)

type RatingRepository struct {
	store
}

func NewRatingRepository(pool *pgxpool.Pool, timeout time.Duration) *RatingRepository {
	return &RatingRepository{store{pool: pool, timeout: timeout}}
}

// Upsert relies on the UNIQUE (user_id, place_id) constraint: concurrent
// submissions for the same pair serialise on the conflicting row and the
// last one to commit wins. xmax is zero only for a freshly inserted tuple.
// rating_id and created_at are never touched by the update branch.
func (r *RatingRepository) Upsert(ctx context.Context, userID, placeID int64, stars int, comment string) (ratingID int64, created bool, err error) {
	defer func(start time.Time) { err = observe("upsert_rating", "ratings", start, err) }(time.Now())

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	err = r.pool.QueryRow(ctx, `
		INSERT INTO ratings (user_id, place_id, stars, comment)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, place_id)
		DO UPDATE SET stars = EXCLUDED.stars, comment = EXCLUDED.comment
		RETURNING rating_id, (xmax = 0) AS inserted`,
		userID, placeID, stars, comment,
	).Scan(&ratingID, &created)
	if err != nil {
		return 0, false, errors.Wrap(err, "upsert rating")
	}
	return ratingID, created, nil
}
