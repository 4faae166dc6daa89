package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/deppfellow/placerate/internal/geo"
	"github.com/deppfellow/placerate/internal/model"
	"github.com/deppfellow/placerate/internal/sqlerr"
)

const placesTable = sqlerr.TablePrefix + "places:"

// placeAggregateSelect reads places with their rating aggregates. The
// column order matches model.PlaceRow. Places without ratings survive the
// LEFT JOIN with NULL aggregates.
const placeAggregateSelect = `
SELECT
	p.place_id,
	p.name,
	p.description,
	p.image_url,
	p.category,
	p.latitude,
	p.longitude,
	p.created_at,
	AVG(r.stars)::float8 AS avg_rating,
	COUNT(r.rating_id)   AS review_count
FROM places p
LEFT JOIN ratings r ON r.place_id = p.place_id
`

type PlaceRepository struct {
	store
}

func NewPlaceRepository(pool *pgxpool.Pool, timeout time.Duration) *PlaceRepository {
	return &PlaceRepository{store{pool: pool, timeout: timeout}}
}

func (r *PlaceRepository) ListPlaces(ctx context.Context) (places []model.PlaceRow, err error) {
	defer func(start time.Time) { err = observe("list_places", "places", start, err) }(time.Now())

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.queryPlaceRows(ctx, placeAggregateSelect+`GROUP BY p.place_id ORDER BY p.place_id`)
}

func (r *PlaceRepository) GetPlace(ctx context.Context, placeID int64) (place model.PlaceRow, err error) {
	defer func(start time.Time) { err = observe("get_place", "places", start, err) }(time.Now())

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.pool.Query(ctx, placeAggregateSelect+`WHERE p.place_id = $1 GROUP BY p.place_id`, placeID)
	if err != nil {
		return model.PlaceRow{}, errors.Wrap(err, "get place")
	}

	place, err = pgx.CollectExactlyOneRow(rows, pgx.RowToStructByPos[model.PlaceRow])
	if err != nil {
		return model.PlaceRow{}, errors.Wrap(err, placesTable)
	}
	return place, nil
}

func (r *PlaceRepository) ListReviews(ctx context.Context, placeID int64) (reviews []model.ReviewRow, err error) {
	defer func(start time.Time) { err = observe("list_reviews", "ratings", start, err) }(time.Now())

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.pool.Query(ctx, `
		SELECT r.rating_id, r.user_id, r.place_id, u.username, r.stars, r.comment, r.created_at
		FROM ratings r
		JOIN users u ON u.user_id = r.user_id
		WHERE r.place_id = $1
		ORDER BY r.created_at DESC, r.rating_id DESC`, placeID)
	if err != nil {
		return nil, errors.Wrap(err, "list reviews")
	}

	reviews, err = pgx.CollectRows(rows, pgx.RowToStructByPos[model.ReviewRow])
	if err != nil {
		return nil, errors.Wrap(err, "scan reviews")
	}
	return reviews, nil
}

func (r *PlaceRepository) TopRated(ctx context.Context, limit int) (places []model.TopRatedRow, err error) {
	defer func(start time.Time) { err = observe("top_rated", "places", start, err) }(time.Now())

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	// The inner join drops unrated places.
	rows, err := r.pool.Query(ctx, `
		SELECT
			p.place_id,
			p.name,
			p.description,
			p.latitude,
			p.longitude,
			AVG(r.stars)::float8 AS average_rating,
			COUNT(r.rating_id)   AS review_count
		FROM places p
		JOIN ratings r ON r.place_id = p.place_id
		GROUP BY p.place_id
		ORDER BY average_rating DESC, review_count DESC, p.place_id ASC
		LIMIT $1`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "top rated")
	}

	places, err = pgx.CollectRows(rows, pgx.RowToStructByPos[model.TopRatedRow])
	if err != nil {
		return nil, errors.Wrap(err, "scan top rated")
	}
	return places, nil
}

func (r *PlaceRepository) PlacesInBox(ctx context.Context, box *geo.Box) (places []model.PlaceRow, err error) {
	defer func(start time.Time) { err = observe("places_in_box", "places", start, err) }(time.Now())

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if box == nil {
		return r.queryPlaceRows(ctx, placeAggregateSelect+`GROUP BY p.place_id`)
	}

	return r.queryPlaceRows(ctx, placeAggregateSelect+`
		WHERE p.latitude BETWEEN $1 AND $2
		  AND p.longitude BETWEEN $3 AND $4
		GROUP BY p.place_id`,
		box.MinLat, box.MaxLat, box.MinLon, box.MaxLon)
}

func (r *PlaceRepository) queryPlaceRows(ctx context.Context, sql string, args ...any) ([]model.PlaceRow, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, errors.Wrap(err, "query places")
	}

	places, err := pgx.CollectRows(rows, pgx.RowToStructByPos[model.PlaceRow])
	if err != nil {
		return nil, errors.Wrap(err, "scan places")
	}
	return places, nil
}

func (r *PlaceRepository) CreatePlace(ctx context.Context, in model.PlaceInput) (placeID int64, err error) {
	defer func(start time.Time) { err = observe("create_place", "places", start, err) }(time.Now())

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	err = r.pool.QueryRow(ctx, `
		INSERT INTO places (name, description, image_url, category, latitude, longitude)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING place_id`,
		in.Name, in.Description, in.ImageURL, in.Category, in.Latitude, in.Longitude,
	).Scan(&placeID)
	if err != nil {
		return 0, errors.Wrap(err, "create place")
	}
	return placeID, nil
}

func (r *PlaceRepository) UpdatePlace(ctx context.Context, placeID int64, in model.PlaceInput) (err error) {
	defer func(start time.Time) { err = observe("update_place", "places", start, err) }(time.Now())

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	tag, err := r.pool.Exec(ctx, `
		UPDATE places
		SET name = $1, description = $2, image_url = $3, category = $4, latitude = $5, longitude = $6
		WHERE place_id = $7`,
		in.Name, in.Description, in.ImageURL, in.Category, in.Latitude, in.Longitude, placeID,
	)
	if err != nil {
		return errors.Wrap(err, "update place")
	}
	if tag.RowsAffected() == 0 {
		return errors.Wrap(pgx.ErrNoRows, placesTable)
	}
	return nil
}

// DeletePlace removes the place and its ratings in one transaction.
func (r *PlaceRepository) DeletePlace(ctx context.Context, placeID int64) (err error) {
	defer func(start time.Time) { err = observe("delete_place", "places", start, err) }(time.Now())

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM ratings WHERE place_id = $1`, placeID); err != nil {
			return errors.Wrap(err, "delete place ratings")
		}

		tag, err := tx.Exec(ctx, `DELETE FROM places WHERE place_id = $1`, placeID)
		if err != nil {
			return errors.Wrap(err, "delete place")
		}
		if tag.RowsAffected() == 0 {
			return errors.Wrap(pgx.ErrNoRows, placesTable)
		}
		return nil
	})
}
