//go:build integration

package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/deppfellow/placerate/internal/database"
	"github.com/deppfellow/placerate/internal/errs"
	"github.com/deppfellow/placerate/internal/geo"
	"github.com/deppfellow/placerate/internal/model"
)

// Run with: go test -tags integration ./internal/repository/...

func startPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "postgres",
				"POSTGRES_DB":       "placerate",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(90 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("mapped port: %v", err)
	}

	dsn := fmt.Sprintf("postgres://postgres:postgres@%s:%s/placerate?sslmode=disable", host, port.Port())

	log := zerolog.Nop()
	if err := database.Migrate(ctx, &log, dsn); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("pool: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

type fixture struct {
	places  *PlaceRepository
	ratings *RatingRepository
	users   *UserRepository
	stats   *StatisticsRepository
	pool    *pgxpool.Pool
}

func newFixture(t *testing.T) *fixture {
	pool := startPostgres(t)
	return &fixture{
		places:  NewPlaceRepository(pool, 5*time.Second),
		ratings: NewRatingRepository(pool, 5*time.Second),
		users:   NewUserRepository(pool, 5*time.Second),
		stats:   NewStatisticsRepository(pool, 5*time.Second),
		pool:    pool,
	}
}

func (f *fixture) user(t *testing.T, name string) int64 {
	t.Helper()
	id, err := f.users.CreateUser(context.Background(), name, name+"@example.com", "secret")
	if err != nil {
		t.Fatalf("create user %s: %v", name, err)
	}
	return id
}

func (f *fixture) place(t *testing.T, name string, lat, lon float64) int64 {
	t.Helper()
	id, err := f.places.CreatePlace(context.Background(), model.PlaceInput{Name: name, Latitude: lat, Longitude: lon})
	if err != nil {
		t.Fatalf("create place %s: %v", name, err)
	}
	return id
}

func (f *fixture) countRatings(t *testing.T, userID, placeID int64) int {
	t.Helper()
	var n int
	err := f.pool.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM ratings WHERE user_id = $1 AND place_id = $2`, userID, placeID).Scan(&n)
	if err != nil {
		t.Fatal(err)
	}
	return n
}

func findStats(t *testing.T, rows []model.PlaceStatisticsRow, placeID int64) model.PlaceStatistics {
	t.Helper()
	for _, r := range rows {
		if r.PlaceID == placeID {
			return r.Statistics()
		}
	}
	t.Fatalf("place %d missing from statistics", placeID)
	return model.PlaceStatistics{}
}

func TestIntegration_RatingStatisticsScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p := f.place(t, "P", 1.0, 1.0)
	u1 := f.user(t, "u1")
	u2 := f.user(t, "u2")

	id1, created, err := f.ratings.Upsert(ctx, u1, p, 5, "")
	if err != nil || !created {
		t.Fatalf("first upsert: created=%v err=%v", created, err)
	}
	if _, _, err := f.ratings.Upsert(ctx, u2, p, 3, "ok"); err != nil {
		t.Fatal(err)
	}

	rows, err := f.stats.PlaceStatistics(ctx)
	if err != nil {
		t.Fatal(err)
	}
	got := findStats(t, rows, p)
	want := model.PlaceStatistics{
		PlaceID: p, Name: "P", TotalReviews: 2, AverageRating: 4.0,
		LowestRating: 3, HighestRating: 5, SumOfRatings: 8, FiveStarCount: 1, OneStarCount: 0,
	}
	if got != want {
		t.Errorf("statistics = %+v, want %+v", got, want)
	}

	id1b, created, err := f.ratings.Upsert(ctx, u1, p, 1, "")
	if err != nil {
		t.Fatal(err)
	}
	if created || id1b != id1 {
		t.Errorf("resubmission: created=%v id=%d, want updated id %d", created, id1b, id1)
	}

	rows, _ = f.stats.PlaceStatistics(ctx)
	got = findStats(t, rows, p)
	if got.TotalReviews != 2 || got.AverageRating != 2.0 || got.OneStarCount != 1 {
		t.Errorf("after resubmission = %+v", got)
	}
}

func TestIntegration_ConcurrentUpsertKeepsOneRow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p := f.place(t, "Busy", 0, 0)
	u := f.user(t, "racer")

	var wg sync.WaitGroup
	errCh := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(stars int) {
			defer wg.Done()
			if _, _, err := f.ratings.Upsert(ctx, u, p, stars, ""); err != nil {
				errCh <- err
			}
		}(i%5 + 1)
	}
	wg.Wait()
	close(errCh)

	for err := range errCh {
		t.Errorf("concurrent upsert: %v", err)
	}
	if n := f.countRatings(t, u, p); n != 1 {
		t.Errorf("rows for pair = %d, want 1", n)
	}
}

func TestIntegration_UpsertForeignKey(t *testing.T) {
	f := newFixture(t)
	u := f.user(t, "ghost-hunter")

	_, _, err := f.ratings.Upsert(context.Background(), u, 999999, 4, "")
	if errs.KindOf(err) != errs.KindForeignKey {
		t.Fatalf("kind = %v (%v), want foreign_key_error", errs.KindOf(err), err)
	}
}

func TestIntegration_PlaceAggregatesAndReviews(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	empty := f.place(t, "Empty", 10, 10)
	rated := f.place(t, "Rated", 11, 11)
	u := f.user(t, "critic")
	if _, _, err := f.ratings.Upsert(ctx, u, rated, 4, "nice"); err != nil {
		t.Fatal(err)
	}

	row, err := f.places.GetPlace(ctx, empty)
	if err != nil {
		t.Fatal(err)
	}
	s := row.Summary()
	if s.AvgRating != 0 || s.ReviewCount != 0 || s.Name != "Empty" || s.Latitude != 10 {
		t.Errorf("empty place summary = %+v", s)
	}

	reviews, err := f.places.ListReviews(ctx, rated)
	if err != nil {
		t.Fatal(err)
	}
	if len(reviews) != 1 || reviews[0].Username != "critic" || reviews[0].Review().Comment != "nice" {
		t.Errorf("reviews = %+v", reviews)
	}

	top, err := f.places.TopRated(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(top) != 1 || top[0].ID != rated {
		t.Errorf("top rated = %+v, want only place %d", top, rated)
	}

	if _, err := f.places.GetPlace(ctx, 424242); errs.KindOf(err) != errs.KindNotFound {
		t.Errorf("missing place kind = %v, want not_found", errs.KindOf(err))
	}
}

func TestIntegration_ReviewedPlacesSoleRating(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p := f.place(t, "Solo", 5, 5)
	u := f.user(t, "solo")
	if _, _, err := f.ratings.Upsert(ctx, u, p, 4, ""); err != nil {
		t.Fatal(err)
	}

	rows, err := f.stats.ReviewedPlaces(ctx, u)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("reviewed places = %d, want 1", len(rows))
	}
	rp := rows[0].ReviewedPlace()
	if rp.AverageRating != 4 || rp.ReviewCount != 1 || rp.UserRating != 4 {
		t.Errorf("reviewed place = %+v", rp)
	}
}

func TestIntegration_DeletePlaceRemovesRatings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p := f.place(t, "Doomed", 2, 2)
	u := f.user(t, "deleter")
	if _, _, err := f.ratings.Upsert(ctx, u, p, 2, ""); err != nil {
		t.Fatal(err)
	}

	if err := f.places.DeletePlace(ctx, p); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if n := f.countRatings(t, u, p); n != 0 {
		t.Errorf("ratings left = %d", n)
	}
	if err := f.places.DeletePlace(ctx, p); errs.KindOf(err) != errs.KindNotFound {
		t.Errorf("second delete kind = %v, want not_found", errs.KindOf(err))
	}
}

func TestIntegration_PlacesInBox(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	near := f.place(t, "Near", 1.0, 1.0)
	f.place(t, "Far", 40.0, 40.0)

	box, ok := geo.BoundingBox(1.0, 1.0, 50)
	if !ok {
		t.Fatal("expected a box")
	}
	rows, err := f.places.PlacesInBox(ctx, &box)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || rows[0].ID != near {
		t.Errorf("rows in box = %+v, want only %d", rows, near)
	}

	all, err := f.places.PlacesInBox(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Errorf("full scan rows = %d, want 2", len(all))
	}
}

func TestIntegration_DuplicateEmailConflict(t *testing.T) {
	f := newFixture(t)
	f.user(t, "twin")

	_, err := f.users.CreateUser(context.Background(), "twin2", "twin@example.com", "x")
	if errs.KindOf(err) != errs.KindConflict {
		t.Errorf("kind = %v, want conflict", errs.KindOf(err))
	}
}
