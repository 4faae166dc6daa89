package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/deppfellow/placerate/internal/errs"
	"github.com/deppfellow/placerate/internal/geo"
	"github.com/deppfellow/placerate/internal/model"
)

type storedRating struct {
	ID        int64
	UserID    int64
	PlaceID   int64
	Stars     int
	Comment   string
	CreatedAt time.Time
}

// memStore is an in-memory implementation of every repository interface.
// It aggregates the same way the SQL does so services can be tested without
// a database.
type memStore struct {
	mu sync.Mutex

	clock   time.Time
	nextID  int64
	users   map[int64]model.User
	places  map[int64]model.PlaceRow
	ratings map[int64]storedRating

	calls   int
	lastBox *geo.Box
	failAll error
}

func newMemStore() *memStore {
	return &memStore{
		clock:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		users:   map[int64]model.User{},
		places:  map[int64]model.PlaceRow{},
		ratings: map[int64]storedRating{},
	}
}

func nopLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

func (m *memStore) tick() time.Time {
	m.clock = m.clock.Add(time.Minute)
	return m.clock
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

// enter locks the store and counts the call. It returns failAll so tests
// can simulate an unreachable store.
func (m *memStore) enter() error {
	m.mu.Lock()
	m.calls++
	return m.failAll
}

func placeNotFound() error {
	code := "PLACE_NOT_FOUND"
	return errs.NewNotFoundError("Place not found", true, &code)
}

func (m *memStore) aggregates(placeID int64) (avg *float64, count *int64, ratings []storedRating) {
	for _, r := range m.ratings {
		if r.PlaceID == placeID {
			ratings = append(ratings, r)
		}
	}
	n := int64(len(ratings))
	count = &n
	if n == 0 {
		return nil, count, nil
	}
	sum := 0
	for _, r := range ratings {
		sum += r.Stars
	}
	a := float64(sum) / float64(n)
	return &a, count, ratings
}

func (m *memStore) withAggregates(p model.PlaceRow) model.PlaceRow {
	p.AvgRating, p.ReviewCount, _ = m.aggregates(p.ID)
	return p
}

func (m *memStore) sortedPlaces() []model.PlaceRow {
	out := make([]model.PlaceRow, 0, len(m.places))
	for _, p := range m.places {
		out = append(out, m.withAggregates(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// PlaceStore

func (m *memStore) ListPlaces(context.Context) ([]model.PlaceRow, error) {
	if err := m.enter(); err != nil {
		m.mu.Unlock()
		return nil, err
	}
	defer m.mu.Unlock()
	return m.sortedPlaces(), nil
}

func (m *memStore) GetPlace(_ context.Context, placeID int64) (model.PlaceRow, error) {
	if err := m.enter(); err != nil {
		m.mu.Unlock()
		return model.PlaceRow{}, err
	}
	defer m.mu.Unlock()

	p, ok := m.places[placeID]
	if !ok {
		return model.PlaceRow{}, placeNotFound()
	}
	return m.withAggregates(p), nil
}

func (m *memStore) ListReviews(_ context.Context, placeID int64) ([]model.ReviewRow, error) {
	if err := m.enter(); err != nil {
		m.mu.Unlock()
		return nil, err
	}
	defer m.mu.Unlock()

	var out []model.ReviewRow
	for _, r := range m.ratings {
		if r.PlaceID != placeID {
			continue
		}
		comment := r.Comment
		out = append(out, model.ReviewRow{
			RatingID:  r.ID,
			UserID:    r.UserID,
			PlaceID:   r.PlaceID,
			Username:  m.users[r.UserID].Username,
			Stars:     r.Stars,
			Comment:   &comment,
			CreatedAt: r.CreatedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].RatingID > out[j].RatingID
	})
	return out, nil
}

func (m *memStore) TopRated(_ context.Context, limit int) ([]model.TopRatedRow, error) {
	if err := m.enter(); err != nil {
		m.mu.Unlock()
		return nil, err
	}
	defer m.mu.Unlock()

	var out []model.TopRatedRow
	for _, p := range m.sortedPlaces() {
		if *p.ReviewCount == 0 {
			continue
		}
		out = append(out, model.TopRatedRow{
			ID: p.ID, Name: p.Name, Description: p.Description,
			Latitude: p.Latitude, Longitude: p.Longitude,
			AverageRating: p.AvgRating, ReviewCount: p.ReviewCount,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if *out[i].AverageRating != *out[j].AverageRating {
			return *out[i].AverageRating > *out[j].AverageRating
		}
		if *out[i].ReviewCount != *out[j].ReviewCount {
			return *out[i].ReviewCount > *out[j].ReviewCount
		}
		return out[i].ID < out[j].ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memStore) PlacesInBox(_ context.Context, box *geo.Box) ([]model.PlaceRow, error) {
	if err := m.enter(); err != nil {
		m.mu.Unlock()
		return nil, err
	}
	defer m.mu.Unlock()

	m.lastBox = box
	var out []model.PlaceRow
	for _, p := range m.sortedPlaces() {
		if box == nil || box.Contains(p.Latitude, p.Longitude) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memStore) CreatePlace(_ context.Context, in model.PlaceInput) (int64, error) {
	if err := m.enter(); err != nil {
		m.mu.Unlock()
		return 0, err
	}
	defer m.mu.Unlock()

	id := m.id()
	desc, img, cat := in.Description, in.ImageURL, in.Category
	m.places[id] = model.PlaceRow{
		ID: id, Name: in.Name, Description: &desc, ImageURL: &img, Category: &cat,
		Latitude: in.Latitude, Longitude: in.Longitude, CreatedAt: m.tick(),
	}
	return id, nil
}

func (m *memStore) UpdatePlace(_ context.Context, placeID int64, in model.PlaceInput) error {
	if err := m.enter(); err != nil {
		m.mu.Unlock()
		return err
	}
	defer m.mu.Unlock()

	p, ok := m.places[placeID]
	if !ok {
		return placeNotFound()
	}
	desc, img, cat := in.Description, in.ImageURL, in.Category
	p.Name, p.Description, p.ImageURL, p.Category = in.Name, &desc, &img, &cat
	p.Latitude, p.Longitude = in.Latitude, in.Longitude
	m.places[placeID] = p
	return nil
}

func (m *memStore) DeletePlace(_ context.Context, placeID int64) error {
	if err := m.enter(); err != nil {
		m.mu.Unlock()
		return err
	}
	defer m.mu.Unlock()

	if _, ok := m.places[placeID]; !ok {
		return placeNotFound()
	}
	for id, r := range m.ratings {
		if r.PlaceID == placeID {
			delete(m.ratings, id)
		}
	}
	delete(m.places, placeID)
	return nil
}

// RatingStore

func (m *memStore) Upsert(_ context.Context, userID, placeID int64, stars int, comment string) (int64, bool, error) {
	if err := m.enter(); err != nil {
		m.mu.Unlock()
		return 0, false, err
	}
	defer m.mu.Unlock()

	if _, ok := m.users[userID]; !ok {
		code := "USER_NOT_FOUND"
		return 0, false, errs.NewForeignKeyError("The referenced User does not exist", &code)
	}
	if _, ok := m.places[placeID]; !ok {
		code := "PLACE_NOT_FOUND"
		return 0, false, errs.NewForeignKeyError("The referenced Place does not exist", &code)
	}

	for id, r := range m.ratings {
		if r.UserID == userID && r.PlaceID == placeID {
			r.Stars, r.Comment = stars, comment
			m.ratings[id] = r
			return id, false, nil
		}
	}

	id := m.id()
	m.ratings[id] = storedRating{
		ID: id, UserID: userID, PlaceID: placeID, Stars: stars, Comment: comment, CreatedAt: m.tick(),
	}
	return id, true, nil
}

// UserStore

func (m *memStore) CreateUser(_ context.Context, username, email, password string) (int64, error) {
	if err := m.enter(); err != nil {
		m.mu.Unlock()
		return 0, err
	}
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Email == email {
			code := "USER_ALREADY_EXISTS"
			return 0, errs.NewConflictError("A User with this Email already exists", &code)
		}
	}
	id := m.id()
	m.users[id] = model.User{ID: id, Username: username, Email: email, Password: password, CreatedAt: m.tick()}
	return id, nil
}

func (m *memStore) GetUserByEmail(_ context.Context, email string) (model.User, error) {
	if err := m.enter(); err != nil {
		m.mu.Unlock()
		return model.User{}, err
	}
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, errs.NewNotFoundError("User not found", true, nil)
}

func (m *memStore) GetUserByID(_ context.Context, userID int64) (model.User, error) {
	if err := m.enter(); err != nil {
		m.mu.Unlock()
		return model.User{}, err
	}
	defer m.mu.Unlock()

	u, ok := m.users[userID]
	if !ok {
		return model.User{}, errs.NewNotFoundError("User not found", true, nil)
	}
	return u, nil
}

// StatisticsStore

func (m *memStore) PlaceStatistics(context.Context) ([]model.PlaceStatisticsRow, error) {
	if err := m.enter(); err != nil {
		m.mu.Unlock()
		return nil, err
	}
	defer m.mu.Unlock()

	var out []model.PlaceStatisticsRow
	for _, p := range m.sortedPlaces() {
		row := model.PlaceStatisticsRow{PlaceID: p.ID, Name: p.Name, TotalReviews: p.ReviewCount, AverageRating: p.AvgRating}
		_, _, ratings := m.aggregates(p.ID)
		if len(ratings) > 0 {
			low, high, sum, five, one := int64(5), int64(1), int64(0), int64(0), int64(0)
			for _, r := range ratings {
				s := int64(r.Stars)
				low, high, sum = min(low, s), max(high, s), sum+s
				if s == 5 {
					five++
				}
				if s == 1 {
					one++
				}
			}
			row.LowestRating, row.HighestRating, row.SumOfRatings = &low, &high, &sum
			row.FiveStarCount, row.OneStarCount = &five, &one
		} else {
			zero := int64(0)
			row.FiveStarCount, row.OneStarCount = &zero, &zero
		}
		out = append(out, row)
	}
	sort.SliceStable(out, func(i, j int) bool {
		ai, aj := out[i].AverageRating, out[j].AverageRating
		switch {
		case ai == nil && aj == nil:
			return out[i].PlaceID < out[j].PlaceID
		case ai == nil:
			return false
		case aj == nil:
			return true
		case *ai != *aj:
			return *ai > *aj
		}
		return out[i].PlaceID < out[j].PlaceID
	})
	return out, nil
}

func (m *memStore) UserStatistics(context.Context) ([]model.UserStatisticsRow, error) {
	if err := m.enter(); err != nil {
		m.mu.Unlock()
		return nil, err
	}
	defer m.mu.Unlock()

	var out []model.UserStatisticsRow
	for _, u := range m.users {
		row := model.UserStatisticsRow{UserID: u.ID, Username: u.Username}
		var total, sum int64
		placesSeen := map[int64]bool{}
		var last *time.Time
		for _, r := range m.ratings {
			if r.UserID != u.ID {
				continue
			}
			total++
			sum += int64(r.Stars)
			placesSeen[r.PlaceID] = true
			if last == nil || r.CreatedAt.After(*last) {
				t := r.CreatedAt
				last = &t
			}
		}
		distinct := int64(len(placesSeen))
		row.TotalReviews, row.PlacesRated, row.LastRatedAt = &total, &distinct, last
		if total > 0 {
			avg := float64(sum) / float64(total)
			row.AverageRatingGiven = &avg
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool {
		if *out[i].TotalReviews != *out[j].TotalReviews {
			return *out[i].TotalReviews > *out[j].TotalReviews
		}
		return out[i].UserID < out[j].UserID
	})
	return out, nil
}

func (m *memStore) ReviewedPlaces(_ context.Context, userID int64) ([]model.ReviewedPlaceRow, error) {
	if err := m.enter(); err != nil {
		m.mu.Unlock()
		return nil, err
	}
	defer m.mu.Unlock()

	var out []model.ReviewedPlaceRow
	var ids []int64
	for _, r := range m.ratings {
		if r.UserID != userID {
			continue
		}
		p := m.withAggregates(m.places[r.PlaceID])
		comment := r.Comment
		out = append(out, model.ReviewedPlaceRow{
			PlaceID: p.ID, Name: p.Name, Description: p.Description, ImageURL: p.ImageURL, Category: p.Category,
			Latitude: p.Latitude, Longitude: p.Longitude,
			UserRating: r.Stars, UserComment: &comment, UserRatedAt: r.CreatedAt,
			AverageRating: p.AvgRating, ReviewCount: p.ReviewCount,
		})
		ids = append(ids, r.ID)
	}
	idx := make([]int, len(out))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool {
		ra, rb := out[idx[a]], out[idx[b]]
		if !ra.UserRatedAt.Equal(rb.UserRatedAt) {
			return ra.UserRatedAt.After(rb.UserRatedAt)
		}
		return ids[idx[a]] > ids[idx[b]]
	})
	sorted := make([]model.ReviewedPlaceRow, len(out))
	for i, j := range idx {
		sorted[i] = out[j]
	}
	return sorted, nil
}

// ratingRows counts stored ratings for a (user, place) pair.
func (m *memStore) ratingRows(userID, placeID int64) []storedRating {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []storedRating
	for _, r := range m.ratings {
		if r.UserID == userID && r.PlaceID == placeID {
			out = append(out, r)
		}
	}
	return out
}

func (m *memStore) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// seed helpers used across service tests.

func (m *memStore) mustUser(name string) int64 {
	id, err := m.CreateUser(context.Background(), name, name+"@example.com", "pw-"+name)
	if err != nil {
		panic(err)
	}
	return id
}

func (m *memStore) mustPlace(name string, lat, lon float64) int64 {
	id, err := m.CreatePlace(context.Background(), model.PlaceInput{Name: name, Latitude: lat, Longitude: lon})
	if err != nil {
		panic(err)
	}
	return id
}

func (m *memStore) mustRate(userID, placeID int64, stars int) {
	if _, _, err := m.Upsert(context.Background(), userID, placeID, stars, ""); err != nil {
		panic(err)
	}
}
