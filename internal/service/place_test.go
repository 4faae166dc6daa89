package service

import (
	"context"
	"testing"

	"github.com/deppfellow/placerate/internal/errs"
	"github.com/deppfellow/placerate/internal/model"
)

func TestAddPlaceThenGetPlace(t *testing.T) {
	store := newMemStore()
	svc := NewPlaceService(store, nopLogger())
	ctx := context.Background()

	in := model.PlaceInput{
		Name:        "  Harbour View  ",
		Description: "Seafood",
		ImageURL:    "https://img.example.com/h.png",
		Category:    "restaurant",
		Latitude:    -33.86,
		Longitude:   151.21,
	}
	id, err := svc.AddPlace(ctx, in)
	if err != nil {
		t.Fatal(err)
	}

	got, err := svc.GetPlace(ctx, id)
	if err != nil {
		t.Fatal(err)
	}

	want := model.PlaceSummary{
		ID: id, Name: "Harbour View", Description: "Seafood", ImageURL: in.ImageURL,
		Category: "restaurant", Latitude: -33.86, Longitude: 151.21,
		CreatedAt: store.places[id].CreatedAt,
	}
	if want.CreatedAt.IsZero() {
		t.Fatal("store did not stamp created_at")
	}
	if got.PlaceSummary != want {
		t.Errorf("summary = %+v, want %+v", got.PlaceSummary, want)
	}
	if got.Reviews == nil || len(got.Reviews) != 0 {
		t.Errorf("reviews = %#v, want an empty list", got.Reviews)
	}
}

func TestAddPlace_Validation(t *testing.T) {
	svc := NewPlaceService(newMemStore(), nopLogger())

	cases := map[string]model.PlaceInput{
		"blank name": {Name: "   ", Latitude: 1, Longitude: 1},
		"latitude":   {Name: "x", Latitude: 90.5, Longitude: 0},
		"longitude":  {Name: "x", Latitude: 0, Longitude: -181},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.AddPlace(context.Background(), in)
			checkKind(t, err, errs.KindValidation)
		})
	}
}

func TestGetPlace_ReviewsNewestFirst(t *testing.T) {
	store := newMemStore()
	svc := NewPlaceService(store, nopLogger())

	p := store.mustPlace("Diner", 3, 3)
	a := store.mustUser("a")
	b := store.mustUser("b")
	store.mustRate(a, p, 4)
	store.mustRate(b, p, 2)

	got, err := svc.GetPlace(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	if got.AvgRating != 3 || got.ReviewCount != 2 {
		t.Errorf("aggregates = %v/%d, want 3/2", got.AvgRating, got.ReviewCount)
	}
	if len(got.Reviews) != 2 || got.Reviews[0].Username != "b" || got.Reviews[1].Username != "a" {
		t.Errorf("reviews = %+v, want b then a", got.Reviews)
	}
}

func TestGetPlace_NotFound(t *testing.T) {
	svc := NewPlaceService(newMemStore(), nopLogger())

	_, err := svc.GetPlace(context.Background(), 77)
	checkKind(t, err, errs.KindNotFound)

	_, err = svc.ListPlaceRatings(context.Background(), 77)
	checkKind(t, err, errs.KindNotFound)

	_, err = svc.GetPlace(context.Background(), 0)
	checkKind(t, err, errs.KindValidation)
}

func TestListPlaces_UnratedDefaultsToZero(t *testing.T) {
	store := newMemStore()
	svc := NewPlaceService(store, nopLogger())
	store.mustPlace("Quiet", 0, 0)

	places, err := svc.ListPlaces(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(places) != 1 || places[0].AvgRating != 0 || places[0].ReviewCount != 0 {
		t.Errorf("places = %+v", places)
	}
}

func TestTopRated_OrderingAndExclusion(t *testing.T) {
	store := newMemStore()
	svc := NewPlaceService(store, nopLogger())

	u1, u2 := store.mustUser("u1"), store.mustUser("u2")
	unrated := store.mustPlace("Unrated", 0, 0)
	single := store.mustPlace("Single", 0, 0)
	double := store.mustPlace("Double", 0, 0)
	best := store.mustPlace("Best", 0, 0)
	worst := store.mustPlace("Worst", 0, 0)

	// Single and Double both average 4; Double wins on review count.
	store.mustRate(u1, single, 4)
	store.mustRate(u1, double, 3)
	store.mustRate(u2, double, 5)
	store.mustRate(u1, best, 5)
	store.mustRate(u1, worst, 1)

	got, err := svc.TopRated(context.Background(), 0)
	if err != nil {
		t.Fatal(err)
	}

	want := []int64{best, double, single, worst}
	if len(got) != len(want) {
		t.Fatalf("got %d places, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("position %d = place %d, want %d", i, got[i].ID, id)
		}
		if got[i].ID == unrated {
			t.Error("unrated place ranked")
		}
	}

	top2, err := svc.TopRated(context.Background(), 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(top2) != 2 || top2[0].ID != best || top2[1].ID != double {
		t.Errorf("limit 2 = %+v", top2)
	}
}

func TestTopRated_LimitBounds(t *testing.T) {
	svc := NewPlaceService(newMemStore(), nopLogger())

	for _, limit := range []int{-1, MaxTopRatedLimit + 1} {
		_, err := svc.TopRated(context.Background(), limit)
		checkKind(t, err, errs.KindValidation)
	}

	got, err := svc.TopRated(context.Background(), MaxTopRatedLimit)
	if err != nil || len(got) != 0 {
		t.Errorf("empty store = %v, %v", got, err)
	}
}

func TestUpdateAndDeletePlace(t *testing.T) {
	store := newMemStore()
	svc := NewPlaceService(store, nopLogger())
	ctx := context.Background()

	p := store.mustPlace("Old", 1, 1)
	u := store.mustUser("rater")
	store.mustRate(u, p, 3)

	if err := svc.UpdatePlace(ctx, p, model.PlaceInput{Name: "New", Latitude: 2, Longitude: 2}); err != nil {
		t.Fatal(err)
	}
	got, _ := svc.GetPlace(ctx, p)
	if got.Name != "New" || got.Latitude != 2 || got.ReviewCount != 1 {
		t.Errorf("after update = %+v", got.PlaceSummary)
	}

	if err := svc.DeletePlace(ctx, p); err != nil {
		t.Fatal(err)
	}
	if n := len(store.ratingRows(u, p)); n != 0 {
		t.Errorf("ratings after delete = %d", n)
	}
	checkKind(t, svc.DeletePlace(ctx, p), errs.KindNotFound)
	checkKind(t, svc.UpdatePlace(ctx, p, model.PlaceInput{Name: "x"}), errs.KindNotFound)
}

func TestPlaceService_StoreUnreachable(t *testing.T) {
	store := newMemStore()
	store.failAll = errs.NewServiceUnavailableError()
	svc := NewPlaceService(store, nopLogger())

	_, err := svc.ListPlaces(context.Background())
	checkKind(t, err, errs.KindConnectivity)
}
