package service

import (
	"context"
	"math"
	"sort"

	"github.com/rs/zerolog"

	"github.com/deppfellow/placerate/internal/errs"
	"github.com/deppfellow/placerate/internal/geo"
	"github.com/deppfellow/placerate/internal/metrics"
	"github.com/deppfellow/placerate/internal/model"
	"github.com/deppfellow/placerate/internal/repository"
)

type GeoService struct {
	places repository.PlaceReader
	enrich bool
	logger *zerolog.Logger
}

// NewGeoService builds the proximity search. enrich attaches avg_rating and
// review_count to every result.
func NewGeoService(places repository.PlaceReader, enrich bool, logger *zerolog.Logger) *GeoService {
	return &GeoService{places: places, enrich: enrich, logger: logger}
}

// Nearby returns places strictly closer than radiusKm to (lat, lon),
// closest first. A non-positive radius returns an empty list without
// reading the store.
//
// The store is asked for the bounding box of the circle; the exact great
// circle distance is applied here.
func (s *GeoService) Nearby(ctx context.Context, lat, lon, radiusKm float64) ([]model.NearbyPlace, error) {
	if !geo.ValidLatitude(lat) {
		return nil, errs.InvalidField("latitude", "must be between -90 and 90")
	}
	if !geo.ValidLongitude(lon) {
		return nil, errs.InvalidField("longitude", "must be between -180 and 180")
	}
	if math.IsNaN(radiusKm) {
		return nil, errs.InvalidField("radius", "must be a number")
	}

	if radiusKm <= 0 {
		return []model.NearbyPlace{}, nil
	}

	var boxArg *geo.Box
	box, ok := geo.BoundingBox(lat, lon, radiusKm)
	if ok {
		boxArg = &box
	}

	rows, err := s.places.PlacesInBox(ctx, boxArg)
	if err != nil {
		return nil, err
	}

	out := make([]model.NearbyPlace, 0, len(rows))
	for _, row := range rows {
		d := geo.DistanceKm(lat, lon, row.Latitude, row.Longitude)
		if d < radiusKm {
			out = append(out, row.Nearby(d, s.enrich))
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].DistanceKm != out[j].DistanceKm {
			return out[i].DistanceKm < out[j].DistanceKm
		}
		return out[i].ID < out[j].ID
	})

	metrics.RecordNearbySearch(len(rows), len(out), !ok)
	s.logger.Debug().
		Float64("radius_km", radiusKm).
		Bool("full_scan", !ok).
		Int("candidates", len(rows)).
		Int("results", len(out)).
		Msg("nearby search")

	return out, nil
}
