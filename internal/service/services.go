package service

import (
	"github.com/deppfellow/placerate/internal/lib/job"
	"github.com/deppfellow/placerate/internal/repository"
	"github.com/deppfellow/placerate/internal/server"
)

type Services struct {
	Ratings    *RatingService
	Places     *PlaceService
	Geo        *GeoService
	Statistics *StatisticsService
	Users      *UserService
	Job        *job.JobService
}

func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	// A typed nil *job.JobService must not end up inside the interface.
	var welcome WelcomeNotifier
	if s.Job != nil {
		welcome = s.Job
	}

	return &Services{
		Ratings:    NewRatingService(repos.Ratings, s.Logger),
		Places:     NewPlaceService(repos.Places, s.Logger),
		Geo:        NewGeoService(repos.Places, s.Config.Geo.EnrichNearby, s.Logger),
		Statistics: NewStatisticsService(repos.Statistics, repos.Users),
		Users:      NewUserService(repos.Users, welcome, s.Logger),
		Job:        s.Job,
	}, nil
}
