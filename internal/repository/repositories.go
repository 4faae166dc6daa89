package repository

import (
	"github.com/deppfellow/placerate/internal/server"
)

// Repositories is a container for all repository instances. Fields are
// interfaces so tests can swap in fakes.
type Repositories struct {
	Places     PlaceStore
	Ratings    RatingStore
	Users      UserStore
	Statistics StatisticsStore
}

// NewRepositories builds every repository over the server's pool.
func NewRepositories(s *server.Server) *Repositories {
	pool := s.DB.Pool
	timeout := s.Config.Database.QueryTimeout

	return &Repositories{
		Places:     NewPlaceRepository(pool, timeout),
		Ratings:    NewRatingRepository(pool, timeout),
		Users:      NewUserRepository(pool, timeout),
		Statistics: NewStatisticsRepository(pool, timeout),
	}
}
