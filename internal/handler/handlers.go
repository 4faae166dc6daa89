// Package handler is the HTTP layer between the router and the services.
// Each endpoint binds and validates a typed request, calls one service
// operation and returns the response body; errors go to the global error
// handler.
package handler

import (
	"github.com/deppfellow/placerate/internal/server"
	"github.com/deppfellow/placerate/internal/service"
	"github.com/deppfellow/placerate/static"
)

// Handlers groups every HTTP handler so the router receives one value.
type Handlers struct {
	Places  *PlaceHandler
	Ratings *RatingHandler
	Users   *UserHandler
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Places:  NewPlaceHandler(s, services.Places, services.Geo),
		Ratings: NewRatingHandler(s, services.Ratings, services.Statistics),
		Users:   NewUserHandler(s, services.Users, services.Statistics),
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s, static.Files),
	}
}
