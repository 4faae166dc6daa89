package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/placerate/internal/model"
	"github.com/deppfellow/placerate/internal/server"
	"github.com/deppfellow/placerate/internal/service"
	"github.com/deppfellow/placerate/internal/validation"
)

type PlaceHandler struct {
	Handler
	places *service.PlaceService
	geo    *service.GeoService
}

func NewPlaceHandler(s *server.Server, places *service.PlaceService, geo *service.GeoService) *PlaceHandler {
	return &PlaceHandler{
		Handler: NewHandler(s),
		places:  places,
		geo:     geo,
	}
}

type PlaceIDRequest struct {
	PlaceID int64 `param:"placeId" validate:"gt=0"`
}

func (r *PlaceIDRequest) Validate() error { return validation.Struct(r) }

type PlaceRequest struct {
	PlaceID     int64    `param:"placeId" json:"-"`
	Name        string   `json:"name" validate:"required,max=255"`
	Description string   `json:"description" validate:"max=4000"`
	ImageURL    string   `json:"image_url" validate:"omitempty,url,max=2048"`
	Category    string   `json:"category" validate:"max=100"`
	Latitude    *float64 `json:"latitude" validate:"required,gte=-90,lte=90"`
	Longitude   *float64 `json:"longitude" validate:"required,gte=-180,lte=180"`
}

func (r *PlaceRequest) Validate() error { return validation.Struct(r) }

func (r *PlaceRequest) input() model.PlaceInput {
	return model.PlaceInput{
		Name:        r.Name,
		Description: r.Description,
		ImageURL:    r.ImageURL,
		Category:    r.Category,
		Latitude:    *r.Latitude,
		Longitude:   *r.Longitude,
	}
}

type TopRatedRequest struct {
	Limit int `query:"limit" validate:"gte=0,lte=100"`
}

func (r *TopRatedRequest) Validate() error { return validation.Struct(r) }

type NearbyRequest struct {
	Latitude  *float64 `json:"latitude" validate:"required,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" validate:"required,gte=-180,lte=180"`
	Radius    *float64 `json:"radius" validate:"required"`
}

func (r *NearbyRequest) Validate() error { return validation.Struct(r) }

type PlacesResponse struct {
	Places []model.PlaceSummary `json:"places"`
}

type PlaceCreatedResponse struct {
	Success bool   `json:"success"`
	PlaceID int64  `json:"place_id"`
	Message string `json:"message"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type PlaceRatingsResponse struct {
	Ratings []model.Review `json:"ratings"`
}

type TopRatedResponse struct {
	TopRatedPlaces []model.TopRatedPlace `json:"top_rated_places"`
}

type NearbyResponse struct {
	NearbyPlaces []model.NearbyPlace `json:"nearby_places"`
}

func (h *PlaceHandler) ListPlaces(c echo.Context, _ *NoParams) (*PlacesResponse, error) {
	places, err := h.places.ListPlaces(c.Request().Context())
	if err != nil {
		return nil, err
	}
	return &PlacesResponse{Places: places}, nil
}

func (h *PlaceHandler) GetPlace(c echo.Context, req *PlaceIDRequest) (*model.PlaceDetail, error) {
	place, err := h.places.GetPlace(c.Request().Context(), req.PlaceID)
	if err != nil {
		return nil, err
	}
	return &place, nil
}

func (h *PlaceHandler) AddPlace(c echo.Context, req *PlaceRequest) (*PlaceCreatedResponse, error) {
	placeID, err := h.places.AddPlace(c.Request().Context(), req.input())
	if err != nil {
		return nil, err
	}
	return &PlaceCreatedResponse{Success: true, PlaceID: placeID, Message: "Place added successfully"}, nil
}

func (h *PlaceHandler) UpdatePlace(c echo.Context, req *PlaceRequest) (*MessageResponse, error) {
	if err := h.places.UpdatePlace(c.Request().Context(), req.PlaceID, req.input()); err != nil {
		return nil, err
	}
	return &MessageResponse{Success: true, Message: "Place updated successfully"}, nil
}

func (h *PlaceHandler) DeletePlace(c echo.Context, req *PlaceIDRequest) (*MessageResponse, error) {
	if err := h.places.DeletePlace(c.Request().Context(), req.PlaceID); err != nil {
		return nil, err
	}
	return &MessageResponse{Success: true, Message: "Place deleted successfully"}, nil
}

func (h *PlaceHandler) ListPlaceRatings(c echo.Context, req *PlaceIDRequest) (*PlaceRatingsResponse, error) {
	ratings, err := h.places.ListPlaceRatings(c.Request().Context(), req.PlaceID)
	if err != nil {
		return nil, err
	}
	return &PlaceRatingsResponse{Ratings: ratings}, nil
}

func (h *PlaceHandler) TopRated(c echo.Context, req *TopRatedRequest) (*TopRatedResponse, error) {
	places, err := h.places.TopRated(c.Request().Context(), req.Limit)
	if err != nil {
		return nil, err
	}
	return &TopRatedResponse{TopRatedPlaces: places}, nil
}

// Nearby searches within radius kilometres of the given point.
func (h *PlaceHandler) Nearby(c echo.Context, req *NearbyRequest) (*NearbyResponse, error) {
	places, err := h.geo.Nearby(c.Request().Context(), *req.Latitude, *req.Longitude, *req.Radius)
	if err != nil {
		return nil, err
	}
	return &NearbyResponse{NearbyPlaces: places}, nil
}
