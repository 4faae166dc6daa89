package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/placerate/internal/handler"
)

func registerUserRoutes(api *echo.Group, h *handler.Handlers) {
	users := api.Group("/users")
	u := h.Users

	users.POST("/register", handler.Handle(u.Handler, u.Register, http.StatusCreated, func() *handler.RegisterRequest {
		return &handler.RegisterRequest{}
	}))
	users.POST("/login", handler.OK(u.Handler, u.Login, func() *handler.LoginRequest {
		return &handler.LoginRequest{}
	}))
	users.GET("/statistics", handler.OK(u.Handler, u.UserStatistics, handler.NewNoParams))
	users.GET("/:userId/reviewed-places", handler.OK(u.Handler, u.ReviewedPlaces, func() *handler.UserIDRequest {
		return &handler.UserIDRequest{}
	}))
}

func registerPlaceRoutes(api *echo.Group, h *handler.Handlers) {
	places := api.Group("/places")
	p := h.Places

	newPlaceID := func() *handler.PlaceIDRequest { return &handler.PlaceIDRequest{} }
	newPlace := func() *handler.PlaceRequest { return &handler.PlaceRequest{} }

	places.GET("", handler.OK(p.Handler, p.ListPlaces, handler.NewNoParams))
	places.POST("", handler.Handle(p.Handler, p.AddPlace, http.StatusCreated, newPlace))

	// Static segments win over :placeId in echo's router.
	places.GET("/top-rated/list", handler.OK(p.Handler, p.TopRated, func() *handler.TopRatedRequest {
		return &handler.TopRatedRequest{}
	}))
	places.POST("/nearby", handler.OK(p.Handler, p.Nearby, func() *handler.NearbyRequest {
		return &handler.NearbyRequest{}
	}))

	places.GET("/:placeId", handler.OK(p.Handler, p.GetPlace, newPlaceID))
	places.PUT("/:placeId", handler.OK(p.Handler, p.UpdatePlace, newPlace))
	places.DELETE("/:placeId", handler.OK(p.Handler, p.DeletePlace, newPlaceID))
	places.GET("/:placeId/ratings", handler.OK(p.Handler, p.ListPlaceRatings, newPlaceID))
}

func registerRatingRoutes(api *echo.Group, h *handler.Handlers) {
	ratings := api.Group("/ratings")
	r := h.Ratings

	// 201 on create; SubmitRatingResponse downgrades to 200 on overwrite.
	ratings.POST("", handler.Handle(r.Handler, r.SubmitRating, http.StatusCreated, func() *handler.SubmitRatingRequest {
		return &handler.SubmitRatingRequest{}
	}))
	ratings.GET("/statistics", handler.OK(r.Handler, r.RatingStatistics, handler.NewNoParams))
}
