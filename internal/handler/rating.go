package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/placerate/internal/model"
	"github.com/deppfellow/placerate/internal/server"
	"github.com/deppfellow/placerate/internal/service"
	"github.com/deppfellow/placerate/internal/validation"
)

type RatingHandler struct {
	Handler
	ratings *service.RatingService
	stats   *service.StatisticsService
}

func NewRatingHandler(s *server.Server, ratings *service.RatingService, stats *service.StatisticsService) *RatingHandler {
	return &RatingHandler{
		Handler: NewHandler(s),
		ratings: ratings,
		stats:   stats,
	}
}

type SubmitRatingRequest struct {
	UserID  int64   `json:"user_id" validate:"required,gt=0"`
	PlaceID int64   `json:"place_id" validate:"required,gt=0"`
	Stars   int     `json:"stars" validate:"min=1,max=5"`
	Comment *string `json:"comment" validate:"omitempty,max=4000"`
}

func (r *SubmitRatingRequest) Validate() error { return validation.Struct(r) }

type SubmitRatingResponse struct {
	Success  bool          `json:"success"`
	Outcome  model.Outcome `json:"outcome"`
	RatingID int64         `json:"rating_id"`
	Message  string        `json:"message"`
}

// StatusCode is 201 for a new rating and 200 for an overwrite.
func (r *SubmitRatingResponse) StatusCode() int {
	if r.Outcome == model.OutcomeCreated {
		return http.StatusCreated
	}
	return http.StatusOK
}

type RatingStatisticsResponse struct {
	RatingStatistics []model.PlaceStatistics `json:"rating_statistics"`
}

func (h *RatingHandler) SubmitRating(c echo.Context, req *SubmitRatingRequest) (*SubmitRatingResponse, error) {
	result, err := h.ratings.SubmitRating(c.Request().Context(), service.SubmitRatingInput{
		UserID:  req.UserID,
		PlaceID: req.PlaceID,
		Stars:   req.Stars,
		Comment: req.Comment,
	})
	if err != nil {
		return nil, err
	}

	message := "Rating added successfully"
	if result.Outcome == model.OutcomeUpdated {
		message = "Rating updated successfully"
	}

	return &SubmitRatingResponse{
		Success:  true,
		Outcome:  result.Outcome,
		RatingID: result.RatingID,
		Message:  message,
	}, nil
}

func (h *RatingHandler) RatingStatistics(c echo.Context, _ *NoParams) (*RatingStatisticsResponse, error) {
	stats, err := h.stats.RatingStatistics(c.Request().Context())
	if err != nil {
		return nil, err
	}
	return &RatingStatisticsResponse{RatingStatistics: stats}, nil
}
