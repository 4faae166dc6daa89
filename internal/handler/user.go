package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/placerate/internal/model"
	"github.com/deppfellow/placerate/internal/server"
	"github.com/deppfellow/placerate/internal/service"
	"github.com/deppfellow/placerate/internal/validation"
)

type UserHandler struct {
	Handler
	users *service.UserService
	stats *service.StatisticsService
}

func NewUserHandler(s *server.Server, users *service.UserService, stats *service.StatisticsService) *UserHandler {
	return &UserHandler{
		Handler: NewHandler(s),
		users:   users,
		stats:   stats,
	}
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,max=255"`
}

func (r *RegisterRequest) Validate() error { return validation.Struct(r) }

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Validate() error { return validation.Struct(r) }

type UserIDRequest struct {
	UserID int64 `param:"userId" validate:"gt=0"`
}

func (r *UserIDRequest) Validate() error { return validation.Struct(r) }

type RegisterResponse struct {
	Success bool   `json:"success"`
	UserID  int64  `json:"user_id"`
	Message string `json:"message"`
}

type LoginResponse struct {
	Success  bool   `json:"success"`
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type UserStatisticsResponse struct {
	UserStatistics []model.UserStatistics `json:"user_statistics"`
}

type ReviewedPlacesResponse struct {
	ReviewedPlaces []model.ReviewedPlace `json:"reviewed_places"`
}

func (h *UserHandler) Register(c echo.Context, req *RegisterRequest) (*RegisterResponse, error) {
	userID, err := h.users.Register(c.Request().Context(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}
	return &RegisterResponse{Success: true, UserID: userID, Message: "User registered successfully"}, nil
}

func (h *UserHandler) Login(c echo.Context, req *LoginRequest) (*LoginResponse, error) {
	user, err := h.users.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	return &LoginResponse{
		Success:  true,
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
	}, nil
}

func (h *UserHandler) UserStatistics(c echo.Context, _ *NoParams) (*UserStatisticsResponse, error) {
	stats, err := h.stats.UserStatistics(c.Request().Context())
	if err != nil {
		return nil, err
	}
	return &UserStatisticsResponse{UserStatistics: stats}, nil
}

// ReviewedPlaces lists the places a user rated, newest rating first.
func (h *UserHandler) ReviewedPlaces(c echo.Context, req *UserIDRequest) (*ReviewedPlacesResponse, error) {
	places, err := h.stats.ReviewedPlaces(c.Request().Context(), req.UserID)
	if err != nil {
		return nil, err
	}
	return &ReviewedPlacesResponse{ReviewedPlaces: places}, nil
}
