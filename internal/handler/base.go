package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/deppfellow/placerate/internal/middleware"
	"github.com/deppfellow/placerate/internal/server"
	"github.com/deppfellow/placerate/internal/validation"
)

// Handler gives concrete handlers access to the shared server resources.
type Handler struct {
	server *server.Server
}

func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// HandlerFunc is a typed endpoint: it receives a bound and validated Req
// (a pointer to a struct) and returns the response body.
type HandlerFunc[Req validation.Validatable, Res any] func(c echo.Context, req Req) (Res, error)

// StatusCoder lets a response choose its own status, for endpoints whose
// success status depends on the outcome.
type StatusCoder interface {
	StatusCode() int
}

// ResponseHandler writes a successful result.
type ResponseHandler interface {
	Handle(c echo.Context, result interface{}) error
	GetOperation() string
	AddAttributes(txn *newrelic.Transaction, result interface{})
}

// JSONResponseHandler writes result as JSON with status, unless result is
// a StatusCoder.
type JSONResponseHandler struct {
	status int
}

func (h JSONResponseHandler) Handle(c echo.Context, result interface{}) error {
	return c.JSON(h.statusFor(result), result)
}

func (h JSONResponseHandler) statusFor(result interface{}) int {
	if sc, ok := result.(StatusCoder); ok {
		return sc.StatusCode()
	}
	return h.status
}

func (h JSONResponseHandler) GetOperation() string {
	return "handler"
}

func (h JSONResponseHandler) AddAttributes(txn *newrelic.Transaction, result interface{}) {
	if result != nil && h.statusFor(result) != h.status {
		txn.AddAttribute("handler.status_override", h.statusFor(result))
	}
}

// handleRequest is the pipeline every endpoint runs through: bind and
// validate, call the handler, log and trace both phases, write the result.
// Errors are returned untouched for the global error handler.
func handleRequest[Req validation.Validatable](
	c echo.Context,
	req Req,
	handler func(c echo.Context, req Req) (interface{}, error),
	responseHandler ResponseHandler,
) error {
	start := time.Now()
	route := c.Path()

	txn := newrelic.FromContext(c.Request().Context())
	if txn != nil {
		txn.AddAttribute("handler.name", route)
	}

	logger := middleware.GetLogger(c).With().
		Str("operation", responseHandler.GetOperation()).
		Str("route", route).
		Logger()

	logger.Debug().Msg("handling request")

	validationStart := time.Now()
	if err := validation.BindAndValidate(c, req); err != nil {
		validationDuration := time.Since(validationStart)

		logger.Warn().
			Err(err).
			Dur("validation_duration", validationDuration).
			Msg("request validation failed")

		if txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
			txn.AddAttribute("validation.status", "failed")
			txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
		}
		return err
	}

	validationDuration := time.Since(validationStart)
	if txn != nil {
		txn.AddAttribute("validation.status", "success")
		txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
	}

	handlerStart := time.Now()
	result, err := handler(c, req)
	handlerDuration := time.Since(handlerStart)

	if err != nil {
		logger.Error().
			Err(err).
			Dur("handler_duration", handlerDuration).
			Dur("total_duration", time.Since(start)).
			Msg("handler execution failed")

		if txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
			txn.AddAttribute("handler.status", "error")
			txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
		}
		return err
	}

	if txn != nil {
		txn.AddAttribute("handler.status", "success")
		txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
		txn.AddAttribute("total.duration_ms", time.Since(start).Milliseconds())
		responseHandler.AddAttributes(txn, result)
	}

	logger.Info().
		Dur("handler_duration", handlerDuration).
		Dur("validation_duration", validationDuration).
		Dur("total_duration", time.Since(start)).
		Msg("request completed successfully")

	return responseHandler.Handle(c, result)
}

// Handle adapts a typed endpoint to echo. newReq returns a fresh request
// value per call; sharing one pointer across requests would race.
//
//	router.POST("/x", handler.Handle(h, myHandlerFn, http.StatusCreated, func() *MyReq { return &MyReq{} }))
func Handle[Req validation.Validatable, Res any](
	h Handler,
	handler HandlerFunc[Req, Res],
	status int,
	newReq func() Req,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		return handleRequest(c, newReq(), func(c echo.Context, req Req) (interface{}, error) {
			return handler(c, req)
		}, JSONResponseHandler{status: status})
	}
}

// OK is Handle with a 200 status.
func OK[Req validation.Validatable, Res any](h Handler, handler HandlerFunc[Req, Res], newReq func() Req) echo.HandlerFunc {
	return Handle(h, handler, http.StatusOK, newReq)
}

// NoParams is the request of endpoints that take no input.
type NoParams struct{}

func (*NoParams) Validate() error { return nil }

func NewNoParams() *NoParams { return &NoParams{} }
