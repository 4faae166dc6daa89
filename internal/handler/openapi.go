package handler

import (
	"fmt"
	"io/fs"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/placerate/internal/server"
)

// OpenAPIHandler serves the API docs UI. The page loads openapi.json from
// /static.
type OpenAPIHandler struct {
	Handler
	assets fs.FS
}

func NewOpenAPIHandler(s *server.Server, assets fs.FS) *OpenAPIHandler {
	return &OpenAPIHandler{
		Handler: NewHandler(s),
		assets:  assets,
	}
}

func (h *OpenAPIHandler) ServeOpenAPIUI(c echo.Context) error {
	page, err := fs.ReadFile(h.assets, "openapi.html")
	if err != nil {
		return fmt.Errorf("failed to read OpenAPI UI template: %w", err)
	}

	c.Response().Header().Set("Cache-Control", "no-cache")
	return c.HTMLBlob(http.StatusOK, page)
}
