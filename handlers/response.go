package handlers

import (
	"errors"
	"net/http"

	"psgc_api_go/psgc"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// ListResponse is the envelope for list and single-resource responses
type ListResponse struct {
	Data  interface{} `json:"data"`
	Count int         `json:"count"`
}

// Ancestor identifies the resolved parent embedded in hierarchical
// list responses
type Ancestor struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// HierarchicalResponse is the envelope for children-of-parent listings
type HierarchicalResponse struct {
	Data     interface{} `json:"data"`
	Count    int         `json:"count"`
	Ancestor Ancestor    `json:"ancestor"`
}

// ErrorResponse is the error envelope
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func respondList(c echo.Context, data interface{}, count int) error {
	return c.JSON(http.StatusOK, ListResponse{Data: data, Count: count})
}

func respondChildren(c echo.Context, data interface{}, count int, ancestor Ancestor) error {
	return c.JSON(http.StatusOK, HierarchicalResponse{Data: data, Count: count, Ancestor: ancestor})
}

func respondError(c echo.Context, status int, kind, message string) error {
	return c.JSON(status, ErrorResponse{Error: kind, Message: message})
}

func notFound(c echo.Context, what, code string) error {
	return respondError(c, http.StatusNotFound, "not_found", what+" with code "+code+" does not exist")
}

func badRequest(c echo.Context, message string) error {
	return respondError(c, http.StatusBadRequest, "bad_request", message)
}

// internalError hides detail outside debug mode
func internalError(c echo.Context, err error) error {
	message := "Internal server error"
	if debug, ok := c.Get("debug").(bool); ok && debug {
		message = err.Error()
	}
	return respondError(c, http.StatusInternalServerError, "internal_error", message)
}

// pathCode normalizes the :code path parameter. A value that cannot
// normalize is a malformed request, not an unknown resource. On
// failure the 400 response has already been written and the second
// return is false.
func pathCode(c echo.Context) (string, bool) {
	code, err := psgc.NormalizeCode(c.Param("code"))
	if err != nil {
		_ = badRequest(c, "invalid geographic code "+c.Param("code"))
		return "", false
	}
	return code, true
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
