package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrorResponse writes an error envelope with the given HTTP status.
func ErrorResponse(c echo.Context, statusCode int, data interface{}) error {
	return c.JSON(statusCode, APIResponse{
		Status:  statusCode,
		Message: http.StatusText(statusCode),
		Data:    data,
	})
}

// BadRequestResponse writes a bad request error, typically a
// []ValidationError slice.
func BadRequestResponse(c echo.Context, data interface{}) error {
	return ErrorResponse(c, http.StatusBadRequest, data)
}

// InternalServerErrorResponse writes an internal server error.
func InternalServerErrorResponse(c echo.Context) error {
	return ErrorResponse(c, http.StatusInternalServerError, "Something went wrong")
}

// AppErrorResponse writes an application error response using the
// error's own status. Unknown error types collapse to 500 so internal
// detail never leaks to the caller.
func AppErrorResponse(c echo.Context, err error) error {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return ErrorResponse(c, appErr.Status, []*AppError{appErr})
	}
	return InternalServerErrorResponse(c)
}
