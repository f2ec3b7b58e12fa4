package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/recati/comanda-app/models"
)

type JSONResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondJSON(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, JSONResponse{
		Status:  code >= 200 && code < 300,
		Message: message,
		Data:    data,
	})
}

// RespondError maps the engine's error taxonomy onto HTTP status codes:
// Validation -> 400, NotFound -> 404, Conflict -> 409, State -> 422.
// Anything untyped is a 500.
func RespondError(c *gin.Context, err error) {
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		ErrorLogger.Printf("unexpected error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, JSONResponse{Status: false, Message: err.Error()})
		return
	}

	code := http.StatusInternalServerError
	switch appErr.Kind {
	case models.ErrValidation:
		code = http.StatusBadRequest
	case models.ErrNotFound:
		code = http.StatusNotFound
	case models.ErrConflict:
		code = http.StatusConflict
	case models.ErrState:
		code = http.StatusUnprocessableEntity
	}
	c.JSON(code, JSONResponse{Status: false, Message: appErr.Error(), Data: appErr})
}

// RespondBadRequest wraps binding failures as validation errors.
func RespondBadRequest(c *gin.Context, err error) {
	RespondError(c, models.Validationf("body", "%v", err))
}
