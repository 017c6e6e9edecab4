package api

import (
	"errors"
	"net/http"

	"personal-ledger-go/internal/store"

	"github.com/gin-gonic/gin"
)

// Payload is the response envelope every endpoint returns.
type Payload struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func successResponse(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, Payload{Status: "success", Message: message, Data: data})
}

func errorResponse(c *gin.Context, code int, message string) {
	c.JSON(code, Payload{Status: "error", Message: message})
}

// failFromError maps a typed core failure onto an HTTP status.
func failFromError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrInvalidAmount),
		errors.Is(err, store.ErrInvalidAccountName),
		errors.Is(err, store.ErrSameAccountTransfer),
		errors.Is(err, store.ErrAccountLimitExceeded):
		errorResponse(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrAccountNotFound),
		errors.Is(err, store.ErrUserNotFound):
		errorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrAccountExists),
		errors.Is(err, store.ErrUserExists),
		errors.Is(err, store.ErrInsufficientFunds):
		errorResponse(c, http.StatusConflict, err.Error())
	case errors.Is(err, store.ErrTransientStorage):
		errorResponse(c, http.StatusServiceUnavailable, err.Error())
	default:
		errorResponse(c, http.StatusInternalServerError, "internal error")
	}
}
