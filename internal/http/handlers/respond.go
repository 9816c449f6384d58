package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mkandie/acquisitions/internal/service"
)

func RespondData(ctx *gin.Context, status int, data interface{}, message string) {
	ctx.JSON(status, gin.H{
		"data":    data,
		"message": message,
	})
}

func RespondMessage(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, gin.H{"message": message})
}

func RespondBadRequest(ctx *gin.Context, message string, details interface{}) {
	if details == nil {
		RespondMessage(ctx, http.StatusBadRequest, message)
		return
	}

	ctx.JSON(http.StatusBadRequest, gin.H{
		"message": message,
		"details": details,
	})
}

func RespondNotFound(ctx *gin.Context, message string) {
	RespondMessage(ctx, http.StatusNotFound, message)
}

func RespondUnauthorized(ctx *gin.Context, message string) {
	RespondMessage(ctx, http.StatusUnauthorized, message)
}

func RespondConflict(ctx *gin.Context, message string) {
	RespondMessage(ctx, http.StatusConflict, message)
}

func RespondInternal(ctx *gin.Context, message string) {
	RespondMessage(ctx, http.StatusInternalServerError, message)
}

// RespondServiceError is the single fallback mapping from service errors
// to HTTP. Handlers deal with their expected outcomes first and hand
// everything else here; no status is ever chosen by matching on an error
// message string.
func RespondServiceError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserCreationFailed):
		RespondInternal(ctx, "User creation failed")
	default:
		RespondInternal(ctx, "Internal server error")
	}
}
