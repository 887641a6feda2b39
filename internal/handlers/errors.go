package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/splitbalance/internal/apperrors"
	"github.com/SscSPs/splitbalance/internal/middleware"
	"github.com/gin-gonic/gin"
)

// respondError maps service errors onto HTTP responses. Anything unrecognized is
// logged and reported as fallback with a 500.
func respondError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	var mismatch *apperrors.SplitMismatchError
	switch {
	case errors.As(err, &mismatch):
		logger.Warn("Split inputs do not add up", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "total": mismatch.Total})
	case errors.Is(err, apperrors.ErrUnknownCurrency):
		logger.Warn("Missing exchange rate", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrInvalidSplit),
		errors.Is(err, apperrors.ErrInvalidAmount),
		errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Rejected invalid input", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn("Access denied", slog.String("error", err.Error()))
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not a member of this group"})
	case errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Duplicate resource", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// requireUserID reads the authenticated participant or answers 401.
func requireUserID(c *gin.Context, logger *slog.Logger) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	}
	return userID, ok
}
