package handlers

import (
	"ClinicFlow/middlewares"
	"ClinicFlow/models"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// respondError maps domain errors onto HTTP responses. Validation failures
// carry their per-field detail so the caller can render every offending
// field at once.
func respondError(c *gin.Context, err error) {
	var fieldErrs validation.Errors
	var stockErr *models.InsufficientStockError

	switch {
	case errors.As(err, &fieldErrs):
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": fieldErrs})
	case models.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &stockErr):
		c.JSON(http.StatusConflict, gin.H{
			"error":     stockErr.Error(),
			"item_id":   stockErr.ItemID,
			"item_name": stockErr.Name,
			"requested": stockErr.Requested,
			"available": stockErr.Available,
		})
	case models.IsConcurrencyConflict(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "retryable": true})
	default:
		middlewares.HttpError(c, "internal server error", http.StatusInternalServerError, err)
	}
}

// parseID parses a numeric path parameter.
func parseID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}
