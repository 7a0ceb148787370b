package http

import (
	"errors"
	"log"
	"net/http"

	"storefront/internal/infra"
	"storefront/internal/repository"
	"storefront/internal/services"

	"github.com/gin-gonic/gin"
)

// writeError maps service errors onto status codes. action names the
// operation in generic 500 messages, e.g. "create order".
func writeError(c *gin.Context, err error, action string) {
	var verr *services.ValidationError
	var cerr *repository.ConstraintError

	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message})
	case errors.As(err, &cerr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Failed to " + action + ": Validation error",
			"details": cerr.Details,
		})
	case errors.Is(err, services.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
	case errors.Is(err, services.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
	case errors.Is(err, services.ErrInvalidSignature):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payment signature"})
	case errors.Is(err, infra.ErrGatewayFailure):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create payment order"})
	default:
		log.Printf("%s: %v", action, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action})
	}
}
