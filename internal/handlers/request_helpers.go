package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"backend/internal/cart"
)

func handlePanic(c *gin.Context, route string) {
	if r := recover(); r != nil {
		log.Printf("[%s] panic recovered: %v", route, r)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func ensureDBConnection(ctx context.Context, db *mongo.Database) error {
	checkCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	return db.Client().Ping(checkCtx, readpref.Primary())
}

func respondWithError(c *gin.Context, status int, route string, message string) {
	log.Printf("[%s] returning error %d: %s", route, status, message)
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

// respondCartError maps the cart error taxonomy onto HTTP statuses.
// Validation messages are user-actionable and pass through verbatim;
// transient failures collapse into a generic retryable message.
func respondCartError(c *gin.Context, route string, err error) {
	var vErr *cart.ValidationError
	if errors.As(err, &vErr) {
		respondWithError(c, http.StatusBadRequest, route, vErr.Message)
		return
	}

	var conflict *cart.StockConflictError
	if errors.As(err, &conflict) {
		log.Printf("[%s] stock conflict: medicine=%s requested=%d", route, conflict.MedicineID.Hex(), conflict.Requested)
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{
			"error":      conflict.Error(),
			"medicineId": conflict.MedicineID.Hex(),
			"requested":  conflict.Requested,
		})
		return
	}

	var notFound *cart.NotFoundError
	if errors.As(err, &notFound) {
		respondWithError(c, http.StatusNotFound, route, notFound.Error())
		return
	}

	log.Printf("[%s] transient failure: %v", route, err)
	respondWithError(c, http.StatusInternalServerError, route, "failed to process request")
}

func userIDFromContext(c *gin.Context) (primitive.ObjectID, bool) {
	value, ok := c.Get("userId")
	if !ok {
		log.Println("[AUTH] [ERROR] userId missing in context")
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return primitive.NilObjectID, false
	}

	userID, ok := value.(primitive.ObjectID)
	if !ok {
		log.Println("[AUTH] [ERROR] userId has unexpected type")
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return primitive.NilObjectID, false
	}

	return userID, true
}
