package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"backend/internal/cart"
	"backend/internal/models"
)

type orderStats struct {
	Total     int     `json:"total"`
	Pending   int     `json:"pending"`
	Completed int     `json:"completed"`
	Cancelled int     `json:"cancelled"`
	Revenue   float64 `json:"revenue"`
}

// summarizeOrders folds an order list into dashboard counters. Revenue only
// counts completed orders; pending and cancelled totals are not money yet.
func summarizeOrders(orders []models.Order) orderStats {
	var stats orderStats
	for _, order := range orders {
		stats.Total++
		switch order.Status {
		case models.OrderStatusPending:
			stats.Pending++
		case models.OrderStatusCompleted:
			stats.Completed++
			stats.Revenue += order.Total
		case models.OrderStatusCancelled:
			stats.Cancelled++
		}
	}
	stats.Revenue = cart.Round2(stats.Revenue)
	return stats
}

/*
GET /admin/api/overview
- store-wide dashboard counters
*/
func AdminOverview(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/overview"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		userCount, err := db.Collection("users").CountDocuments(ctx, bson.M{})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		medicineCount, err := db.Collection("medicines").CountDocuments(ctx, bson.M{})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		cursor, err := db.Collection("orders").Find(ctx, bson.M{})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		orders := make([]models.Order, 0)
		if err := cursor.All(ctx, &orders); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"users":     userCount,
			"medicines": medicineCount,
			"orders":    summarizeOrders(orders),
		})
	}
}

/*
GET /user/overview
- the caller's own order counters plus cart size
*/
func UserOverview(db *mongo.Database, store *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /user/overview"
		defer handlePanic(c, route)

		userID, ok := userIDFromContext(c)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("orders").Find(ctx, bson.M{"userId": userID})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		orders := make([]models.Order, 0)
		if err := cursor.All(ctx, &orders); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		items, err := store.Items(ctx, userID)
		if err != nil {
			respondCartError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"orders":    summarizeOrders(orders),
			"cartCount": cart.Count(items),
		})
	}
}
