package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"backend/internal/cart"
	"backend/internal/models"
)

type CheckoutRequest struct {
	AddressID string `json:"addressId"`
}

/*
POST /user/orders
- turns the cart into an order atomically
- addressId selects one of the user's saved addresses; omitted means the
  default address
*/
func Checkout(db *mongo.Database, store *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /user/orders"
		defer handlePanic(c, route)

		userID, ok := userIDFromContext(c)
		if !ok {
			return
		}

		var req CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
			respondWithError(c, http.StatusBadRequest, route, "invalid body")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		var user models.User
		if err := db.Collection("users").FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
			respondWithError(c, http.StatusNotFound, route, "user not found")
			return
		}

		var address *models.Address
		if addressID := strings.TrimSpace(req.AddressID); addressID != "" {
			for i := range user.Addresses {
				if user.Addresses[i].ID == addressID {
					address = &user.Addresses[i]
					break
				}
			}
			if address == nil {
				respondWithError(c, http.StatusBadRequest, route, "address not found")
				return
			}
		} else {
			address = user.DefaultAddress()
		}
		if address == nil {
			respondWithError(c, http.StatusBadRequest, route, "a shipping address is required")
			return
		}

		order, err := store.PlaceOrder(ctx, userID, *address)
		if err != nil {
			respondCartError(c, route, err)
			return
		}

		log.Printf("[%s] order created: id=%s total=%.2f", route, order.ID, order.Total)
		c.JSON(http.StatusCreated, order)
	}
}

// GET /user/orders
func GetMyOrders(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /user/orders"
		defer handlePanic(c, route)

		userID, ok := userIDFromContext(c)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := db.Collection("orders").Find(ctx, bson.M{"userId": userID}, opts)
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

		c.JSON(http.StatusOK, orders)
	}
}
