package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"backend/internal/cart"
	"backend/internal/models"
)

type AddToCartRequest struct {
	MedicineID string `json:"medicineId" binding:"required"`
	Quantity   int    `json:"quantity" binding:"required"`
	OrderType  string `json:"orderType"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

/*
GET /user/cart
- items in added order plus a totals preview
- deliveryCharge is a preview against the default address; the checkout
  recomputes it against the chosen address
*/
func GetCart(db *mongo.Database, store *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /user/cart"
		defer handlePanic(c, route)

		userID, ok := userIDFromContext(c)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		items, err := store.Items(ctx, userID)
		if err != nil {
			respondCartError(c, route, err)
			return
		}

		var address *models.Address
		var user models.User
		if err := db.Collection("users").FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err == nil {
			address = user.DefaultAddress()
		} else {
			log.Printf("[%s] default address lookup failed: %v", route, err)
		}

		subtotal := cart.Subtotal(items)
		deliveryCharge := cart.DeliveryCharge(items, address)

		c.JSON(http.StatusOK, gin.H{
			"items":          items,
			"count":          cart.Count(items),
			"subtotal":       cart.Round2(subtotal),
			"deliveryCharge": deliveryCharge,
			"total":          cart.Round2(subtotal + deliveryCharge),
		})
	}
}

// POST /user/cart
func AddToCart(store *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /user/cart"
		defer handlePanic(c, route)

		userID, ok := userIDFromContext(c)
		if !ok {
			return
		}

		var req AddToCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid body")
			return
		}

		medicineID, err := primitive.ObjectIDFromHex(strings.TrimSpace(req.MedicineID))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid medicineId")
			return
		}

		orderType := models.OrderType(strings.TrimSpace(req.OrderType))
		if orderType == "" {
			orderType = models.OrderTypeRetail
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		item, err := store.AddToCart(ctx, userID, medicineID, req.Quantity, orderType)
		if err != nil {
			respondCartError(c, route, err)
			return
		}

		log.Printf("[%s] cart entry upserted: medicine=%s quantity=%d type=%s",
			route, medicineID.Hex(), item.Quantity, item.OrderType)
		c.JSON(http.StatusOK, item)
	}
}

// PUT /user/cart/:id
func UpdateCartItem(store *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /user/cart/:id"
		defer handlePanic(c, route)

		userID, ok := userIDFromContext(c)
		if !ok {
			return
		}

		itemID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid cart item id")
			return
		}

		var req UpdateCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid body")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		item, err := store.UpdateQuantity(ctx, userID, itemID, req.Quantity)
		if err != nil {
			respondCartError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, item)
	}
}

// DELETE /user/cart/:id
// Deleting an entry that is already gone still succeeds.
func RemoveCartItem(store *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /user/cart/:id"
		defer handlePanic(c, route)

		userID, ok := userIDFromContext(c)
		if !ok {
			return
		}

		itemID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid cart item id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if err := store.Remove(ctx, userID, itemID); err != nil {
			respondCartError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "cart item removed"})
	}
}

// DELETE /user/cart
func ClearCart(store *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /user/cart"
		defer handlePanic(c, route)

		userID, ok := userIDFromContext(c)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if err := store.Clear(ctx, userID); err != nil {
			respondCartError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "cart cleared"})
	}
}
