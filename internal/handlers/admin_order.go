package handlers

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"backend/internal/database"
	"backend/internal/models"
)

type OrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

/*
GET /admin/api/orders
- newest first
- ?status= filters by order status
*/
func GetOrders(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/orders"
		defer handlePanic(c, route)

		filter := bson.M{}
		if status := strings.TrimSpace(c.Query("status")); status != "" {
			filter["status"] = status
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := db.Collection("orders").Find(ctx, filter, opts)
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

/*
GET /admin/api/orders/stream
- server-sent events; each event carries the full order list so the client
  replaces its state instead of patching
*/
func StreamOrders(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/orders/stream"
		defer handlePanic(c, route)

		c.Writer.Header().Set("Content-Type", "text/event-stream")
		c.Writer.Header().Set("Cache-Control", "no-cache")
		c.Writer.Header().Set("Connection", "keep-alive")

		snapshots := make(chan []models.Order, 1)
		ctx, cancel := context.WithCancel(c.Request.Context())
		defer cancel()

		go func() {
			defer close(snapshots)
			err := database.WatchOrders(ctx, db, func(orders []models.Order) {
				select {
				case snapshots <- orders:
				case <-ctx.Done():
				}
			})
			if err != nil {
				log.Printf("[%s] watch failed: %v", route, err)
			}
		}()

		c.Stream(func(w io.Writer) bool {
			select {
			case orders, open := <-snapshots:
				if !open {
					return false
				}
				c.SSEvent("orders", orders)
				return true
			case <-ctx.Done():
				return false
			}
		})
	}
}

/*
PUT /admin/api/orders/:id/status
*/
func UpdateOrderStatus(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /admin/api/orders/:id/status"
		defer handlePanic(c, route)

		orderID := strings.TrimSpace(c.Param("id"))
		if orderID == "" {
			respondWithError(c, http.StatusBadRequest, route, "invalid order id")
			return
		}

		var req OrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "status is required")
			return
		}

		status := strings.TrimSpace(req.Status)
		switch status {
		case models.OrderStatusPending, models.OrderStatusCompleted, models.OrderStatusCancelled:
		default:
			respondWithError(c, http.StatusBadRequest, route, "invalid status: "+status)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var updated models.Order
		err := db.Collection("orders").FindOneAndUpdate(
			ctx,
			bson.M{"_id": orderID},
			bson.M{"$set": bson.M{"status": status}},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&updated)

		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, route, "order not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Printf("[%s] order %s status set to %s", route, orderID, status)
		c.JSON(http.StatusOK, updated)
	}
}

/*
POST /admin/api/orders/:id/invoice
- generates an INV-YYYYMMDD-XXXX number once; repeated calls return the
  existing invoice
*/
func GenerateInvoice(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /admin/api/orders/:id/invoice"
		defer handlePanic(c, route)

		orderID := strings.TrimSpace(c.Param("id"))
		if orderID == "" {
			respondWithError(c, http.StatusBadRequest, route, "invalid order id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var order models.Order
		err := db.Collection("orders").FindOne(ctx, bson.M{"_id": orderID}).Decode(&order)
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, route, "order not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		if order.InvoiceNumber != "" {
			c.JSON(http.StatusOK, gin.H{"invoiceNumber": order.InvoiceNumber, "orderId": order.ID})
			return
		}

		session, err := db.Client().StartSession()
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer session.EndSession(ctx)

		// Invoice insert and order update commit together so a failure
		// cannot strand an invoice document without its order reference.
		// The number is only unique up to its random suffix; a duplicate
		// key aborts the transaction and retries with a fresh one.
		for attempt := 0; attempt < 3; attempt++ {
			invoiceNumber, err := newInvoiceNumber(time.Now())
			if err != nil {
				respondWithError(c, http.StatusInternalServerError, route, "invoice generation failed")
				return
			}

			invoice := models.Invoice{
				InvoiceNumber: invoiceNumber,
				OrderID:       order.ID,
				GeneratedAt:   time.Now(),
			}

			_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
				if _, err := db.Collection("invoices").InsertOne(sessCtx, invoice); err != nil {
					return nil, err
				}
				if _, err := db.Collection("orders").UpdateOne(
					sessCtx,
					bson.M{"_id": order.ID},
					bson.M{"$set": bson.M{"invoiceNumber": invoiceNumber}},
				); err != nil {
					return nil, err
				}
				return nil, nil
			})
			if err != nil {
				if mongo.IsDuplicateKeyError(err) {
					log.Printf("[%s] invoice number collision, retrying: %s", route, invoiceNumber)
					continue
				}
				respondWithError(c, http.StatusInternalServerError, route, "db error")
				return
			}

			log.Printf("[%s] invoice generated: %s for order %s", route, invoiceNumber, order.ID)
			c.JSON(http.StatusCreated, gin.H{"invoiceNumber": invoiceNumber, "orderId": order.ID})
			return
		}

		respondWithError(c, http.StatusInternalServerError, route, "invoice generation failed")
	}
}

func newInvoiceNumber(at time.Time) (string, error) {
	const digits = "0123456789"
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i := range buf {
		buf[i] = digits[int(buf[i])%len(digits)]
	}
	return fmt.Sprintf("INV-%s-%s", at.Format("20060102"), string(buf)), nil
}

/*
DELETE /admin/api/orders/:id
*/
func DeleteOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := strings.TrimSpace(c.Param("id"))
		if orderID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		result, err := db.Collection("orders").DeleteOne(ctx, bson.M{"_id": orderID})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		if result.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "order deleted"})
	}
}
