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
	"go.mongodb.org/mongo-driver/mongo/options"

	"backend/internal/models"
)

type RoleUpdateRequest struct {
	Role string `json:"role" binding:"required"`
}

/*
GET /admin/api/users
- ?search= matches name or email
*/
func GetUsers(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/users"
		defer handlePanic(c, route)

		filter := bson.M{}
		if search := strings.TrimSpace(c.Query("search")); search != "" {
			filter["$or"] = []bson.M{
				{"name": bson.M{"$regex": regexEscape(search), "$options": "i"}},
				{"email": bson.M{"$regex": regexEscape(search), "$options": "i"}},
			}
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := db.Collection("users").Find(ctx, filter, opts)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		users := make([]models.User, 0)
		if err := cursor.All(ctx, &users); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": users})
	}
}

/*
PUT /admin/api/users/:id/role
*/
func UpdateUserRole(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /admin/api/users/:id/role"
		defer handlePanic(c, route)

		userID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid user id")
			return
		}

		var req RoleUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "role is required")
			return
		}

		role := strings.TrimSpace(req.Role)
		if role != "user" && role != "admin" {
			respondWithError(c, http.StatusBadRequest, route, "invalid role: "+role)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var updated models.User
		err = db.Collection("users").FindOneAndUpdate(
			ctx,
			bson.M{"_id": userID},
			bson.M{"$set": bson.M{"role": role, "updatedAt": time.Now()}},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&updated)

		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, route, "user not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		// Existing sessions keep the old role claim until they expire;
		// revoking the refresh tokens caps how long that lasts.
		if _, err := db.Collection("refresh_tokens").UpdateMany(ctx, bson.M{
			"userId":  userID,
			"revoked": false,
		}, bson.M{"$set": bson.M{"revoked": true}}); err != nil {
			log.Printf("[%s] refresh token revocation failed: %v", route, err)
		}

		log.Printf("[%s] role set: user=%s role=%s", route, userID.Hex(), role)
		c.JSON(http.StatusOK, updated)
	}
}

/*
DELETE /admin/api/users/:id
- removes the account and its cart and sessions; orders are kept for
  record-keeping
*/
func DeleteUser(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /admin/api/users/:id"
		defer handlePanic(c, route)

		userID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid user id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		result, err := db.Collection("users").DeleteOne(ctx, bson.M{"_id": userID})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if result.DeletedCount == 0 {
			respondWithError(c, http.StatusNotFound, route, "user not found")
			return
		}

		if _, err := db.Collection("carts").DeleteMany(ctx, bson.M{"userId": userID}); err != nil {
			log.Printf("[%s] cart cleanup failed: %v", route, err)
		}
		if _, err := db.Collection("refresh_tokens").DeleteMany(ctx, bson.M{"userId": userID}); err != nil {
			log.Printf("[%s] refresh token cleanup failed: %v", route, err)
		}

		log.Printf("[%s] user deleted: %s", route, userID.Hex())
		c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
	}
}
