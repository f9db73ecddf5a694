package handlers

import (
	"context"
	"fmt"
	"log"
	"math"
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

type MedicineUpdateRequest struct {
	Name                 *string  `json:"name"`
	Description          *string  `json:"description"`
	Category             *string  `json:"category"`
	Price                *float64 `json:"price"`
	WholesalePrice       *float64 `json:"wholesalePrice"`
	MinWholesaleQuantity *int     `json:"minWholesaleQuantity"`
	ClearWholesale       *bool    `json:"clearWholesale"`
	Discount             *float64 `json:"discount"`
	Stock                *int     `json:"stock"`
}

type StockAdjustRequest struct {
	Delta *int `json:"delta" binding:"required"`
}

// validateCategoryValue checks a compound "category:subcategory" value
// against the categories collection.
func validateCategoryValue(ctx context.Context, db *mongo.Database, value string) error {
	name := value
	sub := ""
	if idx := strings.Index(value, ":"); idx >= 0 {
		name = value[:idx]
		sub = value[idx+1:]
	}

	var category models.Category
	err := db.Collection("categories").FindOne(ctx, bson.M{
		"name":     name,
		"isActive": true,
	}).Decode(&category)
	if err == mongo.ErrNoDocuments {
		return fmt.Errorf("unknown category: %s", name)
	}
	if err != nil {
		return err
	}

	if sub == "" {
		return nil
	}
	for _, known := range category.Subcategories {
		if known == sub {
			return nil
		}
	}
	return fmt.Errorf("unknown subcategory %q for category %s", sub, name)
}

/* =======================
   GET (ADMIN) - LIST
======================= */

func GetAllMedicines(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit, err := parsePaginationParams(
			c.Query("page"),
			c.Query("limit"),
		)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		filter := bson.M{}

		if category := strings.TrimSpace(c.Query("category")); category != "" {
			filter["category"] = bson.M{"$regex": "^" + regexEscape(category)}
		}

		if search := strings.TrimSpace(c.Query("search")); search != "" {
			filter["$or"] = []bson.M{
				{"name": bson.M{"$regex": regexEscape(search), "$options": "i"}},
				{"description": bson.M{"$regex": regexEscape(search), "$options": "i"}},
			}
		}

		ctx := context.Background()

		total, err := db.Collection("medicines").CountDocuments(ctx, filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		totalPages := int64(0)
		if total > 0 {
			totalPages = int64(math.Ceil(float64(total) / float64(limit)))
		}

		opts := options.Find().
			SetSkip((page - 1) * limit).
			SetLimit(limit).
			SetSort(bson.D{{Key: "createdAt", Value: -1}})

		cursor, err := db.Collection("medicines").Find(ctx, filter, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer cursor.Close(ctx)

		medicines := make([]models.Medicine, 0)
		if err := cursor.All(ctx, &medicines); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "decode error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"data": medicines,
			"pagination": gin.H{
				"page":       page,
				"limit":      limit,
				"total":      total,
				"totalPages": totalPages,
			},
		})
	}
}

/* =======================
   CREATE
======================= */

func CreateMedicine(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		log.Println("CreateMedicine: request received")
		if !strings.HasPrefix(c.GetHeader("Content-Type"), "multipart/form-data") {
			c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": "multipart/form-data required"})
			return
		}

		input, err := parseMultipartMedicineRequest(c)
		if err != nil {
			log.Println("CreateMedicine multipart error:", err)
			respondMultipartError(c, err)
			return
		}

		name := strings.TrimSpace(input.Name)
		if !input.NameSet || name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name required"})
			return
		}

		if !input.PriceSet || input.Price <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid price"})
			return
		}

		if !input.CategorySet || strings.TrimSpace(input.Category) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "category required"})
			return
		}
		if err := validateCategoryValue(context.Background(), db, input.Category); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var wholesalePrice *float64
		var minWholesaleQuantity *int
		if input.WholesalePriceSet {
			wholesalePrice = &input.WholesalePrice
		}
		if input.MinWholesaleQuantitySet {
			minWholesaleQuantity = &input.MinWholesaleQuantity
		}
		if err := validateWholesaleFields(input.Price, wholesalePrice, minWholesaleQuantity); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		discount := 0.0
		if input.DiscountSet {
			discount = input.Discount
		}
		if err := validateDiscount(discount); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if !input.StockSet {
			c.JSON(http.StatusBadRequest, gin.H{"error": "stock required"})
			return
		}
		if input.Stock < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "stock must be zero or greater"})
			return
		}

		medicine := models.Medicine{
			Name:                 name,
			Description:          strings.TrimSpace(input.Description),
			Category:             input.Category,
			ImageURL:             input.ImageURL,
			Price:                input.Price,
			WholesalePrice:       wholesalePrice,
			MinWholesaleQuantity: minWholesaleQuantity,
			Stock:                input.Stock,
			Discount:             discount,
			CreatedAt:            time.Now(),
		}

		res, err := db.Collection("medicines").InsertOne(context.Background(), medicine)
		if err != nil {
			log.Println("CreateMedicine insert error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		medicine.ID = res.InsertedID.(primitive.ObjectID)
		log.Println("CreateMedicine insert success:", res.InsertedID)
		c.JSON(http.StatusCreated, medicine)
	}
}

/* =======================
   UPDATE
======================= */

func UpdateMedicine(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}
		log.Println("UpdateMedicine request received for id:", id.Hex())

		var req MedicineUpdateRequest
		wholesaleInput := wholesaleUpdateInput{}
		updateSet := bson.M{}
		updateUnset := bson.M{}
		var newImageURL string

		if strings.HasPrefix(c.GetHeader("Content-Type"), "multipart/form-data") {
			input, err := parseMultipartMedicineRequest(c)
			if err != nil {
				log.Println("UpdateMedicine multipart error:", err)
				respondMultipartError(c, err)
				return
			}

			if input.NameSet {
				name := strings.TrimSpace(input.Name)
				if name == "" {
					c.JSON(http.StatusBadRequest, gin.H{"error": "name required"})
					return
				}
				req.Name = &name
			}
			if input.DescriptionSet {
				req.Description = &input.Description
			}
			if input.CategorySet {
				req.Category = &input.Category
			}
			if input.PriceSet {
				req.Price = &input.Price
			}
			if input.WholesalePriceSet {
				req.WholesalePrice = &input.WholesalePrice
			}
			if input.MinWholesaleQuantitySet {
				req.MinWholesaleQuantity = &input.MinWholesaleQuantity
			}
			if input.DiscountSet {
				req.Discount = &input.Discount
			}
			if input.StockSet {
				req.Stock = &input.Stock
			}
			if input.ImageSet {
				newImageURL = input.ImageURL
			}
		} else {
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
				return
			}
		}

		var existing models.Medicine
		err = db.Collection("medicines").FindOne(
			context.Background(),
			bson.M{"_id": id},
		).Decode(&existing)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "medicine not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "name required"})
				return
			}
			updateSet["name"] = name
		}
		if req.Description != nil {
			updateSet["description"] = strings.TrimSpace(*req.Description)
		}
		if req.Category != nil {
			category := strings.TrimSpace(*req.Category)
			if err := validateCategoryValue(context.Background(), db, category); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			updateSet["category"] = category
		}
		if req.Price != nil {
			if *req.Price <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid price"})
				return
			}
			updateSet["price"] = *req.Price
			wholesaleInput.Price = req.Price
		}
		if req.ClearWholesale != nil && *req.ClearWholesale {
			wholesaleInput.ClearWholesale = true
		}
		wholesaleInput.WholesalePrice = req.WholesalePrice
		wholesaleInput.MinWholesaleQuantity = req.MinWholesaleQuantity
		wholesaleInput.Discount = req.Discount

		resolved, err := resolveWholesaleUpdate(
			existing.Price,
			existing.WholesalePrice,
			existing.MinWholesaleQuantity,
			existing.Discount,
			wholesaleInput,
		)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if resolved.ClearWholesale {
			updateUnset["wholesalePrice"] = ""
			updateUnset["minWholesaleQuantity"] = ""
		} else if resolved.SetWholesale {
			updateSet["wholesalePrice"] = *resolved.WholesalePrice
			updateSet["minWholesaleQuantity"] = *resolved.MinWholesaleQuantity
		}
		if resolved.SetDiscount {
			updateSet["discount"] = resolved.Discount
		}

		if req.Stock != nil {
			if *req.Stock < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "stock must be zero or greater"})
				return
			}
			updateSet["stock"] = *req.Stock
		}

		existingImageURL := strings.TrimSpace(existing.ImageURL)
		if newImageURL != "" {
			updateSet["imageUrl"] = newImageURL
		}

		if len(updateSet) == 0 && len(updateUnset) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
			return
		}

		update := bson.M{}
		if len(updateSet) > 0 {
			update["$set"] = updateSet
		}
		if len(updateUnset) > 0 {
			update["$unset"] = updateUnset
		}

		result, err := db.Collection("medicines").UpdateOne(
			context.Background(),
			bson.M{"_id": id},
			update,
		)
		if err != nil {
			log.Println("UpdateMedicine update error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if result.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "medicine not found"})
			return
		}

		if newImageURL != "" && existingImageURL != "" && existingImageURL != newImageURL {
			if err := safeDeleteUpload(existingImageURL); err != nil {
				log.Printf("UpdateMedicine old image delete failed: %v", err)
			}
		}

		var updated models.Medicine
		err = db.Collection("medicines").FindOne(
			context.Background(),
			bson.M{"_id": id},
		).Decode(&updated)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, updated)
	}
}

/* =======================
   STOCK ADJUST
======================= */

// AdjustStock applies a relative stock change. Negative deltas are guarded by
// a conditional filter so stock never goes below zero under concurrency.
func AdjustStock(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /admin/api/medicines/:id/stock"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		var req StockAdjustRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Delta == nil {
			respondWithError(c, http.StatusBadRequest, route, "delta is required")
			return
		}
		delta := *req.Delta
		if delta == 0 {
			respondWithError(c, http.StatusBadRequest, route, "delta must be non-zero")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		filter := bson.M{"_id": id}
		if delta < 0 {
			filter["stock"] = bson.M{"$gte": -delta}
		}

		result, err := db.Collection("medicines").UpdateOne(
			ctx,
			filter,
			bson.M{"$inc": bson.M{"stock": delta}},
		)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		if result.MatchedCount == 0 {
			count, countErr := db.Collection("medicines").CountDocuments(ctx, bson.M{"_id": id})
			if countErr == nil && count > 0 {
				respondWithError(c, http.StatusConflict, route, "insufficient stock for adjustment")
				return
			}
			respondWithError(c, http.StatusNotFound, route, "medicine not found")
			return
		}

		var updated models.Medicine
		if err := db.Collection("medicines").FindOne(ctx, bson.M{"_id": id}).Decode(&updated); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Printf("[%s] stock adjusted: medicine=%s delta=%d stock=%d", route, id.Hex(), delta, updated.Stock)
		c.JSON(http.StatusOK, updated)
	}
}

/* =======================
   DELETE
======================= */

func DeleteMedicine(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var existing models.Medicine
		err = db.Collection("medicines").FindOne(ctx, bson.M{"_id": id}).Decode(&existing)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "medicine not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		if _, err := db.Collection("medicines").DeleteOne(ctx, bson.M{"_id": id}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		// Cart entries referencing the medicine are stale once it is gone.
		if _, err := db.Collection("carts").DeleteMany(ctx, bson.M{"medicineId": id}); err != nil {
			log.Println("DeleteMedicine cart cleanup failed:", err)
		}

		if err := safeDeleteUpload(existing.ImageURL); err != nil {
			log.Printf("DeleteMedicine image delete failed: %v", err)
		}

		c.JSON(http.StatusOK, gin.H{"message": "medicine deleted"})
	}
}
