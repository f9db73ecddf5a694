package cart

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"backend/internal/models"
)

// Store owns the per-user cart collection. It is constructed once at
// application start and injected into handlers; there is no ambient cart
// state anywhere else.
type Store struct {
	db *mongo.Database
}

func NewStore(db *mongo.Database) *Store {
	return &Store{db: db}
}

func (s *Store) carts() *mongo.Collection {
	return s.db.Collection("carts")
}

func (s *Store) medicines() *mongo.Collection {
	return s.db.Collection("medicines")
}

// AddToCart validates the request against the current catalog and either
// creates a new entry or merges into the existing (medicine, orderType)
// entry by summing quantities. The merged quantity is re-validated against
// stock and the wholesale minimum before anything is written.
func (s *Store) AddToCart(ctx context.Context, userID, medicineID primitive.ObjectID, quantity int, orderType models.OrderType) (*models.CartItem, error) {
	if quantity <= 0 {
		return nil, validationErrorf("quantity must be greater than zero")
	}
	if orderType != models.OrderTypeRetail && orderType != models.OrderTypeWholesale {
		return nil, validationErrorf("invalid order type: %s", orderType)
	}

	var medicine models.Medicine
	err := s.medicines().FindOne(ctx, bson.M{"_id": medicineID}).Decode(&medicine)
	if err == mongo.ErrNoDocuments {
		return nil, &NotFoundError{Resource: "medicine", ID: medicineID.Hex()}
	}
	if err != nil {
		return nil, &TransientError{Op: "load medicine", Err: err}
	}

	filter := bson.M{
		"userId":     userID,
		"medicineId": medicineID,
		"orderType":  orderType,
	}

	// Two passes: a concurrent add can insert the entry between our lookup
	// and our insert; the unique (userId, medicineId, orderType) index
	// rejects the duplicate and the second pass merges instead.
	for attempt := 0; attempt < 2; attempt++ {
		var existing models.CartItem
		err := s.carts().FindOne(ctx, filter).Decode(&existing)
		if err == nil {
			merged := existing.Quantity + quantity
			if err := validateCartQuantity(medicine, merged, orderType); err != nil {
				return nil, err
			}
			if _, err := s.carts().UpdateByID(ctx, existing.ID, bson.M{
				"$set": bson.M{"quantity": merged},
			}); err != nil {
				return nil, &TransientError{Op: "merge cart entry", Err: err}
			}
			existing.Quantity = merged
			return &existing, nil
		}
		if err != mongo.ErrNoDocuments {
			return nil, &TransientError{Op: "load cart entry", Err: err}
		}

		if err := validateCartQuantity(medicine, quantity, orderType); err != nil {
			return nil, err
		}

		item := models.CartItem{
			UserID:     userID,
			MedicineID: medicineID,
			Medicine:   medicine,
			Quantity:   quantity,
			OrderType:  orderType,
			AddedAt:    time.Now(),
		}
		res, err := s.carts().InsertOne(ctx, item)
		if err == nil {
			item.ID = res.InsertedID.(primitive.ObjectID)
			return &item, nil
		}
		if !mongo.IsDuplicateKeyError(err) {
			return nil, &TransientError{Op: "insert cart entry", Err: err}
		}
		log.Println("[CART] [INFO] concurrent add detected, merging instead")
	}

	return nil, &TransientError{Op: "insert cart entry", Err: context.DeadlineExceeded}
}

// Items returns the user's cart entries in the order they were added. Each
// call returns a consistent snapshot; no ordering beyond that is promised.
func (s *Store) Items(ctx context.Context, userID primitive.ObjectID) ([]models.CartItem, error) {
	opts := options.Find().SetSort(bson.D{{Key: "addedAt", Value: 1}})
	cursor, err := s.carts().Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, &TransientError{Op: "list cart", Err: err}
	}
	defer cursor.Close(ctx)

	items := make([]models.CartItem, 0)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, &TransientError{Op: "decode cart", Err: err}
	}
	return items, nil
}

// UpdateQuantity replaces an entry's quantity after validating it against
// the current catalog stock and, for wholesale entries, the current
// wholesale minimum. A missing entry or medicine is a hard failure.
func (s *Store) UpdateQuantity(ctx context.Context, userID, itemID primitive.ObjectID, quantity int) (*models.CartItem, error) {
	if quantity <= 0 {
		return nil, validationErrorf("quantity must be greater than zero")
	}

	var item models.CartItem
	err := s.carts().FindOne(ctx, bson.M{"_id": itemID, "userId": userID}).Decode(&item)
	if err == mongo.ErrNoDocuments {
		return nil, &NotFoundError{Resource: "cart item", ID: itemID.Hex()}
	}
	if err != nil {
		return nil, &TransientError{Op: "load cart entry", Err: err}
	}

	var medicine models.Medicine
	err = s.medicines().FindOne(ctx, bson.M{"_id": item.MedicineID}).Decode(&medicine)
	if err == mongo.ErrNoDocuments {
		return nil, &NotFoundError{Resource: "medicine", ID: item.MedicineID.Hex()}
	}
	if err != nil {
		return nil, &TransientError{Op: "load medicine", Err: err}
	}

	if err := validateCartQuantity(medicine, quantity, item.OrderType); err != nil {
		return nil, err
	}

	if _, err := s.carts().UpdateByID(ctx, item.ID, bson.M{
		"$set": bson.M{"quantity": quantity},
	}); err != nil {
		return nil, &TransientError{Op: "update cart entry", Err: err}
	}

	item.Quantity = quantity
	return &item, nil
}

// Remove deletes a cart entry. Removing an entry that is already gone is a
// success: the user flow only cares that the entry no longer exists.
func (s *Store) Remove(ctx context.Context, userID, itemID primitive.ObjectID) error {
	_, err := s.carts().DeleteOne(ctx, bson.M{"_id": itemID, "userId": userID})
	if err != nil {
		return &TransientError{Op: "remove cart entry", Err: err}
	}
	return nil
}

// Clear deletes every entry in the user's cart.
func (s *Store) Clear(ctx context.Context, userID primitive.ObjectID) error {
	if _, err := s.carts().DeleteMany(ctx, bson.M{"userId": userID}); err != nil {
		return &TransientError{Op: "clear cart", Err: err}
	}
	return nil
}

// validateCartQuantity checks a requested (or merged) quantity against the
// catalog document: positive, within stock, and above the wholesale minimum
// for wholesale orders on an eligible medicine.
func validateCartQuantity(medicine models.Medicine, quantity int, orderType models.OrderType) error {
	if quantity <= 0 {
		return validationErrorf("quantity must be greater than zero")
	}

	if orderType == models.OrderTypeWholesale {
		if !medicine.WholesaleEligible() {
			return validationErrorf("%s is not available for wholesale", medicine.Name)
		}
		if quantity < *medicine.MinWholesaleQuantity {
			return validationErrorf("quantity for %s must be at least %d for wholesale",
				medicine.Name, *medicine.MinWholesaleQuantity)
		}
	}

	if quantity > medicine.Stock {
		return validationErrorf("insufficient stock for %s: %d available", medicine.Name, medicine.Stock)
	}

	return nil
}
