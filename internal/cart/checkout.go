package cart

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"backend/internal/models"
)

const orderIDAttempts = 3

// PlaceOrder turns the user's current cart into an order in a single mongo
// transaction: every item's stock is decremented with a conditional update
// that rejects overdraw, the order is inserted under its human-readable id,
// and the cart is cleared. On any failure the transaction aborts, leaving
// cart and stock untouched.
//
// Prices come from the cart snapshots taken at add time; only stock and the
// wholesale minimum are re-checked against the live catalog.
func (s *Store) PlaceOrder(ctx context.Context, userID primitive.ObjectID, address models.Address) (*models.Order, error) {
	items, err := s.Items(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, validationErrorf("cart is empty")
	}
	if strings.TrimSpace(address.Division) == "" {
		return nil, validationErrorf("a shipping address is required")
	}

	if err := s.revalidateWholesale(ctx, items); err != nil {
		return nil, err
	}

	subtotal := Subtotal(items)
	deliveryCharge := DeliveryCharge(items, &address)
	total := subtotal + deliveryCharge

	orderType := models.OrderTypeRetail
	if AllWholesale(items) {
		orderType = models.OrderTypeWholesale
	}

	orderItems := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		orderItems = append(orderItems, models.OrderItem{
			Medicine:  item.Medicine,
			Quantity:  item.Quantity,
			OrderType: item.OrderType,
			UnitPrice: EffectiveUnitPrice(item),
			LineTotal: LineTotal(item),
		})
	}

	now := time.Now()

	// The order id is only unique up to its 2-character random suffix, so a
	// duplicate key on insert is retried with a fresh id rather than
	// overwriting an existing order.
	for attempt := 0; attempt < orderIDAttempts; attempt++ {
		orderID, err := NewOrderID(items[0].Medicine.Name, total, now)
		if err != nil {
			return nil, &TransientError{Op: "generate order id", Err: err}
		}

		order := models.Order{
			ID:             orderID,
			UserID:         userID,
			Items:          orderItems,
			Total:          total,
			DeliveryCharge: deliveryCharge,
			Status:         models.OrderStatusPending,
			OrderType:      orderType,
			Address:        address,
			CreatedAt:      now,
		}

		err = s.runOrderTransaction(ctx, userID, order, items)
		if err == nil {
			log.Println("[ORDER] [INFO] order placed:", orderID)
			return &order, nil
		}

		var conflict *StockConflictError
		if errors.As(err, &conflict) {
			return nil, conflict
		}
		if mongo.IsDuplicateKeyError(err) {
			log.Println("[ORDER] [INFO] order id collision, retrying:", orderID)
			continue
		}
		return nil, &TransientError{Op: "place order", Err: err}
	}

	return nil, &TransientError{Op: "place order", Err: errors.New("order id collisions exhausted retries")}
}

func (s *Store) runOrderTransaction(ctx context.Context, userID primitive.ObjectID, order models.Order, items []models.CartItem) error {
	session, err := s.db.Client().StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		for _, item := range items {
			filter := bson.M{
				"_id":   item.MedicineID,
				"stock": bson.M{"$gte": item.Quantity},
			}
			update := bson.M{"$inc": bson.M{"stock": -item.Quantity}}

			res, err := s.medicines().UpdateOne(sessCtx, filter, update)
			if err != nil {
				return nil, err
			}
			if res.MatchedCount == 0 {
				return nil, &StockConflictError{
					MedicineID: item.MedicineID,
					Name:       item.Medicine.Name,
					Requested:  item.Quantity,
				}
			}
		}

		if _, err := s.db.Collection("orders").InsertOne(sessCtx, order); err != nil {
			return nil, err
		}

		if _, err := s.carts().DeleteMany(sessCtx, bson.M{"userId": userID}); err != nil {
			return nil, err
		}

		return nil, nil
	})

	return err
}

// revalidateWholesale re-checks wholesale entries against the live catalog:
// the medicine may have lost wholesale availability or raised its minimum
// since the entry was added.
func (s *Store) revalidateWholesale(ctx context.Context, items []models.CartItem) error {
	for _, item := range items {
		if item.OrderType != models.OrderTypeWholesale {
			continue
		}

		var medicine models.Medicine
		err := s.medicines().FindOne(ctx, bson.M{"_id": item.MedicineID}).Decode(&medicine)
		if err == mongo.ErrNoDocuments {
			return validationErrorf("%s is no longer available", item.Medicine.Name)
		}
		if err != nil {
			return &TransientError{Op: "load medicine", Err: err}
		}

		if !medicine.WholesaleEligible() {
			return validationErrorf("%s is not available for wholesale", medicine.Name)
		}
		if item.Quantity < *medicine.MinWholesaleQuantity {
			return validationErrorf("quantity for %s must be at least %d for wholesale",
				medicine.Name, *medicine.MinWholesaleQuantity)
		}
	}
	return nil
}
