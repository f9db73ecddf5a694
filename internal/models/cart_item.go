package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderType string

const (
	OrderTypeRetail    OrderType = "retail"
	OrderTypeWholesale OrderType = "wholesale"
)

// CartItem is one entry in a user's cart. Medicine is a snapshot taken when
// the item was added; MedicineID duplicates the snapshot id so the
// (userId, medicineId, orderType) unique index can enforce entry merging.
type CartItem struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     primitive.ObjectID `bson:"userId" json:"-"`
	MedicineID primitive.ObjectID `bson:"medicineId" json:"medicineId"`
	Medicine   Medicine           `bson:"medicine" json:"medicine"`
	Quantity   int                `bson:"quantity" json:"quantity"`
	OrderType  OrderType          `bson:"orderType" json:"orderType"`
	AddedAt    time.Time          `bson:"addedAt" json:"addedAt"`
}
