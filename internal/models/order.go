package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// OrderItem is an immutable snapshot of a cart entry at purchase time.
// Later catalog edits must not change historical orders, so the medicine
// document is embedded rather than referenced.
type OrderItem struct {
	Medicine  Medicine  `bson:"medicine" json:"medicine"`
	Quantity  int       `bson:"quantity" json:"quantity"`
	OrderType OrderType `bson:"orderType" json:"orderType"`
	UnitPrice float64   `bson:"unitPrice" json:"unitPrice"`
	LineTotal float64   `bson:"lineTotal" json:"lineTotal"`
}

// Order is the persisted order document. The human-readable order id doubles
// as the document key.
type Order struct {
	ID             string             `bson:"_id" json:"id"`
	UserID         primitive.ObjectID `bson:"userId" json:"userId"`
	Items          []OrderItem        `bson:"items" json:"items"`
	Total          float64            `bson:"total" json:"total"`
	DeliveryCharge float64            `bson:"deliveryCharge" json:"deliveryCharge"`
	Status         string             `bson:"status" json:"status"`
	OrderType      OrderType          `bson:"orderType" json:"orderType"`
	Address        Address            `bson:"address" json:"address"`
	InvoiceNumber  string             `bson:"invoiceNumber,omitempty" json:"invoiceNumber,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
}

// Invoice is the record-keeping document written alongside the order when an
// invoice number is generated.
type Invoice struct {
	InvoiceNumber string    `bson:"_id" json:"invoiceNumber"`
	OrderID       string    `bson:"orderId" json:"orderId"`
	GeneratedAt   time.Time `bson:"generatedAt" json:"generatedAt"`
}
