package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Medicine is the catalog document. Category is a compound
// "category:subcategory" string. WholesalePrice and MinWholesaleQuantity are
// either both present or both absent; a medicine without them cannot be
// ordered wholesale.
type Medicine struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name                 string             `bson:"name" json:"name"`
	Description          string             `bson:"description,omitempty" json:"description,omitempty"`
	Category             string             `bson:"category" json:"category"`
	ImageURL             string             `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	Price                float64            `bson:"price" json:"price"`
	WholesalePrice       *float64           `bson:"wholesalePrice,omitempty" json:"wholesalePrice,omitempty"`
	MinWholesaleQuantity *int               `bson:"minWholesaleQuantity,omitempty" json:"minWholesaleQuantity,omitempty"`
	Stock                int                `bson:"stock" json:"stock"`
	Discount             float64            `bson:"discount" json:"discount"`
	CreatedAt            time.Time          `bson:"createdAt" json:"createdAt"`
}

// WholesaleEligible reports whether the medicine carries both wholesale
// fields.
func (m Medicine) WholesaleEligible() bool {
	return m.WholesalePrice != nil && m.MinWholesaleQuantity != nil
}
