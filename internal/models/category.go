package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category maps a top-level category name to its known subcategories.
// Medicine documents reference the pair as a compound "name:subcategory"
// string.
type Category struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Subcategories []string           `bson:"subcategories" json:"subcategories"`
	IsActive      bool               `bson:"isActive" json:"isActive"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}
