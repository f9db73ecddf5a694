package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Address represents a single delivery address for a user. At most one
// address per user carries IsDefault; Division drives the delivery charge.
type Address struct {
	ID         string `bson:"id" json:"id"`
	Type       string `bson:"type" json:"type"`
	Street     string `bson:"street" json:"street"`
	Division   string `bson:"division" json:"division"`
	District   string `bson:"district" json:"district"`
	Upazila    string `bson:"upazila" json:"upazila"`
	PostalCode string `bson:"postalCode" json:"postalCode"`
	IsDefault  bool   `bson:"isDefault" json:"isDefault"`
}

// User represents the application user account. Role is "user" or "admin".
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"passwordHash" json:"-"`
	Name         string             `bson:"name" json:"name"`
	Phone        string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Role         string             `bson:"role" json:"role"`
	Addresses    []Address          `bson:"addresses" json:"addresses"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// DefaultAddress returns the default address, or nil when the user has none.
func (u User) DefaultAddress() *Address {
	for i := range u.Addresses {
		if u.Addresses[i].IsDefault {
			return &u.Addresses[i]
		}
	}
	return nil
}
