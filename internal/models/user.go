package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	UserTypeStandard      = "Standard"
	UserTypeAdministrator = "Administrator"
)

// User represents the application user account.
type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	FirstName      string             `bson:"firstName" json:"firstName"`
	LastName       string             `bson:"lastName,omitempty" json:"lastName,omitempty"`
	Email          string             `bson:"email" json:"email"`
	PasswordHash   string             `bson:"password" json:"-"`
	ContactNumber  string             `bson:"contactNumber,omitempty" json:"contactNumber,omitempty"`
	PostalCode     string             `bson:"postalCode,omitempty" json:"postalCode,omitempty"`
	DateRegistered time.Time          `bson:"dateRegistered" json:"dateRegistered"`
	Orders         RefList            `bson:"orders" json:"orders"`
	Type           string             `bson:"type" json:"type"`
	Status         string             `bson:"status" json:"status"`
}

// IsAdmin reports whether the account has Administrator rights.
func (u User) IsAdmin() bool {
	return u.Type == UserTypeAdministrator
}
