package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a registered user. The password is stored as a bcrypt hash
// and is never serialized in responses.
type User struct {
	ID       primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name     string               `bson:"name" json:"name" validate:"required,min=3,max=15"`
	Email    string               `bson:"email" json:"email" validate:"required,min=10,max=25"`
	Password string               `bson:"password" json:"-"`
	Contacts []string             `bson:"contacts" json:"contacts"`
	Projects []primitive.ObjectID `bson:"projects" json:"projects"`
}
