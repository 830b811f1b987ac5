package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultLogo is the sentinel logo value meaning "no new image provided,
// retain existing".
const DefaultLogo = "default_logo"

// Project represents a portfolio entry owned by a user.
type Project struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name" validate:"required,min=2,max=25"`
	Description  string             `bson:"description" json:"description" validate:"required,min=10,max=500"`
	Technologies []string           `bson:"technologies" json:"technologies" validate:"required,min=1,max=3"`
	Repository   string             `bson:"repository" json:"repository" validate:"required,min=10,max=200"`
	Author       string             `bson:"author" json:"author" validate:"required,min=3,max=15"`
	AuthorID     primitive.ObjectID `bson:"author_id" json:"authorId" validate:"required"`
	Logo         string             `bson:"logo" json:"logo" validate:"required,min=10,max=200"`
	LogoBackup   string             `bson:"logo_backup,omitempty" json:"logoBackup,omitempty"`
	CreationDate time.Time          `bson:"creation_date" json:"creationDate"`
}
