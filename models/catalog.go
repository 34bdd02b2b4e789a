package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Tag and Ingredient are read-mostly reference data managed by the importer.

type Tag struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name  string             `bson:"name"          json:"name"`
	Color string             `bson:"color"         json:"color"`
	Slug  string             `bson:"slug"          json:"slug"`
}

type Ingredient struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"   json:"id"`
	Name            string             `bson:"name"            json:"name"`
	MeasurementUnit string             `bson:"measurementUnit" json:"measurement_unit"`
}
