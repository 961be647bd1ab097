package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MuscleGroup is a catalog grouping, e.g. "Chest" or "Back".
type MuscleGroup struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name string             `bson:"name" json:"name"` // Unique
}

// Exercise is a read-only catalog entry. Plans reference exercises by ID;
// nothing in the tracking flow ever mutates the catalog.
type Exercise struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"` // Unique
	Type          string             `bson:"type" json:"type"` // "Compound", "Isolation", "Cardio"
	MuscleGroupID primitive.ObjectID `bson:"muscleGroupId" json:"muscleGroupId"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}
