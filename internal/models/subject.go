package models

import "go.mongodb.org/mongo-driver/bson/primitive"

const SubjectCollection = "subjects"

type Subject struct {
	ID       primitive.ObjectID `json:"_id" bson:"_id"`
	Name     string             `json:"name" bson:"name"`
	Code     string             `json:"code" bson:"code"`
	Semester primitive.ObjectID `json:"semester" bson:"semester"`
}

// NewSubject is the create request; Semester is the hex id of the owning semester.
type NewSubject struct {
	Name     string `json:"name" validate:"required,max=200"`
	Code     string `json:"code" validate:"required,max=50"`
	Semester string `json:"semester" validate:"required,len=24,hexadecimal"`
}
