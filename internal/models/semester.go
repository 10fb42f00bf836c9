package models

import "go.mongodb.org/mongo-driver/bson/primitive"

const SemesterCollection = "semesters"

type Semester struct {
	ID     primitive.ObjectID `json:"_id" bson:"_id"`
	Name   string             `json:"name" bson:"name"`
	Number int                `json:"number" bson:"number"`
}

type NewSemester struct {
	Name   string `json:"name" validate:"required,max=100"`
	Number int    `json:"number" validate:"required,min=1,max=8"`
}
