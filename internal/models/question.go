package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const QuestionCollection = "questions"

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

func ValidDifficulty(d string) bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

type Option struct {
	Text      string `json:"text" bson:"text"`
	IsCorrect bool   `json:"isCorrect" bson:"isCorrect"`
}

type Question struct {
	ID         primitive.ObjectID `json:"_id" bson:"_id"`
	Text       string             `json:"text" bson:"text"`
	Options    []Option           `json:"options" bson:"options"`
	Difficulty string             `json:"difficulty" bson:"difficulty"`
	UnitNo     int                `json:"unitNo" bson:"unitNo"`
	Topic      string             `json:"topic" bson:"topic"`
	Subject    primitive.ObjectID `json:"subject" bson:"subject"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
}

// CorrectOption returns the text of the first option flagged correct.
func (q Question) CorrectOption() (string, bool) {
	for _, opt := range q.Options {
		if opt.IsCorrect {
			return opt.Text, true
		}
	}
	return "", false
}

// UploadedQuestion is one entry of an uploaded questions file.
type UploadedQuestion struct {
	QuestionText  string     `json:"questionText" validate:"required"`
	Options       []string   `json:"options" validate:"required,min=1,dive,required"`
	CorrectAnswer string     `json:"correctAnswer"`
	Difficulty    string     `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
	UnitNo        int        `json:"unitNo" validate:"min=0"`
	Topic         string     `json:"topic"`
	CreatedAt     *time.Time `json:"createdAt"`
}

// ToQuestion flags every option whose text equals CorrectAnswer. A missing or
// unknown difficulty becomes easy.
func (u UploadedQuestion) ToQuestion(subject primitive.ObjectID, now time.Time) Question {
	options := make([]Option, 0, len(u.Options))
	for _, opt := range u.Options {
		options = append(options, Option{Text: opt, IsCorrect: opt == u.CorrectAnswer})
	}

	difficulty := u.Difficulty
	if !ValidDifficulty(difficulty) {
		difficulty = DifficultyEasy
	}

	createdAt := now
	if u.CreatedAt != nil && !u.CreatedAt.IsZero() {
		createdAt = *u.CreatedAt
	}

	return Question{
		ID:         primitive.NewObjectID(),
		Text:       u.QuestionText,
		Options:    options,
		Difficulty: difficulty,
		UnitNo:     u.UnitNo,
		Topic:      u.Topic,
		Subject:    subject,
		CreatedAt:  createdAt,
	}
}

// PublicOption and PublicQuestion are what a practice quiz hands out before scoring.
type PublicOption struct {
	Text string `json:"text"`
}

type PublicQuestion struct {
	ID         primitive.ObjectID `json:"_id"`
	Text       string             `json:"text"`
	Options    []PublicOption     `json:"options"`
	Difficulty string             `json:"difficulty"`
	UnitNo     int                `json:"unitNo"`
	Topic      string             `json:"topic"`
}

func (q Question) Public() PublicQuestion {
	options := make([]PublicOption, 0, len(q.Options))
	for _, opt := range q.Options {
		options = append(options, PublicOption{Text: opt.Text})
	}
	return PublicQuestion{
		ID:         q.ID,
		Text:       q.Text,
		Options:    options,
		Difficulty: q.Difficulty,
		UnitNo:     q.UnitNo,
		Topic:      q.Topic,
	}
}
