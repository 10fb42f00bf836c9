package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"uniprep/internal/models"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("already exists")
)

type SemesterStore interface {
	List(ctx context.Context) ([]models.Semester, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Semester, error)
	// Create returns ErrDuplicate when the semester number is taken.
	Create(ctx context.Context, semester *models.Semester) error
}

type SubjectStore interface {
	List(ctx context.Context) ([]models.Subject, error)
	ListBySemester(ctx context.Context, semester primitive.ObjectID) ([]models.Subject, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Subject, error)
	// Create returns ErrDuplicate when the subject code is taken.
	Create(ctx context.Context, subject *models.Subject) error
}

type QuestionStore interface {
	// ListBySubject returns an empty slice, not an error, for a subject without questions.
	ListBySubject(ctx context.Context, subject primitive.ObjectID) ([]models.Question, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Question, error)
	// InsertMany appends questions without de-duplication and reports how many were stored.
	InsertMany(ctx context.Context, questions []models.Question) (int, error)
}

type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	// UpdatePending rewrites name, password and OTP of a not yet verified user.
	UpdatePending(ctx context.Context, user *models.User) error
	MarkVerified(ctx context.Context, id primitive.ObjectID) error
}

// Stores bundles the collections a request handler needs.
type Stores struct {
	Semesters SemesterStore
	Subjects  SubjectStore
	Questions QuestionStore
	Users     UserStore
}
