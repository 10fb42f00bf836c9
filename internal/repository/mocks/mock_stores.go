package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"uniprep/internal/models"
)

type MockSemesterStore struct {
	mock.Mock
}

func (m *MockSemesterStore) List(ctx context.Context) ([]models.Semester, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Semester), args.Error(1)
}

func (m *MockSemesterStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Semester, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Semester), args.Error(1)
}

func (m *MockSemesterStore) Create(ctx context.Context, semester *models.Semester) error {
	args := m.Called(ctx, semester)
	return args.Error(0)
}

type MockSubjectStore struct {
	mock.Mock
}

func (m *MockSubjectStore) List(ctx context.Context) ([]models.Subject, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Subject), args.Error(1)
}

func (m *MockSubjectStore) ListBySemester(ctx context.Context, semester primitive.ObjectID) ([]models.Subject, error) {
	args := m.Called(ctx, semester)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Subject), args.Error(1)
}

func (m *MockSubjectStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Subject, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subject), args.Error(1)
}

func (m *MockSubjectStore) Create(ctx context.Context, subject *models.Subject) error {
	args := m.Called(ctx, subject)
	return args.Error(0)
}

type MockQuestionStore struct {
	mock.Mock
}

func (m *MockQuestionStore) ListBySubject(ctx context.Context, subject primitive.ObjectID) ([]models.Question, error) {
	args := m.Called(ctx, subject)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Question), args.Error(1)
}

func (m *MockQuestionStore) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Question, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Question), args.Error(1)
}

func (m *MockQuestionStore) InsertMany(ctx context.Context, questions []models.Question) (int, error) {
	args := m.Called(ctx, questions)
	return args.Int(0), args.Error(1)
}

type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserStore) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserStore) UpdatePending(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserStore) MarkVerified(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
