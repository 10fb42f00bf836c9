package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"uniprep/internal/models"
	"uniprep/internal/quiz"
	"uniprep/internal/repository"
)

type fakeArchiver struct {
	archived [][]byte
	err      error
}

func (f *fakeArchiver) ArchiveUpload(_ context.Context, subject primitive.ObjectID, data []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.archived = append(f.archived, data)
	return "uploads/" + subject.Hex() + "/1.json", nil
}

func (e *testEnv) upload(t *testing.T, subject string, field string, content string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, "questions.json")
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/subjects/"+subject+"/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

const threeQuestions = `[
	{"questionText": "Which structure is LIFO?", "options": ["Queue", "Stack"], "correctAnswer": "Stack", "difficulty": "easy", "unitNo": 1, "topic": "Stacks"},
	{"questionText": "Worst case of quicksort?", "options": ["n log n", "n^2"], "correctAnswer": "n^2", "difficulty": "hard", "unitNo": 2},
	{"questionText": "BFS uses a?", "options": ["Queue", "Stack"], "correctAnswer": "Queue", "unitNo": 3}
]`

func TestUploadQuestions(t *testing.T) {
	env := newTestEnv(t, false)
	archiver := &fakeArchiver{}
	env.handler.WithArchiver(archiver)

	subject := models.Subject{ID: primitive.NewObjectID(), Name: "Data Structures", Code: "CS201"}
	env.cache.entries[subject.ID] = []models.Question{}
	env.subjects.On("FindByID", mock.Anything, subject.ID).Return(&subject, nil)
	env.questions.On("InsertMany", mock.Anything, mock.MatchedBy(func(qs []models.Question) bool {
		if len(qs) != 3 {
			return false
		}
		for _, q := range qs {
			if q.Subject != subject.ID {
				return false
			}
		}
		return qs[2].Difficulty == models.DifficultyEasy && qs[0].Options[1].IsCorrect
	})).Return(3, nil)

	rec := env.upload(t, subject.ID.Hex(), uploadField, threeQuestions)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var body struct {
		Message string `json:"message"`
		Count   int    `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 3, body.Count)
	assert.Equal(t, []primitive.ObjectID{subject.ID}, env.cache.invalidated)
	require.Len(t, archiver.archived, 1)
	assert.Equal(t, threeQuestions, string(archiver.archived[0]))
}

func TestUploadQuestionsArchiveFailureStillSucceeds(t *testing.T) {
	env := newTestEnv(t, false)
	env.handler.WithArchiver(&fakeArchiver{err: errors.New("bucket gone")})

	subject := models.Subject{ID: primitive.NewObjectID(), Code: "CS201"}
	env.subjects.On("FindByID", mock.Anything, subject.ID).Return(&subject, nil)
	env.questions.On("InsertMany", mock.Anything, mock.Anything).Return(3, nil)

	rec := env.upload(t, subject.ID.Hex(), uploadField, threeQuestions)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUploadQuestionsRejected(t *testing.T) {
	subject := primitive.NewObjectID()

	tests := []struct {
		name    string
		field   string
		content string
		message string
	}{
		{name: "missing file", field: "other", content: threeQuestions, message: "No file uploaded"},
		{name: "not json", field: uploadField, content: "{oops", message: "Invalid JSON file"},
		{name: "not an array", field: uploadField, content: `{"questionText": "q"}`, message: "Invalid JSON format: must be an array"},
		{name: "entry without options", field: uploadField, content: `[{"questionText": "q", "options": []}]`, message: "Invalid question at index 0"},
		{name: "bad difficulty", field: uploadField, content: `[{"questionText": "q", "options": ["a"], "difficulty": "extreme"}]`, message: "Invalid question at index 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, false)

			rec := env.upload(t, subject.Hex(), tt.field, tt.content)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.message, decodeMessage(t, rec))
		})
	}
}

func TestUploadQuestionsUnknownSubject(t *testing.T) {
	env := newTestEnv(t, false)
	subject := primitive.NewObjectID()
	env.subjects.On("FindByID", mock.Anything, subject).Return(nil, repository.ErrNotFound)

	rec := env.upload(t, subject.Hex(), uploadField, threeQuestions)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetQuestionsBySubjectEmpty(t *testing.T) {
	env := newTestEnv(t, false)
	subject := primitive.NewObjectID()
	env.questions.On("ListBySubject", mock.Anything, subject).Return([]models.Question{}, nil).Once()

	rec := env.do(http.MethodGet, "/api/questions/subject/"+subject.Hex(), nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))

	// second read is served from the cache
	rec = env.do(http.MethodGet, "/api/questions/subject/"+subject.Hex(), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func practicePool(subject primitive.ObjectID) []models.Question {
	q := func(text string, unit int, difficulty string) models.Question {
		return models.Question{
			ID:         primitive.NewObjectID(),
			Text:       text,
			UnitNo:     unit,
			Difficulty: difficulty,
			Subject:    subject,
			Options:    []models.Option{{Text: "wrong"}, {Text: "right", IsCorrect: true}},
		}
	}
	return []models.Question{
		q("q1", 1, models.DifficultyEasy),
		q("q2", 2, models.DifficultyEasy),
		q("q3", 2, models.DifficultyHard),
		q("q4", 2, models.DifficultyEasy),
		q("q5", 2, models.DifficultyEasy),
	}
}

func TestGetSubjectUnits(t *testing.T) {
	env := newTestEnv(t, false)
	subject := primitive.NewObjectID()
	env.questions.On("ListBySubject", mock.Anything, subject).Return(practicePool(subject), nil)

	rec := env.do(http.MethodGet, "/api/questions/subject/"+subject.Hex()+"/units", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var units []int
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &units))
	assert.Equal(t, []int{1, 2}, units)
}

func TestStartPracticeNeverPads(t *testing.T) {
	env := newTestEnv(t, false)
	subject := primitive.NewObjectID()
	env.questions.On("ListBySubject", mock.Anything, subject).Return(practicePool(subject), nil)

	rec := env.do(http.MethodPost, "/api/questions/subject/"+subject.Hex()+"/practice",
		map[string]interface{}{"unit": "2", "difficulty": "easy", "count": 5})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "isCorrect")
	var body models.PracticeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Questions, 3)
	assert.Equal(t, 3, body.Available)
	for _, q := range body.Questions {
		assert.Equal(t, 2, q.UnitNo)
		assert.Equal(t, models.DifficultyEasy, q.Difficulty)
	}
}

func TestStartPracticeInvalidDifficulty(t *testing.T) {
	env := newTestEnv(t, false)

	rec := env.do(http.MethodPost, "/api/questions/subject/"+primitive.NewObjectID().Hex()+"/practice",
		map[string]interface{}{"difficulty": "extreme"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestScorePractice(t *testing.T) {
	env := newTestEnv(t, false)
	pool := practicePool(primitive.NewObjectID())[:3]
	ids := []primitive.ObjectID{pool[0].ID, pool[1].ID, pool[2].ID}
	env.questions.On("FindByIDs", mock.Anything, ids).Return([]models.Question{pool[2], pool[0], pool[1]}, nil)

	rec := env.do(http.MethodPost, "/api/questions/practice/score", map[string]interface{}{
		"questionIds": []string{ids[0].Hex(), ids[1].Hex(), ids[2].Hex()},
		"answers": map[string]string{
			ids[0].Hex(): "right",
			ids[1].Hex(): "wrong",
		},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var result quiz.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 1, result.Score)
	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 33.3, result.Percentage)
	require.Len(t, result.Review, 3)
	assert.Equal(t, "q1", result.Review[0].Question)
	assert.True(t, result.Review[0].Correct)
	assert.Equal(t, "", result.Review[2].Answer)
}

func TestScorePracticeUnknownQuestion(t *testing.T) {
	env := newTestEnv(t, false)
	id := primitive.NewObjectID()
	env.questions.On("FindByIDs", mock.Anything, []primitive.ObjectID{id}).Return([]models.Question{}, nil)

	rec := env.do(http.MethodPost, "/api/questions/practice/score", map[string]interface{}{
		"questionIds": []string{id.Hex()},
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStartPracticeNoMatches(t *testing.T) {
	env := newTestEnv(t, false)
	subject := primitive.NewObjectID()
	env.questions.On("ListBySubject", mock.Anything, subject).Return(practicePool(subject), nil)

	rec := env.do(http.MethodPost, "/api/questions/subject/"+subject.Hex()+"/practice",
		map[string]interface{}{"unit": "7", "difficulty": "medium", "count": 5})

	require.Equal(t, http.StatusOK, rec.Code)
	var body models.PracticeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotNil(t, body.Questions)
	assert.Empty(t, body.Questions)
	assert.Zero(t, body.Available)
}

func TestScorePracticeUppercaseIDs(t *testing.T) {
	env := newTestEnv(t, false)
	pool := practicePool(primitive.NewObjectID())[:2]
	ids := []primitive.ObjectID{pool[0].ID, pool[1].ID}
	env.questions.On("FindByIDs", mock.Anything, ids).Return(pool, nil)

	upper := func(id primitive.ObjectID) string { return strings.ToUpper(id.Hex()) }
	rec := env.do(http.MethodPost, "/api/questions/practice/score", map[string]interface{}{
		"questionIds": []string{upper(ids[0]), upper(ids[1])},
		"answers": map[string]string{
			upper(ids[0]): "right",
			upper(ids[1]): "right",
		},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var result quiz.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 2, result.Score)
	assert.Equal(t, 100.0, result.Percentage)
	assert.Equal(t, ids[0].Hex(), result.Review[0].QuestionID)
}

func TestScorePracticeInvalidAnswerKey(t *testing.T) {
	env := newTestEnv(t, false)

	rec := env.do(http.MethodPost, "/api/questions/practice/score", map[string]interface{}{
		"questionIds": []string{primitive.NewObjectID().Hex()},
		"answers":     map[string]string{"not-an-id": "right"},
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid question id in answers", decodeMessage(t, rec))
}
