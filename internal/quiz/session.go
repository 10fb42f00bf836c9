package quiz

import (
	"math"

	"uniprep/internal/models"
)

// Session walks a fixed list of questions and records one answer per question.
// It is not safe for concurrent use.
type Session struct {
	questions []models.Question
	index     int
	answers   map[string]string
	finished  bool
}

func NewSession(questions []models.Question) *Session {
	return &Session{
		questions: questions,
		answers:   make(map[string]string),
	}
}

func (s *Session) Questions() []models.Question { return s.questions }

func (s *Session) Len() int { return len(s.questions) }

func (s *Session) Index() int { return s.index }

func (s *Session) Current() (models.Question, bool) {
	if s.index < 0 || s.index >= len(s.questions) {
		return models.Question{}, false
	}
	return s.questions[s.index], true
}

// Next moves forward and reports whether the position changed.
func (s *Session) Next() bool {
	if s.index >= len(s.questions)-1 {
		return false
	}
	s.index++
	return true
}

// Prev moves back and reports whether the position changed.
func (s *Session) Prev() bool {
	if s.index <= 0 {
		return false
	}
	s.index--
	return true
}

// Answer records optionText for questionID; a later answer replaces an earlier
// one. Ids outside the session are ignored.
func (s *Session) Answer(questionID, optionText string) bool {
	if s.finished || !s.contains(questionID) {
		return false
	}
	s.answers[questionID] = optionText
	return true
}

func (s *Session) Answered(questionID string) (string, bool) {
	a, ok := s.answers[questionID]
	return a, ok
}

func (s *Session) Submit() Result {
	s.finished = true
	return s.Result()
}

func (s *Session) Finished() bool { return s.finished }

// Reset clears answers and position and keeps the selected questions.
func (s *Session) Reset() {
	s.index = 0
	s.finished = false
	s.answers = make(map[string]string)
}

func (s *Session) Result() Result {
	return Score(s.questions, s.answers)
}

func (s *Session) contains(questionID string) bool {
	for _, q := range s.questions {
		if q.ID.Hex() == questionID {
			return true
		}
	}
	return false
}

type ReviewItem struct {
	QuestionID    string `json:"questionId"`
	Question      string `json:"question"`
	Answer        string `json:"answer"`
	CorrectAnswer string `json:"correctAnswer"`
	Correct       bool   `json:"correct"`
}

type Result struct {
	Score      int          `json:"score"`
	Total      int          `json:"total"`
	Percentage float64      `json:"percentage"`
	Review     []ReviewItem `json:"review"`
}

// Score counts answers equal to the correct option text. Unanswered questions
// count as wrong; there is no partial credit.
func Score(questions []models.Question, answers map[string]string) Result {
	result := Result{Total: len(questions), Review: make([]ReviewItem, 0, len(questions))}
	for _, q := range questions {
		id := q.ID.Hex()
		answer, answered := answers[id]
		correct, hasCorrect := q.CorrectOption()
		ok := answered && hasCorrect && answer == correct
		if ok {
			result.Score++
		}
		result.Review = append(result.Review, ReviewItem{
			QuestionID:    id,
			Question:      q.Text,
			Answer:        answer,
			CorrectAnswer: correct,
			Correct:       ok,
		})
	}
	if result.Total > 0 {
		result.Percentage = math.Round(float64(result.Score)/float64(result.Total)*1000) / 10
	}
	return result
}
