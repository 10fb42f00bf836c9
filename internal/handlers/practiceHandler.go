package handlers

import (
	"log"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"uniprep/internal/models"
	"uniprep/internal/quiz"
	httpClient "uniprep/internal/utility/http"
)

// StartPractice draws a shuffled practice set from subject {subjectId}.
// Fewer questions than requested are returned when the filters match fewer.
func (h *Handler) StartPractice(w http.ResponseWriter, r *http.Request) {
	subjectID, err := objectIDParam(r, "subjectId")
	if err != nil {
		httpClient.RespondError(w, http.StatusBadRequest, "Invalid subject id", err)
		return
	}
	var body models.PracticeRequest
	if err := decodeAndValidate(r, &body); err != nil {
		httpClient.RespondError(w, http.StatusBadRequest, "Invalid practice settings", err)
		return
	}

	ctx, cancel := h.context(r)
	defer cancel()

	pool, err := h.questionPool(ctx, subjectID)
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Error fetching questions", err)
		return
	}

	settings := quiz.Settings{Unit: body.Unit, Difficulty: body.Difficulty, Count: body.Count}
	selected := quiz.Select(pool, settings, nil)
	if len(selected) == 0 {
		log.Printf("No questions found for subject %s with unit=%q difficulty=%q count=%d",
			subjectID.Hex(), settings.Unit, settings.Difficulty, settings.Count)
	}

	public := make([]models.PublicQuestion, 0, len(selected))
	for _, q := range selected {
		public = append(public, q.Public())
	}
	httpClient.RespondJSON(w, http.StatusOK, models.PracticeResponse{
		Questions: public,
		Available: len(quiz.Filter(pool, settings)),
	})
}

// ScorePractice grades submitted answers against the stored questions, in
// the order the ids were sent. Unanswered questions count as wrong.
func (h *Handler) ScorePractice(w http.ResponseWriter, r *http.Request) {
	var body models.ScoreRequest
	if err := decodeAndValidate(r, &body); err != nil {
		httpClient.RespondError(w, http.StatusBadRequest, "questionIds are required", err)
		return
	}

	ids := make([]primitive.ObjectID, 0, len(body.QuestionIDs))
	seen := make(map[primitive.ObjectID]bool, len(body.QuestionIDs))
	for _, hex := range body.QuestionIDs {
		id, err := primitive.ObjectIDFromHex(hex)
		if err != nil {
			httpClient.RespondError(w, http.StatusBadRequest, "Invalid question id", err)
			return
		}
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	// answer keys are compared in canonical lowercase hex
	answers := make(map[string]string, len(body.Answers))
	for hex, answer := range body.Answers {
		id, err := primitive.ObjectIDFromHex(hex)
		if err != nil {
			httpClient.RespondError(w, http.StatusBadRequest, "Invalid question id in answers", err)
			return
		}
		answers[id.Hex()] = answer
	}

	ctx, cancel := h.context(r)
	defer cancel()

	found, err := h.stores.Questions.FindByIDs(ctx, ids)
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Error fetching questions", err)
		return
	}
	byID := make(map[primitive.ObjectID]models.Question, len(found))
	for _, q := range found {
		byID[q.ID] = q
	}

	ordered := make([]models.Question, 0, len(ids))
	for _, id := range ids {
		q, ok := byID[id]
		if !ok {
			httpClient.RespondError(w, http.StatusNotFound, "Question not found", nil)
			return
		}
		ordered = append(ordered, q)
	}

	session := quiz.NewSession(ordered)
	for id, answer := range answers {
		session.Answer(id, answer)
	}
	httpClient.RespondJSON(w, http.StatusOK, session.Submit())
}
