package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"uniprep/internal/models"
	"uniprep/internal/quiz"
	httpClient "uniprep/internal/utility/http"
)

const uploadField = "questionsFile"

// parseQuestionsFile decodes an uploaded questions file. The whole file is
// rejected when it is not a JSON array or any entry fails validation.
func parseQuestionsFile(data []byte) ([]models.UploadedQuestion, error) {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.New("Invalid JSON file")
	}
	if _, ok := raw.([]interface{}); !ok {
		return nil, errors.New("Invalid JSON format: must be an array")
	}

	var uploaded []models.UploadedQuestion
	if err := json.Unmarshal(data, &uploaded); err != nil {
		return nil, fmt.Errorf("Invalid question entry: %v", err)
	}
	for i, u := range uploaded {
		if err := validate.Struct(u); err != nil {
			return nil, fmt.Errorf("Invalid question at index %d", i)
		}
	}
	return uploaded, nil
}

// UploadQuestions stores every entry of the multipart questionsFile under
// subject {subjectId}. Entries are appended, never de-duplicated.
func (h *Handler) UploadQuestions(w http.ResponseWriter, r *http.Request) {
	subjectID, err := objectIDParam(r, "subjectId")
	if err != nil {
		httpClient.RespondError(w, http.StatusBadRequest, "Invalid subject id", err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.opts.MaxUploadBytes)
	if err := r.ParseMultipartForm(h.opts.MaxUploadBytes); err != nil {
		httpClient.RespondError(w, http.StatusBadRequest, "Invalid upload", err)
		return
	}
	file, _, err := r.FormFile(uploadField)
	if err != nil {
		httpClient.RespondError(w, http.StatusBadRequest, "No file uploaded", err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		httpClient.RespondError(w, http.StatusBadRequest, "Error reading file", err)
		return
	}

	uploaded, err := parseQuestionsFile(data)
	if err != nil {
		httpClient.RespondError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	ctx, cancel := h.context(r)
	defer cancel()

	subject, err := h.stores.Subjects.FindByID(ctx, subjectID)
	if err != nil {
		respondLookupError(w, err, "Subject not found", "Error uploading questions")
		return
	}

	now := h.now()
	questions := make([]models.Question, 0, len(uploaded))
	for _, u := range uploaded {
		questions = append(questions, u.ToQuestion(subject.ID, now))
	}

	count, err := h.stores.Questions.InsertMany(ctx, questions)
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Error uploading questions", err)
		return
	}

	if err := h.cache.Invalidate(ctx, subject.ID); err != nil {
		log.Printf("question cache invalidate %s: %v", subject.ID.Hex(), err)
	}
	if h.archiver != nil {
		if key, err := h.archiver.ArchiveUpload(ctx, subject.ID, data); err != nil {
			log.Printf("archive upload for %s: %v", subject.Code, err)
		} else {
			log.Printf("archived upload for %s at %s", subject.Code, key)
		}
	}

	httpClient.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Questions uploaded successfully",
		"count":   count,
	})
}

// GetQuestionsBySubject lists every question of a subject, correct flags included.
func (h *Handler) GetQuestionsBySubject(w http.ResponseWriter, r *http.Request) {
	subjectID, err := objectIDParam(r, "subjectId")
	if err != nil {
		httpClient.RespondError(w, http.StatusBadRequest, "Invalid subject id", err)
		return
	}

	ctx, cancel := h.context(r)
	defer cancel()

	questions, err := h.questionPool(ctx, subjectID)
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Error fetching questions", err)
		return
	}
	httpClient.RespondJSON(w, http.StatusOK, questions)
}

func (h *Handler) GetSubjectUnits(w http.ResponseWriter, r *http.Request) {
	subjectID, err := objectIDParam(r, "subjectId")
	if err != nil {
		httpClient.RespondError(w, http.StatusBadRequest, "Invalid subject id", err)
		return
	}

	ctx, cancel := h.context(r)
	defer cancel()

	questions, err := h.questionPool(ctx, subjectID)
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Error fetching units", err)
		return
	}
	httpClient.RespondJSON(w, http.StatusOK, quiz.AvailableUnits(questions))
}
