package handlers

import (
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"uniprep/internal/models"
	httpClient "uniprep/internal/utility/http"
)

func (h *Handler) GetSubjects(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.context(r)
	defer cancel()

	subjects, err := h.stores.Subjects.List(ctx)
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Error fetching subjects", err)
		return
	}
	httpClient.RespondJSON(w, http.StatusOK, subjects)
}

func (h *Handler) GetSubject(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "subjectId")
	if err != nil {
		httpClient.RespondError(w, http.StatusBadRequest, "Invalid subject id", err)
		return
	}

	ctx, cancel := h.context(r)
	defer cancel()

	subject, err := h.stores.Subjects.FindByID(ctx, id)
	if err != nil {
		respondLookupError(w, err, "Subject not found", "Error fetching subject")
		return
	}
	httpClient.RespondJSON(w, http.StatusOK, subject)
}

func (h *Handler) GetSubjectsBySemester(w http.ResponseWriter, r *http.Request) {
	h.listSubjectsBySemester(w, r, "semesterId")
}

func (h *Handler) listSubjectsBySemester(w http.ResponseWriter, r *http.Request, param string) {
	semester, err := objectIDParam(r, param)
	if err != nil {
		httpClient.RespondError(w, http.StatusBadRequest, "Invalid semester id", err)
		return
	}

	ctx, cancel := h.context(r)
	defer cancel()

	subjects, err := h.stores.Subjects.ListBySemester(ctx, semester)
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Error fetching subjects", err)
		return
	}
	httpClient.RespondJSON(w, http.StatusOK, subjects)
}

// CreateSubject requires the referenced semester to exist.
func (h *Handler) CreateSubject(w http.ResponseWriter, r *http.Request) {
	var body models.NewSubject
	if err := decodeAndValidate(r, &body); err != nil {
		httpClient.RespondError(w, http.StatusBadRequest, "All fields are required", err)
		return
	}
	semesterID, err := primitive.ObjectIDFromHex(body.Semester)
	if err != nil {
		httpClient.RespondError(w, http.StatusBadRequest, "Invalid semester id", err)
		return
	}

	ctx, cancel := h.context(r)
	defer cancel()

	if _, err := h.stores.Semesters.FindByID(ctx, semesterID); err != nil {
		respondLookupError(w, err, "Semester not found", "Error creating subject")
		return
	}

	subject := &models.Subject{Name: body.Name, Code: body.Code, Semester: semesterID}
	if err := h.stores.Subjects.Create(ctx, subject); err != nil {
		respondWriteError(w, err, "Subject code already exists", "Error creating subject")
		return
	}
	httpClient.RespondJSON(w, http.StatusCreated, subject)
}
