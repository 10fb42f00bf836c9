package handlers

import (
	"net/http"

	"uniprep/internal/models"
	httpClient "uniprep/internal/utility/http"
)

func (h *Handler) GetSemesters(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.context(r)
	defer cancel()

	semesters, err := h.stores.Semesters.List(ctx)
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Error fetching semesters", err)
		return
	}
	httpClient.RespondJSON(w, http.StatusOK, semesters)
}

func (h *Handler) CreateSemester(w http.ResponseWriter, r *http.Request) {
	var body models.NewSemester
	if err := decodeAndValidate(r, &body); err != nil {
		httpClient.RespondError(w, http.StatusBadRequest, "Name and a semester number between 1 and 8 are required", err)
		return
	}

	ctx, cancel := h.context(r)
	defer cancel()

	semester := &models.Semester{Name: body.Name, Number: body.Number}
	if err := h.stores.Semesters.Create(ctx, semester); err != nil {
		respondWriteError(w, err, "Semester number already exists", "Error creating semester")
		return
	}
	httpClient.RespondJSON(w, http.StatusCreated, semester)
}

// GetSemesterSubjects lists the subjects of semester {id}. An unknown
// semester yields an empty list.
func (h *Handler) GetSemesterSubjects(w http.ResponseWriter, r *http.Request) {
	h.listSubjectsBySemester(w, r, "id")
}
