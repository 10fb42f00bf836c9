package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	httpClient "uniprep/internal/utility/http"
)

// Routes registers the /api tree on r.
func (h *Handler) Routes(r chi.Router) {
	admin := h.adminOnly()

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Register)
			r.Post("/verify-otp", h.VerifyOTP)
			r.Post("/login", h.Login)
		})

		r.Route("/semesters", func(r chi.Router) {
			r.Get("/", h.GetSemesters)
			r.With(admin...).Post("/", h.CreateSemester)
			r.Get("/{id}/subjects", h.GetSemesterSubjects)
		})

		r.Route("/subjects", func(r chi.Router) {
			r.Get("/", h.GetSubjects)
			r.With(admin...).Post("/", h.CreateSubject)
			r.Get("/semester/{semesterId}", h.GetSubjectsBySemester)
			r.Get("/{subjectId}", h.GetSubject)
			r.With(admin...).Post("/{subjectId}/upload", h.UploadQuestions)
		})

		r.Route("/questions", func(r chi.Router) {
			r.Get("/subject/{subjectId}", h.GetQuestionsBySubject)
			r.Get("/subject/{subjectId}/units", h.GetSubjectUnits)
			r.Post("/subject/{subjectId}/practice", h.StartPractice)
			r.Post("/practice/score", h.ScorePractice)
		})
	})
}

type Pinger interface {
	Ping(ctx context.Context, rp *readpref.ReadPref) error
}

// Health reports 503 while the database does not answer a ping.
func Health(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(r.Context(), readpref.Primary()); err != nil {
			httpClient.RespondError(w, http.StatusServiceUnavailable, "Database unavailable", err)
			return
		}
		httpClient.RespondSuccess(w, "OK", nil)
	}
}
