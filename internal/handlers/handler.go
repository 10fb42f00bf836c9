package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-playground/validator"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"uniprep/internal/cache"
	"uniprep/internal/models"
	"uniprep/internal/repository"
	utility "uniprep/internal/utility"
	httpClient "uniprep/internal/utility/http"
)

var validate = validator.New()

// UploadArchiver keeps a copy of an uploaded questions file.
type UploadArchiver interface {
	ArchiveUpload(ctx context.Context, subject primitive.ObjectID, data []byte) (string, error)
}

type Options struct {
	JWTSecret      string
	TokenTTL       time.Duration
	OTPTTL         time.Duration
	AdminAuth      bool
	MaxUploadBytes int64
	RequestTimeout time.Duration
}

type Handler struct {
	stores   repository.Stores
	mailer   utility.Mailer
	cache    cache.QuestionCache
	archiver UploadArchiver
	opts     Options
	now      func() time.Time
}

func New(stores repository.Stores, mailer utility.Mailer, opts Options) *Handler {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 10 * time.Second
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 10 << 20
	}
	if opts.OTPTTL <= 0 {
		opts.OTPTTL = 10 * time.Minute
	}
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 24 * time.Hour
	}
	return &Handler{
		stores: stores,
		mailer: mailer,
		cache:  cache.Noop{},
		opts:   opts,
		now:    time.Now,
	}
}

func (h *Handler) WithCache(c cache.QuestionCache) *Handler {
	if c != nil {
		h.cache = c
	}
	return h
}

func (h *Handler) WithArchiver(a UploadArchiver) *Handler {
	h.archiver = a
	return h
}

func (h *Handler) context(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), h.opts.RequestTimeout)
}

type normalizer interface {
	Normalize()
}

// decodeAndValidate reads a JSON body into v, normalizes it when v knows how,
// and checks its validate tags. An empty body decodes as {}.
func decodeAndValidate(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	if n, ok := v.(normalizer); ok {
		n.Normalize()
	}
	return validate.Struct(v)
}

func objectIDParam(r *http.Request, name string) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(chi.URLParam(r, name))
}

// questionPool reads a subject's questions through the cache. Cache errors
// are logged and fall back to the store.
func (h *Handler) questionPool(ctx context.Context, subject primitive.ObjectID) ([]models.Question, error) {
	questions, hit, err := h.cache.Get(ctx, subject)
	if err != nil {
		log.Printf("question cache get %s: %v", subject.Hex(), err)
	} else if hit {
		return questions, nil
	}

	questions, err = h.stores.Questions.ListBySubject(ctx, subject)
	if err != nil {
		return nil, err
	}
	if err := h.cache.Set(ctx, subject, questions); err != nil {
		log.Printf("question cache set %s: %v", subject.Hex(), err)
	}
	return questions, nil
}

// respondLookupError answers a failed find: 404 for ErrNotFound, 500 otherwise.
func respondLookupError(w http.ResponseWriter, err error, notFound, fallback string) {
	if errors.Is(err, repository.ErrNotFound) {
		httpClient.RespondError(w, http.StatusNotFound, notFound, err)
		return
	}
	httpClient.RespondError(w, http.StatusInternalServerError, fallback, err)
}

// respondWriteError answers a failed insert or update: 409 for ErrDuplicate, 500 otherwise.
func respondWriteError(w http.ResponseWriter, err error, duplicate, fallback string) {
	if errors.Is(err, repository.ErrDuplicate) {
		httpClient.RespondError(w, http.StatusConflict, duplicate, err)
		return
	}
	httpClient.RespondError(w, http.StatusInternalServerError, fallback, err)
}
