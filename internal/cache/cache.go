package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"uniprep/internal/config"
	"uniprep/internal/models"
)

// QuestionCache keeps the question pool of a subject between requests.
type QuestionCache interface {
	Get(ctx context.Context, subject primitive.ObjectID) ([]models.Question, bool, error)
	Set(ctx context.Context, subject primitive.ObjectID, questions []models.Question) error
	Invalidate(ctx context.Context, subject primitive.ObjectID) error
}

func Key(subject primitive.ObjectID) string {
	return "uniprep:questions:" + subject.Hex()
}

type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis connects to cfg.Addr and pings it once.
func NewRedis(ctx context.Context, cfg config.RedisConfig) (*Redis, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Redis{client: rdb, ttl: cfg.TTL}, nil
}

func (r *Redis) Get(ctx context.Context, subject primitive.ObjectID) ([]models.Question, bool, error) {
	raw, err := r.client.Get(ctx, Key(subject)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	questions, err := decode(raw)
	if err != nil {
		return nil, false, err
	}
	return questions, true, nil
}

func (r *Redis) Set(ctx context.Context, subject primitive.ObjectID, questions []models.Question) error {
	raw, err := encode(questions)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, Key(subject), raw, r.ttl).Err()
}

func (r *Redis) Invalidate(ctx context.Context, subject primitive.ObjectID) error {
	return r.client.Del(ctx, Key(subject)).Err()
}

func (r *Redis) Close() error {
	return r.client.Close()
}

func encode(questions []models.Question) ([]byte, error) {
	if questions == nil {
		questions = []models.Question{}
	}
	return json.Marshal(questions)
}

func decode(raw []byte) ([]models.Question, error) {
	questions := []models.Question{}
	if err := json.Unmarshal(raw, &questions); err != nil {
		return nil, fmt.Errorf("decode cached questions: %w", err)
	}
	return questions, nil
}

// Noop never hits; it stands in when no Redis address is configured.
type Noop struct{}

func (Noop) Get(context.Context, primitive.ObjectID) ([]models.Question, bool, error) {
	return nil, false, nil
}

func (Noop) Set(context.Context, primitive.ObjectID, []models.Question) error { return nil }

func (Noop) Invalidate(context.Context, primitive.ObjectID) error { return nil }
