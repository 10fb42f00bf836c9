package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"uniprep/internal/models"
)

func TestKey(t *testing.T) {
	id, err := primitive.ObjectIDFromHex("64f1c2a9e4b0a1b2c3d4e5f6")
	require.NoError(t, err)

	assert.Equal(t, "uniprep:questions:64f1c2a9e4b0a1b2c3d4e5f6", Key(id))
}

func TestEncodeDecode(t *testing.T) {
	questions := []models.Question{{
		ID:         primitive.NewObjectID(),
		Text:       "Which traversal visits the root first?",
		Options:    []models.Option{{Text: "Preorder", IsCorrect: true}, {Text: "Inorder"}},
		Difficulty: models.DifficultyMedium,
		UnitNo:     3,
		Topic:      "Trees",
		Subject:    primitive.NewObjectID(),
		CreatedAt:  time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}}

	raw, err := encode(questions)
	require.NoError(t, err)
	got, err := decode(raw)
	require.NoError(t, err)
	assert.Equal(t, questions, got)
}

func TestEncodeNilAsEmptyList(t *testing.T) {
	raw, err := encode(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))

	got, err := decode(raw)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestDecodeGarbage(t *testing.T) {
	_, err := decode([]byte("{not json"))
	assert.Error(t, err)
}

func TestNoop(t *testing.T) {
	var c QuestionCache = Noop{}
	ctx := context.Background()
	subject := primitive.NewObjectID()

	require.NoError(t, c.Set(ctx, subject, []models.Question{{Text: "q"}}))
	_, hit, err := c.Get(ctx, subject)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.NoError(t, c.Invalidate(ctx, subject))
}
