package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalEmbedderDeterministic(t *testing.T) {
	embedder := NewLocalEmbedder(64)

	first, err := embedder.EmbedText(context.Background(), "python")
	require.NoError(t, err)
	second, err := embedder.EmbedText(context.Background(), "python")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first, 64)
	assert.InDelta(t, 1.0, Cosine(first, second), 1e-9)
}

func TestLocalEmbedderSimilarStringsLandClose(t *testing.T) {
	embedder := NewLocalEmbedder(DefaultLocalDimension)
	ctx := context.Background()

	python, err := embedder.EmbedText(ctx, "python")
	require.NoError(t, err)
	typo, err := embedder.EmbedText(ctx, "pythonn")
	require.NoError(t, err)
	unrelated, err := embedder.EmbedText(ctx, "java")
	require.NoError(t, err)

	assert.Greater(t, Cosine(python, typo), Cosine(python, unrelated))
	assert.Greater(t, Cosine(python, typo), 0.7)
}

func TestLocalEmbedderDegenerateInput(t *testing.T) {
	embedder := NewLocalEmbedder(32)
	ctx := context.Background()

	empty, err := embedder.EmbedText(ctx, "")
	require.NoError(t, err)
	for _, v := range empty {
		require.Zero(t, v)
	}

	// Zero-norm vectors score 0 rather than dividing by zero.
	other, err := embedder.EmbedText(ctx, "go")
	require.NoError(t, err)
	assert.Zero(t, Cosine(empty, other))

	// Inputs shorter than one trigram still produce a usable vector.
	again, err := embedder.EmbedText(ctx, "go")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, Cosine(other, again), 1e-9)
}

func TestLocalEmbedderDefaultDimension(t *testing.T) {
	embedder := NewLocalEmbedder(0)

	vector, err := embedder.EmbedText(context.Background(), "data science")
	require.NoError(t, err)
	assert.Len(t, vector, DefaultLocalDimension)
}
