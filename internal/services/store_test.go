package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSkillStoreEmptyListFails(t *testing.T) {
	_, err := BuildSkillStore(context.Background(), nil, NewLocalEmbedder(32), 2)
	require.ErrorIs(t, err, ErrEmptySkillList)

	_, err = BuildSkillStore(context.Background(), []string{}, NewLocalEmbedder(32), 2)
	require.ErrorIs(t, err, ErrEmptySkillList)
}

func TestBuildSkillStorePreservesLoadOrder(t *testing.T) {
	names := canonicalSkills()

	store, err := BuildSkillStore(context.Background(), names, NewLocalEmbedder(32), 3)
	require.NoError(t, err)

	require.Equal(t, names, store.Names())
	for _, skill := range store.All() {
		assert.Len(t, skill.EmbeddingVector, 32, "skill %q", skill.Name)
		assert.Len(t, skill.KeywordVector, store.Vectorizer().VocabularySize(), "skill %q", skill.Name)
	}
}

func TestBuildSkillStoreSkipsDuplicates(t *testing.T) {
	names := []string{"Python", "Go", "Python", "Rust"}

	store, err := BuildSkillStore(context.Background(), names, NewLocalEmbedder(32), 1)
	require.NoError(t, err)

	assert.Equal(t, []string{"Python", "Go", "Rust"}, store.Names())
}

func TestBuildSkillStoreKeywordVectorIsOwnTransform(t *testing.T) {
	store, err := BuildSkillStore(context.Background(), canonicalSkills(), NewLocalEmbedder(32), 2)
	require.NoError(t, err)

	for _, skill := range store.All() {
		self := store.Vectorizer().Transform(skill.Name)
		assert.InDelta(t, 1.0, cosine64(self, skill.KeywordVector), 1e-9, "skill %q", skill.Name)
	}
}

func TestStoreHolderSwapPublishesNewSnapshot(t *testing.T) {
	first, err := BuildSkillStore(context.Background(), []string{"Python"}, NewLocalEmbedder(32), 1)
	require.NoError(t, err)
	second, err := BuildSkillStore(context.Background(), []string{"Go", "Rust"}, NewLocalEmbedder(32), 1)
	require.NoError(t, err)

	holder := NewStoreHolder(first)
	assert.Equal(t, []string{"Python"}, holder.Current().Names())

	holder.Swap(second)
	assert.Equal(t, []string{"Go", "Rust"}, holder.Current().Names())
}
