package services

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/skill-matcher/internal/models"
	"alfredoptarigan/skill-matcher/internal/repositories"
)

// fixtureEmbedder stands in for the semantic model: known strings get
// hand-picked vectors encoding the relations a real embedding model would
// produce (abbreviation near its expansion, misspelling near its target).
// Unknown strings get the zero vector, like out-of-vocabulary input.
type fixtureEmbedder struct {
	vectors map[string][]float32
}

func (f *fixtureEmbedder) EmbedText(_ context.Context, text string) ([]float32, error) {
	if vector, ok := f.vectors[strings.ToLower(text)]; ok {
		return append([]float32(nil), vector...), nil
	}
	return make([]float32, 6), nil
}

func fixtureVectors() map[string][]float32 {
	return map[string][]float32{
		"python":                      {1, 0, 0, 0, 0, 0},
		"relational database":         {0, 1, 0, 0, 0, 0},
		"software engineering":        {0, 0, 1, 0, 0, 0},
		"data science":                {0, 0, 0, 1, 0, 0},
		"nlp":                         {0, 0, 0, 0, 1, 0},
		"natural language processing": {0, 0, 0, 0, 0.8, 0.6},
		// misspelling: mostly "relational database", slightly "python"
		"databse": {0.436, 0.9, 0, 0, 0, 0},
	}
}

func canonicalSkills() []string {
	return []string{
		"Python",
		"Relational Database",
		"Software Engineering",
		"Data Science",
		"NLP",
		"Natural Language Processing",
	}
}

func newTestMatcher(t *testing.T, profile MatchProfile, skills []string) (MatcherService, repositories.QueryLogRepository) {
	t.Helper()

	embedder := &fixtureEmbedder{vectors: fixtureVectors()}
	store, err := BuildSkillStore(context.Background(), skills, embedder, 2)
	require.NoError(t, err)

	repo := repositories.NewMemoryQueryLogRepository()
	matcher := NewMatcherService(NewStoreHolder(store), embedder, NewQueryRecorder(repo), profile)
	return matcher, repo
}

func TestMatchSkillExactMatchRanksFirst(t *testing.T) {
	matcher, _ := newTestMatcher(t, ProfileBlended, canonicalSkills())

	resp, err := matcher.MatchSkill(context.Background(), "python")
	require.NoError(t, err)

	assert.Equal(t, "python", resp.SubmittedSkill)
	require.Len(t, resp.Matches, 1)
	assert.Equal(t, "Python", resp.Matches[0].Skill)
	assert.InDelta(t, 1.0, resp.Matches[0].Score, 0.001)
	assert.Greater(t, resp.Matches[0].Score, 0.9)
}

func TestMatchSkillAbbreviationBlended(t *testing.T) {
	matcher, _ := newTestMatcher(t, ProfileBlended, canonicalSkills())

	resp, err := matcher.MatchSkill(context.Background(), "NLP")
	require.NoError(t, err)

	require.NotEmpty(t, resp.Matches)
	assert.Equal(t, "NLP", resp.Matches[0].Skill)
	assert.InDelta(t, 1.0, resp.Matches[0].Score, 0.001)
}

// The split profile scores the embedding+fuzzy blend per skill, which is what
// lets an abbreviation also surface its expansion.
func TestMatchSkillAbbreviationSplit(t *testing.T) {
	matcher, _ := newTestMatcher(t, ProfileSplit, canonicalSkills())

	resp, err := matcher.MatchSkill(context.Background(), "NLP")
	require.NoError(t, err)

	require.NotEmpty(t, resp.Matches)
	assert.Equal(t, "NLP", resp.Matches[0].Skill)
	assert.InDelta(t, 1.0, resp.Matches[0].Score, 0.001)

	var expansion *models.Match
	for i := range resp.Matches {
		if resp.Matches[i].Skill == "Natural Language Processing" {
			expansion = &resp.Matches[i]
			break
		}
	}
	require.NotNil(t, expansion, "expansion of the abbreviation should clear the threshold")
	assert.Equal(t, MethodNLPFuzzy, expansion.Method)
	assert.Greater(t, expansion.Score, 0.5)
	assert.Less(t, expansion.Score, resp.Matches[0].Score)
}

func TestMatchSkillMisspelling(t *testing.T) {
	matcher, _ := newTestMatcher(t, ProfileBlended, canonicalSkills())

	resp, err := matcher.MatchSkill(context.Background(), "databse")
	require.NoError(t, err)

	require.NotEmpty(t, resp.Matches)
	assert.Equal(t, "Relational Database", resp.Matches[0].Skill)
	assert.Greater(t, resp.Matches[0].Score, 0.5)
}

func TestMatchSkillGarbageInputYieldsNoMatches(t *testing.T) {
	matcher, _ := newTestMatcher(t, ProfileBlended, canonicalSkills())

	for _, input := range []string{"!!!", "@@@@", ""} {
		resp, err := matcher.MatchSkill(context.Background(), input)
		require.NoError(t, err)
		assert.Empty(t, resp.Matches, "input %q", input)
	}
}

func TestMatchSkillThresholdBounds(t *testing.T) {
	matcher, _ := newTestMatcher(t, ProfileBlended, canonicalSkills())

	for _, input := range []string{"python", "NLP", "databse", "data science", "software"} {
		resp, err := matcher.MatchSkill(context.Background(), input)
		require.NoError(t, err)

		for _, match := range resp.Matches {
			assert.Greater(t, match.Score, 0.5, "input %q skill %q", input, match.Skill)
			assert.LessOrEqual(t, match.Score, 1.0, "input %q skill %q", input, match.Skill)
		}
	}
}

func TestMatchSkillScoresRoundedToThreeDecimals(t *testing.T) {
	matcher, _ := newTestMatcher(t, ProfileBlended, canonicalSkills())

	for _, input := range []string{"python", "NLP", "databse"} {
		resp, err := matcher.MatchSkill(context.Background(), input)
		require.NoError(t, err)

		for _, match := range resp.Matches {
			scaled := match.Score * 1000
			assert.InDelta(t, math.Round(scaled), scaled, 1e-9,
				"input %q skill %q score %v", input, match.Skill, match.Score)
		}
	}
}

func TestMatchSkillIdempotent(t *testing.T) {
	matcher, _ := newTestMatcher(t, ProfileBlended, canonicalSkills())

	first, err := matcher.MatchSkill(context.Background(), "databse")
	require.NoError(t, err)
	second, err := matcher.MatchSkill(context.Background(), "databse")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestMatchSkillInvariantUnderListReordering(t *testing.T) {
	reversed := canonicalSkills()
	for i, j := 0, len(reversed)-1; i < j; i, j = i+1, j-1 {
		reversed[i], reversed[j] = reversed[j], reversed[i]
	}

	matcher, _ := newTestMatcher(t, ProfileBlended, canonicalSkills())
	reorderedMatcher, _ := newTestMatcher(t, ProfileBlended, reversed)

	for _, input := range []string{"python", "NLP", "databse"} {
		resp, err := matcher.MatchSkill(context.Background(), input)
		require.NoError(t, err)
		reorderedResp, err := reorderedMatcher.MatchSkill(context.Background(), input)
		require.NoError(t, err)

		scores := map[string]float64{}
		for _, match := range resp.Matches {
			scores[match.Skill] = match.Score
		}
		reorderedScores := map[string]float64{}
		for _, match := range reorderedResp.Matches {
			reorderedScores[match.Skill] = match.Score
		}

		assert.Equal(t, scores, reorderedScores, "input %q", input)
	}
}

func TestCombineScoresMonotone(t *testing.T) {
	base := combineScores(0.4, 0.3, 0.2)

	assert.GreaterOrEqual(t, combineScores(0.5, 0.3, 0.2), base)
	assert.GreaterOrEqual(t, combineScores(0.4, 0.4, 0.2), base)
	assert.GreaterOrEqual(t, combineScores(0.4, 0.3, 0.3), base)
	assert.InDelta(t, 1.0, combineScores(1, 1, 1), 1e-9)
	assert.InDelta(t, 0.0, combineScores(0, 0, 0), 1e-9)
}

func TestMatchSkillRecordsQueryAndMatches(t *testing.T) {
	matcher, repo := newTestMatcher(t, ProfileBlended, canonicalSkills())

	_, err := matcher.MatchSkill(context.Background(), "python")
	require.NoError(t, err)
	_, err = matcher.MatchSkill(context.Background(), "!!!")
	require.NoError(t, err)

	queries, err := repo.ListQueries(10)
	require.NoError(t, err)
	require.Len(t, queries, 2)

	// Newest first; ids assigned monotonically starting at 1.
	assert.Equal(t, int64(2), queries[0].ID)
	assert.Equal(t, "!!!", queries[0].UserSkill)
	assert.Equal(t, int64(1), queries[1].ID)
	assert.Equal(t, "python", queries[1].UserSkill)
	assert.False(t, queries[1].SubmittedAt.IsZero())

	logged, err := repo.FindQueryByID(1)
	require.NoError(t, err)
	require.Len(t, logged.Matches, 1)
	assert.Equal(t, int64(1), logged.Matches[0].QueryID)
	assert.Equal(t, "Python", logged.Matches[0].Skill)
	assert.Equal(t, MethodCombined, logged.Matches[0].Method)

	// The no-match query has an entry but no match records.
	empty, err := repo.FindQueryByID(2)
	require.NoError(t, err)
	assert.Empty(t, empty.Matches)
}
