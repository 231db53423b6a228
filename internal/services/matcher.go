package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"alfredoptarigan/skill-matcher/internal/models"
)

// Fixed weights of the scoring design. The blended profile favors semantic
// similarity while still rewarding lexical and keyword matches; the split
// profile scores the embedding+fuzzy blend and the keyword signal as separate
// match entries.
const (
	weightEmbedding = 0.4
	weightFuzzy     = 0.3
	weightKeyword   = 0.3

	splitWeightEmbedding = 0.6
	splitWeightFuzzy     = 0.4

	// relevanceThreshold is the minimum combined score for a match to be
	// retained. keywordCutoff pre-filters the keyword score map before
	// aggregation; both happen to sit at the same value.
	relevanceThreshold = 0.5
	keywordCutoff      = 0.5
)

type MatchProfile string

const (
	ProfileBlended MatchProfile = "blended"
	ProfileSplit   MatchProfile = "split"
)

const (
	MethodCombined = "Combined"
	MethodNLPFuzzy = "NLP+Fuzzy"
	MethodTFIDF    = "TF-IDF"
)

// ParseProfile maps a config string to a profile, defaulting to blended.
func ParseProfile(s string) MatchProfile {
	if strings.EqualFold(s, string(ProfileSplit)) {
		return ProfileSplit
	}
	return ProfileBlended
}

type MatcherService interface {
	MatchSkill(ctx context.Context, userSkill string) (*models.MatchResponse, error)
}

type matcherService struct {
	holder   *StoreHolder
	embedder Embedder
	recorder *QueryRecorder
	profile  MatchProfile
}

func NewMatcherService(
	holder *StoreHolder,
	embedder Embedder,
	recorder *QueryRecorder,
	profile MatchProfile,
) MatcherService {
	return &matcherService{
		holder:   holder,
		embedder: embedder,
		recorder: recorder,
		profile:  profile,
	}
}

// MatchSkill implements MatcherService. The three score maps are independent
// pure functions of (user text, candidate set); aggregation merges them,
// filters on the relevance threshold and sorts descending with canonical list
// order as the tie break.
func (m *matcherService) MatchSkill(ctx context.Context, userSkill string) (*models.MatchResponse, error) {
	store := m.holder.Current()

	embedding, err := m.embeddingScores(ctx, store, userSkill)
	if err != nil {
		return nil, fmt.Errorf("failed to score embeddings: %w", err)
	}
	fuzzy := fuzzyScores(store, userSkill)
	keyword := keywordScores(store, userSkill)

	var matches []models.Match
	switch m.profile {
	case ProfileSplit:
		matches = aggregateSplit(store, embedding, fuzzy, keyword)
	default:
		matches = aggregateBlended(store, embedding, fuzzy, keyword)
	}

	if m.recorder != nil {
		m.recorder.Record(userSkill, matches)
	}

	return &models.MatchResponse{
		SubmittedSkill: userSkill,
		Matches:        matches,
	}, nil
}

// embeddingScores computes cosine similarity between the lowercased user
// text's embedding and each skill's precomputed vector. A zero-norm vector on
// either side scores 0 rather than dividing by zero.
func (m *matcherService) embeddingScores(ctx context.Context, store *SkillStore, userSkill string) (map[string]float64, error) {
	userVector, err := m.embedder.EmbedText(ctx, strings.ToLower(userSkill))
	if err != nil {
		return nil, err
	}

	scores := make(map[string]float64, len(store.All()))
	for _, skill := range store.All() {
		scores[skill.Name] = round3(Cosine(userVector, skill.EmbeddingVector))
	}

	return scores, nil
}

func fuzzyScores(store *SkillStore, userSkill string) map[string]float64 {
	scores := make(map[string]float64, len(store.All()))
	for _, skill := range store.All() {
		scores[skill.Name] = FuzzyScore(userSkill, skill.Name)
	}
	return scores
}

// keywordScores retains only candidates whose TF-IDF cosine clears the
// keyword cutoff. The filter compares the unrounded value; the retained score
// is rounded. Absence from the map means "no signal", not an error.
func keywordScores(store *SkillStore, userSkill string) map[string]float64 {
	userVector := store.Vectorizer().Transform(userSkill)

	scores := make(map[string]float64)
	for _, skill := range store.All() {
		if sim := cosine64(userVector, skill.KeywordVector); sim > keywordCutoff {
			scores[skill.Name] = round3(sim)
		}
	}
	return scores
}

func aggregateBlended(store *SkillStore, embedding, fuzzy, keyword map[string]float64) []models.Match {
	matches := []models.Match{}
	for _, skill := range store.All() {
		combined := combineScores(embedding[skill.Name], fuzzy[skill.Name], keyword[skill.Name])
		if combined > relevanceThreshold {
			matches = append(matches, models.Match{
				Skill:  skill.Name,
				Score:  round3(combined),
				Method: MethodCombined,
			})
		}
	}

	sortMatches(matches)
	return matches
}

// aggregateSplit reports the embedding+fuzzy blend and the keyword signal as
// separately tagged entries, so one skill may appear twice under different
// method tags.
func aggregateSplit(store *SkillStore, embedding, fuzzy, keyword map[string]float64) []models.Match {
	matches := []models.Match{}
	for _, skill := range store.All() {
		blend := splitWeightEmbedding*embedding[skill.Name] + splitWeightFuzzy*fuzzy[skill.Name]
		if blend > relevanceThreshold {
			matches = append(matches, models.Match{
				Skill:  skill.Name,
				Score:  round3(blend),
				Method: MethodNLPFuzzy,
			})
		}

		if score, ok := keyword[skill.Name]; ok {
			matches = append(matches, models.Match{
				Skill:  skill.Name,
				Score:  score,
				Method: MethodTFIDF,
			})
		}
	}

	sortMatches(matches)
	return matches
}

// combineScores is the fixed weighted blend. Monotone in each component.
func combineScores(embedding, fuzzy, keyword float64) float64 {
	return weightEmbedding*embedding + weightFuzzy*fuzzy + weightKeyword*keyword
}

// sortMatches orders by score descending; the stable sort keeps canonical
// list order for equal scores so results are deterministic.
func sortMatches(matches []models.Match) {
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
}
