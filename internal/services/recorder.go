package services

import (
	"log"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/skill-matcher/internal/models"
	"alfredoptarigan/skill-matcher/internal/repositories"
)

// QueryRecorder observes each match request and appends it to the query log
// together with its retained matches. Recording is best-effort: a failed
// append is logged and the match response is still returned to the caller.
type QueryRecorder struct {
	repo repositories.QueryLogRepository
}

func NewQueryRecorder(repo repositories.QueryLogRepository) *QueryRecorder {
	return &QueryRecorder{repo: repo}
}

func (r *QueryRecorder) Record(userSkill string, matches []models.Match) {
	now := time.Now()

	query := &models.QueryLog{
		RequestID:   uuid.New(),
		UserSkill:   userSkill,
		SubmittedAt: now,
	}

	if err := r.repo.AppendQuery(query); err != nil {
		log.Printf("⚠️ Failed to record query %q: %v\n", userSkill, err)
		return
	}

	if len(matches) == 0 {
		return
	}

	entries := make([]*models.MatchLog, len(matches))
	for i, match := range matches {
		entries[i] = &models.MatchLog{
			QueryID:   query.ID,
			Skill:     match.Skill,
			Method:    match.Method,
			Score:     match.Score,
			CreatedAt: now,
		}
	}

	if err := r.repo.AppendMatches(entries); err != nil {
		log.Printf("⚠️ Failed to record matches for query %d: %v\n", query.ID, err)
	}
}
