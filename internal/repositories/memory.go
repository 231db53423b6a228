package repositories

import (
	"fmt"
	"sync"

	"alfredoptarigan/skill-matcher/internal/models"
)

// memoryQueryLogRepository is the default log backend: an in-process
// append-only log that lives for the process lifetime. Id assignment happens
// under the same lock as the append so concurrent requests can never observe
// duplicate or lost ids.
type memoryQueryLogRepository struct {
	mu          sync.Mutex
	nextQueryID int64
	nextMatchID int64
	queries     []models.QueryLog
	matches     map[int64][]models.MatchLog
}

func NewMemoryQueryLogRepository() QueryLogRepository {
	return &memoryQueryLogRepository{
		nextQueryID: 1,
		nextMatchID: 1,
		matches:     make(map[int64][]models.MatchLog),
	}
}

// AppendQuery implements QueryLogRepository.
func (r *memoryQueryLogRepository) AppendQuery(query *models.QueryLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	query.ID = r.nextQueryID
	r.nextQueryID++
	r.queries = append(r.queries, *query)

	return nil
}

// AppendMatches implements QueryLogRepository.
func (r *memoryQueryLogRepository) AppendMatches(matches []*models.MatchLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, match := range matches {
		match.ID = r.nextMatchID
		r.nextMatchID++
		r.matches[match.QueryID] = append(r.matches[match.QueryID], *match)
	}

	return nil
}

// FindQueryByID implements QueryLogRepository.
func (r *memoryQueryLogRepository) FindQueryByID(id int64) (*models.QueryLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, query := range r.queries {
		if query.ID == id {
			found := query
			found.Matches = append([]models.MatchLog(nil), r.matches[id]...)
			return &found, nil
		}
	}

	return nil, fmt.Errorf("query log not found")
}

// ListQueries implements QueryLogRepository. Queries are returned newest
// first, mirroring the database-backed implementation.
func (r *memoryQueryLogRepository) ListQueries(limit int) ([]models.QueryLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := len(r.queries)
	if limit <= 0 || limit > n {
		limit = n
	}

	out := make([]models.QueryLog, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		query := r.queries[i]
		query.Matches = append([]models.MatchLog(nil), r.matches[query.ID]...)
		out = append(out, query)
	}

	return out, nil
}
