package repositories

import (
	"fmt"

	"gorm.io/gorm"

	"alfredoptarigan/skill-matcher/internal/models"
)

// QueryLogRepository is the append-only query/match log. Appends assign the
// monotonically increasing ids; entries are never updated or deleted.
type QueryLogRepository interface {
	AppendQuery(query *models.QueryLog) error
	AppendMatches(matches []*models.MatchLog) error
	FindQueryByID(id int64) (*models.QueryLog, error)
	ListQueries(limit int) ([]models.QueryLog, error)
}

type queryLogRepository struct {
	db *gorm.DB
}

func NewQueryLogRepository(db *gorm.DB) QueryLogRepository {
	return &queryLogRepository{db: db}
}

// AppendQuery implements QueryLogRepository. The bigserial primary key keeps
// id assignment serialized under concurrent requests.
func (r *queryLogRepository) AppendQuery(query *models.QueryLog) error {
	if err := r.db.Create(query).Error; err != nil {
		return fmt.Errorf("failed to append query log: %w", err)
	}

	return nil
}

// AppendMatches implements QueryLogRepository.
func (r *queryLogRepository) AppendMatches(matches []*models.MatchLog) error {
	if len(matches) == 0 {
		return nil
	}

	if err := r.db.Create(&matches).Error; err != nil {
		return fmt.Errorf("failed to append match logs: %w", err)
	}

	return nil
}

// FindQueryByID implements QueryLogRepository.
func (r *queryLogRepository) FindQueryByID(id int64) (*models.QueryLog, error) {
	var query models.QueryLog
	if err := r.db.Preload("Matches").Where("id = ?", id).First(&query).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("query log not found: %w", err)
		}

		return nil, fmt.Errorf("failed to find query log: %w", err)
	}

	return &query, nil
}

// ListQueries implements QueryLogRepository.
func (r *queryLogRepository) ListQueries(limit int) ([]models.QueryLog, error) {
	var queries []models.QueryLog
	err := r.db.
		Preload("Matches").
		Order("id DESC").
		Limit(limit).
		Find(&queries).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list query logs: %w", err)
	}

	return queries, nil
}
