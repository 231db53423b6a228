package models

import (
	"time"

	"github.com/google/uuid"
)

type QueryLog struct {
	ID          int64      `gorm:"primaryKey;autoIncrement" json:"query_id"`
	RequestID   uuid.UUID  `gorm:"type:uuid" json:"request_id"`
	UserSkill   string     `gorm:"type:text" json:"user_skill"`
	SubmittedAt time.Time  `gorm:"type:timestamp;default:now()" json:"submitted_at"`
	Matches     []MatchLog `gorm:"foreignKey:QueryID" json:"matches,omitempty"`
}

func (QueryLog) TableName() string {
	return "query_logs"
}

type MatchLog struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"match_id"`
	QueryID   int64     `gorm:"index;not null" json:"query_id"`
	Skill     string    `gorm:"type:text" json:"skill"`
	Method    string    `gorm:"type:text" json:"method"`
	Score     float64   `json:"score"`
	CreatedAt time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
}

func (MatchLog) TableName() string {
	return "match_logs"
}
