package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type EvaluationStatus string

const (
	StatusQueued     EvaluationStatus = "queued"
	StatusProcessing EvaluationStatus = "processing"
	StatusCompleted  EvaluationStatus = "completed"
	StatusFailed     EvaluationStatus = "failed"
)

// CategoryScore is the result the AI evaluator produces for one
// (bidder, category) pair. It is replaced wholesale on re-evaluation.
type CategoryScore struct {
	Score      float64  `json:"score"`
	Summary    string   `json:"summary"`
	Strengths  []string `json:"strengths"`
	Weaknesses []string `json:"weaknesses"`
	Risks      []string `json:"risks"`
}

func (s CategoryScore) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *CategoryScore) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("failed to scan category score: expected []byte, got %T", value)
	}
	return json.Unmarshal(bytes, s)
}

// CategoryScoreMap maps category id to its CategoryScore.
type CategoryScoreMap map[string]CategoryScore

func (m CategoryScoreMap) Value() (driver.Value, error) {
	return json.Marshal(m)
}

func (m *CategoryScoreMap) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("failed to scan category scores: expected []byte, got %T", value)
	}
	return json.Unmarshal(bytes, m)
}

// EvaluationJob drives one asynchronous AI evaluation of a single
// (bidder, category) pair. The latest completed job per category holds the
// bidder's current CategoryScore for that category.
type EvaluationJob struct {
	ID           uuid.UUID        `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	BidderID     uuid.UUID        `gorm:"type:uuid;not null;index" json:"bidder_id"`
	CategoryID   uuid.UUID        `gorm:"type:uuid;not null;index" json:"category_id"`
	Status       EvaluationStatus `gorm:"not null;default:'queued'" json:"status"`
	Result       *CategoryScore   `gorm:"type:jsonb" json:"result,omitempty"`
	ErrorMessage *string          `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt    time.Time        `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time        `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Relations
	Bidder Bidder `gorm:"foreignKey:BidderID" json:"-"`
}

func (EvaluationJob) TableName() string {
	return "evaluation_jobs"
}

// BidderEvaluation is the finalized outcome for a bidder: the category score
// set as of finalization, the weight-aggregated overall score, and the
// templated recommendation. It is written only once every required category
// has a score, and is replaced entirely on re-finalization.
type BidderEvaluation struct {
	ID             uuid.UUID        `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	BidderID       uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex" json:"bidder_id"`
	CategoryScores CategoryScoreMap `gorm:"type:jsonb;not null;default:'{}'" json:"category_scores"`
	OverallScore   int              `gorm:"not null" json:"overall_score"`
	Recommendation string           `gorm:"type:text" json:"recommendation"`
	CreatedAt      time.Time        `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time        `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (BidderEvaluation) TableName() string {
	return "bidder_evaluations"
}
