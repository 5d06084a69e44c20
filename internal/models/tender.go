package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type TenderStatus string

const (
	TenderDraft   TenderStatus = "draft"
	TenderOpen    TenderStatus = "open"
	TenderClosed  TenderStatus = "closed"
	TenderAwarded TenderStatus = "awarded"
)

type Tender struct {
	ID         uuid.UUID    `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ProjectID  uuid.UUID    `gorm:"type:uuid;not null;index" json:"project_id"`
	Name       string       `gorm:"type:text;not null" json:"name"`
	Discipline string       `gorm:"type:text" json:"discipline"`
	Value      float64      `gorm:"type:numeric" json:"value"`
	Currency   string       `gorm:"type:text" json:"currency"`
	StartDate  time.Time    `gorm:"type:date" json:"start_date"`
	EndDate    time.Time    `gorm:"type:date" json:"end_date"`
	Description string      `gorm:"type:text" json:"description"`
	Status     TenderStatus `gorm:"type:text;not null;default:'draft'" json:"status"`
	CreatedAt  time.Time    `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt  time.Time    `gorm:"type:timestamp;default:now()" json:"updated_at"`

	Categories    []DocumentCategory `gorm:"foreignKey:TenderID" json:"categories,omitempty"`
	ScoringMatrix *ScoringMatrix     `gorm:"foreignKey:TenderID" json:"scoring_matrix,omitempty"`
	Bidders       []Bidder           `gorm:"foreignKey:TenderID" json:"bidders,omitempty"`
	Documents     []TenderDocument   `gorm:"foreignKey:TenderID" json:"documents,omitempty"`
}

func (t *Tender) TableName() string {
	return "tenders"
}

// RefNo derives the display reference from the parent project's reference,
// e.g. PRJ-2025-9F3A-TND-C21.
func (t *Tender) RefNo(projectRefNo string) string {
	short := strings.ToUpper(t.ID.String()[:3])
	return fmt.Sprintf("%s-TND-%s", projectRefNo, short)
}

// DocumentCategory is a named weighted bucket of documents a tender requires.
// Weights are integer percents; a tender is only scorable once its active
// category weights sum to exactly 100.
type DocumentCategory struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	TenderID    uuid.UUID `gorm:"type:uuid;not null;index" json:"tender_id"`
	Name        string    `gorm:"type:text;not null" json:"name"`
	Weight      int       `gorm:"not null;default:0" json:"weight"`
	Required    bool      `gorm:"not null;default:true" json:"required"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt   time.Time `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (c *DocumentCategory) TableName() string {
	return "document_categories"
}

// WeightCriteria maps category id to its effective weight override.
type WeightCriteria map[string]int

func (w WeightCriteria) Value() (driver.Value, error) {
	return json.Marshal(w)
}

func (w *WeightCriteria) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("failed to scan weight criteria: expected []byte, got %T", value)
	}
	return json.Unmarshal(bytes, w)
}

// ScoringMatrix is the tender-scoped weight configuration. Criteria keys must
// be a subset of the tender's category ids; that constraint is enforced by the
// scoring package before any aggregation.
type ScoringMatrix struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	TenderID  uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"tender_id"`
	Criteria  WeightCriteria `gorm:"type:jsonb;not null;default:'{}'" json:"criteria"`
	CreatedAt time.Time      `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (m *ScoringMatrix) TableName() string {
	return "scoring_matrices"
}

type TenderDocumentCategory string

const (
	TenderDocAdministrative TenderDocumentCategory = "administrative"
	TenderDocTechnical      TenderDocumentCategory = "technical"
	TenderDocLegal          TenderDocumentCategory = "legal"
	TenderDocEvaluation     TenderDocumentCategory = "evaluation"
	TenderDocSubmission     TenderDocumentCategory = "submission"
)

// TenderDocument is a reference document attached to the tender itself
// (briefs, rubrics, legal terms), as opposed to bidder submissions.
type TenderDocument struct {
	ID         uuid.UUID              `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	TenderID   uuid.UUID              `gorm:"type:uuid;not null;index" json:"tender_id"`
	Category   TenderDocumentCategory `gorm:"type:text;not null" json:"category"`
	Name       string                 `gorm:"type:text;not null" json:"name"`
	URL        string                 `gorm:"type:text" json:"url"`
	UploadDate time.Time              `gorm:"type:timestamp;default:now()" json:"upload_date"`
}

func (d *TenderDocument) TableName() string {
	return "tender_documents"
}
