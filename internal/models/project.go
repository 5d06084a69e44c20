package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type ProjectType string

const (
	ProjectResidential ProjectType = "residential"
	ProjectCommercial  ProjectType = "commercial"
	ProjectMixedUse    ProjectType = "mixed-use"
	ProjectHospitality ProjectType = "hospitality"
)

type Project struct {
	ID          uuid.UUID   `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name        string      `gorm:"type:text;not null" json:"name"`
	Description string      `gorm:"type:text" json:"description"`
	Area        float64     `gorm:"type:numeric" json:"area"`
	Type        ProjectType `gorm:"type:text;not null" json:"type"`
	Location    string      `gorm:"type:text" json:"location"`
	StartDate   time.Time   `gorm:"type:date" json:"start_date"`
	EndDate     time.Time   `gorm:"type:date" json:"end_date"`
	CreatedAt   time.Time   `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt   time.Time   `gorm:"type:timestamp;default:now()" json:"updated_at"`

	Tenders []Tender `gorm:"foreignKey:ProjectID" json:"tenders,omitempty"`
}

func (p *Project) TableName() string {
	return "projects"
}

// RefNo derives the display reference from the project id, e.g. PRJ-2025-9F3A.
func (p *Project) RefNo() string {
	short := strings.ToUpper(p.ID.String()[:4])
	return fmt.Sprintf("PRJ-%d-%s", p.CreatedAt.Year(), short)
}
