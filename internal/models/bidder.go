package models

import (
	"time"

	"github.com/google/uuid"
)

type Bidder struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	TenderID        uuid.UUID `gorm:"type:uuid;not null;index" json:"tender_id"`
	Name            string    `gorm:"type:text;not null" json:"name"`
	Email           string    `gorm:"type:text" json:"email"`
	Phone           string    `gorm:"type:text" json:"phone"`
	Address         string    `gorm:"type:text" json:"address"`
	City            string    `gorm:"type:text" json:"city"`
	Country         string    `gorm:"type:text" json:"country"`
	ContactPerson   string    `gorm:"type:text" json:"contact_person"`
	ContactPosition string    `gorm:"type:text" json:"contact_position"`
	CompanySize     string    `gorm:"type:text" json:"company_size"`
	YearEstablished string    `gorm:"type:text" json:"year_established"`
	Website         string    `gorm:"type:text" json:"website"`
	CreatedAt       time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt       time.Time `gorm:"type:timestamp;default:now()" json:"updated_at"`

	Documents  []BidderDocument  `gorm:"foreignKey:BidderID" json:"documents,omitempty"`
	Evaluation *BidderEvaluation `gorm:"foreignKey:BidderID" json:"evaluation,omitempty"`
}

func (b *Bidder) TableName() string {
	return "bidders"
}

// BidderDocument is a file a bidder submitted against one of the tender's
// document categories. A bidder may hold any number of documents per
// category; submission progress only checks presence.
type BidderDocument struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	BidderID         uuid.UUID `gorm:"type:uuid;not null;index" json:"bidder_id"`
	CategoryID       uuid.UUID `gorm:"type:uuid;not null;index" json:"category_id"`
	Name             string    `gorm:"type:text;not null" json:"name"`
	OriginalFileName string    `gorm:"type:text" json:"original_filename"`
	FilePath         string    `gorm:"type:text" json:"file_path"`
	URL              string    `gorm:"type:text" json:"url"`
	UploadDate       time.Time `gorm:"type:timestamp;default:now()" json:"upload_date"`
}

func (d *BidderDocument) TableName() string {
	return "bidder_documents"
}
