package candidate

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPending   = "Pending"
	StatusScreening = "Screening"
	StatusInterview = "Interview"
	StatusSelected  = "Selected"
	StatusRejected  = "Rejected"
	StatusHired     = "Hired"
)

// EmailConstraint is the partial unique index on live candidates' email.
const EmailConstraint = "uq_candidate_email_live"

type Candidate struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"type:varchar(150);not null;index"`
	Email       string    `gorm:"type:varchar(150);not null;uniqueIndex:uq_candidate_email_live,where:deleted_at IS NULL"`
	Phone       string    `gorm:"type:varchar(30)"`
	Position    string    `gorm:"type:varchar(100)"`
	Status      string    `gorm:"type:varchar(20);not null;default:'Pending';index"`
	Resume      string    `gorm:"type:varchar(255)"`
	AppliedDate time.Time `gorm:"type:date"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}
