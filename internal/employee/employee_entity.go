package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusActive     = "active"
	StatusOnLeave    = "on-leave"
	StatusTerminated = "terminated"
)

type Employee struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"type:varchar(150);not null;index"`
	Email       string    `gorm:"type:varchar(150);not null;uniqueIndex:uq_employee_email_live,where:deleted_at IS NULL"`
	Phone       string    `gorm:"type:varchar(30)"`
	Position    string    `gorm:"type:varchar(100)"`
	Department  string    `gorm:"type:varchar(100);index"`
	JoiningDate time.Time `gorm:"type:date"`
	Status      string    `gorm:"type:varchar(20);not null;default:'active'"`
	Profile     string    `gorm:"type:varchar(255)"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}
