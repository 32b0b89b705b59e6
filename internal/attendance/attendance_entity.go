package attendance

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Status is either Present or Absent.
type Status string

const (
	StatusPresent Status = "Present"
	StatusAbsent  Status = "Absent"
)

var Statuses = []Status{StatusPresent, StatusAbsent}

func ParseStatus(v string) (Status, bool) {
	for _, s := range Statuses {
		if string(s) == v {
			return s, true
		}
	}
	return "", false
}

func (s Status) String() string {
	return string(s)
}

type Attendance struct {
	ID         uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID *uuid.UUID     `gorm:"column:employee_id;type:uuid;index"`
	Name       string         `gorm:"column:name;type:varchar(150);not null;index"`
	Position   string         `gorm:"column:position;type:varchar(100)"`
	Department string         `gorm:"column:department;type:varchar(100);index"`
	Task       string         `gorm:"column:task;type:text"`
	Status     Status         `gorm:"column:status;type:varchar(20);not null;default:'Present';index"`
	Profile    string         `gorm:"column:profile;type:varchar(255)"`
	Date       string         `gorm:"column:date;type:varchar(32)"`
	CreatedAt  time.Time      `gorm:"column:created_at"`
	UpdatedAt  time.Time      `gorm:"column:updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Attendance) TableName() string {
	return "attendances"
}
