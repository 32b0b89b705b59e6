package leave

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Status is the closed set of leave states.
type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

var Statuses = []Status{StatusPending, StatusApproved, StatusRejected}

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

const (
	defaultPosition   = "Full Time"
	defaultDepartment = "Staff"
)

type Leave struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID   *uuid.UUID `gorm:"type:uuid;index"`
	EmployeeName string     `gorm:"type:varchar(150);not null;index:idx_leaves_date_employee"`
	Position     string     `gorm:"type:varchar(100);not null"`
	Department   string     `gorm:"type:varchar(100);not null"`
	Date         string     `gorm:"type:varchar(32);not null;index:idx_leaves_date_employee"`
	Reason       string     `gorm:"type:text;not null"`
	Status       Status     `gorm:"type:varchar(20);not null;default:'Pending';index"`
	Document     *string    `gorm:"type:varchar(255)"`
	Profile      string     `gorm:"type:varchar(255)"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// SplitDesignation turns "Senior Developer" into position "Senior" and
// department "Developer". Missing parts fall back to Full Time / Staff.
func SplitDesignation(designation string) (position, department string) {
	position, department = defaultPosition, defaultDepartment
	first, rest, _ := strings.Cut(strings.TrimSpace(designation), " ")
	if first != "" {
		position = first
	}
	if rest = strings.TrimSpace(rest); rest != "" {
		department = rest
	}
	return position, department
}
