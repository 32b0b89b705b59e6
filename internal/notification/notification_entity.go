package notification

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EventID      string     `gorm:"type:varchar(64);not null;uniqueIndex:uq_notifications_event_id"`
	Type         string     `gorm:"type:varchar(50);not null"`
	Title        string     `gorm:"type:varchar(150);not null"`
	Message      string     `gorm:"type:text;not null"`
	EmployeeName string     `gorm:"type:varchar(150)"`
	Status       string     `gorm:"type:varchar(20)"`
	ReadAt       *time.Time `gorm:"index"`
	CreatedAt    time.Time  `gorm:"index"`
}
