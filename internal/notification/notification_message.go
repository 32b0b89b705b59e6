package notification

import (
	"context"
	"fmt"
	"time"

	"hris-dashboard/internal/events"
)

// Message is the JSON frame pushed to websocket clients.
type Message struct {
	Type         string    `json:"type"`
	Title        string    `json:"title"`
	Message      string    `json:"message"`
	ReferenceID  string    `json:"reference_id,omitempty"`
	EmployeeName string    `json:"employee_name,omitempty"`
	Status       string    `json:"status,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

//go:generate mockgen -source=notification_message.go -destination=mock/notifier_mock.go -package=mock

// Notifier delivers a message to whoever is listening right now. Delivery
// is best-effort.
type Notifier interface {
	Push(ctx context.Context, msg Message) error
}

func LeaveStatusMessage(e events.LeaveStatusChangedEvent) Message {
	return Message{
		Type:         events.LeaveStatusChangedType,
		Title:        "Leave status updated",
		Message:      fmt.Sprintf("Leave for %s on %s is now %s", e.EmployeeName, e.Date, e.Status),
		ReferenceID:  e.LeaveID,
		EmployeeName: e.EmployeeName,
		Status:       e.Status,
		CreatedAt:    e.OccurredAt,
	}
}

func AttendanceStatusMessage(e events.AttendanceStatusChangedEvent) Message {
	return Message{
		Type:         events.AttendanceStatusChangedType,
		Title:        "Attendance updated",
		Message:      fmt.Sprintf("Attendance status updated to %s for %s", e.Status, e.EmployeeName),
		ReferenceID:  e.AttendanceID,
		EmployeeName: e.EmployeeName,
		Status:       e.Status,
		CreatedAt:    e.OccurredAt,
	}
}
