package events

import "time"

const (
	LeaveStatusChangedTopic = "hr.leave.status.v1"
	LeaveStatusChangedType  = "leave_status_changed"
)

// LeaveStatusChangedEvent is written to the outbox whenever a leave's
// status is set, including when the new status equals the old one.
type LeaveStatusChangedEvent struct {
	EventType    string    `json:"event_type"`
	RequestID    string    `json:"request_id,omitempty"`
	LeaveID      string    `json:"leave_id"`
	EmployeeName string    `json:"employee_name"`
	Date         string    `json:"date"`
	Status       string    `json:"status"`
	OccurredAt   time.Time `json:"occurred_at"`
}
