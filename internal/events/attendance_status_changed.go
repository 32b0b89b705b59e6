package events

import "time"

const AttendanceStatusChangedType = "attendance_status_changed"

type AttendanceStatusChangedEvent struct {
	EventType    string    `json:"event_type"`
	AttendanceID string    `json:"attendance_id"`
	EmployeeName string    `json:"employee_name"`
	Status       string    `json:"status"`
	OccurredAt   time.Time `json:"occurred_at"`
}
