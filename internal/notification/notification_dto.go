package notification

type ListNotificationsQuery struct {
	Limit      int  `form:"limit" binding:"omitempty,min=1,max=100"`
	UnreadOnly bool `form:"unread"`
}

type NotificationResponse struct {
	ID           string `json:"id"`
	Type         string `json:"type"`
	Title        string `json:"title"`
	Message      string `json:"message"`
	EmployeeName string `json:"employee_name,omitempty"`
	Status       string `json:"status,omitempty"`
	Read         bool   `json:"read"`
	CreatedAt    string `json:"created_at"`
}
