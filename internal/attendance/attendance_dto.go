package attendance

type CreateAttendanceRequest struct {
	EmployeeID string `json:"employee_id" binding:"omitempty,uuid"`
	Name       string `json:"name" binding:"required"`
	Position   string `json:"position" binding:"max=100"`
	Department string `json:"department" binding:"max=100"`
	Task       string `json:"task"`
	Status     string `json:"status" binding:"omitempty,oneof=Present Absent"`
	Profile    string `json:"profile"`
	Date       string `json:"date"`
}

// UpdateAttendanceRequest applies only the fields that are set.
type UpdateAttendanceRequest struct {
	Name       *string `json:"name" binding:"omitempty,min=1"`
	Position   *string `json:"position" binding:"omitempty,max=100"`
	Department *string `json:"department" binding:"omitempty,max=100"`
	Task       *string `json:"task"`
	Status     *string `json:"status" binding:"omitempty,oneof=Present Absent"`
	Profile    *string `json:"profile"`
	Date       *string `json:"date"`
}

type UpdateAttendanceStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type ListAttendancesQuery struct {
	Status string `form:"status"`
	Q      string `form:"q"`
}

type AttendanceResponse struct {
	ID         string  `json:"id"`
	EmployeeID *string `json:"employee_id,omitempty"`
	Name       string  `json:"name"`
	Position   string  `json:"position"`
	Department string  `json:"department"`
	Task       string  `json:"task"`
	Status     Status  `json:"status"`
	Profile    string  `json:"profile,omitempty"`
	Date       string  `json:"date,omitempty"`
	CreatedAt  string  `json:"created_at"`
	UpdatedAt  string  `json:"updated_at"`
}
