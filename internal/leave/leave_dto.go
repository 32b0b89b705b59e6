package leave

// CreateLeaveRequest is validated in the service after trimming, so the
// binding tags only cover shape.
type CreateLeaveRequest struct {
	EmployeeID   string  `json:"employee_id" binding:"omitempty,uuid"`
	EmployeeName string  `json:"employee_name"`
	Designation  string  `json:"designation"`
	Date         string  `json:"date"`
	Reason       string  `json:"reason"`
	Document     *string `json:"document"`
	Profile      string  `json:"profile"`
}

type UpdateLeaveStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type ListLeavesQuery struct {
	Status string `form:"status"`
	Q      string `form:"q"`
}

type LeaveResponse struct {
	ID           string  `json:"id"`
	EmployeeID   *string `json:"employee_id,omitempty"`
	EmployeeName string  `json:"employee_name"`
	Position     string  `json:"position"`
	Department   string  `json:"department"`
	Date         string  `json:"date"`
	Reason       string  `json:"reason"`
	Status       Status  `json:"status"`
	Document     *string `json:"document,omitempty"`
	Profile      string  `json:"profile,omitempty"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}
