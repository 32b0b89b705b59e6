package employee

type CreateEmployeeRequest struct {
	Name        string `json:"name" binding:"required,max=150"`
	Email       string `json:"email" binding:"required,email"`
	Phone       string `json:"phone" binding:"omitempty,max=30"`
	Position    string `json:"position" binding:"omitempty,max=100"`
	Department  string `json:"department" binding:"omitempty,max=100"`
	JoiningDate string `json:"joining_date" binding:"omitempty,datetime=2006-01-02"`
	Status      string `json:"status" binding:"omitempty,oneof=active on-leave terminated"`
	Profile     string `json:"profile"`
}

// UpdateEmployeeRequest is a partial update; nil fields are left alone.
type UpdateEmployeeRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=150"`
	Email       *string `json:"email" binding:"omitempty,email"`
	Phone       *string `json:"phone" binding:"omitempty,max=30"`
	Position    *string `json:"position" binding:"omitempty,max=100"`
	Department  *string `json:"department" binding:"omitempty,max=100"`
	JoiningDate *string `json:"joining_date" binding:"omitempty,datetime=2006-01-02"`
	Status      *string `json:"status" binding:"omitempty,oneof=active on-leave terminated"`
	Profile     *string `json:"profile"`
}

type ListEmployeesQuery struct {
	Q          string `form:"q"`
	Department string `form:"department"`
	Status     string `form:"status" binding:"omitempty,oneof=active on-leave terminated"`
	SortBy     string `form:"sort_by"`
	SortDir    string `form:"sort_dir"`
}

type EmployeeResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Position    string `json:"position"`
	Department  string `json:"department"`
	JoiningDate string `json:"joining_date,omitempty"`
	Status      string `json:"status"`
	Profile     string `json:"profile,omitempty"`
}

// EmployeeOption feeds the employee picker on the leave form.
type EmployeeOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
