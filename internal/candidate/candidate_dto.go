package candidate

type CreateCandidateRequest struct {
	Name        string `json:"name" binding:"required,max=150"`
	Email       string `json:"email" binding:"required,email"`
	Phone       string `json:"phone" binding:"omitempty,max=30"`
	Position    string `json:"position" binding:"omitempty,max=100"`
	Status      string `json:"status" binding:"omitempty,oneof=Pending Screening Interview Selected Rejected Hired"`
	Resume      string `json:"resume" binding:"omitempty,max=255"`
	AppliedDate string `json:"applied_date" binding:"omitempty,datetime=2006-01-02"`
}

type UpdateCandidateRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=150"`
	Email       *string `json:"email" binding:"omitempty,email"`
	Phone       *string `json:"phone" binding:"omitempty,max=30"`
	Position    *string `json:"position" binding:"omitempty,max=100"`
	Status      *string `json:"status" binding:"omitempty,oneof=Pending Screening Interview Selected Rejected Hired"`
	Resume      *string `json:"resume" binding:"omitempty,max=255"`
	AppliedDate *string `json:"applied_date" binding:"omitempty,datetime=2006-01-02"`
}

type ListCandidatesQuery struct {
	Name   string `form:"name"`
	Email  string `form:"email"`
	Status string `form:"status" binding:"omitempty,oneof=Pending Screening Interview Selected Rejected Hired"`
}

type CandidateResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Position    string `json:"position"`
	Status      string `json:"status"`
	Resume      string `json:"resume,omitempty"`
	AppliedDate string `json:"applied_date,omitempty"`
}
