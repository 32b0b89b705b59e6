package user

type UpdateUserRequest struct {
	Name *string `json:"name" binding:"omitempty,min=1,max=255"`
	Role *string `json:"role" binding:"omitempty,min=1,max=50"`
}

type UserResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}
