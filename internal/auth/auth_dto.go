package auth

type RegisterRequest struct {
	Email       string  `json:"email" binding:"required,email"`
	Password    string  `json:"password" binding:"required,min=8"`
	Role        string  `json:"role" binding:"required,oneof=company employee"`
	FullName    string  `json:"full_name" binding:"required"`
	PhoneNumber *string `json:"phone_number" binding:"omitempty,min=8,max=20"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	ID         string  `json:"id"`
	Email      string  `json:"email"`
	Role       string  `json:"role"`
	FullName   string  `json:"full_name,omitempty"`
	CompanyID  *string `json:"company_id,omitempty"`
	EmployeeID *string `json:"employee_id,omitempty"`
}
