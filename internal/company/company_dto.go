package company

type CreateCompanyRequest struct {
	Name        string  `json:"name" binding:"required"`
	Location    *string `json:"location"`
	PhoneNumber *string `json:"phone_number"`
	Email       *string `json:"email" binding:"omitempty,email"`
	Website     *string `json:"website" binding:"omitempty,url"`
	Description *string `json:"description"`
}

type UpdateCompanyRequest struct {
	Name        *string `json:"name"`
	Location    *string `json:"location"`
	PhoneNumber *string `json:"phone_number"`
	Email       *string `json:"email" binding:"omitempty,email"`
	Website     *string `json:"website" binding:"omitempty,url"`
	Description *string `json:"description"`
}

type CompanyResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Location    *string `json:"location,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
	Email       *string `json:"email,omitempty"`
	Website     *string `json:"website,omitempty"`
	Description *string `json:"description,omitempty"`
	IsActive    bool    `json:"is_active"`
	DeletedAt   *string `json:"deleted_at,omitempty"`
}
