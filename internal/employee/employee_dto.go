package employee

type ApplyEmploymentRequest struct {
	CompanyID     string  `json:"company_id" binding:"required,uuid"`
	SubmittedCode *string `json:"submitted_code"`
}

type EmployeeResponse struct {
	ID           string  `json:"id"`
	CompanyID    *string `json:"company_id,omitempty"`
	FullName     string  `json:"full_name"`
	PhoneNumber  *string `json:"phone_number,omitempty"`
	EmployeeCode *string `json:"employee_code,omitempty"`
	IsActive     bool    `json:"is_active"`
}

type EmploymentRequestResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	EmployeeName  string  `json:"employee_name,omitempty"`
	CompanyID     string  `json:"company_id"`
	SubmittedCode *string `json:"submitted_code,omitempty"`
	Status        string  `json:"status"`
	ProcessedBy   *string `json:"processed_by,omitempty"`
	CreatedAt     string  `json:"created_at"`
}
