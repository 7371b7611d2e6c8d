package contract

import "go-payroll/internal/payslip"

type CreateContractRequest struct {
	EmployeeID                string `json:"employee_id" binding:"required,uuid"`
	YearlySalary              string `json:"yearly_salary" binding:"required"`
	WithdrawAllowedPercentage *int   `json:"withdraw_allowed_percentage" binding:"required,min=0,max=100"`
}

type UpdateContractRequest struct {
	YearlySalary              *string `json:"yearly_salary"`
	WithdrawAllowedPercentage *int    `json:"withdraw_allowed_percentage" binding:"omitempty,min=0,max=100"`
}

type ContractResponse struct {
	ID                        string `json:"id"`
	EmployeeID                string `json:"employee_id"`
	CompanyID                 string `json:"company_id"`
	YearlySalary              string `json:"yearly_salary"`
	MonthlySalary             string `json:"monthly_salary"`
	WithdrawAllowedPercentage int    `json:"withdraw_allowed_percentage"`
	CreatedAt                 string `json:"created_at"`
}

type ContractDetailResponse struct {
	ContractResponse
	Payslips []payslip.PayslipResponse `json:"payslips"`
}
