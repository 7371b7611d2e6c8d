package payslip

type AppendAdjustmentRequest struct {
	Type   string `json:"type" binding:"required,oneof=addition deduction"`
	Amount string `json:"amount" binding:"required"`
	Reason string `json:"reason" binding:"required,max=255"`
}

type AdjustmentResponse struct {
	ID        string `json:"id"`
	PayslipID string `json:"payslip_id"`
	Type      string `json:"type"`
	Amount    string `json:"amount"`
	Reason    string `json:"reason"`
	CreatedAt string `json:"created_at"`
}

type PayslipResponse struct {
	ID                string `json:"id"`
	ContractID        string `json:"contract_id"`
	Month             int    `json:"month"`
	Year              int    `json:"year"`
	BaseMonthlySalary string `json:"base_monthly_salary"`
	TotalAdditions    string `json:"total_additions"`
	TotalDeductions   string `json:"total_deductions"`
	FinalSalary       string `json:"final_salary"`
}

type PayslipDetailResponse struct {
	PayslipResponse
	Adjustments []AdjustmentResponse `json:"adjustments"`
}
