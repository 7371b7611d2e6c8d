package withdrawal

type RequestWithdrawalRequest struct {
	Amount string `json:"amount" binding:"required"`
}

type WithdrawalResponse struct {
	ID         string `json:"id"`
	PayslipID  string `json:"payslip_id"`
	EmployeeID string `json:"employee_id,omitempty"`
	Amount     string `json:"amount"`
	Date       string `json:"date"`
	Month      int    `json:"month,omitempty"`
	Year       int    `json:"year,omitempty"`
}

// BudgetDetails rides on the error payload when a request is rejected so
// the caller knows how much headroom is left without a second call.
type BudgetDetails struct {
	Allowed   string `json:"allowed"`
	Withdrawn string `json:"withdrawn"`
	Remaining string `json:"remaining"`
}

type SummaryResponse struct {
	PayslipID                 string `json:"payslip_id"`
	Month                     int    `json:"month"`
	Year                      int    `json:"year"`
	BaseMonthlySalary         string `json:"base_monthly_salary"`
	WithdrawAllowedPercentage int    `json:"withdraw_allowed_percentage"`
	Budget                    string `json:"budget"`
	Withdrawn                 string `json:"withdrawn"`
	Remaining                 string `json:"remaining"`
	WithdrawnPercentage       string `json:"withdrawn_percentage"`
	RemainingPercentage       string `json:"remaining_percentage"`
}
