package events

import "time"

const WithdrawalCreatedTopic = "payroll.withdrawal.lifecycle.v1"

type WithdrawalCreatedEvent struct {
	EventType    string    `json:"event_type"`
	RequestID    string    `json:"request_id,omitempty"`
	WithdrawalID string    `json:"withdrawal_id"`
	PayslipID    string    `json:"payslip_id"`
	EmployeeID   string    `json:"employee_id"`
	Amount       string    `json:"amount"`
	OccurredAt   time.Time `json:"occurred_at"`
}
