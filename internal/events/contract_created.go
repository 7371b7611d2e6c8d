package events

import "time"

const ContractCreatedTopic = "payroll.contract.lifecycle.v1"

type ContractCreatedEvent struct {
	EventType    string    `json:"event_type"`
	RequestID    string    `json:"request_id,omitempty"`
	ContractID   string    `json:"contract_id"`
	EmployeeID   string    `json:"employee_id"`
	CompanyID    string    `json:"company_id"`
	Year         int       `json:"year"`
	YearlySalary string    `json:"yearly_salary"`
	OccurredAt   time.Time `json:"occurred_at"`
}
