package events

import "time"

const (
	EmployeeLifecycleTopic = "hrms.employee.lifecycle.v1"
	EmployeeCreated        = "employee_created"
)

type EmployeeCreatedEvent struct {
	EventType    string    `json:"event_type"`
	RequestID    string    `json:"request_id,omitempty"`
	EmployeeID   string    `json:"employee_id"`
	EmployeeCode string    `json:"employee_code"`
	JoiningDate  string    `json:"joining_date"`
	OccurredAt   time.Time `json:"occurred_at"`
}
