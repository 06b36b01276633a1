package events

import "time"

const (
	PayrollTopic     = "hrms.payroll.v1"
	PayrollProcessed = "payroll_processed"
)

// PayrollProcessedEvent asks the consumer to render payslips for every slip
// of the run.
type PayrollProcessedEvent struct {
	EventType   string    `json:"event_type"`
	RequestID   string    `json:"request_id,omitempty"`
	PayrollID   string    `json:"payroll_id"`
	Month       int       `json:"month"`
	Year        int       `json:"year"`
	SlipCount   int       `json:"slip_count"`
	ProcessedBy string    `json:"processed_by,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}
