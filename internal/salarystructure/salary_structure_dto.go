package salarystructure

import "github.com/shopspring/decimal"

type ItemRequest struct {
	Name     string          `json:"name" binding:"required,max=100"`
	Category string          `json:"category" binding:"required,oneof=Earnings Deductions"`
	Amount   decimal.Decimal `json:"amount"`
}

type CreateStructureRequest struct {
	EmployeeID  string        `json:"employee_id" binding:"required,uuid"`
	Name        string        `json:"name" binding:"required,max=100"`
	StartDate   string        `json:"start_date" binding:"required"`
	EndDate     *string       `json:"end_date"`
	Description string        `json:"description"`
	Items       []ItemRequest `json:"items" binding:"required,min=1,dive"`
}

type UpdateStructureRequest = CreateStructureRequest

type ListFilter struct {
	EmployeeID string
	// Date narrows the list to versions in force on that day.
	Date string
}

type ItemResponse struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

type StructureResponse struct {
	ID              string          `json:"id"`
	EmployeeID      string          `json:"employee_id"`
	EmployeeName    string          `json:"employee_name,omitempty"`
	EmployeeCode    string          `json:"employee_code,omitempty"`
	Name            string          `json:"name"`
	StartDate       string          `json:"start_date"`
	EndDate         *string         `json:"end_date"`
	Description     string          `json:"description,omitempty"`
	Items           []ItemResponse  `json:"items"`
	TotalEarnings   decimal.Decimal `json:"total_earnings"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	NetSalary       decimal.Decimal `json:"net_salary"`
}
