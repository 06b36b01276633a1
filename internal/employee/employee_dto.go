package employee

import "github.com/shopspring/decimal"

type CreateEmployeeRequest struct {
	Code          string          `json:"code" binding:"omitempty,max=20"`
	FullName      string          `json:"full_name" binding:"required,max=150"`
	Email         string          `json:"email" binding:"required,email"`
	Phone         string          `json:"phone" binding:"omitempty,max=30"`
	RoleID        string          `json:"role_id" binding:"omitempty,uuid"`
	DepartmentID  string          `json:"department_id" binding:"omitempty,uuid"`
	DesignationID string          `json:"designation_id" binding:"omitempty,uuid"`
	ShiftID       string          `json:"shift_id" binding:"omitempty,uuid"`
	JoiningDate   string          `json:"joining_date" binding:"required"`
	BasicSalary   decimal.Decimal `json:"basic_salary"`
	Status        string          `json:"status"`
}

type UpdateEmployeeRequest = CreateEmployeeRequest

type ListFilter struct {
	DepartmentID  string
	DesignationID string
	Status        string
}

type EmployeeResponse struct {
	ID              string          `json:"id"`
	Code            string          `json:"code"`
	FullName        string          `json:"full_name"`
	Email           string          `json:"email"`
	Phone           string          `json:"phone"`
	RoleID          string          `json:"role_id,omitempty"`
	RoleName        string          `json:"role_name,omitempty"`
	DepartmentID    string          `json:"department_id,omitempty"`
	DepartmentName  string          `json:"department_name,omitempty"`
	DesignationID   string          `json:"designation_id,omitempty"`
	DesignationName string          `json:"designation_name,omitempty"`
	ShiftID         string          `json:"shift_id,omitempty"`
	JoiningDate     string          `json:"joining_date"`
	BasicSalary     decimal.Decimal `json:"basic_salary"`
	Status          string          `json:"status"`
}

type EmployeeOption struct {
	ID       string `json:"id"`
	Code     string `json:"code"`
	FullName string `json:"full_name"`
}
