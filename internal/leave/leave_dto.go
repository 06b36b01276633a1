package leave

type CreateLeaveRequest struct {
	EmployeeID  string `json:"employee_id" binding:"required,uuid"`
	LeaveTypeID string `json:"leave_type_id" binding:"required,uuid"`
	StartDate   string `json:"start_date" binding:"required"`
	EndDate     string `json:"end_date" binding:"required"`
	Reason      string `json:"reason" binding:"max=1000"`
}

type UpdateLeaveRequest = CreateLeaveRequest

type ApproveLeaveRequest struct {
	Remarks string `json:"remarks" binding:"max=500"`
}

type RejectLeaveRequest struct {
	RejectionReason string `json:"rejection_reason" binding:"required,max=500"`
}

type ListFilter struct {
	EmployeeID  string
	LeaveTypeID string
	Status      string
	From        string
	To          string
}

type LeaveStats struct {
	Pending   int64 `json:"pending"`
	Approved  int64 `json:"approved"`
	Rejected  int64 `json:"rejected"`
	Cancelled int64 `json:"cancelled"`
}

type LeaveResponse struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	EmployeeName    string  `json:"employee_name,omitempty"`
	LeaveTypeID     string  `json:"leave_type_id"`
	LeaveTypeName   string  `json:"leave_type_name,omitempty"`
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	TotalDays       int     `json:"total_days"`
	Reason          string  `json:"reason"`
	Status          string  `json:"status"`
	WorkflowID      *string `json:"workflow_id,omitempty"`
	CurrentStep     int     `json:"current_step"`
	ApprovedBy      *string `json:"approved_by,omitempty"`
	ApprovedAt      *string `json:"approved_at,omitempty"`
	RejectedBy      *string `json:"rejected_by,omitempty"`
	RejectedAt      *string `json:"rejected_at,omitempty"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
	CancelledAt     *string `json:"cancelled_at,omitempty"`
}

type ApprovalLogResponse struct {
	StepOrder  int    `json:"step_order"`
	ApproverID string `json:"approver_id"`
	Action     string `json:"action"`
	Remarks    string `json:"remarks"`
	ActedAt    string `json:"acted_at"`
}

type CreateBalanceRequest struct {
	EmployeeID  string `json:"employee_id" binding:"required,uuid"`
	LeaveTypeID string `json:"leave_type_id" binding:"required,uuid"`
	Year        int    `json:"year" binding:"required,gte=2000,lte=2100"`
	Allocated   int    `json:"allocated" binding:"gte=0"`
}

type UpdateBalanceRequest struct {
	Allocated int `json:"allocated" binding:"gte=0"`
}

type AllocateRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	Year       int    `json:"year" binding:"required,gte=2000,lte=2100"`
}

type BalanceFilter struct {
	EmployeeID  string
	LeaveTypeID string
	Year        int
}

type LeaveBalanceResponse struct {
	ID            string `json:"id"`
	EmployeeID    string `json:"employee_id"`
	EmployeeName  string `json:"employee_name,omitempty"`
	LeaveTypeID   string `json:"leave_type_id"`
	LeaveTypeName string `json:"leave_type_name,omitempty"`
	Year          int    `json:"year"`
	Allocated     int    `json:"allocated"`
	Used          int    `json:"used"`
	Remaining     int    `json:"remaining"`
}
