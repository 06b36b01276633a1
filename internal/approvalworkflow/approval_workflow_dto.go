package approvalworkflow

type WorkflowStepRequest struct {
	StepOrder          int    `json:"step_order" binding:"required,gte=1"`
	Name               string `json:"name" binding:"required,max=100"`
	ApproverRoleID     string `json:"approver_role_id" binding:"omitempty,uuid"`
	ApproverEmployeeID string `json:"approver_employee_id" binding:"omitempty,uuid"`
}

type CreateWorkflowRequest struct {
	Name        string                `json:"name" binding:"required,max=100"`
	Module      string                `json:"module" binding:"required"`
	Description string                `json:"description"`
	IsActive    *bool                 `json:"is_active"`
	Steps       []WorkflowStepRequest `json:"steps" binding:"required,min=1,dive"`
}

type UpdateWorkflowRequest = CreateWorkflowRequest

type WorkflowStepResponse struct {
	ID                 string `json:"id"`
	StepOrder          int    `json:"step_order"`
	Name               string `json:"name"`
	ApproverRoleID     string `json:"approver_role_id,omitempty"`
	ApproverEmployeeID string `json:"approver_employee_id,omitempty"`
}

type WorkflowResponse struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	Module      string                 `json:"module"`
	Description string                 `json:"description"`
	IsActive    bool                   `json:"is_active"`
	Steps       []WorkflowStepResponse `json:"steps"`
}
