package designation

type CreateDesignationRequest struct {
	Code         string `json:"code" binding:"required,max=30"`
	Name         string `json:"name" binding:"required,max=150"`
	DepartmentID string `json:"department_id" binding:"omitempty,uuid"`
	Description  string `json:"description"`
	IsActive     *bool  `json:"is_active"`
}

type UpdateDesignationRequest = CreateDesignationRequest

type DesignationResponse struct {
	ID             string `json:"id"`
	Code           string `json:"code"`
	Name           string `json:"name"`
	DepartmentID   string `json:"department_id,omitempty"`
	DepartmentName string `json:"department_name,omitempty"`
	Description    string `json:"description"`
	IsActive       bool   `json:"is_active"`
}

type ListFilter struct {
	DepartmentID string
}
