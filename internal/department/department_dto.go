package department

type CreateDepartmentRequest struct {
	Code        string `json:"code" binding:"required,max=30"`
	Name        string `json:"name" binding:"required,max=150"`
	Description string `json:"description"`
	IsActive    *bool  `json:"is_active"`
}

type UpdateDepartmentRequest struct {
	Code        string `json:"code" binding:"required,max=30"`
	Name        string `json:"name" binding:"required,max=150"`
	Description string `json:"description"`
	IsActive    *bool  `json:"is_active"`
}

type DepartmentResponse struct {
	ID          string `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IsActive    bool   `json:"is_active"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type DepartmentOption struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}
