package domain

// Shared between middleware and rbac so neither has to import the other.

type EnforceRequest struct {
	EmployeeID string `json:"employee_id" binding:"required"`
	Module     string `json:"module" binding:"required"`
	Action     string `json:"action" binding:"required"`
}

type EnforceResponse struct {
	Allowed bool `json:"allowed"`
}

type RoleResponse struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Permissions []PermissionResponse `json:"permissions"`
}

type CreateRoleRequest struct {
	Name          string   `json:"name" binding:"required,max=100"`
	Description   string   `json:"description"`
	PermissionIDs []string `json:"permission_ids" binding:"omitempty,dive,uuid"`
}

type UpdateRoleRequest struct {
	Name          string   `json:"name" binding:"required,max=100"`
	Description   string   `json:"description"`
	PermissionIDs []string `json:"permission_ids" binding:"omitempty,dive,uuid"`
}

type UpdateRolePermissionsRequest struct {
	PermissionIDs []string `json:"permission_ids" binding:"required,dive,uuid"`
}

type PermissionResponse struct {
	ID     string `json:"id"`
	Module string `json:"module"`
	Action string `json:"action"`
	Label  string `json:"label"`
}
