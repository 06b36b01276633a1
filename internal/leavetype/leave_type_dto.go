package leavetype

type CreateLeaveTypeRequest struct {
	Code        string `json:"code" binding:"required,max=20"`
	Name        string `json:"name" binding:"required,max=100"`
	DefaultDays int    `json:"default_days" binding:"gte=0,lte=366"`
	IsPaid      *bool  `json:"is_paid"`
	IsActive    *bool  `json:"is_active"`
	Description string `json:"description"`
}

type UpdateLeaveTypeRequest = CreateLeaveTypeRequest

type LeaveTypeResponse struct {
	ID          string `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	DefaultDays int    `json:"default_days"`
	IsPaid      bool   `json:"is_paid"`
	IsActive    bool   `json:"is_active"`
	Description string `json:"description"`
}
