package shift

type CreateShiftRequest struct {
	Name         string `json:"name" binding:"required,max=100"`
	StartTime    string `json:"start_time" binding:"required"`
	EndTime      string `json:"end_time" binding:"required"`
	GraceMinutes int    `json:"grace_minutes" binding:"gte=0,lte=240"`
	Description  string `json:"description"`
	IsActive     *bool  `json:"is_active"`
}

type UpdateShiftRequest = CreateShiftRequest

type ShiftResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	GraceMinutes int    `json:"grace_minutes"`
	Overnight    bool   `json:"overnight"`
	Description  string `json:"description"`
	IsActive     bool   `json:"is_active"`
}
