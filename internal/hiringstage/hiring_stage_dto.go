package hiringstage

type CreateHiringStageRequest struct {
	Code        string `json:"code" binding:"required,max=30"`
	Name        string `json:"name" binding:"required,max=100"`
	Sequence    int    `json:"sequence" binding:"required,gte=1"`
	Description string `json:"description"`
	IsActive    *bool  `json:"is_active"`
}

type UpdateHiringStageRequest = CreateHiringStageRequest

type HiringStageResponse struct {
	ID          string `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Sequence    int    `json:"sequence"`
	Description string `json:"description"`
	IsActive    bool   `json:"is_active"`
}
