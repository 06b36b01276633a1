package candidate

type CreateCandidateRequest struct {
	JobPostingID string `json:"job_posting_id" binding:"required,uuid"`
	Name         string `json:"name" binding:"required,max=150"`
	Email        string `json:"email" binding:"required,email,max=150"`
	Phone        string `json:"phone" binding:"omitempty,max=30"`
	ResumeURL    string `json:"resume_url" binding:"omitempty,url"`
	Notes        string `json:"notes"`
}

// UpdateCandidateRequest edits contact details only; stage and status move
// through advance, reject, hire and withdraw.
type UpdateCandidateRequest struct {
	Name      string `json:"name" binding:"required,max=150"`
	Email     string `json:"email" binding:"required,email,max=150"`
	Phone     string `json:"phone" binding:"omitempty,max=30"`
	ResumeURL string `json:"resume_url" binding:"omitempty,url"`
	Notes     string `json:"notes"`
}

type RejectCandidateRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

type ListFilter struct {
	JobPostingID string
	StageID      string
	Status       string
}

type CandidateResponse struct {
	ID              string  `json:"id"`
	JobPostingID    string  `json:"job_posting_id"`
	JobPostingCode  string  `json:"job_posting_code,omitempty"`
	JobPostingTitle string  `json:"job_posting_title,omitempty"`
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	Phone           string  `json:"phone"`
	CurrentStageID  string  `json:"current_stage_id,omitempty"`
	StageName       string  `json:"stage_name,omitempty"`
	Status          string  `json:"status"`
	ResumeURL       string  `json:"resume_url"`
	Notes           string  `json:"notes"`
	RejectionReason string  `json:"rejection_reason,omitempty"`
	AppliedAt       string  `json:"applied_at"`
	HiredAt         *string `json:"hired_at,omitempty"`
	RejectedAt      *string `json:"rejected_at,omitempty"`
}

// NewAttachment is an uploaded file waiting to be validated and stored.
type NewAttachment struct {
	AttachmentTypeID string
	FileName         string
	ContentType      string
	Content          []byte
}

type AttachmentResponse struct {
	ID                 string `json:"id"`
	CandidateID        string `json:"candidate_id"`
	AttachmentTypeID   string `json:"attachment_type_id"`
	AttachmentTypeName string `json:"attachment_type_name,omitempty"`
	FileName           string `json:"file_name"`
	ContentType        string `json:"content_type"`
	SizeBytes          int64  `json:"size_bytes"`
	FileURL            string `json:"file_url"`
	UploadedAt         string `json:"uploaded_at"`
}
