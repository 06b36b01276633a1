package jobposting

type CreateJobPostingRequest struct {
	Code           string  `json:"code" binding:"omitempty,max=30"`
	Title          string  `json:"title" binding:"required,max=150"`
	DepartmentID   string  `json:"department_id" binding:"omitempty,uuid"`
	DesignationID  string  `json:"designation_id" binding:"omitempty,uuid"`
	Description    string  `json:"description"`
	Requirements   string  `json:"requirements"`
	Location       string  `json:"location" binding:"omitempty,max=150"`
	EmploymentType string  `json:"employment_type" binding:"omitempty,oneof=FULL_TIME PART_TIME CONTRACT INTERNSHIP"`
	Vacancies      int     `json:"vacancies" binding:"omitempty,min=1"`
	Status         string  `json:"status" binding:"omitempty,oneof=DRAFT OPEN CLOSED"`
	PostedDate     *string `json:"posted_date"`
	ClosingDate    *string `json:"closing_date"`
}

type UpdateJobPostingRequest = CreateJobPostingRequest

type ListFilter struct {
	Status       string
	DepartmentID string
}

type JobPostingStats struct {
	Draft  int64 `json:"draft"`
	Open   int64 `json:"open"`
	Closed int64 `json:"closed"`
}

type JobPostingResponse struct {
	ID              string  `json:"id"`
	Code            string  `json:"code"`
	Title           string  `json:"title"`
	DepartmentID    string  `json:"department_id,omitempty"`
	DepartmentName  string  `json:"department_name,omitempty"`
	DesignationID   string  `json:"designation_id,omitempty"`
	DesignationName string  `json:"designation_name,omitempty"`
	Description     string  `json:"description"`
	Requirements    string  `json:"requirements"`
	Location        string  `json:"location"`
	EmploymentType  string  `json:"employment_type"`
	Vacancies       int     `json:"vacancies"`
	Status          string  `json:"status"`
	PostedDate      *string `json:"posted_date,omitempty"`
	ClosingDate     *string `json:"closing_date,omitempty"`
	CandidateCount  int64   `json:"candidate_count"`
}
