package attendance

type ClockInRequest struct {
	Latitude  *float64 `json:"latitude" binding:"omitempty,latitude"`
	Longitude *float64 `json:"longitude" binding:"omitempty,longitude"`
	Notes     *string  `json:"notes"`
}

type ClockOutRequest struct {
	Latitude  *float64 `json:"latitude" binding:"omitempty,latitude"`
	Longitude *float64 `json:"longitude" binding:"omitempty,longitude"`
	Notes     *string  `json:"notes"`
}

// CreateAttendanceRequest is the admin form. Clock values are HH:MM on
// attendance_date; a clock_out earlier than clock_in falls on the next day.
type CreateAttendanceRequest struct {
	EmployeeID     string  `json:"employee_id" binding:"required,uuid"`
	AttendanceDate string  `json:"attendance_date" binding:"required"`
	ClockIn        string  `json:"clock_in"`
	ClockOut       string  `json:"clock_out"`
	Status         string  `json:"status"`
	Notes          *string `json:"notes"`
}

type UpdateAttendanceRequest struct {
	ClockIn  string  `json:"clock_in"`
	ClockOut string  `json:"clock_out"`
	Status   string  `json:"status"`
	Notes    *string `json:"notes"`
}

type ListFilter struct {
	EmployeeID string
	Status     string
	From       string
	To         string
}

type AttendanceResponse struct {
	ID             string   `json:"id"`
	EmployeeID     string   `json:"employee_id"`
	EmployeeName   string   `json:"employee_name,omitempty"`
	AttendanceDate string   `json:"attendance_date"`
	ClockIn        *string  `json:"clock_in,omitempty"`
	ClockOut       *string  `json:"clock_out,omitempty"`
	WorkedMinutes  int      `json:"worked_minutes"`
	Latitude       *float64 `json:"latitude,omitempty"`
	Longitude      *float64 `json:"longitude,omitempty"`
	Status         string   `json:"status"`
	Source         string   `json:"source"`
	Notes          *string  `json:"notes,omitempty"`
}
