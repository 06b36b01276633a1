package attendance

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	attendanceerrors "go-hrms/internal/attendance/errors"
	"go-hrms/internal/shared/response"
	"go-hrms/internal/shift"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

type Service interface {
	ClockIn(ctx context.Context, employeeID string, req ClockInRequest) (AttendanceResponse, error)
	ClockOut(ctx context.Context, employeeID string, req ClockOutRequest) (AttendanceResponse, error)
	Create(ctx context.Context, req CreateAttendanceRequest) (AttendanceResponse, error)
	GetAll(ctx context.Context, q response.PageQuery, f ListFilter) ([]AttendanceResponse, int64, error)
	GetByID(ctx context.Context, id string) (AttendanceResponse, error)
	Update(ctx context.Context, id string, req UpdateAttendanceRequest) (AttendanceResponse, error)
	Delete(ctx context.Context, id string) error
}

// ShiftFinder is the part of the shift repository attendance needs.
type ShiftFinder interface {
	FindByID(ctx context.Context, id string) (*shift.Shift, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	shifts ShiftFinder
	loc    *time.Location
	now    func() time.Time
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, shifts ShiftFinder, loc *time.Location, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	if loc == nil {
		loc = time.UTC
	}
	return &service{db: db, repo: repo, shifts: shifts, loc: loc, now: time.Now, logger: l}
}

func (s *service) ClockIn(ctx context.Context, employeeID string, req ClockInRequest) (AttendanceResponse, error) {
	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidActorID
	}

	now := s.now().In(s.loc)
	sh, err := s.employeeShift(ctx, employeeID)
	if err != nil {
		return AttendanceResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	today := dateOnly(now)

	_, err = qtx.FindByEmployeeAndDate(ctx, employeeID, today)
	if err == nil {
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyClockedIn
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return AttendanceResponse{}, err
	}

	clockIn := now.UTC()
	row := &Attendance{
		ID:             uuid.New(),
		EmployeeID:     employeeUUID,
		AttendanceDate: today,
		ClockIn:        &clockIn,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		Status:         s.arrivalStatus(sh, now),
		Source:         SourceSelf,
		Notes:          req.Notes,
	}

	if err := qtx.Create(ctx, row); err != nil {
		return AttendanceResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}

	s.logger.Info("clock in recorded",
		zap.String("employee_id", employeeID),
		zap.String("status", row.Status),
	)
	return mapToResponse(*row, s.loc), nil
}

func (s *service) ClockOut(ctx context.Context, employeeID string, req ClockOutRequest) (AttendanceResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidActorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := s.now().In(s.loc)
	today := dateOnly(now)

	row, err := qtx.FindByEmployeeAndDate(ctx, employeeID, today)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// overnight shifts clock out on the day after they started
		row, err = qtx.FindByEmployeeAndDate(ctx, employeeID, today.AddDate(0, 0, -1))
		if err == nil && row.ClockOut != nil {
			err = gorm.ErrRecordNotFound
		}
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, attendanceerrors.ErrNotClockedIn
		}
		return AttendanceResponse{}, err
	}
	if row.ClockIn == nil {
		return AttendanceResponse{}, attendanceerrors.ErrNotClockedIn
	}
	if row.ClockOut != nil {
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyClockedOut
	}

	clockOut := now.UTC()
	row.ClockOut = &clockOut
	row.WorkedMinutes = workedMinutes(row.ClockIn, row.ClockOut)
	if req.Latitude != nil {
		row.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		row.Longitude = req.Longitude
	}
	if req.Notes != nil {
		row.Notes = req.Notes
	}

	if err := qtx.Update(ctx, row); err != nil {
		return AttendanceResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}
	return mapToResponse(*row, s.loc), nil
}

func (s *service) Create(ctx context.Context, req CreateAttendanceRequest) (AttendanceResponse, error) {
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrEmployeeNotFound
	}
	day, err := time.ParseInLocation(dateLayout, strings.TrimSpace(req.AttendanceDate), s.loc)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidDate
	}

	sh, err := s.employeeShift(ctx, req.EmployeeID)
	if err != nil {
		return AttendanceResponse{}, err
	}

	row := &Attendance{
		ID:             uuid.New(),
		EmployeeID:     employeeUUID,
		AttendanceDate: dateOnly(day),
		Source:         SourceManual,
		Notes:          req.Notes,
	}
	if err := s.applyTimes(row, day, sh, req.ClockIn, req.ClockOut, req.Status); err != nil {
		return AttendanceResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	_, err = qtx.FindByEmployeeAndDate(ctx, req.EmployeeID, row.AttendanceDate)
	if err == nil {
		return AttendanceResponse{}, attendanceerrors.ErrAttendanceExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return AttendanceResponse{}, err
	}

	if err := qtx.Create(ctx, row); err != nil {
		return AttendanceResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}
	return mapToResponse(*row, s.loc), nil
}

func (s *service) GetAll(ctx context.Context, q response.PageQuery, f ListFilter) ([]AttendanceResponse, int64, error) {
	f.Status = strings.ToUpper(f.Status)
	rows, total, err := s.repo.FindAll(ctx, q, f)
	if err != nil {
		return nil, 0, err
	}
	res := make([]AttendanceResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r, s.loc)
	}
	return res, total, nil
}

func (s *service) GetByID(ctx context.Context, id string) (AttendanceResponse, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return AttendanceResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*row, s.loc), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateAttendanceRequest) (AttendanceResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	row, err := qtx.FindByID(ctx, id)
	if err != nil {
		return AttendanceResponse{}, mapRepositoryError(err)
	}

	sh, err := s.employeeShift(ctx, row.EmployeeID.String())
	if err != nil && !errors.Is(err, attendanceerrors.ErrEmployeeNotFound) {
		return AttendanceResponse{}, err
	}

	y, m, d := row.AttendanceDate.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, s.loc)
	clockIn, clockOut := req.ClockIn, req.ClockOut
	if clockIn == "" && row.ClockIn != nil {
		clockIn = row.ClockIn.In(s.loc).Format(shift.ClockLayout)
	}
	if clockOut == "" && row.ClockOut != nil {
		clockOut = row.ClockOut.In(s.loc).Format(shift.ClockLayout)
	}
	if err := s.applyTimes(row, day, sh, clockIn, clockOut, req.Status); err != nil {
		return AttendanceResponse{}, err
	}
	if req.Notes != nil {
		row.Notes = req.Notes
	}

	if err := qtx.Update(ctx, row); err != nil {
		return AttendanceResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}
	return mapToResponse(*row, s.loc), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}
	return tx.Commit()
}

// employeeShift returns nil when the employee has no shift, or when the
// assigned shift no longer exists.
func (s *service) employeeShift(ctx context.Context, employeeID string) (*shift.Shift, error) {
	shiftID, err := s.repo.FindEmployeeShift(ctx, employeeID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, attendanceerrors.ErrEmployeeNotFound
	}
	if err != nil {
		return nil, err
	}
	if shiftID == "" || s.shifts == nil {
		return nil, nil
	}
	sh, err := s.shifts.FindByID(ctx, shiftID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return sh, err
}

func (s *service) arrivalStatus(sh *shift.Shift, at time.Time) string {
	if sh == nil {
		return StatusPresent
	}
	lateAfter, err := sh.LateAfter(at)
	if err != nil {
		s.logger.Warn("shift start unreadable", zap.String("shift_id", sh.ID.String()), zap.Error(err))
		return StatusPresent
	}
	if at.After(lateAfter) {
		return StatusLate
	}
	return StatusPresent
}

func (s *service) applyTimes(row *Attendance, day time.Time, sh *shift.Shift, clockIn, clockOut, status string) error {
	in, err := clockOn(day, clockIn)
	if err != nil {
		return err
	}
	out, err := clockOn(day, clockOut)
	if err != nil {
		return err
	}
	if in != nil && out != nil && out.Before(*in) {
		next := out.AddDate(0, 0, 1)
		out = &next
	}

	row.ClockIn = toUTC(in)
	row.ClockOut = toUTC(out)
	row.WorkedMinutes = workedMinutes(in, out)

	status = strings.ToUpper(strings.TrimSpace(status))
	switch {
	case status != "":
		if !IsValidStatus(status) {
			return attendanceerrors.ErrInvalidStatus
		}
		row.Status = status
	case in != nil:
		row.Status = s.arrivalStatus(sh, *in)
	default:
		row.Status = StatusAbsent
	}
	return nil
}

func clockOn(day time.Time, v string) (*time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	clock, err := shift.ParseClock(v)
	if err != nil {
		return nil, attendanceerrors.ErrInvalidClock
	}
	hm, _ := time.Parse(shift.ClockLayout, clock)
	t := time.Date(day.Year(), day.Month(), day.Day(), hm.Hour(), hm.Minute(), 0, 0, day.Location())
	return &t, nil
}

func toUTC(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}

// dateOnly keeps the calendar date of t and drops its clock and zone.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mapRepositoryError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return attendanceerrors.ErrAttendanceNotFound
	}
	if strings.Contains(strings.ToLower(err.Error()), "uq_attendances_employee_date") ||
		(strings.Contains(strings.ToLower(err.Error()), "unique") && strings.Contains(err.Error(), "attendances.")) {
		return attendanceerrors.ErrAttendanceExists
	}
	return err
}

func mapToResponse(a Attendance, loc *time.Location) AttendanceResponse {
	resp := AttendanceResponse{
		ID:             a.ID.String(),
		EmployeeID:     a.EmployeeID.String(),
		EmployeeName:   a.EmployeeName,
		AttendanceDate: a.AttendanceDate.Format(dateLayout),
		WorkedMinutes:  a.WorkedMinutes,
		Latitude:       a.Latitude,
		Longitude:      a.Longitude,
		Status:         a.Status,
		Source:         a.Source,
		Notes:          a.Notes,
	}
	if a.ClockIn != nil {
		v := a.ClockIn.In(loc).Format(time.RFC3339)
		resp.ClockIn = &v
	}
	if a.ClockOut != nil {
		v := a.ClockOut.In(loc).Format(time.RFC3339)
		resp.ClockOut = &v
	}
	return resp
}
