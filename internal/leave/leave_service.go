package leave

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"go-hrms/internal/approvalworkflow"
	leaveerrors "go-hrms/internal/leave/errors"
	"go-hrms/internal/leavetype"
	"go-hrms/internal/shared/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

type Service interface {
	Create(ctx context.Context, actorID string, req CreateLeaveRequest) (LeaveResponse, error)
	GetAll(ctx context.Context, q response.PageQuery, f ListFilter) ([]LeaveResponse, int64, LeaveStats, error)
	GetByID(ctx context.Context, id string) (LeaveResponse, error)
	GetApprovals(ctx context.Context, id string) ([]ApprovalLogResponse, error)
	Update(ctx context.Context, id string, req UpdateLeaveRequest) (LeaveResponse, error)
	Approve(ctx context.Context, actorID, id, remarks string) (LeaveResponse, error)
	Reject(ctx context.Context, actorID, id, rejectionReason string) (LeaveResponse, error)
	Cancel(ctx context.Context, actorID, id string) (LeaveResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db         *sql.DB
	repo       Repository
	leaveTypes leavetype.Repository
	workflows  approvalworkflow.Repository
	logger     *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	leaveTypes leavetype.Repository,
	workflows approvalworkflow.Repository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:         db,
		repo:       repo,
		leaveTypes: leaveTypes,
		workflows:  workflows,
		logger:     l,
	}
}

func (s *service) Create(ctx context.Context, actorID string, req CreateLeaveRequest) (LeaveResponse, error) {
	start, end, err := parseRange(req.StartDate, req.EndDate)
	if err != nil {
		return LeaveResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	lt, err := s.checkApplication(ctx, tx, req, start, end, "")
	if err != nil {
		s.logger.Warn("create leave rejected",
			zap.String("employee_id", req.EmployeeID),
			zap.String("start_date", req.StartDate),
			zap.String("end_date", req.EndDate),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}

	l := &LeaveApplication{
		ID:          uuid.New(),
		EmployeeID:  uuid.MustParse(req.EmployeeID),
		LeaveTypeID: lt.ID,
		StartDate:   start,
		EndDate:     end,
		TotalDays:   DaysInclusive(start, end),
		Reason:      strings.TrimSpace(req.Reason),
		Status:      StatusPending,
	}
	if actor, err := uuid.Parse(actorID); err == nil {
		l.CreatedBy = &actor
	}

	wf, err := s.workflows.WithTx(tx).FindActiveByModule(ctx, approvalworkflow.ModuleLeave)
	switch {
	case err == nil:
		l.WorkflowID = &wf.ID
		l.CurrentStep = 1
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return LeaveResponse{}, err
	}

	if err := qtx.CreateApplication(ctx, l); err != nil {
		s.logger.Error("create leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("create leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("create leave success",
		zap.String("leave_id", l.ID.String()),
		zap.String("employee_id", req.EmployeeID),
		zap.Int("total_days", l.TotalDays),
	)
	l.LeaveTypeName = lt.Name
	return mapToResponse(*l), nil
}

func (s *service) GetAll(ctx context.Context, q response.PageQuery, f ListFilter) ([]LeaveResponse, int64, LeaveStats, error) {
	f.Status = strings.ToUpper(f.Status)

	items, total, err := s.repo.FindApplications(ctx, q, f)
	if err != nil {
		return nil, 0, LeaveStats{}, err
	}
	stats, err := s.repo.CountByStatus(ctx, f)
	if err != nil {
		return nil, 0, LeaveStats{}, err
	}
	return mapToListResponse(items), total, stats, nil
}

func (s *service) GetByID(ctx context.Context, id string) (LeaveResponse, error) {
	l, err := s.repo.FindApplicationByID(ctx, id)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*l), nil
}

func (s *service) GetApprovals(ctx context.Context, id string) ([]ApprovalLogResponse, error) {
	if _, err := s.repo.FindApplicationByID(ctx, id); err != nil {
		return nil, mapRepositoryError(err)
	}
	logs, err := s.repo.FindApprovalLogs(ctx, id)
	if err != nil {
		return nil, err
	}
	res := make([]ApprovalLogResponse, len(logs))
	for i, lg := range logs {
		res[i] = ApprovalLogResponse{
			StepOrder:  lg.StepOrder,
			ApproverID: lg.ApproverID.String(),
			Action:     lg.Action,
			Remarks:    lg.Remarks,
			ActedAt:    lg.ActedAt.Format(time.RFC3339),
		}
	}
	return res, nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateLeaveRequest) (LeaveResponse, error) {
	start, end, err := parseRange(req.StartDate, req.EndDate)
	if err != nil {
		return LeaveResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindApplicationByID(ctx, id)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err)
	}
	if l.Status != StatusPending {
		return LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
	}

	lt, err := s.checkApplication(ctx, tx, req, start, end, id)
	if err != nil {
		return LeaveResponse{}, err
	}

	l.EmployeeID = uuid.MustParse(req.EmployeeID)
	l.LeaveTypeID = lt.ID
	l.StartDate = start
	l.EndDate = end
	l.TotalDays = DaysInclusive(start, end)
	l.Reason = strings.TrimSpace(req.Reason)

	if err := qtx.UpdateApplication(ctx, l); err != nil {
		s.logger.Error("update leave persist failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return LeaveResponse{}, err
	}

	l.LeaveTypeName = lt.Name
	return mapToResponse(*l), nil
}

// Approve records the actor's decision on the current step. Only the last
// step of the workflow (or the single implicit step when none applies)
// moves the application to APPROVED, and that happens together with the
// balance deduction.
func (s *service) Approve(ctx context.Context, actorID, id, remarks string) (LeaveResponse, error) {
	actor, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("approve leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindApplicationByID(ctx, id)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err)
	}
	if l.Status != StatusPending {
		s.logger.Warn("approve leave invalid status",
			zap.String("leave_id", id),
			zap.String("status", l.Status),
		)
		return LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
	}
	if l.EmployeeID == actor {
		return LeaveResponse{}, leaveerrors.ErrSelfApproval
	}

	final, err := s.authorizeStep(ctx, tx, l, actorID)
	if err != nil {
		return LeaveResponse{}, err
	}

	now := time.Now().UTC()
	if err := qtx.CreateApprovalLog(ctx, &LeaveApprovalLog{
		ID:                 uuid.New(),
		LeaveApplicationID: l.ID,
		StepOrder:          l.CurrentStep,
		ApproverID:         actor,
		Action:             ActionApprove,
		Remarks:            strings.TrimSpace(remarks),
		ActedAt:            now,
	}); err != nil {
		return LeaveResponse{}, err
	}

	if final {
		ok, err := qtx.DeductBalance(ctx, l.EmployeeID.String(), l.LeaveTypeID.String(), l.StartDate.Year(), l.TotalDays)
		if err != nil {
			s.logger.Error("approve leave deduct balance failed", zap.String("leave_id", id), zap.Error(err))
			return LeaveResponse{}, err
		}
		if !ok {
			s.logger.Warn("approve leave insufficient balance",
				zap.String("leave_id", id),
				zap.Int("total_days", l.TotalDays),
			)
			return LeaveResponse{}, leaveerrors.ErrInsufficientBalance
		}
		l.Status = StatusApproved
		l.ApprovedBy = &actor
		l.ApprovedAt = &now
	} else {
		l.CurrentStep++
	}

	if err := qtx.UpdateApplication(ctx, l); err != nil {
		s.logger.Error("approve leave persist failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("approve leave commit failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("approve leave success",
		zap.String("leave_id", id),
		zap.String("status", l.Status),
		zap.Int("current_step", l.CurrentStep),
	)
	return mapToResponse(*l), nil
}

func (s *service) Reject(ctx context.Context, actorID, id, rejectionReason string) (LeaveResponse, error) {
	actor, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}
	reason := strings.TrimSpace(rejectionReason)
	if reason == "" {
		return LeaveResponse{}, leaveerrors.ErrRejectionReasonRequired
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindApplicationByID(ctx, id)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err)
	}
	if l.Status != StatusPending {
		return LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
	}
	if l.EmployeeID == actor {
		return LeaveResponse{}, leaveerrors.ErrSelfApproval
	}
	if _, err := s.authorizeStep(ctx, tx, l, actorID); err != nil {
		return LeaveResponse{}, err
	}

	now := time.Now().UTC()
	if err := qtx.CreateApprovalLog(ctx, &LeaveApprovalLog{
		ID:                 uuid.New(),
		LeaveApplicationID: l.ID,
		StepOrder:          l.CurrentStep,
		ApproverID:         actor,
		Action:             ActionReject,
		Remarks:            reason,
		ActedAt:            now,
	}); err != nil {
		return LeaveResponse{}, err
	}

	l.Status = StatusRejected
	l.RejectedBy = &actor
	l.RejectedAt = &now
	l.RejectionReason = &reason

	if err := qtx.UpdateApplication(ctx, l); err != nil {
		return LeaveResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return LeaveResponse{}, err
	}

	s.logger.Info("reject leave success", zap.String("leave_id", id))
	return mapToResponse(*l), nil
}

// Cancel withdraws a pending application, or revokes an approved one and
// gives its days back to the balance.
func (s *service) Cancel(ctx context.Context, actorID, id string) (LeaveResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindApplicationByID(ctx, id)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err)
	}

	switch l.Status {
	case StatusPending:
	case StatusApproved:
		err := qtx.RestoreBalance(ctx, l.EmployeeID.String(), l.LeaveTypeID.String(), l.StartDate.Year(), l.TotalDays)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrBalanceNotFound
		}
		if err != nil {
			return LeaveResponse{}, err
		}
	default:
		return LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
	}

	now := time.Now().UTC()
	previous := l.Status
	l.Status = StatusCancelled
	l.CancelledAt = &now

	if err := qtx.UpdateApplication(ctx, l); err != nil {
		return LeaveResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return LeaveResponse{}, err
	}

	s.logger.Info("cancel leave success",
		zap.String("leave_id", id),
		zap.String("actor_id", actorID),
		zap.String("previous_status", previous),
	)
	return mapToResponse(*l), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindApplicationByID(ctx, id)
	if err != nil {
		return mapRepositoryError(err)
	}
	if l.Status == StatusApproved {
		return leaveerrors.ErrInvalidStatusTransition
	}
	if err := qtx.DeleteApplication(ctx, id); err != nil {
		return err
	}
	return tx.Commit()
}

// checkApplication validates references, overlap and balance for a
// pending application covering [start, end].
func (s *service) checkApplication(ctx context.Context, tx *sql.Tx, req CreateLeaveRequest, start, end time.Time, excludeID string) (*leavetype.LeaveType, error) {
	if _, err := uuid.Parse(req.EmployeeID); err != nil {
		return nil, leaveerrors.ErrEmployeeNotFound
	}
	if _, err := uuid.Parse(req.LeaveTypeID); err != nil {
		return nil, leaveerrors.ErrLeaveTypeNotFound
	}

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.EmployeeExists(ctx, req.EmployeeID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, leaveerrors.ErrEmployeeNotFound
	}

	lt, err := s.leaveTypes.WithTx(tx).FindByID(ctx, req.LeaveTypeID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, leaveerrors.ErrLeaveTypeNotFound
	}
	if err != nil {
		return nil, err
	}
	if !lt.IsActive {
		return nil, leaveerrors.ErrLeaveTypeInactive
	}

	overlap, err := qtx.HasOverlap(ctx, req.EmployeeID, start, end, excludeID)
	if err != nil {
		return nil, err
	}
	if overlap {
		return nil, leaveerrors.ErrLeaveOverlap
	}

	balance, err := qtx.FindBalance(ctx, req.EmployeeID, req.LeaveTypeID, start.Year())
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, leaveerrors.ErrBalanceNotFound
	}
	if err != nil {
		return nil, err
	}
	if balance.Remaining < DaysInclusive(start, end) {
		return nil, leaveerrors.ErrInsufficientBalance
	}
	return lt, nil
}

// authorizeStep checks the actor against the workflow step the application
// is waiting on and reports whether that step is the last one.
func (s *service) authorizeStep(ctx context.Context, tx *sql.Tx, l *LeaveApplication, actorID string) (bool, error) {
	if l.WorkflowID == nil {
		return true, nil
	}

	wf, err := s.workflows.WithTx(tx).FindByID(ctx, l.WorkflowID.String())
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}

	step, ok := wf.Step(l.CurrentStep)
	if !ok {
		return true, nil
	}
	roleID, err := s.repo.WithTx(tx).EmployeeRoleID(ctx, actorID)
	if err != nil {
		return false, err
	}
	if !step.CanApprove(actorID, roleID) {
		s.logger.Warn("leave step approver mismatch",
			zap.String("leave_id", l.ID.String()),
			zap.Int("step", l.CurrentStep),
			zap.String("actor_id", actorID),
		)
		return false, leaveerrors.ErrNotStepApprover
	}
	return l.CurrentStep >= wf.LastStep(), nil
}

func parseRange(startValue, endValue string) (time.Time, time.Time, error) {
	start, err := parseDate(startValue)
	if err != nil {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	end, err := parseDate(endValue)
	if err != nil {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateRange
	}
	// balances are per year
	if start.Year() != end.Year() {
		return time.Time{}, time.Time{}, leaveerrors.ErrCrossYearRange
	}
	return start, end, nil
}

func parseDate(v string) (time.Time, error) {
	return time.Parse(dateLayout, strings.TrimSpace(v))
}

func mapRepositoryError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return leaveerrors.ErrLeaveNotFound
	}
	return err
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	v := t.Format(time.RFC3339)
	return &v
}

func formatUUID(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	v := id.String()
	return &v
}

func mapToResponse(l LeaveApplication) LeaveResponse {
	return LeaveResponse{
		ID:              l.ID.String(),
		EmployeeID:      l.EmployeeID.String(),
		EmployeeName:    l.EmployeeName,
		LeaveTypeID:     l.LeaveTypeID.String(),
		LeaveTypeName:   l.LeaveTypeName,
		StartDate:       l.StartDate.Format(dateLayout),
		EndDate:         l.EndDate.Format(dateLayout),
		TotalDays:       l.TotalDays,
		Reason:          l.Reason,
		Status:          l.Status,
		WorkflowID:      formatUUID(l.WorkflowID),
		CurrentStep:     l.CurrentStep,
		ApprovedBy:      formatUUID(l.ApprovedBy),
		ApprovedAt:      formatTime(l.ApprovedAt),
		RejectedBy:      formatUUID(l.RejectedBy),
		RejectedAt:      formatTime(l.RejectedAt),
		RejectionReason: l.RejectionReason,
		CancelledAt:     formatTime(l.CancelledAt),
	}
}

func mapToListResponse(items []LeaveApplication) []LeaveResponse {
	resp := make([]LeaveResponse, len(items))
	for i, l := range items {
		resp[i] = mapToResponse(l)
	}
	return resp
}
