package leave

import (
	"context"
	"database/sql"
	"errors"

	leaveerrors "go-hrms/internal/leave/errors"
	"go-hrms/internal/leavetype"
	"go-hrms/internal/shared/response"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type BalanceService interface {
	Create(ctx context.Context, req CreateBalanceRequest) (LeaveBalanceResponse, error)
	GetAll(ctx context.Context, q response.PageQuery, f BalanceFilter) ([]LeaveBalanceResponse, int64, error)
	GetByID(ctx context.Context, id string) (LeaveBalanceResponse, error)
	Update(ctx context.Context, id string, req UpdateBalanceRequest) (LeaveBalanceResponse, error)
	Delete(ctx context.Context, id string) error
	// Allocate creates the default balance of every active leave type the
	// employee does not have yet for the year. Existing rows are kept.
	Allocate(ctx context.Context, req AllocateRequest) ([]LeaveBalanceResponse, error)
}

type balanceService struct {
	db         *sql.DB
	repo       Repository
	leaveTypes leavetype.Repository
	logger     *zap.Logger
}

func NewBalanceService(db *sql.DB, repo Repository, leaveTypes leavetype.Repository, logger ...*zap.Logger) BalanceService {
	l := zap.L().Named("leave.balance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.balance.service")
	}
	return &balanceService{db: db, repo: repo, leaveTypes: leaveTypes, logger: l}
}

func (s *balanceService) Create(ctx context.Context, req CreateBalanceRequest) (LeaveBalanceResponse, error) {
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return LeaveBalanceResponse{}, leaveerrors.ErrEmployeeNotFound
	}
	leaveTypeID, err := uuid.Parse(req.LeaveTypeID)
	if err != nil {
		return LeaveBalanceResponse{}, leaveerrors.ErrLeaveTypeNotFound
	}
	if req.Year < 2000 || req.Year > 2100 {
		return LeaveBalanceResponse{}, leaveerrors.ErrInvalidYear
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveBalanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.EmployeeExists(ctx, req.EmployeeID)
	if err != nil {
		return LeaveBalanceResponse{}, err
	}
	if !exists {
		return LeaveBalanceResponse{}, leaveerrors.ErrEmployeeNotFound
	}
	lt, err := s.leaveTypes.WithTx(tx).FindByID(ctx, req.LeaveTypeID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return LeaveBalanceResponse{}, leaveerrors.ErrLeaveTypeNotFound
	}
	if err != nil {
		return LeaveBalanceResponse{}, err
	}

	_, err = qtx.FindBalance(ctx, req.EmployeeID, req.LeaveTypeID, req.Year)
	if err == nil {
		return LeaveBalanceResponse{}, leaveerrors.ErrLeaveBalanceExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return LeaveBalanceResponse{}, err
	}

	b := &LeaveBalance{
		ID:          uuid.New(),
		EmployeeID:  employeeID,
		LeaveTypeID: leaveTypeID,
		Year:        req.Year,
		Allocated:   req.Allocated,
		Remaining:   req.Allocated,
	}
	if err := qtx.CreateBalance(ctx, b); err != nil {
		return LeaveBalanceResponse{}, mapBalanceError(err)
	}
	if err := tx.Commit(); err != nil {
		return LeaveBalanceResponse{}, err
	}

	b.LeaveTypeName = lt.Name
	return mapBalanceResponse(*b), nil
}

func (s *balanceService) GetAll(ctx context.Context, q response.PageQuery, f BalanceFilter) ([]LeaveBalanceResponse, int64, error) {
	items, total, err := s.repo.FindBalances(ctx, q, f)
	if err != nil {
		return nil, 0, err
	}
	res := make([]LeaveBalanceResponse, len(items))
	for i, b := range items {
		res[i] = mapBalanceResponse(b)
	}
	return res, total, nil
}

func (s *balanceService) GetByID(ctx context.Context, id string) (LeaveBalanceResponse, error) {
	b, err := s.repo.FindBalanceByID(ctx, id)
	if err != nil {
		return LeaveBalanceResponse{}, mapBalanceError(err)
	}
	return mapBalanceResponse(*b), nil
}

func (s *balanceService) Update(ctx context.Context, id string, req UpdateBalanceRequest) (LeaveBalanceResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveBalanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	b, err := qtx.FindBalanceByID(ctx, id)
	if err != nil {
		return LeaveBalanceResponse{}, mapBalanceError(err)
	}
	if req.Allocated < b.Used {
		return LeaveBalanceResponse{}, leaveerrors.ErrAllocatedBelowUsed
	}

	b.Allocated = req.Allocated
	b.Remaining = b.Allocated - b.Used

	if err := qtx.UpdateBalance(ctx, b); err != nil {
		return LeaveBalanceResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return LeaveBalanceResponse{}, err
	}

	s.logger.Info("leave balance adjusted",
		zap.String("balance_id", id),
		zap.Int("allocated", b.Allocated),
		zap.Int("remaining", b.Remaining),
	)
	return mapBalanceResponse(*b), nil
}

func (s *balanceService) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	b, err := qtx.FindBalanceByID(ctx, id)
	if err != nil {
		return mapBalanceError(err)
	}
	if b.Used > 0 {
		return leaveerrors.ErrBalanceInUse
	}
	if err := qtx.DeleteBalance(ctx, id); err != nil {
		return mapBalanceError(err)
	}
	return tx.Commit()
}

func (s *balanceService) Allocate(ctx context.Context, req AllocateRequest) ([]LeaveBalanceResponse, error) {
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return nil, leaveerrors.ErrEmployeeNotFound
	}
	if req.Year < 2000 || req.Year > 2100 {
		return nil, leaveerrors.ErrInvalidYear
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.EmployeeExists(ctx, req.EmployeeID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, leaveerrors.ErrEmployeeNotFound
	}

	types, err := s.leaveTypes.WithTx(tx).FindActive(ctx)
	if err != nil {
		return nil, err
	}

	created := 0
	res := make([]LeaveBalanceResponse, 0, len(types))
	for _, lt := range types {
		b, err := qtx.FindBalance(ctx, req.EmployeeID, lt.ID.String(), req.Year)
		switch {
		case err == nil:
		case errors.Is(err, gorm.ErrRecordNotFound):
			b = &LeaveBalance{
				ID:          uuid.New(),
				EmployeeID:  employeeID,
				LeaveTypeID: lt.ID,
				Year:        req.Year,
				Allocated:   lt.DefaultDays,
				Remaining:   lt.DefaultDays,
			}
			if err := qtx.CreateBalance(ctx, b); err != nil {
				return nil, mapBalanceError(err)
			}
			created++
		default:
			return nil, err
		}
		b.LeaveTypeName = lt.Name
		res = append(res, mapBalanceResponse(*b))
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("leave balances allocated",
		zap.String("employee_id", req.EmployeeID),
		zap.Int("year", req.Year),
		zap.Int("created", created),
		zap.Int("leave_types", len(types)),
	)
	return res, nil
}

func mapBalanceError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return leaveerrors.ErrLeaveBalanceNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" &&
		pgErr.ConstraintName == "uq_leave_balances_employee_type_year" {
		return leaveerrors.ErrLeaveBalanceExists
	}
	return err
}

func mapBalanceResponse(b LeaveBalance) LeaveBalanceResponse {
	return LeaveBalanceResponse{
		ID:            b.ID.String(),
		EmployeeID:    b.EmployeeID.String(),
		EmployeeName:  b.EmployeeName,
		LeaveTypeID:   b.LeaveTypeID.String(),
		LeaveTypeName: b.LeaveTypeName,
		Year:          b.Year,
		Allocated:     b.Allocated,
		Used:          b.Used,
		Remaining:     b.Remaining,
	}
}
