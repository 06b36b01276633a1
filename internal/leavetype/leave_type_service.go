package leavetype

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	leavetypeerrors "go-hrms/internal/leavetype/errors"
	"go-hrms/internal/shared/response"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, req CreateLeaveTypeRequest) (LeaveTypeResponse, error)
	GetAll(ctx context.Context, q response.PageQuery) ([]LeaveTypeResponse, int64, error)
	GetByID(ctx context.Context, id string) (LeaveTypeResponse, error)
	Update(ctx context.Context, id string, req UpdateLeaveTypeRequest) (LeaveTypeResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("leavetype.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leavetype.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateLeaveTypeRequest) (LeaveTypeResponse, error) {
	lt := &LeaveType{ID: uuid.New(), IsPaid: true, IsActive: true}
	apply(lt, req)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveTypeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := ensureUnique(ctx, qtx, lt); err != nil {
		return LeaveTypeResponse{}, err
	}
	if err := qtx.Create(ctx, lt); err != nil {
		return LeaveTypeResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return LeaveTypeResponse{}, err
	}

	s.logger.Info("leave type created", zap.String("code", lt.Code))
	return mapToResponse(*lt), nil
}

func (s *service) GetAll(ctx context.Context, q response.PageQuery) ([]LeaveTypeResponse, int64, error) {
	items, total, err := s.repo.FindAll(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	res := make([]LeaveTypeResponse, len(items))
	for i, lt := range items {
		res[i] = mapToResponse(lt)
	}
	return res, total, nil
}

func (s *service) GetByID(ctx context.Context, id string) (LeaveTypeResponse, error) {
	lt, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return LeaveTypeResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*lt), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateLeaveTypeRequest) (LeaveTypeResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveTypeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	lt, err := qtx.FindByID(ctx, id)
	if err != nil {
		return LeaveTypeResponse{}, mapRepositoryError(err)
	}
	apply(lt, req)
	if err := ensureUnique(ctx, qtx, lt); err != nil {
		return LeaveTypeResponse{}, err
	}
	if err := qtx.Update(ctx, lt); err != nil {
		return LeaveTypeResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return LeaveTypeResponse{}, err
	}
	return mapToResponse(*lt), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByID(ctx, id); err != nil {
		return mapRepositoryError(err)
	}
	used, err := qtx.CountUsage(ctx, id)
	if err != nil {
		return err
	}
	if used > 0 {
		return leavetypeerrors.ErrLeaveTypeInUse
	}
	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}
	return tx.Commit()
}

func apply(lt *LeaveType, req CreateLeaveTypeRequest) {
	lt.Code = strings.ToUpper(strings.TrimSpace(req.Code))
	lt.Name = strings.TrimSpace(req.Name)
	lt.DefaultDays = req.DefaultDays
	lt.Description = req.Description
	if req.IsPaid != nil {
		lt.IsPaid = *req.IsPaid
	}
	if req.IsActive != nil {
		lt.IsActive = *req.IsActive
	}
}

func ensureUnique(ctx context.Context, repo Repository, lt *LeaveType) error {
	other, err := repo.FindByCode(ctx, lt.Code)
	if err == nil && other.ID != lt.ID {
		return leavetypeerrors.ErrLeaveTypeCodeExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	other, err = repo.FindByName(ctx, lt.Name)
	if err == nil && other.ID != lt.ID {
		return leavetypeerrors.ErrLeaveTypeNameExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return leavetypeerrors.ErrLeaveTypeNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch pgErr.ConstraintName {
		case "uq_leave_types_code":
			return leavetypeerrors.ErrLeaveTypeCodeExists
		case "uq_leave_types_name":
			return leavetypeerrors.ErrLeaveTypeNameExists
		}
	}
	return err
}

func mapToResponse(lt LeaveType) LeaveTypeResponse {
	return LeaveTypeResponse{
		ID:          lt.ID.String(),
		Code:        lt.Code,
		Name:        lt.Name,
		DefaultDays: lt.DefaultDays,
		IsPaid:      lt.IsPaid,
		IsActive:    lt.IsActive,
		Description: lt.Description,
	}
}
