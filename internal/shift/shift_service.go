package shift

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	shifterrors "go-hrms/internal/shift/errors"
	"go-hrms/internal/shared/response"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, req CreateShiftRequest) (ShiftResponse, error)
	GetAll(ctx context.Context, q response.PageQuery) ([]ShiftResponse, int64, error)
	GetByID(ctx context.Context, id string) (ShiftResponse, error)
	Update(ctx context.Context, id string, req UpdateShiftRequest) (ShiftResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("shift.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("shift.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateShiftRequest) (ShiftResponse, error) {
	sh := &Shift{ID: uuid.New(), IsActive: true}
	if err := apply(sh, req); err != nil {
		return ShiftResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ShiftResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := ensureNameFree(ctx, qtx, sh); err != nil {
		return ShiftResponse{}, err
	}
	if err := qtx.Create(ctx, sh); err != nil {
		return ShiftResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return ShiftResponse{}, err
	}
	return mapToResponse(*sh), nil
}

func (s *service) GetAll(ctx context.Context, q response.PageQuery) ([]ShiftResponse, int64, error) {
	items, total, err := s.repo.FindAll(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	res := make([]ShiftResponse, len(items))
	for i, sh := range items {
		res[i] = mapToResponse(sh)
	}
	return res, total, nil
}

func (s *service) GetByID(ctx context.Context, id string) (ShiftResponse, error) {
	sh, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ShiftResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*sh), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateShiftRequest) (ShiftResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ShiftResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	sh, err := qtx.FindByID(ctx, id)
	if err != nil {
		return ShiftResponse{}, mapRepositoryError(err)
	}
	if err := apply(sh, req); err != nil {
		return ShiftResponse{}, err
	}
	if err := ensureNameFree(ctx, qtx, sh); err != nil {
		return ShiftResponse{}, err
	}
	if err := qtx.Update(ctx, sh); err != nil {
		return ShiftResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return ShiftResponse{}, err
	}
	return mapToResponse(*sh), nil
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
	count, err := qtx.CountEmployees(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return shifterrors.ErrShiftInUse
	}
	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}
	return tx.Commit()
}

func apply(sh *Shift, req CreateShiftRequest) error {
	start, err := ParseClock(strings.TrimSpace(req.StartTime))
	if err != nil {
		return shifterrors.ErrInvalidClock
	}
	end, err := ParseClock(strings.TrimSpace(req.EndTime))
	if err != nil {
		return shifterrors.ErrInvalidClock
	}
	if start == end {
		return shifterrors.ErrSameStartEnd
	}

	sh.Name = strings.TrimSpace(req.Name)
	sh.StartTime = start
	sh.EndTime = end
	sh.GraceMinutes = req.GraceMinutes
	sh.Description = req.Description
	if req.IsActive != nil {
		sh.IsActive = *req.IsActive
	}
	return nil
}

func ensureNameFree(ctx context.Context, repo Repository, sh *Shift) error {
	other, err := repo.FindByName(ctx, sh.Name)
	if err == nil && other.ID != sh.ID {
		return shifterrors.ErrShiftNameExists
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
		return shifterrors.ErrShiftNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "uq_shifts_name" {
		return shifterrors.ErrShiftNameExists
	}
	return err
}

func mapToResponse(sh Shift) ShiftResponse {
	return ShiftResponse{
		ID:           sh.ID.String(),
		Name:         sh.Name,
		StartTime:    sh.StartTime,
		EndTime:      sh.EndTime,
		GraceMinutes: sh.GraceMinutes,
		Overnight:    sh.Overnight(),
		Description:  sh.Description,
		IsActive:     sh.IsActive,
	}
}
