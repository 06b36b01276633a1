package designation

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	designationerrors "go-hrms/internal/designation/errors"
	"go-hrms/internal/shared/response"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, req CreateDesignationRequest) (DesignationResponse, error)
	GetAll(ctx context.Context, q response.PageQuery, f ListFilter) ([]DesignationResponse, int64, error)
	GetByID(ctx context.Context, id string) (DesignationResponse, error)
	Update(ctx context.Context, id string, req UpdateDesignationRequest) (DesignationResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("designation.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("designation.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateDesignationRequest) (DesignationResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return DesignationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	d := &Designation{
		ID:       uuid.New(),
		IsActive: true,
	}
	if err := s.apply(ctx, qtx, d, req); err != nil {
		return DesignationResponse{}, err
	}

	if err := qtx.Create(ctx, d); err != nil {
		return DesignationResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return DesignationResponse{}, err
	}

	s.logger.Info("designation created", zap.String("designation_id", d.ID.String()), zap.String("code", d.Code))
	return mapToResponse(*d), nil
}

func (s *service) GetAll(ctx context.Context, q response.PageQuery, f ListFilter) ([]DesignationResponse, int64, error) {
	items, total, err := s.repo.FindAll(ctx, q, f)
	if err != nil {
		return nil, 0, err
	}
	res := make([]DesignationResponse, len(items))
	for i, d := range items {
		res[i] = mapToResponse(d)
	}
	return res, total, nil
}

func (s *service) GetByID(ctx context.Context, id string) (DesignationResponse, error) {
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return DesignationResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*d), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateDesignationRequest) (DesignationResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return DesignationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	d, err := qtx.FindByID(ctx, id)
	if err != nil {
		return DesignationResponse{}, mapRepositoryError(err)
	}
	if err := s.apply(ctx, qtx, d, req); err != nil {
		return DesignationResponse{}, err
	}

	if err := qtx.Update(ctx, d); err != nil {
		return DesignationResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return DesignationResponse{}, err
	}
	return mapToResponse(*d), nil
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
		return designationerrors.ErrDesignationInUse
	}
	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}
	return tx.Commit()
}

// apply validates req against the other designations and copies it onto d.
func (s *service) apply(ctx context.Context, repo Repository, d *Designation, req CreateDesignationRequest) error {
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	name := strings.TrimSpace(req.Name)

	if other, err := repo.FindByCode(ctx, code); err == nil && other.ID != d.ID {
		return designationerrors.ErrDesignationCodeExists
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if other, err := repo.FindByName(ctx, name); err == nil && other.ID != d.ID {
		return designationerrors.ErrDesignationNameExists
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	d.DepartmentID = nil
	d.DepartmentName = ""
	if req.DepartmentID != "" {
		ok, err := repo.DepartmentExists(ctx, req.DepartmentID)
		if err != nil {
			return err
		}
		if !ok {
			return designationerrors.ErrDepartmentNotFound
		}
		deptID := uuid.MustParse(req.DepartmentID)
		d.DepartmentID = &deptID
	}

	d.Code = code
	d.Name = name
	d.Description = req.Description
	if req.IsActive != nil {
		d.IsActive = *req.IsActive
	}
	return nil
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return designationerrors.ErrDesignationNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch pgErr.ConstraintName {
		case "uq_designations_code":
			return designationerrors.ErrDesignationCodeExists
		case "uq_designations_name":
			return designationerrors.ErrDesignationNameExists
		}
	}
	return err
}

func mapToResponse(d Designation) DesignationResponse {
	res := DesignationResponse{
		ID:             d.ID.String(),
		Code:           d.Code,
		Name:           d.Name,
		DepartmentName: d.DepartmentName,
		Description:    d.Description,
		IsActive:       d.IsActive,
	}
	if d.DepartmentID != nil {
		res.DepartmentID = d.DepartmentID.String()
	}
	return res
}
