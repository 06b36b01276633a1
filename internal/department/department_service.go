package department

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	departmenterrors "go-hrms/internal/department/errors"
	"go-hrms/internal/shared/response"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	optionsCacheKey = "departments:options"
	optionsCacheTTL = 30 * time.Minute
)

type Service interface {
	Create(ctx context.Context, req CreateDepartmentRequest) (DepartmentResponse, error)
	GetAll(ctx context.Context, q response.PageQuery) ([]DepartmentResponse, int64, error)
	GetOptions(ctx context.Context) ([]DepartmentOption, error)
	GetByID(ctx context.Context, id string) (DepartmentResponse, error)
	Update(ctx context.Context, id string, req UpdateDepartmentRequest) (DepartmentResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	rdb    *redis.Client
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("department.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("department.service")
	}
	return &service{db: db, repo: repo, rdb: rdb, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateDepartmentRequest) (DepartmentResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return DepartmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	code := strings.ToUpper(strings.TrimSpace(req.Code))
	name := strings.TrimSpace(req.Name)
	if err := s.ensureUnique(ctx, qtx, "", code, name); err != nil {
		return DepartmentResponse{}, err
	}

	dept := &Department{
		ID:          uuid.New(),
		Code:        code,
		Name:        name,
		Description: req.Description,
		IsActive:    true,
	}
	if req.IsActive != nil {
		dept.IsActive = *req.IsActive
	}

	if err := qtx.Create(ctx, dept); err != nil {
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return DepartmentResponse{}, err
	}

	s.invalidateCache(ctx)
	return mapToResponse(*dept), nil
}

func (s *service) GetAll(ctx context.Context, q response.PageQuery) ([]DepartmentResponse, int64, error) {
	depts, total, err := s.repo.FindAll(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	return mapToListResponse(depts), total, nil
}

// GetOptions serves the dropdown list; it is read far more than it changes.
func (s *service) GetOptions(ctx context.Context) ([]DepartmentOption, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, optionsCacheKey).Result(); err == nil {
			var opts []DepartmentOption
			if err := json.Unmarshal([]byte(cached), &opts); err == nil {
				return opts, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.logger.Warn("department options cache read failed", zap.Error(err))
		}
	}

	depts, err := s.repo.FindActive(ctx)
	if err != nil {
		return nil, err
	}

	opts := make([]DepartmentOption, len(depts))
	for i, d := range depts {
		opts[i] = DepartmentOption{ID: d.ID.String(), Code: d.Code, Name: d.Name}
	}

	if s.rdb != nil {
		if payload, err := json.Marshal(opts); err == nil {
			if err := s.rdb.Set(ctx, optionsCacheKey, payload, optionsCacheTTL).Err(); err != nil {
				s.logger.Warn("department options cache write failed", zap.Error(err))
			}
		}
	}
	return opts, nil
}

func (s *service) GetByID(ctx context.Context, id string) (DepartmentResponse, error) {
	dept, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return DepartmentResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*dept), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateDepartmentRequest) (DepartmentResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return DepartmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	dept, err := qtx.FindByID(ctx, id)
	if err != nil {
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))
	name := strings.TrimSpace(req.Name)
	if err := s.ensureUnique(ctx, qtx, dept.ID.String(), code, name); err != nil {
		return DepartmentResponse{}, err
	}

	dept.Code = code
	dept.Name = name
	dept.Description = req.Description
	if req.IsActive != nil {
		dept.IsActive = *req.IsActive
	}

	if err := qtx.Update(ctx, dept); err != nil {
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return DepartmentResponse{}, err
	}

	s.invalidateCache(ctx)
	return mapToResponse(*dept), nil
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
		return departmenterrors.ErrDepartmentInUse
	}

	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.invalidateCache(ctx)
	return nil
}

// ensureUnique checks code and name against every other department.
func (s *service) ensureUnique(ctx context.Context, repo Repository, selfID, code, name string) error {
	existing, err := repo.FindByCode(ctx, code)
	if err == nil && existing.ID.String() != selfID {
		return departmenterrors.ErrDepartmentCodeExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	existing, err = repo.FindByName(ctx, name)
	if err == nil && existing.ID.String() != selfID {
		return departmenterrors.ErrDepartmentNameExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

func (s *service) invalidateCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, optionsCacheKey).Err(); err != nil {
		s.logger.Warn("department options cache invalidation failed", zap.Error(err))
	}
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return departmenterrors.ErrDepartmentNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch pgErr.ConstraintName {
		case "uq_departments_code":
			return departmenterrors.ErrDepartmentCodeExists
		case "uq_departments_name":
			return departmenterrors.ErrDepartmentNameExists
		}
	}
	return err
}

func mapToResponse(dept Department) DepartmentResponse {
	return DepartmentResponse{
		ID:          dept.ID.String(),
		Code:        dept.Code,
		Name:        dept.Name,
		Description: dept.Description,
		IsActive:    dept.IsActive,
		CreatedAt:   dept.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   dept.UpdatedAt.Format(time.RFC3339),
	}
}

func mapToListResponse(depts []Department) []DepartmentResponse {
	res := make([]DepartmentResponse, len(depts))
	for i, d := range depts {
		res[i] = mapToResponse(d)
	}
	return res
}
