package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	employeeerrors "go-hrms/internal/employee/errors"
	"go-hrms/internal/events"
	"go-hrms/internal/messaging/kafka"
	"go-hrms/internal/shared/contextutil"
	"go-hrms/internal/shared/counter"
	"go-hrms/internal/shared/response"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	EmployeeOptionsKey = "employees:options"
	dateLayout         = "2006-01-02"
	codePrefix         = "EMP"
)

// PolicyInvalidator is notified when an employee's role assignment changes.
type PolicyInvalidator interface {
	InvalidatePolicy()
}

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context, q response.PageQuery, f ListFilter) ([]EmployeeResponse, int64, error)
	GetOptions(ctx context.Context) ([]EmployeeOption, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db      *sql.DB
	repo    Repository
	counter counter.Repository
	outbox  kafka.OutboxRepository
	rdb     *redis.Client
	policy  PolicyInvalidator
	sf      *singleflight.Group
	logger  *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	counter counter.Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	policy PolicyInvalidator,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		counter: counter,
		outbox:  outboxRepo,
		rdb:     rdb,
		policy:  policy,
		sf:      &singleflight.Group{},
		logger:  l,
	}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("email", req.Email),
	)

	empl := &Employee{ID: uuid.New(), Status: StatusActive}
	if err := apply(empl, req); err != nil {
		return EmployeeResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := s.validateReferences(ctx, qtx, empl); err != nil {
		return EmployeeResponse{}, err
	}
	if err := ensureUnique(ctx, qtx, empl); err != nil {
		return EmployeeResponse{}, err
	}

	if empl.Code == "" {
		nextVal, err := s.counter.WithTx(tx).GetNextValue(ctx, counter.TypeEmployeeCode)
		if err != nil {
			s.logger.Error("create employee generate code failed", zap.Error(err))
			return EmployeeResponse{}, err
		}
		empl.Code = counter.FormatCode(codePrefix, nextVal)
	}

	if err := qtx.Create(ctx, empl); err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if s.outbox != nil {
		event, err := kafka.NewOutboxEvent(rid, "employee", empl.ID.String(), events.EmployeeCreated, events.EmployeeLifecycleTopic,
			events.EmployeeCreatedEvent{
				EventType:    events.EmployeeCreated,
				RequestID:    rid,
				EmployeeID:   empl.ID.String(),
				EmployeeCode: empl.Code,
				JoiningDate:  empl.JoiningDate.Format(dateLayout),
				OccurredAt:   time.Now().UTC(),
			})
		if err != nil {
			s.logger.Error("marshal event failed", zap.String("request_id", rid), zap.Error(err))
			return EmployeeResponse{}, err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
			s.logger.Error("create employee outbox persist failed",
				zap.String("employee_id", empl.ID.String()),
				zap.Error(err),
			)
			return EmployeeResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateCache(ctx)
	if empl.RoleID != nil && s.policy != nil {
		s.policy.InvalidatePolicy()
	}

	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID.String()),
		zap.String("code", empl.Code),
	)

	return mapToResponse(*empl), nil
}

func (s *service) GetAll(ctx context.Context, q response.PageQuery, f ListFilter) ([]EmployeeResponse, int64, error) {
	items, total, err := s.repo.FindAll(ctx, q, f)
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return nil, 0, err
	}
	return mapToListResponse(items), total, nil
}

func (s *service) GetOptions(ctx context.Context) ([]EmployeeOption, error) {
	// 1. Redis
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, EmployeeOptionsKey).Result(); err == nil {
			var resp []EmployeeOption
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	// 2. collapse concurrent misses
	v, err, _ := s.sf.Do(EmployeeOptionsKey, func() (interface{}, error) {
		emps, err := s.repo.FindOptions(ctx)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := make([]EmployeeOption, len(emps))
		for i, e := range emps {
			resp[i] = EmployeeOption{ID: e.ID.String(), Code: e.Code, FullName: e.FullName}
		}

		// 3. cache for an hour; invalidated on every write
		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, EmployeeOptionsKey, jsonData, time.Hour)
			}
		}

		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]EmployeeOption), nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*empl), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	s.logger.Debug("update employee requested", zap.String("employee_id", id))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	previousRole := uuidToString(empl.RoleID)

	code := empl.Code
	if err := apply(empl, req); err != nil {
		return EmployeeResponse{}, err
	}
	if empl.Code == "" {
		empl.Code = code
	}

	if err := s.validateReferences(ctx, qtx, empl); err != nil {
		return EmployeeResponse{}, err
	}
	if err := ensureUnique(ctx, qtx, empl); err != nil {
		return EmployeeResponse{}, err
	}

	if err := qtx.Update(ctx, empl); err != nil {
		s.logger.Error("update employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update employee commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateCache(ctx)
	if previousRole != uuidToString(empl.RoleID) && s.policy != nil {
		s.policy.InvalidatePolicy()
	}

	s.logger.Info("update employee success", zap.String("employee_id", id))
	return mapToResponse(*empl), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete employee begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete employee commit failed", zap.Error(err))
		return err
	}

	s.invalidateCache(ctx)
	if s.policy != nil {
		s.policy.InvalidatePolicy()
	}

	s.logger.Info("delete employee success", zap.String("employee_id", id))
	return nil
}

func (s *service) invalidateCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, EmployeeOptionsKey).Err(); err != nil {
		s.logger.Error("failed to invalidate employee options cache",
			zap.Error(err),
			zap.String("key", EmployeeOptionsKey),
		)
	}
}

func (s *service) validateReferences(ctx context.Context, repo Repository, empl *Employee) error {
	refs := []struct {
		table string
		id    *uuid.UUID
		err   error
	}{
		{RefRoles, empl.RoleID, employeeerrors.ErrRoleNotFound},
		{RefDepartments, empl.DepartmentID, employeeerrors.ErrDepartmentNotFound},
		{RefDesignations, empl.DesignationID, employeeerrors.ErrDesignationNotFound},
		{RefShifts, empl.ShiftID, employeeerrors.ErrShiftNotFound},
	}
	for _, ref := range refs {
		if ref.id == nil {
			continue
		}
		ok, err := repo.ReferenceExists(ctx, ref.table, ref.id.String())
		if err != nil {
			return err
		}
		if !ok {
			s.logger.Warn("employee reference not found",
				zap.String("table", ref.table),
				zap.String("id", ref.id.String()),
			)
			return ref.err
		}
	}
	return nil
}

func apply(empl *Employee, req CreateEmployeeRequest) error {
	joining, err := time.Parse(dateLayout, strings.TrimSpace(req.JoiningDate))
	if err != nil {
		return employeeerrors.ErrInvalidJoiningDate
	}
	if req.BasicSalary.IsNegative() {
		return employeeerrors.ErrInvalidBasicSalary
	}
	if req.Status != "" {
		status := strings.ToUpper(strings.TrimSpace(req.Status))
		if !IsValidStatus(status) {
			return employeeerrors.ErrInvalidStatus
		}
		empl.Status = status
	}

	empl.Code = strings.ToUpper(strings.TrimSpace(req.Code))
	empl.FullName = strings.TrimSpace(req.FullName)
	empl.Email = strings.ToLower(strings.TrimSpace(req.Email))
	empl.Phone = strings.TrimSpace(req.Phone)
	empl.RoleID = uuidPtr(req.RoleID)
	empl.DepartmentID = uuidPtr(req.DepartmentID)
	empl.DesignationID = uuidPtr(req.DesignationID)
	empl.ShiftID = uuidPtr(req.ShiftID)
	empl.JoiningDate = joining
	empl.BasicSalary = req.BasicSalary.Round(2)
	return nil
}

func ensureUnique(ctx context.Context, repo Repository, empl *Employee) error {
	other, err := repo.FindByEmail(ctx, empl.Email)
	if err == nil && other.ID != empl.ID {
		return employeeerrors.ErrEmployeeAlreadyExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if empl.Code == "" {
		return nil
	}
	other, err = repo.FindByCode(ctx, empl.Code)
	if err == nil && other.ID != empl.ID {
		return employeeerrors.ErrEmployeeCodeAlreadyExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

func mapToResponse(empl Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:              empl.ID.String(),
		Code:            empl.Code,
		FullName:        empl.FullName,
		Email:           empl.Email,
		Phone:           empl.Phone,
		RoleID:          uuidToString(empl.RoleID),
		RoleName:        empl.RoleName,
		DepartmentID:    uuidToString(empl.DepartmentID),
		DepartmentName:  empl.DepartmentName,
		DesignationID:   uuidToString(empl.DesignationID),
		DesignationName: empl.DesignationName,
		ShiftID:         uuidToString(empl.ShiftID),
		JoiningDate:     empl.JoiningDate.Format(dateLayout),
		BasicSalary:     empl.BasicSalary,
		Status:          empl.Status,
	}
}

func mapToListResponse(items []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(items))
	for i, e := range items {
		res[i] = mapToResponse(e)
	}
	return res
}

func uuidPtr(v string) *uuid.UUID {
	id, err := uuid.Parse(strings.TrimSpace(v))
	if err != nil {
		return nil
	}
	return &id
}

func uuidToString(v *uuid.UUID) string {
	if v == nil {
		return ""
	}
	return v.String()
}
