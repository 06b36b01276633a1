package rbac

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go-hrms/internal/domain"
	rbacerrors "go-hrms/internal/rbac/errors"

	"github.com/casbin/casbin/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	LoadPolicy(ctx context.Context) error
	InvalidatePolicy()
	Enforce(req domain.EnforceRequest) (bool, error)

	ListRoles(ctx context.Context) ([]domain.RoleResponse, error)
	GetRole(ctx context.Context, id string) (domain.RoleResponse, error)
	CreateRole(ctx context.Context, req domain.CreateRoleRequest) (domain.RoleResponse, error)
	UpdateRole(ctx context.Context, id string, req domain.UpdateRoleRequest) (domain.RoleResponse, error)
	DeleteRole(ctx context.Context, id string) error
	UpdateRolePermissions(ctx context.Context, id string, req domain.UpdateRolePermissionsRequest) (domain.RoleResponse, error)
	ListPermissions(ctx context.Context) ([]domain.PermissionResponse, error)
}

type service struct {
	repo     Repository
	enforcer *casbin.Enforcer
	ttl      time.Duration
	logger   *zap.Logger
	now      func() time.Time

	mu       sync.Mutex
	loadedAt time.Time
}

func NewService(repo Repository, enforcer *casbin.Enforcer, ttl time.Duration, logger ...*zap.Logger) Service {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}
	return &service{
		repo:     repo,
		enforcer: enforcer,
		ttl:      ttl,
		logger:   l,
		now:      time.Now,
	}
}

func (s *service) LoadPolicy(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loadPolicyUnlocked(ctx)
}

func (s *service) InvalidatePolicy() {
	s.mu.Lock()
	s.loadedAt = time.Time{}
	s.mu.Unlock()
}

func (s *service) loadPolicyUnlocked(ctx context.Context) error {
	employeeRoles, err := s.repo.GetEmployeeRoles(ctx)
	if err != nil {
		return err
	}
	rolePerms, err := s.repo.GetRolePermissions(ctx)
	if err != nil {
		return err
	}

	s.enforcer.ClearPolicy()

	for _, er := range employeeRoles {
		if _, err := s.enforcer.AddGroupingPolicy(er.EmployeeID, er.RoleID); err != nil {
			return err
		}
	}
	for _, rp := range rolePerms {
		if _, err := s.enforcer.AddPolicy(rp.RoleID, rp.Module, rp.Action); err != nil {
			return err
		}
	}

	s.loadedAt = s.now()
	s.logger.Debug("rbac policy loaded",
		zap.Int("employee_roles", len(employeeRoles)),
		zap.Int("role_permissions", len(rolePerms)),
	)
	return nil
}

func (s *service) stale() bool {
	if s.loadedAt.IsZero() {
		return true
	}
	return s.ttl <= 0 || s.now().Sub(s.loadedAt) >= s.ttl
}

func (s *service) Enforce(req domain.EnforceRequest) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stale() {
		if err := s.loadPolicyUnlocked(context.Background()); err != nil {
			s.logger.Error("rbac policy reload failed", zap.Error(err))
			return false, rbacerrors.ErrPolicyLoad
		}
	}

	allowed, err := s.enforcer.Enforce(req.EmployeeID, req.Module, req.Action)
	if err != nil {
		s.logger.Warn("rbac enforce failed",
			zap.String("employee_id", req.EmployeeID),
			zap.String("module", req.Module),
			zap.String("action", req.Action),
			zap.Error(err),
		)
		return false, err
	}

	s.logger.Debug("rbac enforce result",
		zap.String("employee_id", req.EmployeeID),
		zap.String("module", req.Module),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}

func (s *service) ListRoles(ctx context.Context) ([]domain.RoleResponse, error) {
	roles, err := s.repo.ListRoles(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]domain.RoleResponse, len(roles))
	for i, r := range roles {
		res[i] = mapRoleResponse(r)
	}
	return res, nil
}

func (s *service) GetRole(ctx context.Context, id string) (domain.RoleResponse, error) {
	role, err := s.repo.GetRoleByID(ctx, id)
	if err != nil {
		return domain.RoleResponse{}, mapRepositoryError(err)
	}
	return mapRoleResponse(*role), nil
}

func (s *service) CreateRole(ctx context.Context, req domain.CreateRoleRequest) (domain.RoleResponse, error) {
	name := strings.TrimSpace(req.Name)
	if _, err := s.repo.GetRoleByName(ctx, name); err == nil {
		return domain.RoleResponse{}, rbacerrors.ErrRoleNameExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.RoleResponse{}, err
	}

	if err := s.checkPermissions(ctx, req.PermissionIDs); err != nil {
		return domain.RoleResponse{}, err
	}

	role := &Role{
		ID:          uuid.New(),
		Name:        name,
		Description: req.Description,
	}
	if err := s.repo.CreateRole(ctx, role); err != nil {
		return domain.RoleResponse{}, mapRepositoryError(err)
	}
	if len(req.PermissionIDs) > 0 {
		if err := s.repo.UpdateRolePermissions(ctx, role.ID.String(), req.PermissionIDs); err != nil {
			return domain.RoleResponse{}, err
		}
	}

	s.InvalidatePolicy()
	return s.GetRole(ctx, role.ID.String())
}

func (s *service) UpdateRole(ctx context.Context, id string, req domain.UpdateRoleRequest) (domain.RoleResponse, error) {
	role, err := s.repo.GetRoleByID(ctx, id)
	if err != nil {
		return domain.RoleResponse{}, mapRepositoryError(err)
	}

	name := strings.TrimSpace(req.Name)
	if !strings.EqualFold(name, role.Name) {
		if _, err := s.repo.GetRoleByName(ctx, name); err == nil {
			return domain.RoleResponse{}, rbacerrors.ErrRoleNameExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RoleResponse{}, err
		}
	}

	role.Name = name
	role.Description = req.Description
	if err := s.repo.UpdateRole(ctx, role); err != nil {
		return domain.RoleResponse{}, mapRepositoryError(err)
	}

	if req.PermissionIDs != nil {
		if err := s.checkPermissions(ctx, req.PermissionIDs); err != nil {
			return domain.RoleResponse{}, err
		}
		if err := s.repo.UpdateRolePermissions(ctx, id, req.PermissionIDs); err != nil {
			return domain.RoleResponse{}, err
		}
		s.InvalidatePolicy()
	}

	return s.GetRole(ctx, id)
}

func (s *service) DeleteRole(ctx context.Context, id string) error {
	if _, err := s.repo.GetRoleByID(ctx, id); err != nil {
		return mapRepositoryError(err)
	}
	inUse, err := s.repo.RoleInUse(ctx, id)
	if err != nil {
		return err
	}
	if inUse {
		return rbacerrors.ErrRoleInUse
	}
	if err := s.repo.DeleteRole(ctx, id); err != nil {
		return err
	}
	s.InvalidatePolicy()
	return nil
}

func (s *service) UpdateRolePermissions(ctx context.Context, id string, req domain.UpdateRolePermissionsRequest) (domain.RoleResponse, error) {
	if _, err := s.repo.GetRoleByID(ctx, id); err != nil {
		return domain.RoleResponse{}, mapRepositoryError(err)
	}
	if err := s.checkPermissions(ctx, req.PermissionIDs); err != nil {
		return domain.RoleResponse{}, err
	}
	if err := s.repo.UpdateRolePermissions(ctx, id, req.PermissionIDs); err != nil {
		return domain.RoleResponse{}, err
	}

	s.InvalidatePolicy()
	s.logger.Info("role permissions replaced",
		zap.String("role_id", id),
		zap.Int("permissions", len(req.PermissionIDs)),
	)
	return s.GetRole(ctx, id)
}

func (s *service) ListPermissions(ctx context.Context) ([]domain.PermissionResponse, error) {
	perms, err := s.repo.ListPermissions(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]domain.PermissionResponse, len(perms))
	for i, p := range perms {
		res[i] = mapPermissionResponse(p)
	}
	return res, nil
}

func (s *service) checkPermissions(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	unique := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		unique[id] = struct{}{}
	}
	count, err := s.repo.CountPermissions(ctx, ids)
	if err != nil {
		return err
	}
	if int(count) != len(unique) {
		return rbacerrors.ErrInvalidPermissions
	}
	return nil
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return rbacerrors.ErrRoleNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "uq_roles_name" {
		return rbacerrors.ErrRoleNameExists
	}
	return err
}

func mapRoleResponse(r Role) domain.RoleResponse {
	perms := make([]domain.PermissionResponse, len(r.Permissions))
	for i, p := range r.Permissions {
		perms[i] = mapPermissionResponse(p)
	}
	return domain.RoleResponse{
		ID:          r.ID.String(),
		Name:        r.Name,
		Description: r.Description,
		Permissions: perms,
	}
}

func mapPermissionResponse(p Permission) domain.PermissionResponse {
	return domain.PermissionResponse{
		ID:     p.ID.String(),
		Module: p.Module,
		Action: p.Action,
		Label:  p.Label,
	}
}
