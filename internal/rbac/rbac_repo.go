package rbac

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	GetEmployeeRoles(ctx context.Context) ([]EmployeeRoleRow, error)
	GetRolePermissions(ctx context.Context) ([]RolePermissionRow, error)

	ListRoles(ctx context.Context) ([]Role, error)
	GetRoleByID(ctx context.Context, id string) (*Role, error)
	GetRoleByName(ctx context.Context, name string) (*Role, error)
	CreateRole(ctx context.Context, role *Role) error
	UpdateRole(ctx context.Context, role *Role) error
	DeleteRole(ctx context.Context, id string) error
	RoleInUse(ctx context.Context, id string) (bool, error)

	ListPermissions(ctx context.Context) ([]Permission, error)
	CountPermissions(ctx context.Context, ids []string) (int64, error)
	UpdateRolePermissions(ctx context.Context, roleID string, permIDs []string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Employees carry a single role_id, that is the casbin grouping policy.
func (r *repository) GetEmployeeRoles(ctx context.Context) ([]EmployeeRoleRow, error) {
	var result []EmployeeRoleRow
	err := r.db.WithContext(ctx).
		Table("employees").
		Select("employees.id AS employee_id, employees.role_id").
		Where("employees.role_id IS NOT NULL").
		Where("employees.deleted_at IS NULL").
		Scan(&result).Error
	return result, err
}

func (r *repository) GetRolePermissions(ctx context.Context) ([]RolePermissionRow, error) {
	var result []RolePermissionRow
	err := r.db.WithContext(ctx).
		Table("role_permissions").
		Select("role_permissions.role_id, permissions.module, permissions.action").
		Joins("JOIN permissions ON permissions.id = role_permissions.permission_id").
		Scan(&result).Error
	return result, err
}

func (r *repository) ListRoles(ctx context.Context) ([]Role, error) {
	var result []Role
	err := r.db.WithContext(ctx).
		Preload("Permissions").
		Order("name ASC").
		Find(&result).Error
	return result, err
}

func (r *repository) GetRoleByID(ctx context.Context, id string) (*Role, error) {
	var result Role
	err := r.db.WithContext(ctx).
		Preload("Permissions").
		First(&result, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *repository) GetRoleByName(ctx context.Context, name string) (*Role, error) {
	var result Role
	err := r.db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name).First(&result).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *repository) CreateRole(ctx context.Context, role *Role) error {
	return r.db.WithContext(ctx).Omit("Permissions").Create(role).Error
}

func (r *repository) UpdateRole(ctx context.Context, role *Role) error {
	return r.db.WithContext(ctx).Omit("Permissions").Save(role).Error
}

func (r *repository) DeleteRole(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("role_id = ?", id).Delete(&RolePermission{}).Error; err != nil {
			return err
		}
		return tx.Delete(&Role{}, "id = ?", id).Error
	})
}

func (r *repository) RoleInUse(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("employees").
		Where("role_id = ?", id).
		Where("deleted_at IS NULL").
		Count(&count).Error
	return count > 0, err
}

func (r *repository) ListPermissions(ctx context.Context) ([]Permission, error) {
	var result []Permission
	err := r.db.WithContext(ctx).Order("module, action").Find(&result).Error
	return result, err
}

func (r *repository) CountPermissions(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&Permission{}).Where("id IN ?", ids).Count(&count).Error
	return count, err
}

func (r *repository) UpdateRolePermissions(ctx context.Context, roleID string, permIDs []string) error {
	roleUUID, err := uuid.Parse(roleID)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("role_id = ?", roleID).Delete(&RolePermission{}).Error; err != nil {
			return err
		}
		if len(permIDs) == 0 {
			return nil
		}
		rows := make([]RolePermission, 0, len(permIDs))
		for _, pID := range permIDs {
			permUUID, err := uuid.Parse(pID)
			if err != nil {
				return err
			}
			rows = append(rows, RolePermission{RoleID: roleUUID, PermissionID: permUUID})
		}
		return tx.Create(&rows).Error
	})
}
