package salarystructure

import (
	"context"
	"database/sql"
	"time"

	"go-hrms/internal/shared/response"
	"go-hrms/internal/shared/scope"
	"go-hrms/internal/shared/txconn"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, s *SalaryStructure) error
	FindAll(ctx context.Context, q response.PageQuery, f ListFilter) ([]SalaryStructure, int64, error)
	FindByID(ctx context.Context, id string) (*SalaryStructure, error)
	// FindActiveAt returns the version in force on day, or gorm.ErrRecordNotFound.
	FindActiveAt(ctx context.Context, employeeID string, day time.Time) (*SalaryStructure, error)
	// FindInPeriod returns every version of the given employees overlapping
	// [from, to], newest start date first. An empty employeeIDs means all.
	FindInPeriod(ctx context.Context, employeeIDs []string, from, to time.Time) ([]SalaryStructure, error)
	HasOverlap(ctx context.Context, employeeID string, start time.Time, end *time.Time, excludeID string) (bool, error)
	EmployeeExists(ctx context.Context, employeeID string) (bool, error)
	CountSlips(ctx context.Context, id string) (int64, error)
	ReplaceItems(ctx context.Context, structureID string, items []SalaryStructureItem) error
	Update(ctx context.Context, s *SalaryStructure) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	return txconn.Conn(ctx, r.db, r.tx)
}

func orderedItems(db *gorm.DB) *gorm.DB {
	return db.Order("category DESC, sort_order ASC")
}

func withEmployee(db *gorm.DB) *gorm.DB {
	return db.
		Select("salary_structures.*, employees.full_name AS employee_name, employees.code AS employee_code").
		Joins("LEFT JOIN employees ON employees.id = salary_structures.employee_id")
}

func (r *repository) Create(ctx context.Context, s *SalaryStructure) error {
	return r.conn(ctx).Create(s).Error
}

func (r *repository) FindAll(ctx context.Context, q response.PageQuery, f ListFilter) ([]SalaryStructure, int64, error) {
	var (
		items []SalaryStructure
		total int64
	)
	base := r.conn(ctx).Model(&SalaryStructure{}).
		Scopes(
			scope.Search(q.Search, "salary_structures.name"),
			scope.Equal("salary_structures.employee_id", f.EmployeeID),
		)
	if day, err := time.Parse(dateLayout, f.Date); err == nil {
		base = base.Where("salary_structures.start_date <= ?", day).
			Where("salary_structures.end_date IS NULL OR salary_structures.end_date >= ?", day)
	}
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := base.Session(&gorm.Session{}).
		Scopes(withEmployee, scope.Paginate(q.Page, q.PageSize)).
		Preload("Items", orderedItems).
		Order("salary_structures.employee_id ASC, salary_structures.start_date DESC").
		Find(&items).Error
	return items, total, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*SalaryStructure, error) {
	var s SalaryStructure
	err := r.conn(ctx).
		Scopes(withEmployee).
		Preload("Items", orderedItems).
		Where("salary_structures.id = ?", id).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) FindActiveAt(ctx context.Context, employeeID string, day time.Time) (*SalaryStructure, error) {
	var s SalaryStructure
	err := r.conn(ctx).
		Scopes(withEmployee).
		Preload("Items", orderedItems).
		Where("salary_structures.employee_id = ?", employeeID).
		Where("salary_structures.start_date <= ?", day).
		Where("salary_structures.end_date IS NULL OR salary_structures.end_date >= ?", day).
		Order("salary_structures.start_date DESC").
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) FindInPeriod(ctx context.Context, employeeIDs []string, from, to time.Time) ([]SalaryStructure, error) {
	var items []SalaryStructure
	db := r.conn(ctx).
		Preload("Items", orderedItems).
		Where("start_date <= ?", to).
		Where("end_date IS NULL OR end_date >= ?", from)
	if len(employeeIDs) > 0 {
		db = db.Where("employee_id IN ?", employeeIDs)
	}
	err := db.Order("employee_id ASC, start_date DESC").Find(&items).Error
	return items, err
}

func (r *repository) HasOverlap(ctx context.Context, employeeID string, start time.Time, end *time.Time, excludeID string) (bool, error) {
	var count int64
	db := r.conn(ctx).Model(&SalaryStructure{}).
		Where("employee_id = ?", employeeID).
		Where("end_date IS NULL OR end_date >= ?", start)
	if end != nil {
		db = db.Where("start_date <= ?", *end)
	}
	if excludeID != "" {
		db = db.Where("id <> ?", excludeID)
	}
	err := db.Count(&count).Error
	return count > 0, err
}

func (r *repository) EmployeeExists(ctx context.Context, employeeID string) (bool, error) {
	var count int64
	err := r.conn(ctx).
		Table("employees").
		Where("id = ? AND deleted_at IS NULL", employeeID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) CountSlips(ctx context.Context, id string) (int64, error) {
	var count int64
	err := r.conn(ctx).
		Table("salary_slips").
		Where("salary_structure_id = ?", id).
		Count(&count).Error
	return count, err
}

func (r *repository) ReplaceItems(ctx context.Context, structureID string, items []SalaryStructureItem) error {
	db := r.conn(ctx)
	if err := db.Where("structure_id = ?", structureID).Delete(&SalaryStructureItem{}).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	return db.Create(&items).Error
}

func (r *repository) Update(ctx context.Context, s *SalaryStructure) error {
	return r.conn(ctx).Omit("Items").Save(s).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	db := r.conn(ctx)
	if err := db.Where("structure_id = ?", id).Delete(&SalaryStructureItem{}).Error; err != nil {
		return err
	}
	res := db.Delete(&SalaryStructure{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
