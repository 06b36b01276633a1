package payroll

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

	CreateRun(ctx context.Context, p *PayrollProcessing) error
	FindRuns(ctx context.Context, q response.PageQuery, f RunFilter) ([]PayrollProcessing, int64, error)
	FindRunByID(ctx context.Context, id string) (*PayrollProcessing, error)
	// FindRunByPeriod returns gorm.ErrRecordNotFound when the month has no run.
	FindRunByPeriod(ctx context.Context, month, year int) (*PayrollProcessing, error)
	UpdateRun(ctx context.Context, p *PayrollProcessing) error
	// DeleteRun removes the run together with its slips.
	DeleteRun(ctx context.Context, id string) error

	// FindEligibleEmployees returns ACTIVE employees who joined on or before
	// joinedBy. An empty ids means everyone.
	FindEligibleEmployees(ctx context.Context, ids []string, joinedBy time.Time) ([]PayrollEmployee, error)
	FindEmployeesByIDs(ctx context.Context, ids []string) ([]PayrollEmployee, error)

	CreateSlips(ctx context.Context, slips []SalarySlip) error
	DeleteSlipsByRun(ctx context.Context, payrollID string) error
	FindSlips(ctx context.Context, q response.PageQuery, f SlipFilter) ([]SalarySlip, int64, error)
	FindSlipsByRun(ctx context.Context, payrollID string) ([]SalarySlip, error)
	FindSlipByID(ctx context.Context, id string) (*SalarySlip, error)
	UpdateSlip(ctx context.Context, s *SalarySlip) error
	MarkSlipsPaid(ctx context.Context, payrollID string) error
	DeleteSlip(ctx context.Context, id string) error
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

func withEmployee(db *gorm.DB) *gorm.DB {
	return db.
		Select("salary_slips.*, employees.full_name AS employee_name, employees.code AS employee_code").
		Joins("LEFT JOIN employees ON employees.id = salary_slips.employee_id")
}

func (r *repository) CreateRun(ctx context.Context, p *PayrollProcessing) error {
	return r.conn(ctx).Create(p).Error
}

func (r *repository) FindRuns(ctx context.Context, q response.PageQuery, f RunFilter) ([]PayrollProcessing, int64, error) {
	var (
		items []PayrollProcessing
		total int64
	)
	base := r.conn(ctx).Model(&PayrollProcessing{}).Scopes(scope.Equal("status", f.Status))
	if f.Year > 0 {
		base = base.Where("year = ?", f.Year)
	}
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := base.Session(&gorm.Session{}).
		Scopes(scope.Paginate(q.Page, q.PageSize)).
		Order("year DESC, month DESC").
		Find(&items).Error
	return items, total, err
}

func (r *repository) FindRunByID(ctx context.Context, id string) (*PayrollProcessing, error) {
	var p PayrollProcessing
	if err := r.conn(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) FindRunByPeriod(ctx context.Context, month, year int) (*PayrollProcessing, error) {
	var p PayrollProcessing
	if err := r.conn(ctx).Where("month = ? AND year = ?", month, year).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) UpdateRun(ctx context.Context, p *PayrollProcessing) error {
	return r.conn(ctx).Save(p).Error
}

func (r *repository) DeleteRun(ctx context.Context, id string) error {
	if err := r.DeleteSlipsByRun(ctx, id); err != nil {
		return err
	}
	res := r.conn(ctx).Delete(&PayrollProcessing{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) FindEligibleEmployees(ctx context.Context, ids []string, joinedBy time.Time) ([]PayrollEmployee, error) {
	var items []PayrollEmployee
	db := r.conn(ctx).
		Where("deleted_at IS NULL").
		Where("status = ?", "ACTIVE").
		Where("joining_date <= ?", joinedBy)
	if len(ids) > 0 {
		db = db.Where("id IN ?", ids)
	}
	err := db.Order("code ASC").Find(&items).Error
	return items, err
}

func (r *repository) FindEmployeesByIDs(ctx context.Context, ids []string) ([]PayrollEmployee, error) {
	var items []PayrollEmployee
	if len(ids) == 0 {
		return items, nil
	}
	err := r.conn(ctx).Where("id IN ?", ids).Find(&items).Error
	return items, err
}

func (r *repository) CreateSlips(ctx context.Context, slips []SalarySlip) error {
	if len(slips) == 0 {
		return nil
	}
	return r.conn(ctx).Create(&slips).Error
}

func (r *repository) DeleteSlipsByRun(ctx context.Context, payrollID string) error {
	db := r.conn(ctx)
	err := db.Where("slip_id IN (?)", db.Model(&SalarySlip{}).Select("id").Where("payroll_id = ?", payrollID)).
		Delete(&SalarySlipItem{}).Error
	if err != nil {
		return err
	}
	return db.Where("payroll_id = ?", payrollID).Delete(&SalarySlip{}).Error
}

func (r *repository) FindSlips(ctx context.Context, q response.PageQuery, f SlipFilter) ([]SalarySlip, int64, error) {
	var (
		items []SalarySlip
		total int64
	)
	base := r.conn(ctx).Model(&SalarySlip{}).Scopes(
		scope.Equal("salary_slips.payroll_id", f.PayrollID),
		scope.Equal("salary_slips.employee_id", f.EmployeeID),
		scope.Equal("salary_slips.status", f.Status),
	)
	if f.Month > 0 {
		base = base.Where("salary_slips.month = ?", f.Month)
	}
	if f.Year > 0 {
		base = base.Where("salary_slips.year = ?", f.Year)
	}
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := base.Session(&gorm.Session{}).
		Scopes(withEmployee, scope.Paginate(q.Page, q.PageSize)).
		Order("salary_slips.year DESC, salary_slips.month DESC, employees.code ASC").
		Find(&items).Error
	return items, total, err
}

func (r *repository) FindSlipsByRun(ctx context.Context, payrollID string) ([]SalarySlip, error) {
	var items []SalarySlip
	err := r.conn(ctx).
		Scopes(withEmployee).
		Preload("Items").
		Where("salary_slips.payroll_id = ?", payrollID).
		Order("employees.code ASC").
		Find(&items).Error
	return items, err
}

func (r *repository) FindSlipByID(ctx context.Context, id string) (*SalarySlip, error) {
	var s SalarySlip
	err := r.conn(ctx).
		Scopes(withEmployee).
		Preload("Items").
		Where("salary_slips.id = ?", id).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) UpdateSlip(ctx context.Context, s *SalarySlip) error {
	return r.conn(ctx).Omit("Items").Save(s).Error
}

func (r *repository) MarkSlipsPaid(ctx context.Context, payrollID string) error {
	return r.conn(ctx).
		Model(&SalarySlip{}).
		Where("payroll_id = ?", payrollID).
		Update("status", SlipStatusPaid).Error
}

func (r *repository) DeleteSlip(ctx context.Context, id string) error {
	db := r.conn(ctx)
	if err := db.Where("slip_id = ?", id).Delete(&SalarySlipItem{}).Error; err != nil {
		return err
	}
	res := db.Delete(&SalarySlip{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
