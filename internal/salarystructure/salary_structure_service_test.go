package salarystructure_test

import (
	"context"
	"testing"

	"go-hrms/internal/salarystructure"
	salarystructureerrors "go-hrms/internal/salarystructure/errors"
	"go-hrms/internal/shared/response"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fixture struct {
	db       *gorm.DB
	svc      salarystructure.Service
	employee string
}

func setupFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&salarystructure.SalaryStructure{}, &salarystructure.SalaryStructureItem{}))
	require.NoError(t, db.Exec(`CREATE TABLE employees (id TEXT PRIMARY KEY, code TEXT, full_name TEXT, deleted_at DATETIME)`).Error)
	require.NoError(t, db.Exec(`CREATE TABLE salary_slips (id TEXT PRIMARY KEY, salary_structure_id TEXT)`).Error)

	f := &fixture{db: db, employee: uuid.NewString()}
	require.NoError(t, db.Exec(`INSERT INTO employees (id, code, full_name) VALUES (?, 'EMP-000001', 'Siti Rahma')`, f.employee).Error)

	f.svc = salarystructure.NewService(sqlDB, salarystructure.NewRepository(db))
	return f
}

func strPtr(v string) *string { return &v }

func (f *fixture) request(start string, end *string) salarystructure.CreateStructureRequest {
	return salarystructure.CreateStructureRequest{
		EmployeeID: f.employee,
		Name:       "Staff " + start,
		StartDate:  start,
		EndDate:    end,
		Items: []salarystructure.ItemRequest{
			{Name: "Basic", Category: salarystructure.CategoryEarnings, Amount: decimal.RequireFromString("8000000")},
			{Name: "Transport", Category: salarystructure.CategoryEarnings, Amount: decimal.RequireFromString("750000.50")},
			{Name: "BPJS", Category: salarystructure.CategoryDeductions, Amount: decimal.RequireFromString("320000")},
		},
	}
}

func TestSalaryStructureService_Create(t *testing.T) {
	ctx := context.Background()
	f := setupFixture(t)

	res, err := f.svc.Create(ctx, f.request("2026-01-01", strPtr("2026-06-30")))
	require.NoError(t, err)
	assert.Equal(t, "Siti Rahma", res.EmployeeName)
	assert.Equal(t, "EMP-000001", res.EmployeeCode)
	assert.Len(t, res.Items, 3)
	assert.Equal(t, "8750000.5", res.TotalEarnings.String())
	assert.Equal(t, "320000", res.TotalDeductions.String())
	assert.Equal(t, "8430000.5", res.NetSalary.String())

	t.Run("overlapping version", func(t *testing.T) {
		_, err := f.svc.Create(ctx, f.request("2026-06-01", nil))
		assert.ErrorIs(t, err, salarystructureerrors.ErrPeriodOverlap)
	})

	t.Run("next version", func(t *testing.T) {
		_, err := f.svc.Create(ctx, f.request("2026-07-01", nil))
		require.NoError(t, err)
	})

	t.Run("open ended blocks later versions", func(t *testing.T) {
		_, err := f.svc.Create(ctx, f.request("2027-01-01", nil))
		assert.ErrorIs(t, err, salarystructureerrors.ErrPeriodOverlap)
	})

	t.Run("unknown employee", func(t *testing.T) {
		req := f.request("2020-01-01", strPtr("2020-12-31"))
		req.EmployeeID = uuid.NewString()
		_, err := f.svc.Create(ctx, req)
		assert.ErrorIs(t, err, salarystructureerrors.ErrEmployeeNotFound)
	})
}

func TestSalaryStructureService_Create_Validation(t *testing.T) {
	ctx := context.Background()
	f := setupFixture(t)

	tests := []struct {
		name   string
		mutate func(*salarystructure.CreateStructureRequest)
		err    error
	}{
		{
			name:   "end before start",
			mutate: func(r *salarystructure.CreateStructureRequest) { r.EndDate = strPtr("2025-12-31") },
			err:    salarystructureerrors.ErrInvalidDateRange,
		},
		{
			name:   "bad date",
			mutate: func(r *salarystructure.CreateStructureRequest) { r.StartDate = "01/01/2026" },
			err:    salarystructureerrors.ErrInvalidDate,
		},
		{
			name: "negative amount",
			mutate: func(r *salarystructure.CreateStructureRequest) {
				r.Items[2].Amount = decimal.NewFromInt(-1)
			},
			err: salarystructureerrors.ErrNegativeAmount,
		},
		{
			name: "duplicate item",
			mutate: func(r *salarystructure.CreateStructureRequest) {
				r.Items[1].Name = "basic"
			},
			err: salarystructureerrors.ErrDuplicateItem,
		},
		{
			name: "unknown category",
			mutate: func(r *salarystructure.CreateStructureRequest) {
				r.Items[0].Category = "Bonus"
			},
			err: salarystructureerrors.ErrInvalidCategory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := f.request("2026-01-01", nil)
			tt.mutate(&req)
			_, err := f.svc.Create(ctx, req)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestSalaryStructureService_GetActive(t *testing.T) {
	ctx := context.Background()
	f := setupFixture(t)

	first, err := f.svc.Create(ctx, f.request("2026-01-01", strPtr("2026-03-31")))
	require.NoError(t, err)
	second, err := f.svc.Create(ctx, f.request("2026-04-01", nil))
	require.NoError(t, err)

	res, err := f.svc.GetActive(ctx, f.employee, "2026-03-31")
	require.NoError(t, err)
	assert.Equal(t, first.ID, res.ID)

	res, err = f.svc.GetActive(ctx, f.employee, "2026-04-01")
	require.NoError(t, err)
	assert.Equal(t, second.ID, res.ID)

	_, err = f.svc.GetActive(ctx, f.employee, "2025-12-31")
	assert.ErrorIs(t, err, salarystructureerrors.ErrNoActiveStructure)

	items, total, err := f.svc.GetAll(ctx, response.PageQuery{Page: 1, PageSize: 10}, salarystructure.ListFilter{EmployeeID: f.employee, Date: "2026-02-15"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, first.ID, items[0].ID)
}

func TestSalaryStructureService_Update(t *testing.T) {
	ctx := context.Background()
	f := setupFixture(t)

	created, err := f.svc.Create(ctx, f.request("2026-01-01", nil))
	require.NoError(t, err)

	req := f.request("2026-01-01", strPtr("2026-12-31"))
	req.Items = []salarystructure.ItemRequest{
		{Name: "Basic", Category: salarystructure.CategoryEarnings, Amount: decimal.RequireFromString("9000000")},
	}
	updated, err := f.svc.Update(ctx, created.ID, req)
	require.NoError(t, err)
	require.NotNil(t, updated.EndDate)
	assert.Equal(t, "2026-12-31", *updated.EndDate)
	assert.Len(t, updated.Items, 1)
	assert.Equal(t, "9000000", updated.NetSalary.String())

	var count int64
	require.NoError(t, f.db.Model(&salarystructure.SalaryStructureItem{}).Where("structure_id = ?", created.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	_, err = f.svc.Update(ctx, uuid.NewString(), req)
	assert.ErrorIs(t, err, salarystructureerrors.ErrStructureNotFound)
}

func TestSalaryStructureService_Delete(t *testing.T) {
	ctx := context.Background()
	f := setupFixture(t)

	used, err := f.svc.Create(ctx, f.request("2026-01-01", strPtr("2026-01-31")))
	require.NoError(t, err)
	free, err := f.svc.Create(ctx, f.request("2026-02-01", nil))
	require.NoError(t, err)

	require.NoError(t, f.db.Exec(`INSERT INTO salary_slips (id, salary_structure_id) VALUES (?, ?)`, uuid.NewString(), used.ID).Error)

	assert.ErrorIs(t, f.svc.Delete(ctx, used.ID), salarystructureerrors.ErrStructureInUse)
	require.NoError(t, f.svc.Delete(ctx, free.ID))
	assert.ErrorIs(t, f.svc.Delete(ctx, free.ID), salarystructureerrors.ErrStructureNotFound)

	var count int64
	require.NoError(t, f.db.Model(&salarystructure.SalaryStructureItem{}).Where("structure_id = ?", free.ID).Count(&count).Error)
	assert.Zero(t, count)
}
