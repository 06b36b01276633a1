package payroll_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"go-hrms/internal/events"
	"go-hrms/internal/leave"
	"go-hrms/internal/leavetype"
	"go-hrms/internal/messaging/kafka"
	"go-hrms/internal/payroll"
	payrollerrors "go-hrms/internal/payroll/errors"
	"go-hrms/internal/salarystructure"
	"go-hrms/internal/shared/apperror"
	"go-hrms/internal/shared/response"
	"go-hrms/internal/storage"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fakeOutboxRepository struct {
	events []kafka.OutboxEvent
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.events = append(f.events, event)
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error { return nil }

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

type memStorage struct {
	objects map[string][]byte
}

func (m *memStorage) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	m.objects[key] = data
	return "https://files.example.test/" + key, nil
}

func (m *memStorage) Get(ctx context.Context, key string) ([]byte, error) {
	data, ok := m.objects[key]
	if !ok {
		return nil, storage.ErrObjectNotFound
	}
	return data, nil
}

type fixture struct {
	db     *gorm.DB
	svc    payroll.Service
	outbox *fakeOutboxRepository
	store  *memStorage

	actor  string
	siti   string
	budi   string
	andi   string
	newbie string
	sick   uuid.UUID
	unpaid uuid.UUID
	annual uuid.UUID
}

func date(v string) time.Time {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		panic(err)
	}
	return t
}

func datePtr(v string) *time.Time {
	t := date(v)
	return &t
}

func setupFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&payroll.PayrollProcessing{},
		&payroll.SalarySlip{},
		&payroll.SalarySlipItem{},
		&salarystructure.SalaryStructure{},
		&salarystructure.SalaryStructureItem{},
		&leavetype.LeaveType{},
		&leave.LeaveApplication{},
	))
	require.NoError(t, db.Exec(`CREATE TABLE employees (
		id TEXT PRIMARY KEY, code TEXT, full_name TEXT, basic_salary NUMERIC,
		joining_date DATETIME, status TEXT, deleted_at DATETIME)`).Error)

	f := &fixture{
		db:     db,
		outbox: &fakeOutboxRepository{},
		store:  &memStorage{objects: map[string][]byte{}},
		actor:  uuid.NewString(),
		siti:   uuid.NewString(),
		budi:   uuid.NewString(),
		andi:   uuid.NewString(),
		newbie: uuid.NewString(),
		sick:   uuid.New(),
		unpaid: uuid.New(),
		annual: uuid.New(),
	}

	f.employee(t, f.siti, "EMP-000001", "Siti Rahma", "6000000", "2024-01-10")
	f.employee(t, f.budi, "EMP-000002", "Budi Santoso", "0", "2025-06-01")
	f.employee(t, f.andi, "EMP-000003", "Andi Wijaya", "5000000", "2025-02-01")
	f.employee(t, f.newbie, "EMP-000004", "Dewi Lestari", "5000000", "2026-04-05")

	for _, lt := range []leavetype.LeaveType{
		{ID: f.sick, Code: "SICK", Name: "Sick Leave", IsPaid: true, IsActive: true},
		{ID: f.unpaid, Code: "UL", Name: "Leave Without Pay", IsPaid: false, IsActive: true},
		{ID: f.annual, Code: "AL", Name: "Annual Leave", IsPaid: true, IsActive: true},
	} {
		require.NoError(t, db.Select("*").Create(&lt).Error)
	}

	// Siti changed structure mid month; the newer version wins.
	f.structure(t, f.siti, "2025-01-01", datePtr("2026-03-14"),
		item("Basic", salarystructure.CategoryEarnings, "5000000"),
		item("Transport", salarystructure.CategoryEarnings, "400000"),
	)
	f.structure(t, f.siti, "2026-03-15", nil,
		item("Basic", salarystructure.CategoryEarnings, "6000000"),
		item("Transport", salarystructure.CategoryEarnings, "500000"),
		item("BPJS", salarystructure.CategoryDeductions, "200000"),
	)
	f.structure(t, f.budi, "2025-06-01", nil,
		item("Basic Salary", salarystructure.CategoryEarnings, "4500000"),
		item("Meal", salarystructure.CategoryEarnings, "300000.25"),
		item("Tax", salarystructure.CategoryDeductions, "150000"),
	)

	f.leave(t, f.siti, f.sick, "2026-03-30", "2026-04-02", leave.StatusApproved)
	f.leave(t, f.siti, f.annual, "2026-03-10", "2026-03-12", leave.StatusApproved)
	f.leave(t, f.siti, f.unpaid, "2026-03-20", "2026-03-20", leave.StatusPending)
	f.leave(t, f.budi, f.unpaid, "2026-03-05", "2026-03-07", leave.StatusApproved)
	f.leave(t, f.budi, f.sick, "2026-02-20", "2026-02-21", leave.StatusApproved)

	f.svc = payroll.NewService(
		sqlDB,
		payroll.NewRepository(db),
		salarystructure.NewRepository(db),
		leave.NewRepository(db),
		leavetype.NewRepository(db),
		f.outbox,
		f.store,
		payroll.NewCalculator(30, nil),
	)
	return f
}

func item(name, category, amount string) salarystructure.SalaryStructureItem {
	return salarystructure.SalaryStructureItem{Name: name, Category: category, Amount: decimal.RequireFromString(amount)}
}

func (f *fixture) employee(t *testing.T, id, code, name, basic, joined string) {
	t.Helper()
	require.NoError(t, f.db.Exec(
		`INSERT INTO employees (id, code, full_name, basic_salary, joining_date, status) VALUES (?, ?, ?, ?, ?, 'ACTIVE')`,
		id, code, name, basic, date(joined),
	).Error)
}

func (f *fixture) structure(t *testing.T, employeeID, start string, end *time.Time, items ...salarystructure.SalaryStructureItem) {
	t.Helper()
	st := salarystructure.SalaryStructure{
		ID:         uuid.New(),
		EmployeeID: uuid.MustParse(employeeID),
		Name:       "Structure " + start,
		StartDate:  date(start),
		EndDate:    end,
	}
	for i := range items {
		items[i].ID = uuid.New()
		items[i].SortOrder = i + 1
	}
	st.Items = items
	require.NoError(t, f.db.Create(&st).Error)
}

func (f *fixture) leave(t *testing.T, employeeID string, typeID uuid.UUID, from, to, status string) {
	t.Helper()
	app := leave.LeaveApplication{
		ID:          uuid.New(),
		EmployeeID:  uuid.MustParse(employeeID),
		LeaveTypeID: typeID,
		StartDate:   date(from),
		EndDate:     date(to),
		TotalDays:   int(date(to).Sub(date(from)).Hours()/24) + 1,
		Status:      status,
	}
	require.NoError(t, f.db.Create(&app).Error)
}

func (f *fixture) slipOf(t *testing.T, payrollID, employeeID string) payroll.SlipResponse {
	t.Helper()
	slips, total, err := f.svc.GetSlips(context.Background(), response.PageQuery{Page: 1, PageSize: 50}, payroll.SlipFilter{
		PayrollID:  payrollID,
		EmployeeID: employeeID,
	})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	return slips[0]
}

func TestPayrollService_Process(t *testing.T) {
	ctx := context.Background()
	f := setupFixture(t)

	res, err := f.svc.Process(ctx, f.actor, payroll.ProcessPayrollRequest{Month: 3, Year: 2026})
	require.NoError(t, err)

	run := res.Payroll
	assert.Equal(t, payroll.StatusProcessed, run.Status)
	assert.Equal(t, 2, res.Slips)
	assert.Equal(t, 2, run.EmployeeCount)
	require.Len(t, res.Skipped, 1)
	assert.Equal(t, f.andi, res.Skipped[0].EmployeeID)

	assert.Equal(t, "11300000.25", run.TotalEarnings.String())
	assert.Equal(t, "350000", run.TotalDeductions.String())
	assert.Equal(t, "850000", run.TotalLeaveDeductions.String())
	assert.Equal(t, "10100000.25", run.TotalNetSalary.String())
	assert.True(t, run.TotalNetSalary.Equal(run.TotalEarnings.Sub(run.TotalDeductions).Sub(run.TotalLeaveDeductions)))

	t.Run("slip amounts", func(t *testing.T) {
		siti := f.slipOf(t, run.ID, f.siti)
		assert.Equal(t, "6500000", siti.TotalEarnings.String())
		assert.Equal(t, "200000", siti.TotalDeductions.String())
		assert.Equal(t, 2, siti.LeaveDays)
		assert.Equal(t, "400000", siti.LeaveDeduction.String())
		assert.Equal(t, "5900000", siti.NetSalary.String())
		assert.Equal(t, 30, siti.WorkingDays)

		budi := f.slipOf(t, run.ID, f.budi)
		assert.Equal(t, "4500000", budi.BasicSalary.String())
		assert.Equal(t, 3, budi.LeaveDays)
		assert.Equal(t, "450000", budi.LeaveDeduction.String())
		assert.Equal(t, "4200000.25", budi.NetSalary.String())

		detail, err := f.svc.GetSlip(ctx, budi.ID)
		require.NoError(t, err)
		assert.Len(t, detail.Items, 3)
		assert.Equal(t, "Budi Santoso", detail.EmployeeName)
	})

	t.Run("queues payroll processed event", func(t *testing.T) {
		require.Len(t, f.outbox.events, 1)
		e := f.outbox.events[0]
		assert.Equal(t, events.PayrollProcessed, e.EventType)
		assert.Equal(t, events.PayrollTopic, e.Topic)

		var payload events.PayrollProcessedEvent
		require.NoError(t, json.Unmarshal(e.Payload, &payload))
		assert.Equal(t, run.ID, payload.PayrollID)
		assert.Equal(t, 2, payload.SlipCount)
	})

	t.Run("reprocessing replaces slips", func(t *testing.T) {
		again, err := f.svc.Process(ctx, f.actor, payroll.ProcessPayrollRequest{Month: 3, Year: 2026})
		require.NoError(t, err)
		assert.Equal(t, run.ID, again.Payroll.ID)

		_, total, err := f.svc.GetSlips(ctx, response.PageQuery{Page: 1, PageSize: 50}, payroll.SlipFilter{PayrollID: run.ID})
		require.NoError(t, err)
		assert.EqualValues(t, 2, total)

		var items int64
		require.NoError(t, f.db.Model(&payroll.SalarySlipItem{}).Count(&items).Error)
		assert.EqualValues(t, 6, items)
	})
}

func TestPayrollService_Process_SelectedEmployees(t *testing.T) {
	ctx := context.Background()
	f := setupFixture(t)

	res, err := f.svc.Process(ctx, f.actor, payroll.ProcessPayrollRequest{
		Month:       3,
		Year:        2026,
		EmployeeIDs: []string{f.siti, f.newbie},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Slips)
	require.Len(t, res.Skipped, 1)
	assert.Equal(t, f.newbie, res.Skipped[0].EmployeeID)
	assert.Equal(t, "Dewi Lestari", res.Skipped[0].EmployeeName)
	assert.Equal(t, "5900000", res.Payroll.TotalNetSalary.String())
}

func TestPayrollService_Process_NoEligibleEmployees(t *testing.T) {
	ctx := context.Background()
	f := setupFixture(t)

	_, err := f.svc.Process(ctx, f.actor, payroll.ProcessPayrollRequest{
		Month:       3,
		Year:        2026,
		EmployeeIDs: []string{f.andi},
	})
	require.ErrorIs(t, err, payrollerrors.ErrNoEligibleEmployees)

	httpErr := apperror.ToHTTP(err)
	skipped, ok := httpErr.Details.([]payroll.SkippedEmployee)
	require.True(t, ok)
	assert.Len(t, skipped, 1)

	var runs int64
	require.NoError(t, f.db.Model(&payroll.PayrollProcessing{}).Count(&runs).Error)
	assert.Zero(t, runs)
	assert.Empty(t, f.outbox.events)
}

func TestPayrollService_Process_Validation(t *testing.T) {
	ctx := context.Background()
	f := setupFixture(t)

	_, err := f.svc.Process(ctx, "not-a-uuid", payroll.ProcessPayrollRequest{Month: 3, Year: 2026})
	assert.ErrorIs(t, err, payrollerrors.ErrInvalidActorID)

	_, err = f.svc.Process(ctx, f.actor, payroll.ProcessPayrollRequest{Month: 13, Year: 2026})
	assert.ErrorIs(t, err, payrollerrors.ErrInvalidPeriod)

	_, err = f.svc.Process(ctx, f.actor, payroll.ProcessPayrollRequest{Month: 3, Year: 2026, EmployeeIDs: []string{"x"}})
	assert.ErrorIs(t, err, payrollerrors.ErrInvalidEmployeeID)
}

func TestPayrollService_CreateAndDelete(t *testing.T) {
	ctx := context.Background()
	f := setupFixture(t)

	draft, err := f.svc.Create(ctx, f.actor, payroll.CreatePayrollRequest{Month: 4, Year: 2026})
	require.NoError(t, err)
	assert.Equal(t, payroll.StatusDraft, draft.Status)

	_, err = f.svc.Create(ctx, f.actor, payroll.CreatePayrollRequest{Month: 4, Year: 2026})
	assert.ErrorIs(t, err, payrollerrors.ErrPayrollExists)

	t.Run("draft can be deleted", func(t *testing.T) {
		require.NoError(t, f.svc.Delete(ctx, draft.ID))
		_, err := f.svc.GetByID(ctx, draft.ID)
		assert.ErrorIs(t, err, payrollerrors.ErrPayrollNotFound)
	})

	t.Run("processed can be deleted with its slips", func(t *testing.T) {
		res, err := f.svc.Process(ctx, f.actor, payroll.ProcessPayrollRequest{Month: 3, Year: 2026})
		require.NoError(t, err)
		require.NoError(t, f.svc.Delete(ctx, res.Payroll.ID))

		var slips, items int64
		require.NoError(t, f.db.Model(&payroll.SalarySlip{}).Count(&slips).Error)
		require.NoError(t, f.db.Model(&payroll.SalarySlipItem{}).Count(&items).Error)
		assert.Zero(t, slips)
		assert.Zero(t, items)
	})

	t.Run("paid cannot be deleted", func(t *testing.T) {
		res, err := f.svc.Process(ctx, f.actor, payroll.ProcessPayrollRequest{Month: 3, Year: 2026})
		require.NoError(t, err)
		_, err = f.svc.MarkPaid(ctx, res.Payroll.ID)
		require.NoError(t, err)

		assert.ErrorIs(t, f.svc.Delete(ctx, res.Payroll.ID), payrollerrors.ErrDeletePaid)

		got, err := f.svc.GetByID(ctx, res.Payroll.ID)
		require.NoError(t, err)
		assert.Equal(t, payroll.StatusPaid, got.Status)
	})

	t.Run("missing", func(t *testing.T) {
		assert.ErrorIs(t, f.svc.Delete(ctx, uuid.NewString()), payrollerrors.ErrPayrollNotFound)
	})
}

func TestPayrollService_MarkPaid(t *testing.T) {
	ctx := context.Background()
	f := setupFixture(t)

	draft, err := f.svc.Create(ctx, f.actor, payroll.CreatePayrollRequest{Month: 3, Year: 2026})
	require.NoError(t, err)
	_, err = f.svc.MarkPaid(ctx, draft.ID)
	assert.ErrorIs(t, err, payrollerrors.ErrInvalidStatusTransition)

	res, err := f.svc.Process(ctx, f.actor, payroll.ProcessPayrollRequest{Month: 3, Year: 2026})
	require.NoError(t, err)
	assert.Equal(t, draft.ID, res.Payroll.ID)

	paid, err := f.svc.MarkPaid(ctx, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, payroll.StatusPaid, paid.Status)
	assert.NotNil(t, paid.PaidAt)

	slip := f.slipOf(t, draft.ID, f.siti)
	assert.Equal(t, payroll.SlipStatusPaid, slip.Status)

	_, err = f.svc.Process(ctx, f.actor, payroll.ProcessPayrollRequest{Month: 3, Year: 2026})
	assert.ErrorIs(t, err, payrollerrors.ErrPayrollAlreadyPaid)

	_, err = f.svc.UpdateSlip(ctx, slip.ID, payroll.UpdateSlipRequest{Remarks: strPtr("late")})
	assert.ErrorIs(t, err, payrollerrors.ErrSlipPaid)
	assert.ErrorIs(t, f.svc.DeleteSlip(ctx, slip.ID), payrollerrors.ErrSlipPaid)
}

func strPtr(v string) *string { return &v }

func TestPayrollService_Slips(t *testing.T) {
	ctx := context.Background()
	f := setupFixture(t)

	res, err := f.svc.Process(ctx, f.actor, payroll.ProcessPayrollRequest{Month: 3, Year: 2026})
	require.NoError(t, err)
	siti := f.slipOf(t, res.Payroll.ID, f.siti)

	t.Run("update remarks and status", func(t *testing.T) {
		updated, err := f.svc.UpdateSlip(ctx, siti.ID, payroll.UpdateSlipRequest{
			Remarks: strPtr("  bonus next month "),
			Status:  strPtr(payroll.SlipStatusPaid),
		})
		require.NoError(t, err)
		assert.Equal(t, "bonus next month", updated.Remarks)
		assert.Equal(t, payroll.SlipStatusPaid, updated.Status)
	})

	t.Run("reprocess keeps paid slip", func(t *testing.T) {
		_, err := f.svc.Process(ctx, f.actor, payroll.ProcessPayrollRequest{Month: 3, Year: 2026})
		assert.ErrorIs(t, err, payrollerrors.ErrRunHasPaidSlips)

		got, err := f.svc.GetSlip(ctx, siti.ID)
		require.NoError(t, err)
		assert.Equal(t, payroll.SlipStatusPaid, got.Status)
		assert.Equal(t, "bonus next month", got.Remarks)
	})

	t.Run("delete recomputes run totals", func(t *testing.T) {
		budi := f.slipOf(t, res.Payroll.ID, f.budi)
		require.NoError(t, f.svc.DeleteSlip(ctx, budi.ID))

		run, err := f.svc.GetByID(ctx, res.Payroll.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, run.EmployeeCount)
		assert.Equal(t, "6500000", run.TotalEarnings.String())
		assert.Equal(t, "5900000", run.TotalNetSalary.String())

		_, err = f.svc.GetSlip(ctx, budi.ID)
		assert.ErrorIs(t, err, payrollerrors.ErrSlipNotFound)
	})

	t.Run("status paid needs a processed run", func(t *testing.T) {
		draft, err := f.svc.Create(ctx, f.actor, payroll.CreatePayrollRequest{Month: 5, Year: 2026})
		require.NoError(t, err)

		slip := payroll.SalarySlip{
			ID:          uuid.New(),
			PayrollID:   uuid.MustParse(draft.ID),
			EmployeeID:  uuid.MustParse(f.andi),
			Month:       5,
			Year:        2026,
			WorkingDays: 30,
			Status:      payroll.SlipStatusGenerated,
		}
		require.NoError(t, f.db.Create(&slip).Error)

		_, err = f.svc.UpdateSlip(ctx, slip.ID.String(), payroll.UpdateSlipRequest{Status: strPtr(payroll.SlipStatusPaid)})
		assert.ErrorIs(t, err, payrollerrors.ErrInvalidSlipStatus)
	})
}

func TestPayrollService_Payslips(t *testing.T) {
	ctx := context.Background()
	f := setupFixture(t)

	res, err := f.svc.Process(ctx, f.actor, payroll.ProcessPayrollRequest{Month: 3, Year: 2026})
	require.NoError(t, err)
	siti := f.slipOf(t, res.Payroll.ID, f.siti)

	t.Run("download renders before generation", func(t *testing.T) {
		pdf, err := f.svc.DownloadSlip(ctx, siti.ID)
		require.NoError(t, err)
		assert.Equal(t, "application/pdf", pdf.ContentType)
		assert.Equal(t, "payslip-EMP-000001-2026-03.pdf", pdf.FileName)
		assert.Contains(t, string(pdf.Content), "Siti Rahma")
	})

	written, err := f.svc.GeneratePayslips(ctx, res.Payroll.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, written)
	assert.Len(t, f.store.objects, 2)

	got, err := f.svc.GetSlip(ctx, siti.ID)
	require.NoError(t, err)
	require.NotNil(t, got.PayslipURL)
	assert.Contains(t, *got.PayslipURL, "payslips/2026/03/"+siti.ID+".pdf")

	t.Run("second run writes nothing", func(t *testing.T) {
		written, err := f.svc.GeneratePayslips(ctx, res.Payroll.ID)
		require.NoError(t, err)
		assert.Zero(t, written)
	})

	t.Run("download serves stored file", func(t *testing.T) {
		f.store.objects["payslips/2026/03/"+siti.ID+".pdf"] = []byte("stored")
		pdf, err := f.svc.DownloadSlip(ctx, siti.ID)
		require.NoError(t, err)
		assert.Equal(t, "stored", string(pdf.Content))
	})

	t.Run("unknown run", func(t *testing.T) {
		_, err := f.svc.GeneratePayslips(ctx, uuid.NewString())
		assert.ErrorIs(t, err, payrollerrors.ErrPayrollNotFound)
	})
}
