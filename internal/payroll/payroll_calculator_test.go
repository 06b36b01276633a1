package payroll

import (
	"testing"
	"time"

	"go-hrms/internal/leave"
	"go-hrms/internal/leavetype"
	"go-hrms/internal/salarystructure"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func day(v string) time.Time {
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		panic(err)
	}
	return t
}

func TestNewPeriod(t *testing.T) {
	p := NewPeriod(2, 2028)
	assert.Equal(t, day("2028-02-01"), p.Start)
	assert.Equal(t, day("2028-02-29"), p.End)

	p = NewPeriod(12, 2026)
	assert.Equal(t, day("2026-12-31"), p.End)
}

func TestCalculator_Qualifies(t *testing.T) {
	tests := []struct {
		name  string
		codes []string
		lt    leavetype.LeaveType
		want  bool
	}{
		{"unpaid type", nil, leavetype.LeaveType{Code: "UL", Name: "Unpaid", IsPaid: false}, true},
		{"sick by code", nil, leavetype.LeaveType{Code: "SICK", Name: "Sick Leave", IsPaid: true}, true},
		{"casual by name", nil, leavetype.LeaveType{Code: "CL", Name: "casual", IsPaid: true}, true},
		{"annual", nil, leavetype.LeaveType{Code: "AL", Name: "Annual", IsPaid: true}, false},
		{"configured codes", []string{"al"}, leavetype.LeaveType{Code: "AL", Name: "Annual", IsPaid: true}, true},
		{"configured codes exclude sick", []string{"UNPAID"}, leavetype.LeaveType{Code: "SICK", Name: "Sick", IsPaid: true}, false},
		{"configured codes match a name word", []string{"SICK"}, leavetype.LeaveType{Code: "SL", Name: "Sick Leave", IsPaid: true}, true},
		{"default codes match a name word", nil, leavetype.LeaveType{Code: "UPL", Name: "Unpaid-Leave", IsPaid: true}, true},
		{"name word must match whole", nil, leavetype.LeaveType{Code: "ML", Name: "Sickness Benefit", IsPaid: true}, false},
		{"configured codes keep unpaid types", []string{"UNPAID"}, leavetype.LeaveType{Code: "UL", Name: "No pay", IsPaid: false}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewCalculator(30, tt.codes).Qualifies(tt.lt))
		})
	}
}

func TestCalculator_LeaveDays(t *testing.T) {
	sick := leavetype.LeaveType{ID: uuid.New(), Code: "SICK", Name: "Sick", IsPaid: true}
	annual := leavetype.LeaveType{ID: uuid.New(), Code: "AL", Name: "Annual", IsPaid: true}
	types := map[string]leavetype.LeaveType{
		sick.ID.String():   sick,
		annual.ID.String(): annual,
	}
	app := func(lt leavetype.LeaveType, from, to, status string) leave.LeaveApplication {
		return leave.LeaveApplication{LeaveTypeID: lt.ID, StartDate: day(from), EndDate: day(to), Status: status}
	}
	c := NewCalculator(30, nil)
	p := NewPeriod(3, 2026)

	tests := []struct {
		name string
		apps []leave.LeaveApplication
		want int
	}{
		{"none", nil, 0},
		{"inside month", []leave.LeaveApplication{app(sick, "2026-03-02", "2026-03-04", leave.StatusApproved)}, 3},
		{"clipped at both ends", []leave.LeaveApplication{
			app(sick, "2026-02-27", "2026-03-01", leave.StatusApproved),
			app(sick, "2026-03-31", "2026-04-03", leave.StatusApproved),
		}, 2},
		{"paid type ignored", []leave.LeaveApplication{app(annual, "2026-03-10", "2026-03-12", leave.StatusApproved)}, 0},
		{"pending ignored", []leave.LeaveApplication{app(sick, "2026-03-10", "2026-03-12", leave.StatusPending)}, 0},
		{"same day counted once", []leave.LeaveApplication{
			app(sick, "2026-03-10", "2026-03-11", leave.StatusApproved),
			app(sick, "2026-03-11", "2026-03-12", leave.StatusApproved),
		}, 3},
		{"unknown type", []leave.LeaveApplication{{LeaveTypeID: uuid.New(), StartDate: day("2026-03-01"), EndDate: day("2026-03-01"), Status: leave.StatusApproved}}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.LeaveDays(p, tt.apps, types))
		})
	}
}

func TestCalculator_Compute(t *testing.T) {
	st := salarystructure.SalaryStructure{Items: []salarystructure.SalaryStructureItem{
		{Name: "Basic", Category: salarystructure.CategoryEarnings, Amount: decimal.RequireFromString("7000000")},
		{Name: "Meal", Category: salarystructure.CategoryEarnings, Amount: decimal.RequireFromString("450000.50")},
		{Name: "Tax", Category: salarystructure.CategoryDeductions, Amount: decimal.RequireFromString("210000")},
	}}
	c := NewCalculator(30, nil)

	got := c.Compute(decimal.RequireFromString("7000000"), st, 1)
	assert.Equal(t, "7450000.5", got.TotalEarnings.String())
	assert.Equal(t, "210000", got.TotalDeductions.String())
	assert.Equal(t, "233333.33", got.LeaveDeduction.String())
	assert.Equal(t, "7006667.17", got.NetSalary.String())
	assert.True(t, got.NetSalary.Equal(got.TotalEarnings.Sub(got.TotalDeductions).Sub(got.LeaveDeduction)))

	none := c.Compute(decimal.RequireFromString("7000000"), st, 0)
	assert.True(t, none.LeaveDeduction.IsZero())
	assert.Equal(t, "7240000.5", none.NetSalary.String())

	t.Run("net may go negative", func(t *testing.T) {
		got := NewCalculator(20, nil).Compute(decimal.RequireFromString("1000000"), salarystructure.SalaryStructure{}, 30)
		assert.Equal(t, "-1500000", got.NetSalary.String())
	})
}

func TestBasicSalary(t *testing.T) {
	st := salarystructure.SalaryStructure{Items: []salarystructure.SalaryStructureItem{
		{Name: "Basic Salary", Category: salarystructure.CategoryEarnings, Amount: decimal.RequireFromString("5200000")},
	}}
	assert.Equal(t, "6000000", basicSalary(PayrollEmployee{BasicSalary: decimal.RequireFromString("6000000")}, st).String())
	assert.Equal(t, "5200000", basicSalary(PayrollEmployee{}, st).String())
	assert.True(t, basicSalary(PayrollEmployee{}, salarystructure.SalaryStructure{}).IsZero())
}

func TestPayslipLines(t *testing.T) {
	slip := SalarySlip{
		Month:           3,
		Year:            2026,
		EmployeeName:    "Siti Rahma",
		EmployeeCode:    "EMP-000001",
		BasicSalary:     decimal.RequireFromString("6000000"),
		TotalEarnings:   decimal.RequireFromString("6500000"),
		TotalDeductions: decimal.RequireFromString("200000"),
		WorkingDays:     30,
		LeaveDays:       2,
		LeaveDeduction:  decimal.RequireFromString("400000"),
		NetSalary:       decimal.RequireFromString("5900000"),
		Items: []SalarySlipItem{
			{Name: "Basic", Category: salarystructure.CategoryEarnings, Amount: decimal.RequireFromString("6000000")},
			{Name: "BPJS", Category: salarystructure.CategoryDeductions, Amount: decimal.RequireFromString("200000")},
		},
	}
	lines := payslipLines(slip)
	assert.Equal(t, "PAYSLIP MARCH 2026", lines[0])
	assert.Contains(t, lines, "Employee      : Siti Rahma (EMP-000001)")
	assert.Contains(t, lines[len(lines)-1], "5,900,000.00")
	assert.Equal(t, "payslip-EMP-000001-2026-03.pdf", payslipFileName(slip))

	pdf, err := renderPayslip(slip)
	assert.NoError(t, err)
	assert.True(t, len(pdf) > 0)
	assert.Equal(t, "%PDF-1.4", string(pdf[:8]))
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0.00"},
		{"999.5", "999.50"},
		{"1000", "1,000.00"},
		{"5900000", "5,900,000.00"},
		{"-1234567.891", "-1,234,567.89"},
		{"123456789012345678.25", "123,456,789,012,345,678.25"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, formatAmount(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestPdfEscape(t *testing.T) {
	assert.Equal(t, `Zoe Bronte \(HR\) \\ ok`, pdfEscape(`Zoë Brontë (HR) \ ok`))
	assert.Equal(t, "Jose Nunez", pdfEscape("José Núñez"))
	assert.Equal(t, "?? Wang", pdfEscape("王芳 Wang"))
}
