package payroll

import (
	"strings"
	"time"

	"go-hrms/internal/leave"
	"go-hrms/internal/leavetype"
	"go-hrms/internal/salarystructure"

	"github.com/shopspring/decimal"
)

// Period is one calendar month, both ends inclusive.
type Period struct {
	Month int
	Year  int
	Start time.Time
	End   time.Time
}

func NewPeriod(month, year int) Period {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return Period{Month: month, Year: year, Start: start, End: start.AddDate(0, 1, -1)}
}

// Calculator turns a salary structure and approved leave into slip amounts.
// It does no I/O.
type Calculator struct {
	workingDays int
	deductible  map[string]struct{}
}

// NewCalculator uses leavetype's built-in codes when codes is empty.
func NewCalculator(workingDays int, codes []string) Calculator {
	if workingDays <= 0 {
		workingDays = 30
	}
	c := Calculator{workingDays: workingDays}
	if len(codes) > 0 {
		c.deductible = make(map[string]struct{}, len(codes))
		for _, code := range codes {
			c.deductible[strings.ToUpper(strings.TrimSpace(code))] = struct{}{}
		}
	}
	return c
}

func (c Calculator) WorkingDays() int {
	return c.workingDays
}

// Qualifies reports whether approved leave of type lt reduces pay.
func (c Calculator) Qualifies(lt leavetype.LeaveType) bool {
	if c.deductible == nil {
		return lt.DeductsPay()
	}
	if !lt.IsPaid {
		return true
	}
	return lt.Matches(func(v string) bool {
		_, ok := c.deductible[strings.ToUpper(strings.TrimSpace(v))]
		return ok
	})
}

// LeaveDays counts the distinct calendar days of qualifying applications
// that fall inside the period. Types missing from types never qualify.
func (c Calculator) LeaveDays(p Period, apps []leave.LeaveApplication, types map[string]leavetype.LeaveType) int {
	days := make(map[string]struct{})
	for _, app := range apps {
		if app.Status != leave.StatusApproved {
			continue
		}
		lt, ok := types[app.LeaveTypeID.String()]
		if !ok || !c.Qualifies(lt) {
			continue
		}
		from, to := app.StartDate, app.EndDate
		if from.Before(p.Start) {
			from = p.Start
		}
		if to.After(p.End) {
			to = p.End
		}
		for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
			days[d.Format(dateLayout)] = struct{}{}
		}
	}
	return len(days)
}

type SlipAmounts struct {
	BasicSalary     decimal.Decimal
	TotalEarnings   decimal.Decimal
	TotalDeductions decimal.Decimal
	LeaveDays       int
	LeaveDeduction  decimal.Decimal
	NetSalary       decimal.Decimal
}

// Compute applies
//
//	leave_deduction = round2(basic / working_days * leave_days)
//	net             = earnings - deductions - leave_deduction
func (c Calculator) Compute(basic decimal.Decimal, st salarystructure.SalaryStructure, leaveDays int) SlipAmounts {
	earnings, deductions := st.Totals()
	leaveDeduction := decimal.Zero
	if leaveDays > 0 && basic.IsPositive() {
		leaveDeduction = basic.
			Div(decimal.NewFromInt(int64(c.workingDays))).
			Mul(decimal.NewFromInt(int64(leaveDays))).
			Round(2)
	}
	return SlipAmounts{
		BasicSalary:     basic,
		TotalEarnings:   earnings,
		TotalDeductions: deductions,
		LeaveDays:       leaveDays,
		LeaveDeduction:  leaveDeduction,
		NetSalary:       earnings.Sub(deductions).Sub(leaveDeduction),
	}
}

// basicSalary prefers the employee's recorded basic salary and falls back to
// the structure's "Basic" earnings line.
func basicSalary(emp PayrollEmployee, st salarystructure.SalaryStructure) decimal.Decimal {
	if emp.BasicSalary.IsPositive() {
		return emp.BasicSalary
	}
	for _, it := range st.Items {
		if it.Category != salarystructure.CategoryEarnings {
			continue
		}
		switch strings.ToUpper(strings.TrimSpace(it.Name)) {
		case "BASIC", "BASIC SALARY":
			return it.Amount
		}
	}
	return decimal.Zero
}
