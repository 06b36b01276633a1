package payroll

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"go-hrms/internal/events"
	"go-hrms/internal/leave"
	"go-hrms/internal/leavetype"
	"go-hrms/internal/messaging/kafka"
	payrollerrors "go-hrms/internal/payroll/errors"
	"go-hrms/internal/salarystructure"
	"go-hrms/internal/shared/contextutil"
	"go-hrms/internal/shared/response"
	"go-hrms/internal/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	dateLayout = "2006-01-02"
	pdfType    = "application/pdf"
)

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actorID string, req CreatePayrollRequest) (PayrollResponse, error)
	GetAll(ctx context.Context, q response.PageQuery, f RunFilter) ([]PayrollResponse, int64, error)
	GetByID(ctx context.Context, id string) (PayrollResponse, error)
	Process(ctx context.Context, actorID string, req ProcessPayrollRequest) (ProcessResult, error)
	MarkPaid(ctx context.Context, id string) (PayrollResponse, error)
	Delete(ctx context.Context, id string) error

	GetSlips(ctx context.Context, q response.PageQuery, f SlipFilter) ([]SlipResponse, int64, error)
	GetSlip(ctx context.Context, id string) (SlipResponse, error)
	UpdateSlip(ctx context.Context, id string, req UpdateSlipRequest) (SlipResponse, error)
	DeleteSlip(ctx context.Context, id string) error
	DownloadSlip(ctx context.Context, id string) (Payslip, error)

	// GeneratePayslips renders and stores a PDF for every slip of the run
	// that has none yet. It returns how many were written.
	GeneratePayslips(ctx context.Context, payrollID string) (int, error)
}

type service struct {
	db         *sql.DB
	repo       Repository
	structures salarystructure.Repository
	leaves     leave.Repository
	leaveTypes leavetype.Repository
	outbox     kafka.OutboxRepository
	store      storage.Storage
	calc       Calculator
	now        func() time.Time
	logger     *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	structures salarystructure.Repository,
	leaves leave.Repository,
	leaveTypes leavetype.Repository,
	outbox kafka.OutboxRepository,
	store storage.Storage,
	calc Calculator,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	return &service{
		db:         db,
		repo:       repo,
		structures: structures,
		leaves:     leaves,
		leaveTypes: leaveTypes,
		outbox:     outbox,
		store:      store,
		calc:       calc,
		now:        time.Now,
		logger:     l,
	}
}

func (s *service) Create(ctx context.Context, actorID string, req CreatePayrollRequest) (PayrollResponse, error) {
	actor, err := parseActor(actorID)
	if err != nil {
		return PayrollResponse{}, err
	}
	if err := validatePeriod(req.Month, req.Year); err != nil {
		return PayrollResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayrollResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	_, err = qtx.FindRunByPeriod(ctx, req.Month, req.Year)
	if err == nil {
		return PayrollResponse{}, payrollerrors.ErrPayrollExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return PayrollResponse{}, err
	}

	run := &PayrollProcessing{
		ID:        uuid.New(),
		Month:     req.Month,
		Year:      req.Year,
		Status:    StatusDraft,
		Remarks:   strings.TrimSpace(req.Remarks),
		CreatedBy: actor,
	}
	if err := qtx.CreateRun(ctx, run); err != nil {
		return PayrollResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return PayrollResponse{}, err
	}

	s.logger.Info("payroll run created",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("payroll_id", run.ID.String()),
		zap.Int("month", run.Month),
		zap.Int("year", run.Year),
	)
	return mapToResponse(*run), nil
}

func (s *service) GetAll(ctx context.Context, q response.PageQuery, f RunFilter) ([]PayrollResponse, int64, error) {
	f.Status = strings.ToUpper(strings.TrimSpace(f.Status))
	runs, total, err := s.repo.FindRuns(ctx, q, f)
	if err != nil {
		return nil, 0, err
	}
	res := make([]PayrollResponse, len(runs))
	for i, r := range runs {
		res[i] = mapToResponse(r)
	}
	return res, total, nil
}

func (s *service) GetByID(ctx context.Context, id string) (PayrollResponse, error) {
	run, err := s.repo.FindRunByID(ctx, id)
	if err != nil {
		return PayrollResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*run), nil
}

// Process computes a slip for every eligible employee of the month and
// replaces whatever slips the run held before. Everything, including the
// outbox event, is written in one transaction.
func (s *service) Process(ctx context.Context, actorID string, req ProcessPayrollRequest) (ProcessResult, error) {
	rid := contextutil.GetRequestID(ctx)
	actor, err := parseActor(actorID)
	if err != nil {
		return ProcessResult{}, err
	}
	if err := validatePeriod(req.Month, req.Year); err != nil {
		return ProcessResult{}, err
	}
	for _, id := range req.EmployeeIDs {
		if _, err := uuid.Parse(id); err != nil {
			return ProcessResult{}, payrollerrors.ErrInvalidEmployeeID
		}
	}
	period := NewPeriod(req.Month, req.Year)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ProcessResult{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	run, err := qtx.FindRunByPeriod(ctx, req.Month, req.Year)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		run = &PayrollProcessing{
			ID:        uuid.New(),
			Month:     req.Month,
			Year:      req.Year,
			Status:    StatusDraft,
			CreatedBy: actor,
		}
		if err := qtx.CreateRun(ctx, run); err != nil {
			return ProcessResult{}, mapRepositoryError(err)
		}
	case err != nil:
		return ProcessResult{}, err
	case run.Status == StatusPaid:
		return ProcessResult{}, payrollerrors.ErrPayrollAlreadyPaid
	default:
		existing, err := qtx.FindSlipsByRun(ctx, run.ID.String())
		if err != nil {
			return ProcessResult{}, err
		}
		for _, sl := range existing {
			if sl.Status == SlipStatusPaid {
				return ProcessResult{}, payrollerrors.ErrRunHasPaidSlips
			}
		}
	}

	employees, err := qtx.FindEligibleEmployees(ctx, req.EmployeeIDs, period.End)
	if err != nil {
		return ProcessResult{}, err
	}
	skipped := s.skipIneligible(ctx, qtx, req.EmployeeIDs, employees)

	slips, more, err := s.computeSlips(ctx, tx, run, period, employees)
	if err != nil {
		return ProcessResult{}, err
	}
	skipped = append(skipped, more...)
	if len(slips) == 0 {
		return ProcessResult{}, payrollerrors.ErrNoEligibleEmployees.WithDetails(skipped)
	}

	if err := qtx.DeleteSlipsByRun(ctx, run.ID.String()); err != nil {
		return ProcessResult{}, err
	}
	if err := qtx.CreateSlips(ctx, slips); err != nil {
		s.logger.Error("payroll create slips failed",
			zap.String("request_id", rid),
			zap.String("payroll_id", run.ID.String()),
			zap.Error(err),
		)
		return ProcessResult{}, err
	}

	now := s.now().UTC()
	run.SetTotals(slips)
	run.Status = StatusProcessed
	run.ProcessedBy = actor
	run.ProcessedAt = &now
	if remarks := strings.TrimSpace(req.Remarks); remarks != "" {
		run.Remarks = remarks
	}
	if err := qtx.UpdateRun(ctx, run); err != nil {
		return ProcessResult{}, err
	}

	if s.outbox != nil {
		event, err := kafka.NewOutboxEvent(rid, "payroll", run.ID.String(), events.PayrollProcessed, events.PayrollTopic,
			events.PayrollProcessedEvent{
				EventType:   events.PayrollProcessed,
				RequestID:   rid,
				PayrollID:   run.ID.String(),
				Month:       run.Month,
				Year:        run.Year,
				SlipCount:   len(slips),
				ProcessedBy: actorID,
				OccurredAt:  now,
			})
		if err != nil {
			s.logger.Error("marshal event failed", zap.String("request_id", rid), zap.Error(err))
			return ProcessResult{}, err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
			s.logger.Error("payroll outbox persist failed",
				zap.String("payroll_id", run.ID.String()),
				zap.Error(err),
			)
			return ProcessResult{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("commit failed", zap.String("request_id", rid), zap.Error(err))
		return ProcessResult{}, err
	}

	s.logger.Info("payroll processed",
		zap.String("request_id", rid),
		zap.String("payroll_id", run.ID.String()),
		zap.Int("slips", len(slips)),
		zap.Int("skipped", len(skipped)),
		zap.String("total_net_salary", run.TotalNetSalary.String()),
	)
	if skipped == nil {
		skipped = []SkippedEmployee{}
	}
	return ProcessResult{Payroll: mapToResponse(*run), Slips: len(slips), Skipped: skipped}, nil
}

// skipIneligible reports requested employees that the eligibility query
// left out.
func (s *service) skipIneligible(ctx context.Context, repo Repository, requested []string, eligible []PayrollEmployee) []SkippedEmployee {
	if len(requested) == 0 {
		return nil
	}
	found := make(map[string]struct{}, len(eligible))
	for _, e := range eligible {
		found[e.ID.String()] = struct{}{}
	}
	var missing []string
	for _, id := range requested {
		if _, ok := found[strings.ToLower(id)]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	names := make(map[string]string, len(missing))
	if known, err := repo.FindEmployeesByIDs(ctx, missing); err == nil {
		for _, e := range known {
			names[e.ID.String()] = e.FullName
		}
	}
	skipped := make([]SkippedEmployee, 0, len(missing))
	for _, id := range missing {
		name, ok := names[strings.ToLower(id)]
		reason := "employee not found"
		if ok {
			reason = "employee is not active or joined after the period"
		}
		skipped = append(skipped, SkippedEmployee{EmployeeID: id, EmployeeName: name, Reason: reason})
	}
	return skipped
}

func (s *service) computeSlips(
	ctx context.Context,
	tx *sql.Tx,
	run *PayrollProcessing,
	period Period,
	employees []PayrollEmployee,
) ([]SalarySlip, []SkippedEmployee, error) {
	if len(employees) == 0 {
		return nil, nil, nil
	}
	ids := make([]string, len(employees))
	for i, e := range employees {
		ids[i] = e.ID.String()
	}

	versions, err := s.structures.WithTx(tx).FindInPeriod(ctx, ids, period.Start, period.End)
	if err != nil {
		return nil, nil, err
	}
	// versions come newest first per employee
	active := make(map[string]salarystructure.SalaryStructure, len(versions))
	for _, v := range versions {
		if _, ok := active[v.EmployeeID.String()]; !ok {
			active[v.EmployeeID.String()] = v
		}
	}

	leaves := s.leaves.WithTx(tx)
	types := make(map[string]leavetype.LeaveType)
	leaveTypes := s.leaveTypes.WithTx(tx)

	var (
		slips   []SalarySlip
		skipped []SkippedEmployee
	)
	for _, emp := range employees {
		st, ok := active[emp.ID.String()]
		if !ok {
			skipped = append(skipped, SkippedEmployee{
				EmployeeID:   emp.ID.String(),
				EmployeeName: emp.FullName,
				Reason:       "no salary structure for the period",
			})
			continue
		}

		apps, err := leaves.FindApprovedInRange(ctx, emp.ID.String(), period.Start, period.End)
		if err != nil {
			return nil, nil, err
		}
		for _, app := range apps {
			key := app.LeaveTypeID.String()
			if _, cached := types[key]; cached {
				continue
			}
			lt, err := leaveTypes.FindByID(ctx, key)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			if err != nil {
				return nil, nil, err
			}
			types[key] = *lt
		}

		amounts := s.calc.Compute(basicSalary(emp, st), st, s.calc.LeaveDays(period, apps, types))
		slips = append(slips, newSlip(run, emp, st, amounts, s.calc.WorkingDays()))
	}
	return slips, skipped, nil
}

func newSlip(run *PayrollProcessing, emp PayrollEmployee, st salarystructure.SalaryStructure, a SlipAmounts, workingDays int) SalarySlip {
	structureID := st.ID
	slip := SalarySlip{
		ID:                uuid.New(),
		PayrollID:         run.ID,
		EmployeeID:        emp.ID,
		SalaryStructureID: &structureID,
		Month:             run.Month,
		Year:              run.Year,
		BasicSalary:       a.BasicSalary,
		TotalEarnings:     a.TotalEarnings,
		TotalDeductions:   a.TotalDeductions,
		WorkingDays:       workingDays,
		LeaveDays:         a.LeaveDays,
		LeaveDeduction:    a.LeaveDeduction,
		NetSalary:         a.NetSalary,
		Status:            SlipStatusGenerated,
		EmployeeName:      emp.FullName,
		EmployeeCode:      emp.Code,
	}
	slip.Items = make([]SalarySlipItem, len(st.Items))
	for i, it := range st.Items {
		slip.Items[i] = SalarySlipItem{
			ID:       uuid.New(),
			SlipID:   slip.ID,
			Name:     it.Name,
			Category: it.Category,
			Amount:   it.Amount,
		}
	}
	return slip
}

func (s *service) MarkPaid(ctx context.Context, id string) (PayrollResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayrollResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	run, err := qtx.FindRunByID(ctx, id)
	if err != nil {
		return PayrollResponse{}, mapRepositoryError(err)
	}
	if run.Status != StatusProcessed {
		return PayrollResponse{}, payrollerrors.ErrInvalidStatusTransition
	}

	now := s.now().UTC()
	run.Status = StatusPaid
	run.PaidAt = &now
	if err := qtx.UpdateRun(ctx, run); err != nil {
		return PayrollResponse{}, err
	}
	if err := qtx.MarkSlipsPaid(ctx, id); err != nil {
		return PayrollResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return PayrollResponse{}, err
	}

	s.logger.Info("payroll marked paid",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("payroll_id", id),
	)
	return mapToResponse(*run), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	run, err := qtx.FindRunByID(ctx, id)
	if err != nil {
		return mapRepositoryError(err)
	}
	if run.Status == StatusPaid {
		return payrollerrors.ErrDeletePaid
	}
	if err := qtx.DeleteRun(ctx, id); err != nil {
		return mapRepositoryError(err)
	}
	return tx.Commit()
}

func (s *service) GetSlips(ctx context.Context, q response.PageQuery, f SlipFilter) ([]SlipResponse, int64, error) {
	f.Status = strings.ToUpper(strings.TrimSpace(f.Status))
	slips, total, err := s.repo.FindSlips(ctx, q, f)
	if err != nil {
		return nil, 0, err
	}
	res := make([]SlipResponse, len(slips))
	for i, sl := range slips {
		res[i] = mapSlipResponse(sl)
	}
	return res, total, nil
}

func (s *service) GetSlip(ctx context.Context, id string) (SlipResponse, error) {
	slip, err := s.repo.FindSlipByID(ctx, id)
	if err != nil {
		return SlipResponse{}, mapSlipError(err)
	}
	return mapSlipResponse(*slip), nil
}

func (s *service) UpdateSlip(ctx context.Context, id string, req UpdateSlipRequest) (SlipResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SlipResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	slip, run, err := findSlipWithRun(ctx, qtx, id)
	if err != nil {
		return SlipResponse{}, err
	}
	if slip.Status == SlipStatusPaid || run.Status == StatusPaid {
		return SlipResponse{}, payrollerrors.ErrSlipPaid
	}

	if req.Remarks != nil {
		slip.Remarks = strings.TrimSpace(*req.Remarks)
	}
	if req.Status != nil {
		status := strings.ToUpper(strings.TrimSpace(*req.Status))
		if status == SlipStatusPaid && run.Status != StatusProcessed {
			return SlipResponse{}, payrollerrors.ErrInvalidSlipStatus
		}
		slip.Status = status
	}

	if err := qtx.UpdateSlip(ctx, slip); err != nil {
		return SlipResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return SlipResponse{}, err
	}
	return mapSlipResponse(*slip), nil
}

// DeleteSlip drops one slip and rebalances its run's totals.
func (s *service) DeleteSlip(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	slip, run, err := findSlipWithRun(ctx, qtx, id)
	if err != nil {
		return err
	}
	if slip.Status == SlipStatusPaid || run.Status == StatusPaid {
		return payrollerrors.ErrSlipPaid
	}
	if err := qtx.DeleteSlip(ctx, id); err != nil {
		return mapSlipError(err)
	}

	remaining, err := qtx.FindSlipsByRun(ctx, run.ID.String())
	if err != nil {
		return err
	}
	run.SetTotals(remaining)
	if err := qtx.UpdateRun(ctx, run); err != nil {
		return err
	}
	return tx.Commit()
}

// DownloadSlip serves the stored PDF and renders one on the fly when the
// consumer has not produced it yet.
func (s *service) DownloadSlip(ctx context.Context, id string) (Payslip, error) {
	slip, err := s.repo.FindSlipByID(ctx, id)
	if err != nil {
		return Payslip{}, mapSlipError(err)
	}
	out := Payslip{FileName: payslipFileName(*slip), ContentType: pdfType}

	if slip.PayslipKey != nil && s.store != nil {
		data, err := s.store.Get(ctx, *slip.PayslipKey)
		switch {
		case err == nil:
			out.Content = data
			return out, nil
		case errors.Is(err, storage.ErrObjectNotFound):
			s.logger.Warn("stored payslip missing, rendering",
				zap.String("slip_id", id),
				zap.String("key", *slip.PayslipKey),
			)
		default:
			return Payslip{}, err
		}
	}

	data, err := renderPayslip(*slip)
	if err != nil {
		return Payslip{}, err
	}
	out.Content = data
	return out, nil
}

func (s *service) GeneratePayslips(ctx context.Context, payrollID string) (int, error) {
	if s.store == nil {
		return 0, errors.New("payslip storage is not configured")
	}
	if _, err := s.repo.FindRunByID(ctx, payrollID); err != nil {
		return 0, mapRepositoryError(err)
	}
	slips, err := s.repo.FindSlipsByRun(ctx, payrollID)
	if err != nil {
		return 0, err
	}

	written := 0
	for i := range slips {
		slip := &slips[i]
		if slip.PayslipKey != nil {
			continue
		}
		data, err := renderPayslip(*slip)
		if err != nil {
			return written, err
		}
		key := payslipKey(*slip)
		url, err := s.store.Put(ctx, key, data, pdfType)
		if err != nil {
			s.logger.Error("store payslip failed",
				zap.String("slip_id", slip.ID.String()),
				zap.String("key", key),
				zap.Error(err),
			)
			return written, err
		}

		now := s.now().UTC()
		slip.PayslipKey = &key
		slip.PayslipURL = &url
		slip.PayslipGeneratedAt = &now
		if err := s.repo.UpdateSlip(ctx, slip); err != nil {
			return written, err
		}
		written++
	}

	s.logger.Info("payslips generated",
		zap.String("payroll_id", payrollID),
		zap.Int("written", written),
		zap.Int("slips", len(slips)),
	)
	return written, nil
}

func findSlipWithRun(ctx context.Context, repo Repository, id string) (*SalarySlip, *PayrollProcessing, error) {
	slip, err := repo.FindSlipByID(ctx, id)
	if err != nil {
		return nil, nil, mapSlipError(err)
	}
	run, err := repo.FindRunByID(ctx, slip.PayrollID.String())
	if err != nil {
		return nil, nil, mapRepositoryError(err)
	}
	return slip, run, nil
}

func parseActor(actorID string) (*uuid.UUID, error) {
	id, err := uuid.Parse(actorID)
	if err != nil {
		return nil, payrollerrors.ErrInvalidActorID
	}
	return &id, nil
}

func validatePeriod(month, year int) error {
	if month < 1 || month > 12 || year < 2000 || year > 2100 {
		return payrollerrors.ErrInvalidPeriod
	}
	return nil
}

func mapRepositoryError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return payrollerrors.ErrPayrollNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "uq_payroll_processings_period" {
		return payrollerrors.ErrPayrollExists
	}
	return err
}

func mapSlipError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return payrollerrors.ErrSlipNotFound
	}
	return err
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	v := t.UTC().Format(time.RFC3339)
	return &v
}

func mapToResponse(p PayrollProcessing) PayrollResponse {
	resp := PayrollResponse{
		ID:                   p.ID.String(),
		Month:                p.Month,
		Year:                 p.Year,
		Status:               p.Status,
		EmployeeCount:        p.EmployeeCount,
		TotalEarnings:        p.TotalEarnings,
		TotalDeductions:      p.TotalDeductions,
		TotalLeaveDeductions: p.TotalLeaveDeductions,
		TotalNetSalary:       p.TotalNetSalary,
		Remarks:              p.Remarks,
		ProcessedAt:          formatTime(p.ProcessedAt),
		PaidAt:               formatTime(p.PaidAt),
		CreatedAt:            p.CreatedAt.UTC().Format(time.RFC3339),
	}
	if p.ProcessedBy != nil {
		v := p.ProcessedBy.String()
		resp.ProcessedBy = &v
	}
	return resp
}

func mapSlipResponse(s SalarySlip) SlipResponse {
	resp := SlipResponse{
		ID:              s.ID.String(),
		PayrollID:       s.PayrollID.String(),
		EmployeeID:      s.EmployeeID.String(),
		EmployeeName:    s.EmployeeName,
		EmployeeCode:    s.EmployeeCode,
		Month:           s.Month,
		Year:            s.Year,
		BasicSalary:     s.BasicSalary,
		TotalEarnings:   s.TotalEarnings,
		TotalDeductions: s.TotalDeductions,
		WorkingDays:     s.WorkingDays,
		LeaveDays:       s.LeaveDays,
		LeaveDeduction:  s.LeaveDeduction,
		NetSalary:       s.NetSalary,
		Status:          s.Status,
		Remarks:         s.Remarks,
		PayslipURL:      s.PayslipURL,
	}
	if s.SalaryStructureID != nil {
		v := s.SalaryStructureID.String()
		resp.SalaryStructureID = &v
	}
	for _, it := range s.Items {
		resp.Items = append(resp.Items, SlipItemResponse{
			Name:     it.Name,
			Category: it.Category,
			Amount:   it.Amount,
		})
	}
	return resp
}
