package salarystructure

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	salarystructureerrors "go-hrms/internal/salarystructure/errors"
	"go-hrms/internal/shared/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

type Service interface {
	Create(ctx context.Context, req CreateStructureRequest) (StructureResponse, error)
	GetAll(ctx context.Context, q response.PageQuery, f ListFilter) ([]StructureResponse, int64, error)
	GetByID(ctx context.Context, id string) (StructureResponse, error)
	GetActive(ctx context.Context, employeeID, date string) (StructureResponse, error)
	Update(ctx context.Context, id string, req UpdateStructureRequest) (StructureResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("salarystructure.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("salarystructure.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateStructureRequest) (StructureResponse, error) {
	st := &SalaryStructure{ID: uuid.New()}
	if err := apply(st, req); err != nil {
		return StructureResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return StructureResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := checkPeriod(ctx, qtx, st); err != nil {
		return StructureResponse{}, err
	}
	if err := qtx.Create(ctx, st); err != nil {
		return StructureResponse{}, err
	}

	created, err := qtx.FindByID(ctx, st.ID.String())
	if err != nil {
		return StructureResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return StructureResponse{}, err
	}

	s.logger.Info("salary structure created",
		zap.String("structure_id", st.ID.String()),
		zap.String("employee_id", st.EmployeeID.String()),
		zap.Int("items", len(st.Items)),
	)
	return mapToResponse(*created), nil
}

func (s *service) GetAll(ctx context.Context, q response.PageQuery, f ListFilter) ([]StructureResponse, int64, error) {
	items, total, err := s.repo.FindAll(ctx, q, f)
	if err != nil {
		return nil, 0, err
	}
	res := make([]StructureResponse, len(items))
	for i, st := range items {
		res[i] = mapToResponse(st)
	}
	return res, total, nil
}

func (s *service) GetByID(ctx context.Context, id string) (StructureResponse, error) {
	st, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return StructureResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*st), nil
}

// GetActive resolves the version in force on date, today when date is empty.
func (s *service) GetActive(ctx context.Context, employeeID, date string) (StructureResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return StructureResponse{}, salarystructureerrors.ErrEmployeeNotFound
	}
	day := time.Now().UTC()
	if strings.TrimSpace(date) != "" {
		parsed, err := parseDate(date)
		if err != nil {
			return StructureResponse{}, err
		}
		day = parsed
	}
	y, m, d := day.Date()
	day = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	st, err := s.repo.FindActiveAt(ctx, employeeID, day)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return StructureResponse{}, salarystructureerrors.ErrNoActiveStructure
	}
	if err != nil {
		return StructureResponse{}, err
	}
	return mapToResponse(*st), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateStructureRequest) (StructureResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return StructureResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	st, err := qtx.FindByID(ctx, id)
	if err != nil {
		return StructureResponse{}, mapRepositoryError(err)
	}
	if err := apply(st, req); err != nil {
		return StructureResponse{}, err
	}
	if err := checkPeriod(ctx, qtx, st); err != nil {
		return StructureResponse{}, err
	}

	if err := qtx.Update(ctx, st); err != nil {
		return StructureResponse{}, err
	}
	if err := qtx.ReplaceItems(ctx, id, st.Items); err != nil {
		return StructureResponse{}, err
	}

	updated, err := qtx.FindByID(ctx, id)
	if err != nil {
		return StructureResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return StructureResponse{}, err
	}
	return mapToResponse(*updated), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByID(ctx, id); err != nil {
		return mapRepositoryError(err)
	}
	slips, err := qtx.CountSlips(ctx, id)
	if err != nil {
		return err
	}
	if slips > 0 {
		return salarystructureerrors.ErrStructureInUse
	}
	if err := qtx.Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}
	return tx.Commit()
}

func apply(st *SalaryStructure, req CreateStructureRequest) error {
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return salarystructureerrors.ErrEmployeeNotFound
	}
	start, err := parseDate(req.StartDate)
	if err != nil {
		return err
	}
	var end *time.Time
	if req.EndDate != nil && strings.TrimSpace(*req.EndDate) != "" {
		e, err := parseDate(*req.EndDate)
		if err != nil {
			return err
		}
		if e.Before(start) {
			return salarystructureerrors.ErrInvalidDateRange
		}
		end = &e
	}
	items, err := buildItems(st.ID, req.Items)
	if err != nil {
		return err
	}

	st.EmployeeID = employeeID
	st.Name = strings.TrimSpace(req.Name)
	st.StartDate = start
	st.EndDate = end
	st.Description = strings.TrimSpace(req.Description)
	st.Items = items
	return nil
}

func buildItems(structureID uuid.UUID, reqs []ItemRequest) ([]SalaryStructureItem, error) {
	seen := make(map[string]struct{}, len(reqs))
	items := make([]SalaryStructureItem, 0, len(reqs))
	for i, r := range reqs {
		if !IsValidCategory(r.Category) {
			return nil, salarystructureerrors.ErrInvalidCategory
		}
		if r.Amount.IsNegative() {
			return nil, salarystructureerrors.ErrNegativeAmount
		}
		name := strings.TrimSpace(r.Name)
		key := r.Category + "/" + strings.ToLower(name)
		if _, dup := seen[key]; dup {
			return nil, salarystructureerrors.ErrDuplicateItem
		}
		seen[key] = struct{}{}

		items = append(items, SalaryStructureItem{
			ID:          uuid.New(),
			StructureID: structureID,
			Name:        name,
			Category:    r.Category,
			Amount:      r.Amount.Round(2),
			SortOrder:   i + 1,
		})
	}
	return items, nil
}

func checkPeriod(ctx context.Context, repo Repository, st *SalaryStructure) error {
	exists, err := repo.EmployeeExists(ctx, st.EmployeeID.String())
	if err != nil {
		return err
	}
	if !exists {
		return salarystructureerrors.ErrEmployeeNotFound
	}
	overlap, err := repo.HasOverlap(ctx, st.EmployeeID.String(), st.StartDate, st.EndDate, st.ID.String())
	if err != nil {
		return err
	}
	if overlap {
		return salarystructureerrors.ErrPeriodOverlap
	}
	return nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(v))
	if err != nil {
		return time.Time{}, salarystructureerrors.ErrInvalidDate
	}
	return t, nil
}

func mapRepositoryError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return salarystructureerrors.ErrStructureNotFound
	}
	return err
}

func mapToResponse(st SalaryStructure) StructureResponse {
	earnings, deductions := st.Totals()
	resp := StructureResponse{
		ID:              st.ID.String(),
		EmployeeID:      st.EmployeeID.String(),
		EmployeeName:    st.EmployeeName,
		EmployeeCode:    st.EmployeeCode,
		Name:            st.Name,
		StartDate:       st.StartDate.Format(dateLayout),
		Description:     st.Description,
		Items:           make([]ItemResponse, len(st.Items)),
		TotalEarnings:   earnings,
		TotalDeductions: deductions,
		NetSalary:       earnings.Sub(deductions),
	}
	if st.EndDate != nil {
		v := st.EndDate.Format(dateLayout)
		resp.EndDate = &v
	}
	for i, it := range st.Items {
		resp.Items[i] = ItemResponse{
			ID:       it.ID.String(),
			Name:     it.Name,
			Category: it.Category,
			Amount:   it.Amount,
		}
	}
	return resp
}
