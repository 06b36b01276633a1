package candidate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go-hrms/internal/attachmenttype"
	candidateerrors "go-hrms/internal/candidate/errors"
	"go-hrms/internal/hiringstage"
	"go-hrms/internal/jobposting"
	"go-hrms/internal/shared/contextutil"
	"go-hrms/internal/shared/response"
	"go-hrms/internal/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=candidate_service.go -destination=mock/candidate_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateCandidateRequest) (CandidateResponse, error)
	GetAll(ctx context.Context, q response.PageQuery, f ListFilter) ([]CandidateResponse, int64, error)
	GetByID(ctx context.Context, id string) (CandidateResponse, error)
	Update(ctx context.Context, id string, req UpdateCandidateRequest) (CandidateResponse, error)
	Delete(ctx context.Context, id string) error

	Advance(ctx context.Context, id string) (CandidateResponse, error)
	Reject(ctx context.Context, id string, req RejectCandidateRequest) (CandidateResponse, error)
	Hire(ctx context.Context, id string) (CandidateResponse, error)
	Withdraw(ctx context.Context, id string) (CandidateResponse, error)

	AddAttachment(ctx context.Context, actorID, id string, file NewAttachment) (AttachmentResponse, error)
	GetAttachments(ctx context.Context, id string) ([]AttachmentResponse, error)
}

type service struct {
	db              *sql.DB
	repo            Repository
	postings        jobposting.Repository
	stages          hiringstage.Repository
	attachmentTypes attachmenttype.Repository
	store           storage.Storage
	now             func() time.Time
	logger          *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	postings jobposting.Repository,
	stages hiringstage.Repository,
	attachmentTypes attachmenttype.Repository,
	store storage.Storage,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("candidate.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("candidate.service")
	}
	return &service{
		db:              db,
		repo:            repo,
		postings:        postings,
		stages:          stages,
		attachmentTypes: attachmentTypes,
		store:           store,
		now:             time.Now,
		logger:          l,
	}
}

func (s *service) Create(ctx context.Context, req CreateCandidateRequest) (CandidateResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return CandidateResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	posting, err := s.postings.WithTx(tx).FindByID(ctx, req.JobPostingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CandidateResponse{}, candidateerrors.ErrJobPostingNotFound
		}
		return CandidateResponse{}, err
	}
	if !s.acceptsCandidates(*posting) {
		return CandidateResponse{}, candidateerrors.ErrJobPostingNotOpen
	}

	stage, err := s.stages.WithTx(tx).FindFirstActive(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CandidateResponse{}, candidateerrors.ErrNoHiringStage
		}
		return CandidateResponse{}, err
	}

	email := normalizeEmail(req.Email)
	if err := ensureUniqueEmail(ctx, qtx, req.JobPostingID, email, uuid.Nil); err != nil {
		return CandidateResponse{}, err
	}

	c := &Candidate{
		ID:             uuid.New(),
		JobPostingID:   posting.ID,
		Name:           strings.TrimSpace(req.Name),
		Email:          email,
		Phone:          strings.TrimSpace(req.Phone),
		CurrentStageID: &stage.ID,
		Status:         StatusActive,
		ResumeURL:      strings.TrimSpace(req.ResumeURL),
		Notes:          req.Notes,
		AppliedAt:      s.now().UTC(),
	}
	if err := qtx.Create(ctx, c); err != nil {
		return CandidateResponse{}, mapRepositoryError(err)
	}
	created, err := qtx.FindByID(ctx, c.ID.String())
	if err != nil {
		return CandidateResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return CandidateResponse{}, err
	}

	s.logger.Info("candidate created",
		zap.String("request_id", rid),
		zap.String("candidate_id", c.ID.String()),
		zap.String("job_posting_id", posting.ID.String()),
		zap.String("stage", stage.Name),
	)
	return mapToResponse(*created), nil
}

func (s *service) GetAll(ctx context.Context, q response.PageQuery, f ListFilter) ([]CandidateResponse, int64, error) {
	f.Status = strings.ToUpper(strings.TrimSpace(f.Status))
	items, total, err := s.repo.FindAll(ctx, q, f)
	if err != nil {
		return nil, 0, err
	}
	res := make([]CandidateResponse, len(items))
	for i, c := range items {
		res[i] = mapToResponse(c)
	}
	return res, total, nil
}

func (s *service) GetByID(ctx context.Context, id string) (CandidateResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return CandidateResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*c), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateCandidateRequest) (CandidateResponse, error) {
	return s.mutate(ctx, id, func(qtx Repository, c *Candidate) error {
		email := normalizeEmail(req.Email)
		if email != c.Email {
			if err := ensureUniqueEmail(ctx, qtx, c.JobPostingID.String(), email, c.ID); err != nil {
				return err
			}
		}
		c.Name = strings.TrimSpace(req.Name)
		c.Email = email
		c.Phone = strings.TrimSpace(req.Phone)
		c.ResumeURL = strings.TrimSpace(req.ResumeURL)
		c.Notes = req.Notes
		return nil
	})
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
	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}
	return tx.Commit()
}

// Advance moves an active candidate to the next active stage by sequence.
func (s *service) Advance(ctx context.Context, id string) (CandidateResponse, error) {
	var from, to string
	res, err := s.mutateActive(ctx, id, func(tx *sql.Tx, qtx Repository, c *Candidate) error {
		stages := s.stages.WithTx(tx)
		var (
			next *hiringstage.HiringStage
			err  error
		)
		notFound := candidateerrors.ErrLastStage
		if c.StageSequence == nil {
			notFound = candidateerrors.ErrNoHiringStage
			next, err = stages.FindFirstActive(ctx)
		} else {
			from = c.StageName
			next, err = stages.FindNextActive(ctx, *c.StageSequence)
		}
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound
			}
			return err
		}
		c.CurrentStageID = &next.ID
		to = next.Name
		return nil
	})
	if err != nil {
		return CandidateResponse{}, err
	}
	s.logger.Info("candidate advanced",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("candidate_id", id),
		zap.String("from", from),
		zap.String("to", to),
	)
	return res, nil
}

func (s *service) Reject(ctx context.Context, id string, req RejectCandidateRequest) (CandidateResponse, error) {
	return s.mutateActive(ctx, id, func(_ *sql.Tx, _ Repository, c *Candidate) error {
		now := s.now().UTC()
		c.Status = StatusRejected
		c.RejectionReason = strings.TrimSpace(req.Reason)
		c.RejectedAt = &now
		return nil
	})
}

// Hire requires the candidate to sit on the last active stage. Once the
// posting's vacancies are filled it is closed.
func (s *service) Hire(ctx context.Context, id string) (CandidateResponse, error) {
	return s.mutateActive(ctx, id, func(tx *sql.Tx, qtx Repository, c *Candidate) error {
		if c.StageSequence == nil {
			return candidateerrors.ErrNotLastStage
		}
		_, err := s.stages.WithTx(tx).FindNextActive(ctx, *c.StageSequence)
		if err == nil {
			return candidateerrors.ErrNotLastStage
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		now := s.now().UTC()
		c.Status = StatusHired
		c.HiredAt = &now
		return s.closeFilledPosting(ctx, tx, qtx, c.JobPostingID.String())
	})
}

func (s *service) Withdraw(ctx context.Context, id string) (CandidateResponse, error) {
	return s.mutateActive(ctx, id, func(_ *sql.Tx, _ Repository, c *Candidate) error {
		c.Status = StatusWithdrawn
		return nil
	})
}

func (s *service) closeFilledPosting(ctx context.Context, tx *sql.Tx, qtx Repository, postingID string) error {
	postings := s.postings.WithTx(tx)
	posting, err := postings.FindByID(ctx, postingID)
	if err != nil {
		return err
	}
	// the candidate being hired is not saved yet
	hired, err := qtx.CountHired(ctx, postingID)
	if err != nil {
		return err
	}
	hired++
	if posting.Status != jobposting.StatusOpen || hired < int64(posting.Vacancies) {
		return nil
	}

	posting.Status = jobposting.StatusClosed
	if posting.ClosingDate == nil {
		y, m, d := s.now().UTC().Date()
		today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		posting.ClosingDate = &today
	}
	if err := postings.Update(ctx, posting); err != nil {
		return err
	}
	s.logger.Info("job posting closed, vacancies filled",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("job_posting_id", postingID),
		zap.Int64("hired", hired),
	)
	return nil
}

func (s *service) AddAttachment(ctx context.Context, actorID, id string, file NewAttachment) (AttachmentResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	if len(file.Content) == 0 {
		return AttachmentResponse{}, candidateerrors.ErrEmptyFile
	}

	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return AttachmentResponse{}, mapRepositoryError(err)
	}
	at, err := s.attachmentTypes.FindByID(ctx, file.AttachmentTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttachmentResponse{}, candidateerrors.ErrAttachmentTypeNotFound
		}
		return AttachmentResponse{}, err
	}
	fileName := filepath.Base(strings.TrimSpace(file.FileName))
	if err := at.Allows(fileName, int64(len(file.Content))); err != nil {
		return AttachmentResponse{}, err
	}

	a := &Attachment{
		ID:               uuid.New(),
		CandidateID:      c.ID,
		AttachmentTypeID: at.ID,
		FileName:         fileName,
		ContentType:      file.ContentType,
		SizeBytes:        int64(len(file.Content)),
	}
	if uid, err := uuid.Parse(actorID); err == nil {
		a.UploadedBy = &uid
	}
	a.StorageKey = attachmentKey(c.ID, a.ID, fileName)

	url, err := s.store.Put(ctx, a.StorageKey, file.Content, file.ContentType)
	if err != nil {
		s.logger.Error("store candidate attachment failed",
			zap.String("request_id", rid),
			zap.String("candidate_id", id),
			zap.Error(err),
		)
		return AttachmentResponse{}, err
	}
	a.FileURL = url

	if err := s.repo.CreateAttachment(ctx, a); err != nil {
		s.logger.Error("save candidate attachment failed",
			zap.String("request_id", rid),
			zap.String("candidate_id", id),
			zap.String("storage_key", a.StorageKey),
			zap.Error(err),
		)
		return AttachmentResponse{}, err
	}
	a.AttachmentTypeName = at.Name

	s.logger.Info("candidate attachment added",
		zap.String("request_id", rid),
		zap.String("candidate_id", id),
		zap.String("attachment_type", at.Name),
		zap.Int64("size_bytes", a.SizeBytes),
	)
	return mapAttachmentResponse(*a), nil
}

func (s *service) GetAttachments(ctx context.Context, id string) ([]AttachmentResponse, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, mapRepositoryError(err)
	}
	items, err := s.repo.FindAttachments(ctx, id)
	if err != nil {
		return nil, err
	}
	res := make([]AttachmentResponse, len(items))
	for i, a := range items {
		res[i] = mapAttachmentResponse(a)
	}
	return res, nil
}

func (s *service) mutateActive(ctx context.Context, id string, fn func(tx *sql.Tx, qtx Repository, c *Candidate) error) (CandidateResponse, error) {
	return s.mutateTx(ctx, id, func(tx *sql.Tx, qtx Repository, c *Candidate) error {
		if !c.IsActive() {
			return candidateerrors.ErrNotActive
		}
		return fn(tx, qtx, c)
	})
}

func (s *service) mutate(ctx context.Context, id string, fn func(qtx Repository, c *Candidate) error) (CandidateResponse, error) {
	return s.mutateTx(ctx, id, func(_ *sql.Tx, qtx Repository, c *Candidate) error {
		return fn(qtx, c)
	})
}

// mutateTx loads the candidate, applies fn and saves it in one transaction.
func (s *service) mutateTx(ctx context.Context, id string, fn func(tx *sql.Tx, qtx Repository, c *Candidate) error) (CandidateResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return CandidateResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	c, err := qtx.FindByID(ctx, id)
	if err != nil {
		return CandidateResponse{}, mapRepositoryError(err)
	}
	if err := fn(tx, qtx, c); err != nil {
		return CandidateResponse{}, err
	}
	if err := qtx.Update(ctx, c); err != nil {
		return CandidateResponse{}, mapRepositoryError(err)
	}
	updated, err := qtx.FindByID(ctx, id)
	if err != nil {
		return CandidateResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return CandidateResponse{}, err
	}
	return mapToResponse(*updated), nil
}

// acceptsCandidates also rejects open postings whose closing date has passed.
func (s *service) acceptsCandidates(p jobposting.JobPosting) bool {
	if !p.AcceptsCandidates() {
		return false
	}
	if p.ClosingDate == nil {
		return true
	}
	y, m, d := s.now().UTC().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return !p.ClosingDate.UTC().Before(today)
}

func ensureUniqueEmail(ctx context.Context, repo Repository, jobPostingID, email string, self uuid.UUID) error {
	other, err := repo.FindByEmail(ctx, jobPostingID, email)
	if err == nil && other.ID != self {
		return candidateerrors.ErrEmailExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

func normalizeEmail(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}

func attachmentKey(candidateID, attachmentID uuid.UUID, fileName string) string {
	return fmt.Sprintf("candidates/%s/%s%s", candidateID, attachmentID, strings.ToLower(filepath.Ext(fileName)))
}

func mapRepositoryError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return candidateerrors.ErrCandidateNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "uq_candidates_posting_email" {
		return candidateerrors.ErrEmailExists
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

func mapToResponse(c Candidate) CandidateResponse {
	res := CandidateResponse{
		ID:              c.ID.String(),
		JobPostingID:    c.JobPostingID.String(),
		JobPostingCode:  c.JobPostingCode,
		JobPostingTitle: c.JobPostingTitle,
		Name:            c.Name,
		Email:           c.Email,
		Phone:           c.Phone,
		StageName:       c.StageName,
		Status:          c.Status,
		ResumeURL:       c.ResumeURL,
		Notes:           c.Notes,
		RejectionReason: c.RejectionReason,
		AppliedAt:       c.AppliedAt.UTC().Format(time.RFC3339),
		HiredAt:         formatTime(c.HiredAt),
		RejectedAt:      formatTime(c.RejectedAt),
	}
	if c.CurrentStageID != nil {
		res.CurrentStageID = c.CurrentStageID.String()
	}
	return res
}

func mapAttachmentResponse(a Attachment) AttachmentResponse {
	return AttachmentResponse{
		ID:                 a.ID.String(),
		CandidateID:        a.CandidateID.String(),
		AttachmentTypeID:   a.AttachmentTypeID.String(),
		AttachmentTypeName: a.AttachmentTypeName,
		FileName:           a.FileName,
		ContentType:        a.ContentType,
		SizeBytes:          a.SizeBytes,
		FileURL:            a.FileURL,
		UploadedAt:         a.CreatedAt.UTC().Format(time.RFC3339),
	}
}
