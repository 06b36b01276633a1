package candidate_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"go-hrms/internal/attachmenttype"
	attachmenttypeerrors "go-hrms/internal/attachmenttype/errors"
	"go-hrms/internal/candidate"
	candidateerrors "go-hrms/internal/candidate/errors"
	"go-hrms/internal/hiringstage"
	"go-hrms/internal/jobposting"
	"go-hrms/internal/shared/response"
	"go-hrms/internal/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fixture struct {
	db      *gorm.DB
	svc     candidate.Service
	open    jobposting.JobPosting
	draft   jobposting.JobPosting
	resume  attachmenttype.AttachmentType
	storage *storage.Local
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
		&jobposting.JobPosting{},
		&hiringstage.HiringStage{},
		&attachmenttype.AttachmentType{},
		&candidate.Candidate{},
		&candidate.Attachment{},
	))
	require.NoError(t, db.Exec(`CREATE TABLE departments (id TEXT PRIMARY KEY, name TEXT)`).Error)
	require.NoError(t, db.Exec(`CREATE TABLE designations (id TEXT PRIMARY KEY, name TEXT)`).Error)

	stages := []hiringstage.HiringStage{
		{ID: uuid.New(), Code: "SCR", Name: "Screening", Sequence: 1, IsActive: true},
		{ID: uuid.New(), Code: "INT", Name: "Interview", Sequence: 2, IsActive: true},
		{ID: uuid.New(), Code: "TST", Name: "Assessment", Sequence: 3, IsActive: false},
		{ID: uuid.New(), Code: "OFR", Name: "Offer", Sequence: 4, IsActive: true},
	}
	for i := range stages {
		require.NoError(t, db.Select("*").Create(&stages[i]).Error)
	}

	posted := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	f := &fixture{
		db:     db,
		open:   jobposting.JobPosting{ID: uuid.New(), Code: "JP-000001", Title: "Backend Engineer", EmploymentType: jobposting.EmploymentFullTime, Vacancies: 1, Status: jobposting.StatusOpen, PostedDate: &posted},
		draft:  jobposting.JobPosting{ID: uuid.New(), Code: "JP-000002", Title: "Accountant", EmploymentType: jobposting.EmploymentFullTime, Vacancies: 1, Status: jobposting.StatusDraft},
		resume: attachmenttype.AttachmentType{ID: uuid.New(), Name: "Resume", AllowedExtensions: "pdf,docx", MaxSizeMB: 1},
	}
	require.NoError(t, db.Create(&f.open).Error)
	require.NoError(t, db.Create(&f.draft).Error)
	require.NoError(t, db.Create(&f.resume).Error)

	f.storage, err = storage.NewLocal(t.TempDir(), "http://files.local")
	require.NoError(t, err)

	f.svc = candidate.NewService(
		sqlDB,
		candidate.NewRepository(db),
		jobposting.NewRepository(db),
		hiringstage.NewRepository(db),
		attachmenttype.NewRepository(db),
		f.storage,
	)
	return f
}

func (f *fixture) apply(t *testing.T, email string) candidate.CandidateResponse {
	t.Helper()
	c, err := f.svc.Create(context.Background(), candidate.CreateCandidateRequest{
		JobPostingID: f.open.ID.String(),
		Name:         "Rina Putri",
		Email:        email,
		Phone:        "0812000111",
	})
	require.NoError(t, err)
	return c
}

func TestCandidateService_Create(t *testing.T) {
	ctx := context.Background()
	f := setupFixture(t)

	c := f.apply(t, "  Rina@Example.com ")
	assert.Equal(t, "rina@example.com", c.Email)
	assert.Equal(t, candidate.StatusActive, c.Status)
	assert.Equal(t, "Screening", c.StageName)
	assert.Equal(t, "JP-000001", c.JobPostingCode)

	t.Run("same email on the same posting", func(t *testing.T) {
		_, err := f.svc.Create(ctx, candidate.CreateCandidateRequest{
			JobPostingID: f.open.ID.String(),
			Name:         "Rina",
			Email:        "RINA@example.com",
		})
		assert.ErrorIs(t, err, candidateerrors.ErrEmailExists)
	})

	t.Run("posting not open", func(t *testing.T) {
		_, err := f.svc.Create(ctx, candidate.CreateCandidateRequest{
			JobPostingID: f.draft.ID.String(),
			Name:         "Rina",
			Email:        "rina@example.com",
		})
		assert.ErrorIs(t, err, candidateerrors.ErrJobPostingNotOpen)
	})

	t.Run("unknown posting", func(t *testing.T) {
		_, err := f.svc.Create(ctx, candidate.CreateCandidateRequest{
			JobPostingID: uuid.NewString(),
			Name:         "Rina",
			Email:        "rina@example.com",
		})
		assert.ErrorIs(t, err, candidateerrors.ErrJobPostingNotFound)
	})
}

func TestCandidateService_Pipeline(t *testing.T) {
	ctx := context.Background()
	f := setupFixture(t)
	c := f.apply(t, "rina@example.com")

	_, err := f.svc.Hire(ctx, c.ID)
	assert.ErrorIs(t, err, candidateerrors.ErrNotLastStage)

	got, err := f.svc.Advance(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Interview", got.StageName)

	got, err = f.svc.Advance(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Offer", got.StageName, "inactive stages are skipped")

	_, err = f.svc.Advance(ctx, c.ID)
	assert.ErrorIs(t, err, candidateerrors.ErrLastStage)

	got, err = f.svc.Hire(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, candidate.StatusHired, got.Status)
	assert.NotNil(t, got.HiredAt)

	var posting jobposting.JobPosting
	require.NoError(t, f.db.First(&posting, "id = ?", f.open.ID).Error)
	assert.Equal(t, jobposting.StatusClosed, posting.Status, "single vacancy filled")
	assert.NotNil(t, posting.ClosingDate)

	_, err = f.svc.Advance(ctx, c.ID)
	assert.ErrorIs(t, err, candidateerrors.ErrNotActive)
}

func TestCandidateService_RejectWithdraw(t *testing.T) {
	ctx := context.Background()
	f := setupFixture(t)
	a := f.apply(t, "a@example.com")
	b := f.apply(t, "b@example.com")

	got, err := f.svc.Reject(ctx, a.ID, candidate.RejectCandidateRequest{Reason: " salary expectation "})
	require.NoError(t, err)
	assert.Equal(t, candidate.StatusRejected, got.Status)
	assert.Equal(t, "salary expectation", got.RejectionReason)
	assert.NotNil(t, got.RejectedAt)

	_, err = f.svc.Reject(ctx, a.ID, candidate.RejectCandidateRequest{Reason: "again"})
	assert.ErrorIs(t, err, candidateerrors.ErrNotActive)

	got, err = f.svc.Withdraw(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, candidate.StatusWithdrawn, got.Status)

	items, total, err := f.svc.GetAll(ctx, response.PageQuery{Page: 1, PageSize: 10}, candidate.ListFilter{Status: "rejected"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, a.ID, items[0].ID)
}

func TestCandidateService_UpdateDelete(t *testing.T) {
	ctx := context.Background()
	f := setupFixture(t)
	a := f.apply(t, "a@example.com")
	f.apply(t, "b@example.com")

	_, err := f.svc.Update(ctx, a.ID, candidate.UpdateCandidateRequest{Name: "A", Email: "B@example.com"})
	assert.ErrorIs(t, err, candidateerrors.ErrEmailExists)

	got, err := f.svc.Update(ctx, a.ID, candidate.UpdateCandidateRequest{Name: "Ani", Email: "ani@example.com", Notes: "referral"})
	require.NoError(t, err)
	assert.Equal(t, "ani@example.com", got.Email)
	assert.Equal(t, "Screening", got.StageName)

	require.NoError(t, f.svc.Delete(ctx, a.ID))
	_, err = f.svc.GetByID(ctx, a.ID)
	assert.ErrorIs(t, err, candidateerrors.ErrCandidateNotFound)
	assert.ErrorIs(t, f.svc.Delete(ctx, a.ID), candidateerrors.ErrCandidateNotFound)

	count, err := jobposting.NewRepository(f.db).CountCandidates(ctx, f.open.ID.String())
	require.NoError(t, err)
	assert.EqualValues(t, 1, count, "soft deleted candidates are not counted")

	again := f.apply(t, "ani@example.com")
	assert.NotEqual(t, a.ID, again.ID)
}

func TestCandidateService_Attachments(t *testing.T) {
	ctx := context.Background()
	f := setupFixture(t)
	c := f.apply(t, "rina@example.com")

	tests := []struct {
		name    string
		file    candidate.NewAttachment
		wantErr error
	}{
		{"empty", candidate.NewAttachment{AttachmentTypeID: f.resume.ID.String(), FileName: "cv.pdf"}, candidateerrors.ErrEmptyFile},
		{"unknown type", candidate.NewAttachment{AttachmentTypeID: uuid.NewString(), FileName: "cv.pdf", Content: []byte("x")}, candidateerrors.ErrAttachmentTypeNotFound},
		{"extension", candidate.NewAttachment{AttachmentTypeID: f.resume.ID.String(), FileName: "cv.exe", Content: []byte("x")}, attachmenttypeerrors.ErrExtensionNotAllowed},
		{"too large", candidate.NewAttachment{AttachmentTypeID: f.resume.ID.String(), FileName: "cv.pdf", Content: []byte(strings.Repeat("x", 1<<20+1))}, attachmenttypeerrors.ErrFileTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.AddAttachment(ctx, "", c.ID, tt.file)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	got, err := f.svc.AddAttachment(ctx, uuid.NewString(), c.ID, candidate.NewAttachment{
		AttachmentTypeID: f.resume.ID.String(),
		FileName:         "Rina CV.PDF",
		ContentType:      "application/pdf",
		Content:          []byte("%PDF-1.4 resume"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Rina CV.PDF", got.FileName)
	assert.Equal(t, "Resume", got.AttachmentTypeName)
	assert.True(t, strings.HasPrefix(got.FileURL, "http://files.local/candidates/"+c.ID+"/"))
	assert.True(t, strings.HasSuffix(got.FileURL, ".pdf"))

	list, err := f.svc.GetAttachments(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Resume", list[0].AttachmentTypeName)
	assert.EqualValues(t, len("%PDF-1.4 resume"), list[0].SizeBytes)

	_, err = f.svc.GetAttachments(ctx, uuid.NewString())
	assert.ErrorIs(t, err, candidateerrors.ErrCandidateNotFound)
}
