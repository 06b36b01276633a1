package attachmenttype_test

import (
	"context"
	"testing"

	"go-hrms/internal/attachmenttype"
	attachmenttypeerrors "go-hrms/internal/attachmenttype/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestAttachmentType_Allows(t *testing.T) {
	at := attachmenttype.AttachmentType{AllowedExtensions: "pdf,docx", MaxSizeMB: 2}

	assert.NoError(t, at.Allows("resume.PDF", 1<<20))
	assert.ErrorIs(t, at.Allows("resume.exe", 10), attachmenttypeerrors.ErrExtensionNotAllowed)
	assert.ErrorIs(t, at.Allows("resume.pdf", 3<<20), attachmenttypeerrors.ErrFileTooLarge)

	open := attachmenttype.AttachmentType{}
	assert.NoError(t, open.Allows("anything.bin", 50<<20))
}

func TestAttachmentTypeService(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&attachmenttype.AttachmentType{}))
	require.NoError(t, db.Exec(`CREATE TABLE candidate_attachments (id TEXT PRIMARY KEY, attachment_type_id TEXT)`).Error)

	svc := attachmenttype.NewService(sqlDB, attachmenttype.NewRepository(db))
	ctx := context.Background()

	created, err := svc.Create(ctx, attachmenttype.CreateAttachmentTypeRequest{
		Name:              "Resume",
		AllowedExtensions: []string{".PDF", " docx", ""},
		MaxSizeMB:         5,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"pdf", "docx"}, created.AllowedExtensions)

	_, err = svc.Create(ctx, attachmenttype.CreateAttachmentTypeRequest{Name: "resume"})
	assert.ErrorIs(t, err, attachmenttypeerrors.ErrAttachmentTypeNameExists)

	require.NoError(t, db.Exec(`INSERT INTO candidate_attachments (id, attachment_type_id) VALUES (?, ?)`, uuid.NewString(), created.ID).Error)
	assert.ErrorIs(t, svc.Delete(ctx, created.ID), attachmenttypeerrors.ErrAttachmentTypeInUse)

	other, err := svc.Create(ctx, attachmenttype.CreateAttachmentTypeRequest{Name: "Portfolio"})
	require.NoError(t, err)
	assert.Empty(t, other.AllowedExtensions)
	require.NoError(t, svc.Delete(ctx, other.ID))

	_, err = svc.GetByID(ctx, other.ID)
	assert.ErrorIs(t, err, attachmenttypeerrors.ErrAttachmentTypeNotFound)
}
