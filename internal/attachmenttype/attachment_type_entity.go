package attachmenttype

import (
	"path/filepath"
	"strings"
	"time"

	attachmenttypeerrors "go-hrms/internal/attachmenttype/errors"

	"github.com/google/uuid"
)

type AttachmentType struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name              string    `gorm:"type:varchar(100);not null;uniqueIndex:uq_attachment_types_name"`
	AllowedExtensions string    `gorm:"type:varchar(255);not null;default:''"`
	MaxSizeMB         int       `gorm:"column:max_size_mb;not null;default:5"`
	IsRequired        bool      `gorm:"not null;default:false"`
	Description       string    `gorm:"type:text"`
	CreatedAt         time.Time `gorm:"autoCreateTime"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime"`
}

func (AttachmentType) TableName() string {
	return "attachment_types"
}

func (a AttachmentType) Extensions() []string {
	return splitExtensions(a.AllowedExtensions)
}

// Allows checks a file name and size against the type. An empty extension
// list accepts any extension; MaxSizeMB <= 0 means no size limit.
func (a AttachmentType) Allows(fileName string, size int64) error {
	if exts := a.Extensions(); len(exts) > 0 {
		ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(fileName)), ".")
		ok := false
		for _, e := range exts {
			if e == ext {
				ok = true
				break
			}
		}
		if !ok {
			return attachmenttypeerrors.ErrExtensionNotAllowed
		}
	}
	if a.MaxSizeMB > 0 && size > int64(a.MaxSizeMB)<<20 {
		return attachmenttypeerrors.ErrFileTooLarge
	}
	return nil
}

func splitExtensions(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		p = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(p)), ".")
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func joinExtensions(exts []string) string {
	return strings.Join(splitExtensions(strings.Join(exts, ",")), ",")
}
