package attachmenttype

type CreateAttachmentTypeRequest struct {
	Name              string   `json:"name" binding:"required,max=100"`
	AllowedExtensions []string `json:"allowed_extensions"`
	MaxSizeMB         int      `json:"max_size_mb" binding:"gte=0,lte=100"`
	IsRequired        bool     `json:"is_required"`
	Description       string   `json:"description"`
}

type UpdateAttachmentTypeRequest = CreateAttachmentTypeRequest

type AttachmentTypeResponse struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	AllowedExtensions []string `json:"allowed_extensions"`
	MaxSizeMB         int      `json:"max_size_mb"`
	IsRequired        bool     `json:"is_required"`
	Description       string   `json:"description"`
}
