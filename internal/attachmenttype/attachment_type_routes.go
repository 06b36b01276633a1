package attachmenttype

import (
	"go-hrms/internal/middleware"
	"go-hrms/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	types := r.Group("/attachment-types")
	types.Use(middleware.AuthMiddleware())
	{
		types.GET("", middleware.RBACAuthorize(rbacService, "attachment_type", "read"), h.GetAll)
		types.POST("", middleware.RBACAuthorize(rbacService, "attachment_type", "create"), h.Create)
		types.GET("/:id", middleware.RBACAuthorize(rbacService, "attachment_type", "read"), h.GetById)
		types.PUT("/:id", middleware.RBACAuthorize(rbacService, "attachment_type", "update"), h.Update)
		types.DELETE("/:id", middleware.RBACAuthorize(rbacService, "attachment_type", "delete"), h.Delete)
	}
}
