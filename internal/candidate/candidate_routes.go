package candidate

import (
	"go-hrms/internal/middleware"
	"go-hrms/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	candidates := r.Group("/candidates")
	candidates.Use(middleware.AuthMiddleware())
	{
		candidates.GET("", middleware.RBACAuthorize(rbacService, "recruitment", "read"), h.GetAll)
		candidates.POST("", middleware.RBACAuthorize(rbacService, "recruitment", "create"), h.Create)
		candidates.GET("/:id", middleware.RBACAuthorize(rbacService, "recruitment", "read"), h.GetById)
		candidates.PUT("/:id", middleware.RBACAuthorize(rbacService, "recruitment", "update"), h.Update)
		candidates.DELETE("/:id", middleware.RBACAuthorize(rbacService, "recruitment", "delete"), h.Delete)

		candidates.POST("/:id/advance", middleware.RBACAuthorize(rbacService, "recruitment", "update"), h.Advance)
		candidates.POST("/:id/reject", middleware.RBACAuthorize(rbacService, "recruitment", "update"), h.Reject)
		candidates.POST("/:id/hire", middleware.RBACAuthorize(rbacService, "recruitment", "hire"), h.Hire)
		candidates.POST("/:id/withdraw", middleware.RBACAuthorize(rbacService, "recruitment", "update"), h.Withdraw)

		candidates.GET("/:id/attachments", middleware.RBACAuthorize(rbacService, "recruitment", "read"), h.GetAttachments)
		candidates.POST("/:id/attachments", middleware.RBACAuthorize(rbacService, "recruitment", "update"), h.AddAttachment)
	}
}
