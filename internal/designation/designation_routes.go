package designation

import (
	"go-hrms/internal/middleware"
	"go-hrms/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	designations := r.Group("/designations")
	designations.Use(middleware.AuthMiddleware())
	{
		designations.GET("", middleware.RBACAuthorize(rbacService, "designation", "read"), h.GetAll)
		designations.POST("", middleware.RBACAuthorize(rbacService, "designation", "create"), h.Create)
		designations.GET("/:id", middleware.RBACAuthorize(rbacService, "designation", "read"), h.GetById)
		designations.PUT("/:id", middleware.RBACAuthorize(rbacService, "designation", "update"), h.Update)
		designations.DELETE("/:id", middleware.RBACAuthorize(rbacService, "designation", "delete"), h.Delete)
	}
}
