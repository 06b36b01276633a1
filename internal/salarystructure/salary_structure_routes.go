package salarystructure

import (
	"go-hrms/internal/middleware"
	"go-hrms/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	structures := r.Group("/salary-structures")
	structures.Use(middleware.AuthMiddleware())
	{
		structures.GET("", middleware.RBACAuthorize(rbacService, "salary_structure", "read"), h.GetAll)
		structures.GET("/active", middleware.RBACAuthorize(rbacService, "salary_structure", "read"), h.GetActive)
		structures.GET("/:id", middleware.RBACAuthorize(rbacService, "salary_structure", "read"), h.GetById)
		structures.POST("", middleware.RBACAuthorize(rbacService, "salary_structure", "create"), h.Create)
		structures.PUT("/:id", middleware.RBACAuthorize(rbacService, "salary_structure", "update"), h.Update)
		structures.DELETE("/:id", middleware.RBACAuthorize(rbacService, "salary_structure", "delete"), h.Delete)
	}
}
