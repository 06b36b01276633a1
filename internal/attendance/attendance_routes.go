package attendance

import (
	"go-hrms/internal/middleware"
	"go-hrms/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	attendances := r.Group("/attendances")
	attendances.Use(middleware.AuthMiddleware())
	{
		attendances.POST("/clock-in", h.ClockIn)
		attendances.POST("/clock-out", h.ClockOut)
		attendances.GET("/me", h.GetMine)

		attendances.GET("", middleware.RBACAuthorize(rbacService, "attendance", "read"), h.GetAll)
		attendances.GET("/:id", middleware.RBACAuthorize(rbacService, "attendance", "read"), h.GetById)
		attendances.POST("", middleware.RBACAuthorize(rbacService, "attendance", "create"), h.Create)
		attendances.PUT("/:id", middleware.RBACAuthorize(rbacService, "attendance", "update"), h.Update)
		attendances.DELETE("/:id", middleware.RBACAuthorize(rbacService, "attendance", "delete"), h.Delete)
	}
}
