package app

import (
	"alumni_connect_backend/docs"
	"alumni_connect_backend/internal/config"
	"alumni_connect_backend/internal/middleware"
	"alumni_connect_backend/internal/model"
	"alumni_connect_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"

	// Swagger 文档
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Prometheus 指标
	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group("/api")

	// 公开接口
	api.GET("/health", c.health.HealthCheck)
	api.POST("/register", c.auth.Register)
	api.POST("/login", c.auth.Login)

	// 活动列表和详情对游客开放，带 token 时额外返回报名状态
	public := api.Group("")
	public.Use(middleware.TryAuthMiddleware(cfg))
	{
		public.GET("/events", c.event.ListEvents)
		public.GET("/events/:id", c.event.GetEvent)
		public.GET("/testimonials", c.testimonial.List)
	}

	// 登录后接口
	authorized := api.Group("")
	authorized.Use(middleware.AuthMiddleware(cfg))
	authorized.Use(middleware.ActivityMiddleware(repos.user))
	{
		authorized.GET("/profile", c.auth.GetProfile)
		authorized.PUT("/user/profile", c.user.UpdateProfile)
		authorized.POST("/user/avatar/upload", c.user.UploadAvatar)

		// 校友目录，仅登录用户可浏览，响应里不含联系方式
		authorized.GET("/alumni", c.directory.ListAlumni)
		authorized.GET("/alumni/:id", c.directory.GetAlumnus)

		// 导师申请生命周期
		mentorship := authorized.Group("/mentorship/requests")
		{
			mentorship.POST("", c.mentorship.Create)
			mentorship.GET("", c.mentorship.List)
			mentorship.GET("/:id", c.mentorship.Get)
			mentorship.POST("/:id/accept", c.mentorship.Accept)
			mentorship.PUT("/:id/reject", c.mentorship.Reject)
			mentorship.DELETE("/:id", c.mentorship.Delete)
		}

		authorized.POST("/events/:id/register", c.event.Register)
		authorized.DELETE("/events/:id/register", c.event.Unregister)

		authorized.POST("/testimonials", c.testimonial.Submit)
		authorized.DELETE("/testimonials/:id", c.testimonial.Delete)
	}

	// 管理后台
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(cfg))
	admin.Use(middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/users", c.user.GetUsers)
		admin.PUT("/users/:id/disabled", c.user.SetUserDisabled)

		admin.POST("/events", c.event.CreateEvent)
		admin.PUT("/events/:id", c.event.UpdateEvent)
		admin.DELETE("/events/:id", c.event.DeleteEvent)
		admin.POST("/events/image", c.event.UploadEventImage)
		admin.GET("/events/:id/registrations", c.event.ListRegistrations)

		admin.GET("/testimonials", c.testimonial.ListAll)
		admin.PUT("/testimonials/:id/approve", c.testimonial.Approve)
	}
}
