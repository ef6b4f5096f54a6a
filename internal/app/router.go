package app

import (
	"chaos_backend/docs"
	"chaos_backend/internal/config"
	"chaos_backend/internal/middleware"
	"chaos_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)
	a.registerApplicantRoutes(router, c, cfg)
	a.registerOrgRoutes(router, c, repos, cfg)
	a.registerAdminRoutes(router, c, cfg)
}

// Public routes: campaign browsing needs no account.
func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)

		public.GET("/campaigns", c.campaign.ListPublished)
		public.GET("/campaigns/:id", c.campaign.Get)
		public.GET("/campaigns/:id/roles", c.campaign.ListRoles)
		public.GET("/campaigns/:id/questions", c.question.ListCommon)
		public.GET("/campaigns/:id/roles/:roleId/questions", c.question.ListForRole)

		public.GET("/organisations", c.organisation.List)
		public.GET("/organisations/:orgId", c.organisation.Get)
	}
}

// Applicant routes: everything an authenticated user does with their own
// application.
func (a *App) registerApplicantRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	applicant := router.Group("/api")
	applicant.Use(middleware.AuthMiddleware(cfg))
	{
		applicant.GET("/profile", c.auth.GetProfile)

		applicant.POST("/campaigns/:id/applications", c.application.CreateOrGet)
		applicant.GET("/campaigns/:id/slots", c.interview.ListSlots)

		applicant.GET("/applications/:id/roles", c.application.GetRoles)
		applicant.PUT("/applications/:id/roles", c.application.ReplaceRoles)

		applicant.GET("/applications/:id/answers", c.answer.ListCommon)
		applicant.POST("/applications/:id/answers", c.answer.Create)
		applicant.GET("/applications/:id/roles/:roleId/answers", c.answer.ListForRole)
		applicant.PUT("/answers/:answerId", c.answer.Update)
		applicant.DELETE("/answers/:answerId", c.answer.Delete)

		applicant.POST("/applications/:id/booking", c.interview.Book)
		applicant.DELETE("/applications/:id/booking", c.interview.CancelBooking)

		applicant.POST("/organisations", c.organisation.Create)
	}
}

// Organisation routes: campaign management and reviewing, restricted to the
// organisation's members.
func (a *App) registerOrgRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	org := router.Group("/api/organisations/:orgId")
	org.Use(middleware.AuthMiddleware(cfg), middleware.OrgMemberMiddleware(repos.organisation))
	{
		org.GET("/members", c.organisation.ListMembers)
		org.POST("/members", c.organisation.AddMember)
		org.DELETE("/members/:userId", c.organisation.RemoveMember)

		org.GET("/campaigns", c.campaign.ListByOrganisation)
		org.POST("/campaigns", c.campaign.Create)
		org.PUT("/campaigns/:campaignId", c.campaign.Update)
		org.DELETE("/campaigns/:campaignId", c.campaign.Delete)
		org.POST("/campaigns/:campaignId/cover", c.campaign.UploadCover)

		org.POST("/campaigns/:campaignId/roles", c.campaign.CreateRole)
		org.PUT("/roles/:roleId", c.campaign.UpdateRole)
		org.DELETE("/roles/:roleId", c.campaign.DeleteRole)

		org.POST("/campaigns/:campaignId/questions", c.question.Create)
		org.PUT("/questions/:questionId", c.question.Update)
		org.DELETE("/questions/:questionId", c.question.Delete)

		org.GET("/campaigns/:campaignId/applications", c.review.ListApplications)
		org.GET("/campaigns/:campaignId/export", c.review.Export)
		org.GET("/applications/:appId", c.review.GetApplication)
		org.POST("/applications/:appId/ratings", c.review.Rate)
		org.PUT("/applications/:appId/status", c.review.SetStatus)

		org.POST("/campaigns/:campaignId/slots", c.interview.CreateSlot)
		org.DELETE("/slots/:slotId", c.interview.DeleteSlot)
	}
}

// Admin routes: platform-level operations.
func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.AdminMiddleware())
	{
		admin.DELETE("/organisations/:orgId", c.organisation.Delete)
	}
}
