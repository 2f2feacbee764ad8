package router

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/docexchange-backend/internal/config"
	"github.com/ignatzorin/docexchange-backend/internal/domain/repository"
	"github.com/ignatzorin/docexchange-backend/internal/http/middleware"
	"github.com/ignatzorin/docexchange-backend/internal/interface/http/handler"
)

type Handlers struct {
	Account     *handler.AccountHandler
	Text        *handler.TextHandler
	Post        *handler.PostHandler
	Negotiation *handler.NegotiationHandler
	Deal        *handler.DealHandler
	Complaint   *handler.ComplaintHandler
	Moderation  *handler.ModerationHandler
	Health      *handler.HealthHandler
}

func SetupRouter(cfg *config.Config, h Handlers, identity repository.IdentityResolver) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", h.Health.Health)

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod))
	{
		authGroup.POST("/register", h.Account.Register)
		authGroup.POST("/login", h.Account.Login)
	}

	// Публичные маршруты
	api.POST("/text/validate-contact", h.Text.ValidateContact)
	api.GET("/teachers/:id/rating", middleware.UUIDValidator("id"), h.Deal.TeacherRating)

	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(identity))
	{
		protected.GET("/users/me", h.Account.Me)
		protected.DELETE("/users/me", h.Account.DeleteMe)
		protected.GET("/users/me/deals", h.Deal.ListMine)
		protected.PATCH("/users/:id", middleware.UUIDValidator("id"), h.Account.EditProfile)

		protected.GET("/posts", h.Post.ListOpen)
		protected.POST("/posts", h.Post.Create)
		protected.GET("/posts/mine", h.Post.ListMine)
		protected.GET("/posts/:id", middleware.UUIDValidator("id"), h.Post.Get)
		protected.PATCH("/posts/:id", middleware.UUIDValidator("id"), h.Post.Edit)
		protected.PATCH("/posts/:id/price", middleware.UUIDValidator("id"), h.Post.RaisePrice)
		protected.DELETE("/posts/:id", middleware.UUIDValidator("id"), h.Post.Delete)

		protected.GET("/posts/:id/threads", middleware.UUIDValidator("id"), h.Negotiation.PostThreads)
		protected.POST("/posts/:id/responses", middleware.UUIDValidator("id"), h.Negotiation.Respond)
		protected.POST("/responses/:id/counter-offers", middleware.UUIDValidator("id"), h.Negotiation.CounterOffer)
		protected.GET("/teachers/me/threads", h.Negotiation.TeacherThreads)

		protected.POST("/deals", h.Deal.Create)
		protected.PATCH("/deals/:id/finish", middleware.UUIDValidator("id"), h.Deal.Finish)
		protected.POST("/deals/:id/feedback", middleware.UUIDValidator("id"), h.Deal.Feedback)

		protected.POST("/deals/:id/complaints", middleware.UUIDValidator("id"), h.Complaint.Create)
		protected.GET("/deals/:id/complaints/mine", middleware.UUIDValidator("id"), h.Complaint.GetMine)
		protected.POST("/documents/:id/complaints", middleware.UUIDValidator("id"), h.Complaint.FileDocument)
	}

	// Модерация. Роль проверяется в use case.
	moderation := api.Group("/moderation")
	moderation.Use(middleware.AuthMiddleware(identity))
	{
		moderation.GET("/profile-errors", h.Moderation.ListProfileErrors)
		moderation.POST("/profile-errors/:id/decision", middleware.UUIDValidator("id"), h.Moderation.DecideProfileError)
		moderation.GET("/post-errors", h.Moderation.ListPostErrors)
		moderation.POST("/post-errors/:id/decision", middleware.UUIDValidator("id"), h.Moderation.DecidePostError)

		moderation.GET("/complaints", h.Complaint.List)
		moderation.POST("/complaints/:id/assign", middleware.UUIDValidator("id"), h.Complaint.Assign)
		moderation.PATCH("/complaints/:id/status", middleware.UUIDValidator("id"), h.Complaint.UpdateStatus)
		moderation.DELETE("/complaints/:id", middleware.UUIDValidator("id"), h.Complaint.Delete)

		moderation.GET("/document-complaints", h.Complaint.ListDocument)
		moderation.DELETE("/document-complaints/:id", middleware.UUIDValidator("id"), h.Complaint.DeleteDocument)
	}

	return r
}
