package http

import (
	"github.com/adrianmtzc/campusmatch-backend/internal/delivery/http/handler"
	"github.com/adrianmtzc/campusmatch-backend/internal/delivery/http/middleware"
	"github.com/adrianmtzc/campusmatch-backend/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

type Router struct {
	authHandler      *handler.AuthHandler
	userHandler      *handler.UserHandler
	matchHandler     *handler.MatchHandler
	chatHandler      *handler.ChatHandler
	eventHandler     *handler.EventHandler
	groupHandler     *handler.StudyGroupHandler
	authMiddleware   *middleware.AuthMiddleware
	rateLimit        *middleware.RateLimitMiddleware
	localUploadsPath string
}

func NewRouter(
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	matchHandler *handler.MatchHandler,
	chatHandler *handler.ChatHandler,
	eventHandler *handler.EventHandler,
	groupHandler *handler.StudyGroupHandler,
	authMiddleware *middleware.AuthMiddleware,
	rateLimit *middleware.RateLimitMiddleware,
	localUploadsPath string,
) *Router {
	return &Router{
		authHandler:      authHandler,
		userHandler:      userHandler,
		matchHandler:     matchHandler,
		chatHandler:      chatHandler,
		eventHandler:     eventHandler,
		groupHandler:     groupHandler,
		authMiddleware:   authMiddleware,
		rateLimit:        rateLimit,
		localUploadsPath: localUploadsPath,
	}
}

// registerValidators hooks the institutional-email rule into gin's binding
// validator so request structs can tag `university_email`.
func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("university_email", func(fl validator.FieldLevel) bool {
			_, err := domain.NewUniversityEmail(fl.Field().String())
			return err == nil
		})
	}
}

func (r *Router) Setup() *gin.Engine {
	registerValidators()

	router := gin.Default()

	// Health check (supports both GET and HEAD)
	healthHandler := func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	if r.localUploadsPath != "" {
		router.Static("/uploads", r.localUploadsPath)
	}

	// API v1
	v1 := router.Group("/api/v1")
	v1.Use(r.rateLimit.Limit())
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authHandler.Register)
			auth.POST("/login", r.authHandler.Login)
			auth.GET("/verify", r.authHandler.VerifyEmail)
			auth.POST("/resend-verification", r.authHandler.ResendVerification)
			auth.GET("/me", r.authMiddleware.RequireAuth(), r.authHandler.Me)
		}

		// Protected routes
		protected := v1.Group("")
		protected.Use(r.authMiddleware.RequireAuth())
		{
			// Profile routes
			profile := protected.Group("/profile")
			{
				profile.GET("/me", r.userHandler.GetMyProfile)
				profile.PUT("/me", r.userHandler.UpdateMyProfile)
				profile.POST("/photos", r.userHandler.UploadPhoto)
				profile.DELETE("/photos/:photo_id", r.userHandler.DeletePhoto)
				profile.GET("/:user_id", r.userHandler.GetProfile)
			}

			protected.GET("/users/search", r.userHandler.Search)

			// Match routes
			matches := protected.Group("/matches")
			{
				matches.GET("", r.matchHandler.GetMatches)
				matches.GET("/potential", r.matchHandler.GetPotentialMatches)
				matches.POST("/action", r.matchHandler.Action)
				matches.DELETE("/:match_id", r.matchHandler.Unmatch)
				matches.POST("/:match_id/block", r.matchHandler.Block)
			}

			// Chat routes
			chats := protected.Group("/chats")
			{
				chats.GET("", r.chatHandler.GetConversations)
				chats.GET("/unread-count", r.chatHandler.UnreadCount)
				chats.POST("/messages/read", r.chatHandler.MarkRead)
				chats.POST("/:match_id/messages", r.chatHandler.Send)
				chats.GET("/:match_id/messages", r.chatHandler.GetMessages)
				chats.GET("/:match_id/poll", r.chatHandler.Poll)
				chats.POST("/:match_id/study-invitations", r.chatHandler.SendStudyInvitation)
				chats.POST("/study-invitations/:message_id/respond", r.chatHandler.RespondStudyInvitation)
			}

			// Event routes
			events := protected.Group("/events")
			{
				events.GET("", r.eventHandler.List)
				events.POST("", r.eventHandler.Create)
				events.GET("/joined", r.eventHandler.ListJoined)
				events.GET("/:event_id", r.eventHandler.Get)
				events.PUT("/:event_id", r.eventHandler.Update)
				events.DELETE("/:event_id", r.eventHandler.Cancel)
				events.POST("/:event_id/join", r.eventHandler.Join)
				events.POST("/:event_id/leave", r.eventHandler.Leave)
			}

			// Study group routes
			groups := protected.Group("/study-groups")
			{
				groups.GET("", r.groupHandler.List)
				groups.POST("", r.groupHandler.Create)
				groups.GET("/joined", r.groupHandler.ListJoined)
				groups.GET("/popular-subjects", r.groupHandler.PopularSubjects)
				groups.GET("/:group_id", r.groupHandler.Get)
				groups.PUT("/:group_id", r.groupHandler.Update)
				groups.DELETE("/:group_id", r.groupHandler.Delete)
				groups.POST("/:group_id/join", r.groupHandler.Join)
				groups.POST("/:group_id/leave", r.groupHandler.Leave)
			}
		}
	}

	return router
}
