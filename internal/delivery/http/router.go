package http

import (
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"

	"github.com/skillbridge-sg/skillbridge-backend/internal/config"
	"github.com/skillbridge-sg/skillbridge-backend/internal/delivery/http/handler"
	"github.com/skillbridge-sg/skillbridge-backend/internal/delivery/http/middleware"
	"github.com/skillbridge-sg/skillbridge-backend/internal/usecase/auth"
)

// RouterDeps bundles everything the router needs.
type RouterDeps struct {
	Config      *config.Config
	RedisClient *redis.Client

	AuthUseCase *auth.AuthUseCase

	AuthHandler       *handler.AuthHandler
	ProfileHandler    *handler.ProfileHandler
	DiscoverHandler   *handler.DiscoverHandler
	SwipeHandler      *handler.SwipeHandler
	ChatHandler       *handler.ChatHandler
	ModerationHandler *handler.ModerationHandler
	AssistantHandler  *handler.AssistantHandler
	RealtimeHandler   *handler.RealtimeHandler
}

var sgPhonePattern = regexp.MustCompile(`^\+65[89]\d{7}$`)

// registerValidators adds the sgphone binding tag used on auth requests.
func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("sgphone", func(fl validator.FieldLevel) bool {
			return sgPhonePattern.MatchString(fl.Field().String())
		})
	}
}

// NewRouter builds the gin engine with all routes.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	registerValidators()

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authRequired := middleware.AuthMiddleware(deps.AuthUseCase)

	v1 := router.Group("/api/v1")
	{
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", deps.AuthHandler.Register)
			authGroup.POST("/login", deps.AuthHandler.Login)
			authGroup.POST("/logout", authRequired, deps.AuthHandler.Logout)
			authGroup.GET("/me", authRequired, deps.AuthHandler.Me)
		}

		profiles := v1.Group("/profiles", authRequired)
		{
			profiles.GET("/me", deps.ProfileHandler.GetMyProfile)
			profiles.PUT("/me", deps.ProfileHandler.UpdateMyProfile)
			profiles.GET("/:user_id", deps.ProfileHandler.GetProfile)
		}

		v1.GET("/discover",
			authRequired,
			middleware.RateLimit(deps.RedisClient, "discover", deps.Config.RateLimit.DiscoverPerMinute),
			deps.DiscoverHandler.Discover,
		)

		swipeGroup := v1.Group("/swipe", authRequired)
		{
			swipeGroup.POST("/session", deps.SwipeHandler.StartSession)
			swipeGroup.GET("/session", deps.SwipeHandler.GetSession)
			swipeGroup.DELETE("/session", deps.SwipeHandler.EndSession)
			swipeGroup.POST("/drag/start", deps.SwipeHandler.DragStart)
			swipeGroup.POST("/drag/move", deps.SwipeHandler.DragMove)
			swipeGroup.POST("/drag/end", deps.SwipeHandler.DragEnd)
			swipeGroup.POST("/commit", deps.SwipeHandler.Commit)
			swipeGroup.POST("/undo", deps.SwipeHandler.Undo)
			swipeGroup.POST("/restart", deps.SwipeHandler.Restart)
			swipeGroup.POST("/celebration/dismiss", deps.SwipeHandler.DismissCelebration)
		}

		conversations := v1.Group("/conversations", authRequired)
		{
			conversations.POST("", deps.ChatHandler.CreateConversation)
			conversations.GET("", deps.ChatHandler.ListConversations)
			conversations.POST("/:id/messages", deps.ChatHandler.SendMessage)
			conversations.GET("/:id/messages", deps.ChatHandler.GetMessages)
			conversations.POST("/:id/read", deps.ChatHandler.MarkRead)
		}
		v1.GET("/messages/unread", authRequired, deps.ChatHandler.UnreadCount)

		v1.POST("/reports", authRequired, deps.ModerationHandler.SubmitReport)

		// The route guard below is the only authorization check for the
		// moderation console.
		moderationGroup := v1.Group("/moderation", authRequired, middleware.RequireModerator(deps.AuthUseCase))
		{
			moderationGroup.GET("/reports", deps.ModerationHandler.ListReports)
			moderationGroup.POST("/reports/:id/action", deps.ModerationHandler.ApplyAction)
			moderationGroup.PATCH("/reports/:id/status", deps.ModerationHandler.UpdateStatus)
		}

		assistantGroup := v1.Group("/assistant", authRequired)
		{
			assistantGroup.POST("/chat",
				middleware.RateLimit(deps.RedisClient, "assistant", deps.Config.RateLimit.AssistantPerMinute),
				deps.AssistantHandler.Chat,
			)
			assistantGroup.POST("/translate", deps.AssistantHandler.Translate)
			assistantGroup.GET("/languages", deps.AssistantHandler.Languages)
		}

		v1.GET("/ws", authRequired, deps.RealtimeHandler.Connect)
	}

	return router
}
