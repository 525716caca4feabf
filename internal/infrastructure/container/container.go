package container

import (
	"context"
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/skillbridge-sg/skillbridge-backend/internal/config"
	deliveryhttp "github.com/skillbridge-sg/skillbridge-backend/internal/delivery/http"
	"github.com/skillbridge-sg/skillbridge-backend/internal/delivery/http/handler"
	"github.com/skillbridge-sg/skillbridge-backend/internal/infrastructure/database"
	"github.com/skillbridge-sg/skillbridge-backend/internal/infrastructure/gemini"
	"github.com/skillbridge-sg/skillbridge-backend/internal/infrastructure/realtime"
	"github.com/skillbridge-sg/skillbridge-backend/internal/infrastructure/server"
	"github.com/skillbridge-sg/skillbridge-backend/internal/repository/postgres"
	"github.com/skillbridge-sg/skillbridge-backend/internal/usecase/assistant"
	"github.com/skillbridge-sg/skillbridge-backend/internal/usecase/auth"
	"github.com/skillbridge-sg/skillbridge-backend/internal/usecase/chat"
	"github.com/skillbridge-sg/skillbridge-backend/internal/usecase/moderation"
	"github.com/skillbridge-sg/skillbridge-backend/internal/usecase/profile"
	"github.com/skillbridge-sg/skillbridge-backend/internal/usecase/swipe"
)

// Container wires infrastructure, repositories, use cases and delivery.
type Container struct {
	Config *config.Config

	DB           *sqlx.DB
	RedisClient  *redis.Client
	GeminiClient *gemini.GeminiClient
	Hub          *realtime.Hub
	Server       *server.Server
}

func NewContainer(cfg *config.Config) (*Container, error) {
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to init postgres: %w", err)
	}

	redisClient, err := database.NewRedisClient(&cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to init redis: %w", err)
	}

	// The assistant degrades to 503 when no API key is configured.
	var geminiClient *gemini.GeminiClient
	if cfg.GeminiAPIKey != "" {
		geminiClient, err = gemini.NewGeminiClient(cfg.GeminiAPIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to init gemini: %w", err)
		}
	} else {
		log.Println("GEMINI_API_KEY not set, assistant endpoints disabled")
	}

	hub := realtime.NewHub()
	go hub.Run()

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	sessionRepo := postgres.NewSessionRepository(db)
	profileRepo := postgres.NewProfileRepository(db)
	convRepo := postgres.NewConversationRepository(db)
	messageRepo := postgres.NewMessageRepository(db)
	reportRepo := postgres.NewReportRepository(db)

	// Use cases
	authUseCase := auth.NewAuthUseCase(userRepo, profileRepo, sessionRepo, cfg.JWT.AccessSecret, cfg.JWT.AccessExpiryMin)
	profileUseCase := profile.NewProfileUseCase(profileRepo)
	chatUseCase := chat.NewChatUseCase(convRepo, messageRepo, hub, redisClient)
	swipeManager := swipe.NewManager(profileRepo, chatUseCase, swipe.NewRealClock())
	moderationUseCase := moderation.NewModerationUseCase(reportRepo, profileRepo)
	assistantUseCase := assistant.NewAssistantUseCase(geminiClient)

	// Delivery
	router := deliveryhttp.NewRouter(deliveryhttp.RouterDeps{
		Config:      cfg,
		RedisClient: redisClient,
		AuthUseCase: authUseCase,

		AuthHandler:       handler.NewAuthHandler(authUseCase),
		ProfileHandler:    handler.NewProfileHandler(profileUseCase, authUseCase),
		DiscoverHandler:   handler.NewDiscoverHandler(profileUseCase),
		SwipeHandler:      handler.NewSwipeHandler(swipeManager, hub),
		ChatHandler:       handler.NewChatHandler(chatUseCase),
		ModerationHandler: handler.NewModerationHandler(moderationUseCase),
		AssistantHandler:  handler.NewAssistantHandler(assistantUseCase),
		RealtimeHandler:   handler.NewRealtimeHandler(hub),
	})

	httpServer := server.NewServer(&cfg.Server, router)

	return &Container{
		Config:       cfg,
		DB:           db,
		RedisClient:  redisClient,
		GeminiClient: geminiClient,
		Hub:          hub,
		Server:       httpServer,
	}, nil
}

// Shutdown stops the server and closes external connections.
func (c *Container) Shutdown(ctx context.Context) error {
	if err := c.Server.Shutdown(ctx); err != nil {
		return err
	}
	if c.GeminiClient != nil {
		c.GeminiClient.Close()
	}
	if err := c.RedisClient.Close(); err != nil {
		log.Printf("failed to close redis: %v", err)
	}
	if err := c.DB.Close(); err != nil {
		log.Printf("failed to close database: %v", err)
	}
	return nil
}
