package bootstrap

import (
	"context"
	"log"
	"os"

	"velocity-ai-be/internal/config"
	"velocity-ai-be/internal/controller"
	"velocity-ai-be/internal/handler"
	"velocity-ai-be/internal/pkg/logger"
	"velocity-ai-be/internal/pkg/mailer"
	"velocity-ai-be/internal/repository/implementation"
	"velocity-ai-be/internal/repository/memory"
	"velocity-ai-be/internal/repository/unitofwork"
	"velocity-ai-be/internal/service"
	"velocity-ai-be/internal/websocket"
	"velocity-ai-be/pkg/agent/checkpoint"
	"velocity-ai-be/pkg/agent/executor"
	"velocity-ai-be/pkg/embedding"
	"velocity-ai-be/pkg/embedding/jina"
	"velocity-ai-be/pkg/graph"
	"velocity-ai-be/pkg/llm/factory"
	"velocity-ai-be/pkg/tools"

	pktNats "velocity-ai-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController         controller.IAuthController
	OAuthController        controller.IOAuthController
	UserController         controller.IUserController
	ChatController         controller.IChatController
	ConversationController controller.IConversationController
	ActivityController     controller.IActivityController
	DashboardController    controller.IDashboardController
	IntegrationController  controller.IIntegrationController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
	PollingService  service.IPollingService
	PollingEnabled  bool

	// WebSockets & Notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	sysLogger.Info("bootstrap", "Container initializing", map[string]interface{}{
		"environment": cfg.App.Environment,
	})

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus (in-process, carries polling ticks to the consumer)
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. Agent Pipeline
	// LLM provider; falls back to canned responses when no key is set
	llmAPIKey, llmBaseURL := llmProviderArgs(cfg)
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		llmBaseURL,
		llmAPIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// Platform tool clients for the ingest/research steps
	toolRegistry := tools.NewRegistry(
		cfg.Keys.GitHubToken,
		cfg.Keys.SlackToken,
		cfg.Keys.GoogleToken,
	)

	// Knowledge graph memory
	var graphMemory graph.Memory
	if cfg.Agent.GraphStore == "postgres" {
		var embeddingProvider embedding.EmbeddingProvider
		switch cfg.Ai.EmbeddingProvider {
		case "ollama":
			embeddingProvider = embedding.NewOllamaProvider(
				cfg.Ai.OllamaBaseURL,
				cfg.Ai.OllamaModel,
			)
			log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
		case "jina":
			embeddingProvider = jina.NewJinaProvider(cfg.Keys.Jina)
			log.Printf("[INFO] Using Embedding Provider: JINA AI")
		default:
			embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
			log.Printf("[INFO] Using Embedding Provider: GEMINI")
		}
		graphMemory = graph.NewPgStore(uowFactory.NewUnitOfWork(context.Background()), embeddingProvider)
		log.Printf("[INFO] Knowledge graph: postgres (pgvector)")
	} else {
		graphMemory = graph.NewInMemoryStore(memory.NewGraphCacheRepository())
		log.Printf("[INFO] Knowledge graph: in-memory")
	}

	// Checkpoint store for run state and the approval gate
	var checkpointStore checkpoint.Store
	if cfg.Agent.CheckpointStore == "redis" {
		checkpointStore = checkpoint.NewRedisStore(rdb)
		log.Printf("[INFO] Checkpoint store: redis")
	} else {
		checkpointStore = checkpoint.NewMemoryStore()
		log.Printf("[INFO] Checkpoint store: in-memory")
	}

	agentLogger := newAgentLogger(cfg.App.AgentLogFilePath)
	agentExecutor := executor.New(llmProvider, toolRegistry, graphMemory, checkpointStore, agentLogger)

	// 4. Services
	userService := service.NewUserService(uowFactory, natsPub)
	authService := service.NewAuthService(uowFactory, emailService, natsPub)
	oauthService := service.NewOAuthService(uowFactory)

	activityService := service.NewActivityService(uowFactory, natsPub)
	dashboardService := service.NewDashboardService(uowFactory)
	conversationService := service.NewConversationService(uowFactory)

	chatService := service.NewChatService(
		uowFactory,
		agentExecutor,
		llmProvider,
		emailService,
		natsPub,
		dashboardService,
		activityService,
	)

	oauthStateRepo := memory.NewOAuthStateRepository()
	integrationService := service.NewIntegrationService(uowFactory, oauthStateRepo, cfg)

	// Polling worker publishes integration updates; the consumer feeds
	// them through the workspace pipeline.
	publisherService := service.NewPublisherService(cfg.Keys.PollingTopic, pubSub)
	pollingService := service.NewPollingService(
		dashboardService,
		publisherService,
		cfg.Agent.PollingInterval,
	)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Keys.PollingTopic,
		agentExecutor,
		activityService,
	)

	// 5. Notification System
	notifRepo := implementation.NewNotificationRepository(db)
	notifService := service.NewNotificationService(notifRepo, natsSub, wsHub, wsLogger)

	// Start Service (Worker)
	if natsSub != nil {
		go notifService.Start()
	}

	notifHandler := handler.NewNotificationHandler(notifService, natsPub, wsHub, wsLogger)

	// 6. Controllers
	return &Container{
		NotificationHandler: notifHandler,
		WebSocketHub:        wsHub,

		AuthController:         controller.NewAuthController(authService),
		OAuthController:        controller.NewOAuthController(oauthService),
		UserController:         controller.NewUserController(userService),
		ChatController:         controller.NewChatController(chatService),
		ConversationController: controller.NewConversationController(conversationService),
		ActivityController:     controller.NewActivityController(activityService),
		DashboardController:    controller.NewDashboardController(dashboardService),
		IntegrationController:  controller.NewIntegrationController(integrationService),

		ConsumerService: consumerService,
		PollingService:  pollingService,
		PollingEnabled:  cfg.Agent.PollingEnabled,
	}
}

// llmProviderArgs picks the API key and base URL the LLM factory needs
// for the configured provider. The Ollama base URL belongs to Ollama
// only; hosted providers get an empty base URL so they resolve their
// own default endpoints.
func llmProviderArgs(cfg *config.Config) (apiKey, baseURL string) {
	switch cfg.Ai.LLMProvider {
	case "gemini":
		return cfg.Keys.GoogleGemini, ""
	case "ollama":
		return "", cfg.Ai.OllamaBaseURL
	default:
		return cfg.Keys.Groq, ""
	}
}

// newAgentLogger writes pipeline step logs to their own file so agent
// traces don't interleave with HTTP logs. Falls back to stderr.
func newAgentLogger(path string) *log.Logger {
	if path != "" {
		if f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644); err == nil {
			return log.New(f, "[agent] ", log.LstdFlags|log.Lmsgprefix)
		}
		log.Printf("[WARN] Could not open agent log file %s, using stderr", path)
	}
	return log.New(os.Stderr, "[agent] ", log.LstdFlags|log.Lmsgprefix)
}
