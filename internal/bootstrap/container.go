package bootstrap

import (
	"context"
	"log"
	"time"

	"ai-writing-assistant-be/internal/config"
	"ai-writing-assistant-be/internal/controller"
	"ai-writing-assistant-be/internal/handler"
	"ai-writing-assistant-be/internal/pkg/logger"
	"ai-writing-assistant-be/internal/repository/memory"
	"ai-writing-assistant-be/internal/service"
	"ai-writing-assistant-be/internal/websocket"
	assistantEvents "ai-writing-assistant-be/pkg/assistant/events"
	"ai-writing-assistant-be/pkg/bus"
	"ai-writing-assistant-be/pkg/clipboard"
	"ai-writing-assistant-be/pkg/llm/factory"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// sessionEventsTopic is the bus topic session state changes travel on.
const sessionEventsTopic = "session-events"

type Container struct {
	// Controllers
	AssistantController controller.IAssistantController

	// WebSockets & Notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)
	busPublisher := bus.NewPublisher(pubSub, sessionEventsTopic)
	busSubscriber := bus.NewSubscriber(pubSub, sessionEventsTopic)

	// 3. Providers & Storage
	// Initialize LLM Provider based on Config
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.GoogleGemini,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// Initialize In-Memory Session Storage
	sessionRepo := memory.NewSessionRepository()

	// Host clipboard, degrades to echo-only on headless machines
	clipboardSvc := clipboard.NewService()

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(wsLogger)
	go wsHub.Run()

	// 4. Services
	eventPublisher := assistantEvents.NewBusPublisher(busPublisher, sysLogger)
	assistantService := service.NewAssistantService(
		sessionRepo,
		llmProvider,
		clipboardSvc,
		eventPublisher,
		sysLogger,
		time.Duration(cfg.Ai.GenerationTimeout)*time.Second,
	)

	// Notifier (Worker): bus events become websocket toasts.
	notifierService := service.NewNotifierService(busSubscriber, wsHub, wsLogger) // Hub implements NotificationDelivery
	if err := notifierService.Start(context.Background()); err != nil {
		log.Printf("[WARN] Failed to start notifier: %v", err)
	}

	// Handler
	notifHandler := handler.NewNotificationHandler(sessionRepo, busPublisher, wsHub, wsLogger)

	// 5. Controllers
	return &Container{
		AssistantController: controller.NewAssistantController(assistantService),
		NotificationHandler: notifHandler,
		WebSocketHub:        wsHub,
	}
}
