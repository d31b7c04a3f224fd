package bootstrap

import (
	"log"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"

	"techgear-support-be/internal/config"
	"techgear-support-be/internal/controller"
	"techgear-support-be/internal/pkg/logger"
	"techgear-support-be/internal/pkg/mailer"
	"techgear-support-be/internal/repository"
	"techgear-support-be/internal/service"
	"techgear-support-be/internal/session"
	"techgear-support-be/pkg/catalog"
	"techgear-support-be/pkg/chatcontext"
	"techgear-support-be/pkg/classifier"
	"techgear-support-be/pkg/embedding"
	"techgear-support-be/pkg/llm/factory"
	pktNats "techgear-support-be/pkg/nats"
	"techgear-support-be/pkg/rag"
	"techgear-support-be/pkg/responder"
	"techgear-support-be/pkg/router"
)

type Container struct {
	// Controllers
	ChatController  controller.IChatController
	AdminController controller.IAdminController

	// Background services (exposed for main.go to run)
	ConsumerService service.IConsumerService
	NotifierService service.INotifierService
	IngestService   service.IIngestService

	// Shared facades
	Logger *logger.ZapLogger
}

// NewContainer wires the whole turn pipeline. db may be nil: the chatbot
// then runs in fallback-only mode without retrieval.
func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.Email,
		cfg.SMTP.SenderName,
	)

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaEmbedModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaEmbedModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.GoogleGemini,
	)
	if err != nil {
		log.Printf("[WARN] LLM provider unavailable, keyword fallback only: %v", err)
		llmProvider = nil
	} else {
		log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)
	}

	// 4. Catalog
	cat, err := catalog.Load(cfg.Chat.CatalogPath)
	if err != nil {
		log.Fatalf("[FATAL] Failed to load product catalog: %v", err)
	}
	log.Printf("[INFO] Catalog loaded: %d products", len(cat.ProductNames()))

	// 5. NATS (optional; escalation events degrade to log-only)
	var eventPublisher router.EventPublisher
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	} else {
		eventPublisher = natsPub
	}

	var notifierService service.INotifierService
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	} else {
		notifierService = service.NewNotifierService(natsSub, emailService, cfg.SMTP.SupportInbox, sysLogger)
	}

	// 6. Retrieval pipeline and ingestion (need the database)
	var (
		pipeline        *rag.Pipeline
		consumerService service.IConsumerService
		ingestService   service.IIngestService
	)
	if db != nil {
		embeddingRepo := repository.NewCatalogEmbeddingRepository(db)
		pipeline = rag.NewPipeline(
			embeddingProvider,
			llmProvider,
			embeddingRepo,
			cfg.Chat.RetrievalTopK,
			cfg.Ai.GenerateTimeout,
			nil,
		)

		publisherService := service.NewPublisherService(cfg.Keys.EmbedTopic, pubSub)
		consumerService = service.NewConsumerService(pubSub, cfg.Keys.EmbedTopic, embeddingRepo, embeddingProvider)
		ingestService = service.NewIngestService(
			cfg.Chat.CatalogPath,
			cfg.Chat.ChunkSize,
			cfg.Chat.ChunkOverlap,
			embeddingRepo,
			publisherService,
		)
	} else {
		log.Printf("[WARN] No database configured; retrieval disabled, registry answers only")
	}

	// 7. Turn pipeline
	cls := classifier.New(llmProvider, cfg.Ai.ClassifyTimeout, nil)

	var generator router.Generator
	if pipeline != nil {
		generator = pipeline
	}
	rt := router.New(cls, generator, responder.NewRegistry(), cat, eventPublisher, nil)

	store := session.NewStore(cfg.Chat.SessionTimeout, cfg.Chat.HistoryLimit)
	tracker := chatcontext.NewTracker(cat, nil)

	ragReady := func() bool { return pipeline != nil && pipeline.Ready() }
	supportService := service.NewSupportService(store, tracker, rt, cat, ragReady, sysLogger)

	// 8. Controllers
	chatController := controller.NewChatController(supportService)
	adminController := controller.NewAdminController(ingestService, sysLogger)

	return &Container{
		ChatController:  chatController,
		AdminController: adminController,
		ConsumerService: consumerService,
		NotifierService: notifierService,
		IngestService:   ingestService,
		Logger:          sysLogger,
	}
}
