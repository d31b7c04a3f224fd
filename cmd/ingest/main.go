package main

import (
	"context"
	"log"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/fatih/color"

	"techgear-support-be/internal/config"
	"techgear-support-be/internal/repository"
	"techgear-support-be/internal/service"
	"techgear-support-be/pkg/database"
	"techgear-support-be/pkg/embedding"
)

// Ingest reads the catalog file, splits it into chunks and embeds each chunk
// into Postgres. It runs the same publisher/consumer pair the server uses,
// then waits for the queue to drain.
func main() {
	cfg := config.Load()

	color.Cyan("🚀 Catalog ingestion: %s", cfg.Chat.CatalogPath)

	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}
	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Error: Failed to connect to database: %v", err)
	}

	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaEmbedModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
	}

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
	embeddingRepo := repository.NewCatalogEmbeddingRepository(db)
	publisherService := service.NewPublisherService(cfg.Keys.EmbedTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, cfg.Keys.EmbedTopic, embeddingRepo, embeddingProvider)
	ingestService := service.NewIngestService(
		cfg.Chat.CatalogPath,
		cfg.Chat.ChunkSize,
		cfg.Chat.ChunkOverlap,
		embeddingRepo,
		publisherService,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := consumerService.Consume(ctx); err != nil {
		log.Fatalf("Error: Failed to start consumer: %v", err)
	}

	res, err := ingestService.Reindex(ctx)
	if err != nil {
		log.Fatalf("Error: Reindex failed: %v", err)
	}
	color.Yellow("Queued %d chunks from %s, waiting for embeddings...", res.ChunksQueued, res.Source)

	// Poll until every chunk landed or the deadline hits.
	for {
		select {
		case <-ctx.Done():
			log.Fatalf("Error: Timed out waiting for embeddings: %v", ctx.Err())
		case <-time.After(2 * time.Second):
		}

		count, err := ingestService.Count(ctx)
		if err != nil {
			log.Fatalf("Error: Failed to count stored chunks: %v", err)
		}
		color.Yellow("Stored %d/%d chunks", count, res.ChunksQueued)
		if count >= int64(res.ChunksQueued) {
			color.Green("✅ Catalog ingestion complete: %d chunks", count)
			return
		}
	}
}
