// FILE: internal/service/consumer_service.go
package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"

	"techgear-support-be/internal/dto"
	"techgear-support-be/internal/model"
	"techgear-support-be/internal/repository"
	"techgear-support-be/pkg/embedding"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	embeddingRepo     repository.CatalogEmbeddingRepository
	embeddingProvider embedding.EmbeddingProvider
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	embeddingRepo repository.CatalogEmbeddingRepository,
	embeddingProvider embedding.EmbeddingProvider,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		embeddingRepo:     embeddingRepo,
		embeddingProvider: embeddingProvider,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishEmbedChunkMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal chunk message: %v", err)
		msg.Ack() // invalid payloads never become valid, do not retry
		return
	}

	log.Printf("[INFO] Embedding chunk %d from %s (length: %d)", payload.ChunkIndex, payload.Source, len(payload.Content))

	res, err := cs.embeddingProvider.Generate(ctx, payload.Content, "RETRIEVAL_DOCUMENT")
	if err != nil {
		log.Printf("[ERROR] Failed to embed chunk %d of %s: %v", payload.ChunkIndex, payload.Source, err)
		msg.Nack()
		return
	}

	row := &model.CatalogEmbedding{
		Id:             uuid.New(),
		Document:       payload.Content,
		EmbeddingValue: pgvector.NewVector(res.Embedding.Values),
		Source:         payload.Source,
		ChunkIndex:     payload.ChunkIndex,
		CreatedAt:      time.Now(),
	}

	if err := cs.embeddingRepo.Create(ctx, row); err != nil {
		log.Printf("[ERROR] Failed to store chunk %d of %s: %v", payload.ChunkIndex, payload.Source, err)
		msg.Nack()
		return
	}

	log.Printf("[SUCCESS] Stored chunk %d of %s", payload.ChunkIndex, payload.Source)
	msg.Ack()
}
