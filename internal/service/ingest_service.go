package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"techgear-support-be/internal/dto"
	"techgear-support-be/internal/repository"
	"techgear-support-be/pkg/utils"
)

type IIngestService interface {
	// Reindex reads the catalog file, clears its previous chunks and queues
	// every chunk for embedding. Returns how many chunks were queued.
	Reindex(ctx context.Context) (*dto.ReindexResponse, error)
	Count(ctx context.Context) (int64, error)
}

type ingestService struct {
	catalogPath      string
	chunkSize        int
	chunkOverlap     int
	embeddingRepo    repository.CatalogEmbeddingRepository
	publisherService IPublisherService
}

func NewIngestService(
	catalogPath string,
	chunkSize int,
	chunkOverlap int,
	embeddingRepo repository.CatalogEmbeddingRepository,
	publisherService IPublisherService,
) IIngestService {
	return &ingestService{
		catalogPath:      catalogPath,
		chunkSize:        chunkSize,
		chunkOverlap:     chunkOverlap,
		embeddingRepo:    embeddingRepo,
		publisherService: publisherService,
	}
}

func (s *ingestService) Reindex(ctx context.Context) (*dto.ReindexResponse, error) {
	raw, err := os.ReadFile(s.catalogPath)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	source := filepath.Base(s.catalogPath)
	chunks := utils.SplitText(string(raw), s.chunkSize, s.chunkOverlap)

	if err := s.embeddingRepo.DeleteBySource(ctx, source); err != nil {
		return nil, fmt.Errorf("clear previous chunks: %w", err)
	}

	for i, chunk := range chunks {
		payload, err := json.Marshal(dto.PublishEmbedChunkMessage{
			Source:     source,
			ChunkIndex: i,
			Content:    chunk,
		})
		if err != nil {
			return nil, err
		}
		if err := s.publisherService.Publish(ctx, payload); err != nil {
			return nil, fmt.Errorf("queue chunk %d: %w", i, err)
		}
	}

	return &dto.ReindexResponse{Source: source, ChunksQueued: len(chunks)}, nil
}

func (s *ingestService) Count(ctx context.Context) (int64, error) {
	return s.embeddingRepo.Count(ctx)
}
