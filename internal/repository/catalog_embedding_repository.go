package repository

import (
	"context"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"techgear-support-be/internal/model"
	"techgear-support-be/pkg/rag"
)

// CatalogEmbeddingRepository persists and searches embedded catalog chunks.
type CatalogEmbeddingRepository interface {
	CreateBulk(ctx context.Context, embeddings []*model.CatalogEmbedding) error
	Create(ctx context.Context, embedding *model.CatalogEmbedding) error
	DeleteBySource(ctx context.Context, source string) error
	Count(ctx context.Context) (int64, error)

	// SearchSimilar satisfies the retrieval pipeline contract.
	SearchSimilar(ctx context.Context, vector []float32, limit int, threshold float64) ([]rag.ScoredChunk, error)
}

type catalogEmbeddingRepository struct {
	db *gorm.DB
}

func NewCatalogEmbeddingRepository(db *gorm.DB) CatalogEmbeddingRepository {
	return &catalogEmbeddingRepository{db: db}
}

func (r *catalogEmbeddingRepository) Create(ctx context.Context, embedding *model.CatalogEmbedding) error {
	return r.db.WithContext(ctx).Create(embedding).Error
}

func (r *catalogEmbeddingRepository) CreateBulk(ctx context.Context, embeddings []*model.CatalogEmbedding) error {
	if len(embeddings) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(embeddings).Error
}

// DeleteBySource hard-deletes every chunk ingested from the given source so a
// reindex starts clean.
func (r *catalogEmbeddingRepository) DeleteBySource(ctx context.Context, source string) error {
	return r.db.WithContext(ctx).Where("source = ?", source).Delete(&model.CatalogEmbedding{}).Error
}

func (r *catalogEmbeddingRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.CatalogEmbedding{}).Count(&count).Error
	return count, err
}

// SearchSimilar ranks chunks by cosine similarity. pgvector's <=> operator is
// cosine distance, so similarity = 1 - distance.
func (r *catalogEmbeddingRepository) SearchSimilar(ctx context.Context, vector []float32, limit int, threshold float64) ([]rag.ScoredChunk, error) {
	if limit <= 0 {
		limit = 4
	}

	type row struct {
		Document   string
		Similarity float64
	}
	var rows []row

	queryVector := pgvector.NewVector(vector)

	err := r.db.WithContext(ctx).
		Table("catalog_embeddings").
		Select("document, 1 - (embedding_value <=> ?) as similarity", queryVector).
		Where("1 - (embedding_value <=> ?) >= ?", queryVector, threshold).
		Order("similarity DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	chunks := make([]rag.ScoredChunk, len(rows))
	for i, rec := range rows {
		chunks[i] = rag.ScoredChunk{Content: rec.Document, Similarity: rec.Similarity}
	}
	return chunks, nil
}
