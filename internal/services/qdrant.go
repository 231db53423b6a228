package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"

	"alfredoptarigan/skill-matcher/internal/models"
)

// SkillIndexService mirrors the canonical skill embeddings into a qdrant
// collection, one point per skill. Optional: the in-memory store answers all
// match requests on its own; the index backs the /skills/similar debug
// endpoint and lets large skill lists be inspected with qdrant tooling.
type SkillIndexService interface {
	InitCollection() error
	UpsertSkill(ctx context.Context, name string, embedding []float32) error
	SyncStore(ctx context.Context, store *SkillStore) error
	SearchSimilar(ctx context.Context, queryEmbedding []float32, limit int) ([]models.SimilarSkill, error)
}

type skillIndexService struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64
}

func NewSkillIndexService(urlStr, apiKey, collectionName string, vectorSize int) (SkillIndexService, error) {
	// Parse URL to extract host, port, and TLS usage
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// For gRPC client, use port 6334 by default (gRPC port)
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &skillIndexService{
		client:         client,
		collectionName: collectionName,
		vectorSize:     uint64(vectorSize),
	}, nil
}

// InitCollection implements SkillIndexService.
func (s *skillIndexService) InitCollection() error {
	ctx := context.Background()

	// Check if collection exists
	exists, err := s.client.CollectionExists(ctx, s.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		log.Println("✅ Collection already exists")
		return nil
	}

	err = s.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: s.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     s.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})

	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	log.Printf("✅ Qdrant collection '%s' created successfully\n", s.collectionName)
	return nil
}

// UpsertSkill implements SkillIndexService. The point id is derived from the
// skill name so re-syncing the same list overwrites in place.
func (s *skillIndexService) UpsertSkill(ctx context.Context, name string, embedding []float32) error {
	pointID := uuid.NewSHA1(uuid.NameSpaceOID, []byte(strings.ToLower(name)))

	point := &qdrant.PointStruct{
		Id:      qdrant.NewIDUUID(pointID.String()),
		Vectors: qdrant.NewVectors(embedding...),
		Payload: qdrant.NewValueMap(map[string]interface{}{
			"skill": name,
		}),
	}

	_, err := s.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: s.collectionName,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert point: %w", err)
	}

	return nil
}

// SyncStore implements SkillIndexService.
func (s *skillIndexService) SyncStore(ctx context.Context, store *SkillStore) error {
	for _, skill := range store.All() {
		if err := s.UpsertSkill(ctx, skill.Name, skill.EmbeddingVector); err != nil {
			return fmt.Errorf("failed to sync skill %q: %w", skill.Name, err)
		}
	}

	log.Printf("✅ Synced %d skills to qdrant\n", len(store.All()))
	return nil
}

// SearchSimilar implements SkillIndexService.
func (s *skillIndexService) SearchSimilar(ctx context.Context, queryEmbedding []float32, limit int) ([]models.SimilarSkill, error) {
	searchResult, err := s.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: s.collectionName,
		Query:          qdrant.NewQuery(queryEmbedding...),
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})

	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	var results []models.SimilarSkill
	for _, point := range searchResult {
		result := models.SimilarSkill{
			Score: point.Score,
		}

		if name, ok := point.Payload["skill"]; ok {
			if val, ok := name.GetKind().(*qdrant.Value_StringValue); ok {
				result.Skill = val.StringValue
			}
		}

		results = append(results, result)
	}

	return results, nil
}
