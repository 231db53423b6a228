package main

import (
	"context"
	"log"
	"strings"

	"alfredoptarigan/skill-matcher/internal/config"
	"alfredoptarigan/skill-matcher/internal/services"
)

// Standalone bulk loader: embeds the configured canonical skill list and
// pushes it into the qdrant collection without starting the API server.
func main() {
	log.Println("🚀 Starting skill ingestion...")

	// Load configuration
	cfg := config.Load()

	skills, err := services.LoadSkills(cfg.Skills)
	if err != nil {
		log.Fatalf("❌ Failed to load skill list: %v", err)
	}
	log.Printf("📋 Loaded %d skills\n", len(skills))

	embedder, err := buildEmbedder(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize embedder: %v", err)
	}

	skillIndex, err := services.NewSkillIndexService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
		cfg.Embedding.Dimension,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := skillIndex.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize collection: %v", err)
	}

	ctx := context.Background()
	for _, skill := range skills {
		embedding, err := embedder.EmbedText(ctx, strings.ToLower(skill))
		if err != nil {
			log.Fatalf("❌ Failed to embed %q: %v", skill, err)
		}

		if err := skillIndex.UpsertSkill(ctx, skill, embedding); err != nil {
			log.Fatalf("❌ Failed to upsert %q: %v", skill, err)
		}

		log.Printf("✅ Ingested %q\n", skill)
	}

	log.Printf("🎉 Ingestion completed: %d skills\n", len(skills))
}

func buildEmbedder(cfg *config.Config) (services.Embedder, error) {
	switch cfg.Embedding.Provider {
	case "gemini":
		embedder, err := services.NewGeminiEmbedder(cfg.Embedding.GeminiAPIKey)
		if err != nil {
			return nil, err
		}
		return services.NewRetryEmbedder(embedder, cfg.Embedding.RetryMaxAttempts), nil
	case "openai":
		embedder, err := services.NewOpenAIEmbedder(
			cfg.Embedding.OpenAIHost,
			cfg.Embedding.OpenAIToken,
			cfg.Embedding.OpenAIModel,
		)
		if err != nil {
			return nil, err
		}
		return services.NewRetryEmbedder(embedder, cfg.Embedding.RetryMaxAttempts), nil
	default:
		return services.NewLocalEmbedder(cfg.Embedding.Dimension), nil
	}
}
