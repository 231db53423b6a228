package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Qdrant    QdrantConfig
	Embedding EmbeddingConfig
	Skills    SkillsConfig
	Match     MatchConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	Enabled  bool
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type QdrantConfig struct {
	Enabled    bool
	URL        string
	APIKey     string
	Collection string
}

type EmbeddingConfig struct {
	// Provider selects the embedding backend: "local", "gemini" or "openai".
	Provider         string
	GeminiAPIKey     string
	OpenAIHost       string
	OpenAIToken      string
	OpenAIModel      string
	Dimension        int
	Concurrency      int
	RetryMaxAttempts int
}

type SkillsConfig struct {
	// Source is a path to a .txt, .json or .pdf skill list. When empty the
	// comma-separated Inline list is used.
	Source          string
	Inline          string
	RefreshInterval time.Duration
}

type MatchConfig struct {
	Profile string
}

// defaultSkills mirrors the administrator list the service ships with before a
// real source is configured.
const defaultSkills = "Python,Relational Database,Software Engineering,Data Science,NLP,Natural Language Processing"

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			Enabled:  getEnvAsBool("DB_ENABLED", false),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "skill_matcher"),
		},
		Qdrant: QdrantConfig{
			Enabled:    getEnvAsBool("QDRANT_ENABLED", false),
			URL:        getEnv("QDRANT_URL", "http://localhost:6333"),
			APIKey:     getEnv("QDRANT_API_KEY", ""),
			Collection: getEnv("QDRANT_COLLECTION", "skill_matcher_skills"),
		},
		Embedding: EmbeddingConfig{
			Provider:         getEnv("EMBEDDING_PROVIDER", "local"),
			GeminiAPIKey:     getEnv("GEMINI_API_KEY", ""),
			OpenAIHost:       getEnv("OPENAI_EMBEDDING_HOST", "http://localhost:11434/v1"),
			OpenAIToken:      getEnv("OPENAI_API_KEY", "none"),
			OpenAIModel:      getEnv("OPENAI_EMBEDDING_MODEL", "text-embedding-3-small"),
			Dimension:        getEnvAsInt("EMBEDDING_DIMENSION", 256),
			Concurrency:      getEnvAsInt("EMBEDDING_CONCURRENCY", 4),
			RetryMaxAttempts: getEnvAsInt("RETRY_MAX_ATTEMPTS", 3),
		},
		Skills: SkillsConfig{
			Source:          getEnv("SKILLS_SOURCE", ""),
			Inline:          getEnv("SKILLS_LIST", defaultSkills),
			RefreshInterval: getEnvAsDuration("SKILLS_REFRESH_INTERVAL", "0s"),
		},
		Match: MatchConfig{
			Profile: getEnv("MATCH_PROFILE", "blended"),
		},
	}
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := strings.ToLower(getEnv(key, ""))
	if valueStr == "" {
		return defaultValue
	}
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
