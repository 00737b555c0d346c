package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

const (
	IS_PROD                         = false
	LOG_LEVEL_PROD                  = slog.LevelInfo
	FALLBACK_REDIS_TO_INTERNALSTORE = true //if redis init fails, it falls back to an internal in-memory store
	TRACE_ID_KEY                    = "traceId"
	OWNER_ID_KEY                    = "ownerId"
	RATE_LIMIT_PER_SECOND           = 2
	BURST_RATE_LIMIT_PER_SECOND     = 5

	//serverTimeouts
	ReadTimeout            = 5 * time.Second
	WriteTimeout           = 10 * time.Second
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	//server listening port
	ServerListenAddr = ":3000"

	//uploads
	MaxUploadBytes int64 = 50 << 20 //50mb, same cap the clients advertise

	//pipeline
	ChunkSizeWords     = 150
	SummaryConcurrency = 8 //parallel completion calls in flight per job
	PageExtractTimeout = 10 * time.Second

	//worker
	WorkerPollInterval  = 2 * time.Second
	JobExecutionCeiling = 10 * time.Minute //a hung provider call must not leave a job processing forever

	//llm
	LLMCallTimeout   = 60 * time.Second
	OpenAIModel      = "gpt-4o-mini"
	OpenAIImageModel = "dall-e-3"
	OpenAIImageSize  = "1024x1024"
	GeminiModelName  = "gemini-2.5-flash-lite-preview-09-2025"
	GeminiImageModel = "imagen-3.0-generate-002"

	ModelTemperature float32 = 0.4

	SummarizerSystemPrompt = "You are an expert academic note-taker."
	NotebookSystemPrompt   = "You create concise, visually organized study notes in markdown."
	TotalSystemPrompt      = "You create concise final summaries in markdown."
	ExerciseSystemPrompt   = "You create short review quizzes in markdown."
	OCRUserPrompt          = "Extract all text from this image. Output only the transcribed text."

	MaxIdleConns        = 50
	MaxIdleConnsPerHost = 25
	IdleConnTimeout     = 60 * time.Second

	//redis
	redisHost = "127.0.0.1"
	redisPort = "6379"
	RedisAddr = redisHost + ":" + redisPort

	//redis has 16 DB we can use
	RedisJobStore      = 0
	RedisDocumentStore = 1

	//redis timeouts
	RedisJobStoreTTL      = 24 * time.Hour
	RedisDocumentStoreTTL = 7 * 24 * time.Hour

	//extra headroom on top of the image provider's per-minute quota
	DoodleSafetyMargin = 2500 * time.Millisecond
)

var (
	AuthToken     = GetEnv("API_AUTH_TOKEN", "dev-token")
	NoAuthBypass  = GetEnv("API_AUTH_BYPASS", "") == "true"
	RedisPassword = GetEnv("REDIS_PASSWORD", "")

	DefaultOwnerId = GetEnv("API_OWNER_ID", "local-user")

	LLMProviderName = GetEnv("LLM_PROVIDER", "openai") //"openai" or "gemini"
	OpenAIAPIKey    = GetEnv("OPENAI_API_KEY", "")
	GeminiAPIKey    = GetEnv("GEMINI_API_KEY", "")

	GCSBucket         = GetEnv("GCS_BUCKET", "")
	BlobPublicBaseURL = GetEnv("BLOB_PUBLIC_BASE_URL", "")
	LocalBlobDir      = GetEnv("LOCAL_BLOB_DIR", "temporary_data")

	//image generation budget - deployment tuning, not a contract
	EnableImageGeneration = GetEnv("ENABLE_IMAGE_GENERATION", "true") != "false"
	DoodleMaxPerDocument  = GetEnvInt("DOODLE_MAX_PER_DOC", 4)
	DoodleRatePerMinute   = GetEnvInt("DOODLE_RATE_PER_MIN", 5)
)

// GetEnv reads an environment variable or returns the fallback.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func GetEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
