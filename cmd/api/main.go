// @title           Doodle Notes API
// @version         1.0
// @description     This API turns documents into illustrated study digests asynchronously
// @termsOfService  http://swagger.io/terms/

// @contact.name    me lol
// @contact.url
// @contact.email

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:3000
// @BasePath  /
// @schemes   http https
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/akolanti/DoodleAPI/internal/blob"
	"github.com/akolanti/DoodleAPI/internal/config"
	"github.com/akolanti/DoodleAPI/internal/data/store"
	"github.com/akolanti/DoodleAPI/internal/domain/docModel"
	"github.com/akolanti/DoodleAPI/internal/domain/jobModel"
	"github.com/akolanti/DoodleAPI/internal/handlers"
	"github.com/akolanti/DoodleAPI/internal/llm"
	"github.com/akolanti/DoodleAPI/internal/llm/geminiClient"
	"github.com/akolanti/DoodleAPI/internal/llm/openaiClient"
	"github.com/akolanti/DoodleAPI/internal/pipeline"
	"github.com/akolanti/DoodleAPI/internal/pipeline/extract"
	"github.com/akolanti/DoodleAPI/internal/server"
	"github.com/akolanti/DoodleAPI/internal/worker"
	"github.com/akolanti/DoodleAPI/pkg/logger_i"
)

var (
	listenAddr        string
	stopWorkerChannel chan bool
	workerWaitGroup   sync.WaitGroup
)

func main() {

	logger_i.Init()
	var logger = logger_i.NewLogger("main")

	//config
	flag.StringVar(&listenAddr, "listen-addr", config.ServerListenAddr, "server listen address")
	flag.Parse()

	stopWorkerChannel = make(chan bool, 1)

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	//durable stores, in-memory fallback when redis is offline
	var jobStore jobModel.JobStore
	var documentStore docModel.DocumentStore
	redisJobs := store.GetRedisJobStore(serviceContext)
	redisDocuments := store.GetRedisDocumentStore(serviceContext)
	if redisJobs == nil || redisDocuments == nil {
		logger.Error("Redis stores are offline")
		jobStore = store.InitInMemoryJobStore()
		documentStore = store.InitInMemoryDocumentStore()
	} else {
		jobStore = redisJobs
		documentStore = redisDocuments
	}

	llmProvider := selectProvider(serviceContext, logger)
	if llmProvider == nil {
		logger.Error("LLM provider failed to initialize. Shutting down.", "provider", config.LLMProviderName)
		return
	}

	blobStore, err := selectBlobStore(serviceContext)
	if err != nil {
		logger.Error("Blob store failed to initialize. Shutting down.", "error", err)
		return
	}

	pipelineService := pipeline.NewService(pipeline.ServiceConfig{
		JobStore:      jobStore,
		DocumentStore: documentStore,
		BlobStore:     blobStore,
		Extractor:     extract.NewExtractor(llmProvider),
		Provider:      llmProvider,
	})

	handlers.InitJobHandler(jobStore, blobStore)

	//single polling claimer
	jobWorker := worker.NewWorker(jobStore, pipelineService)
	jobWorker.Start(stopWorkerChannel, &workerWaitGroup)

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		WorkerStop:       stopWorkerChannel,
		Group:            &workerWaitGroup,
		CloseServices:    closeExternalServices,
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(listenAddr)

	<-stopExecution
	logger.Info("Server stopped")
}

func selectProvider(ctx context.Context, logger *logger_i.Logger) llm.Provider {
	switch config.LLMProviderName {
	case "gemini":
		return geminiClient.GetGeminiClient(ctx, config.GeminiModelName, config.GeminiAPIKey)
	case "openai":
		return openaiClient.GetOpenAIClient(config.OpenAIAPIKey)
	default:
		logger.Error("Unknown LLM provider", "provider", config.LLMProviderName)
		return nil
	}
}

func selectBlobStore(ctx context.Context) (blob.Store, error) {
	if config.GCSBucket != "" {
		return blob.NewGCSStore(ctx, config.GCSBucket, config.BlobPublicBaseURL)
	}
	return blob.NewLocalStore(config.LocalBlobDir)
}
