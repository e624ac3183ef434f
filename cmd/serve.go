package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	weaviateClient "github.com/weaviate/weaviate-go-client/v4/weaviate"

	httpHdlr "docsift/handler/http"
	"docsift/src/chunkindex"
	memoryIndex "docsift/src/chunkindex/memory"
	weaviateIndex "docsift/src/chunkindex/weaviate"
	"docsift/src/core/insight"
	"docsift/src/infrastructure/integrations/ollama"
	"docsift/src/infrastructure/integrations/pageloader"
	"docsift/src/log"
	"docsift/src/storage/minioctrl"
	"docsift/src/storage/weaviate"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the document insight server",
	Long:  `The serve command starts an HTTP server that ingests documents and answers queries against them.`,
	Run:   RunServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	settingDefaultConfig()
}

func RunServer(cmd *cobra.Command, args []string) {
	// Initialize Ollama client
	oc := ollama.NewClient(viper.GetString("ollama.url"), &http.Client{
		Timeout: 120 * time.Second,
	})
	embedder := ollama.NewEmbedder(oc, viper.GetString("ollama.embedding_model"))
	scorer := ollama.NewScorer(oc, viper.GetString("ollama.scoring_model"))

	// Initialize page loader
	loader := pageloader.NewService(viper.GetString("pageloader.url"), &http.Client{
		Timeout: 120 * time.Second,
	})

	// Select chunk index backend
	var builder chunkindex.Builder
	var storePinger insight.Pinger
	switch viper.GetString("index.backend") {
	case "weaviate":
		wc := weaviateClient.New(weaviateClient.Config{
			Host:   viper.GetString("weaviate.url"),
			Scheme: "http",
		})
		wb := weaviateIndex.NewBuilder(weaviate.NewSDK(wc), embedder)
		builder = wb
		storePinger = wb
	default:
		mb := memoryIndex.NewBuilder(embedder)
		builder = mb
		storePinger = mb
	}

	// Initialize splitter
	splitter := ollama.NewSplitter(
		viper.GetInt("pipeline.chunk_size"),
		viper.GetInt("pipeline.chunk_overlap"),
	)

	// Build pipeline configuration from viper with library defaults as fallback
	cfg := insight.DefaultConfig()
	cfg.RetrievalK = viper.GetInt("pipeline.retrieval_k")
	cfg.ScoreThreshold = viper.GetFloat64("pipeline.score_threshold")
	cfg.ResultLimit = viper.GetInt("pipeline.result_limit")
	if timeout, err := time.ParseDuration(viper.GetString("pipeline.score_timeout")); err == nil {
		cfg.ScoreTimeout = timeout
	}

	service, err := insight.NewService(loader, splitter, builder, scorer, cfg)
	if err != nil {
		log.Error(err, "Failed to create insight service")
		return
	}

	// Initialize MinIO archival store; the server runs without it on failure
	var archive *minioctrl.MinioService
	bucket := viper.GetString("minio.document_bucket")
	archive, err = minioctrl.NewMinioService(
		viper.GetString("minio.endpoint"),
		viper.GetString("minio.access_key"),
		viper.GetString("minio.secret_key"),
		false,
	)
	if err != nil {
		log.Error(err, "Failed to create MinIO client, document archival disabled")
		archive = nil
	} else if err := archive.EnsureBucketExists(context.Background(), bucket); err != nil {
		log.Error(err, "Failed to ensure archive bucket, document archival disabled")
		archive = nil
	}

	// Initialize HTTP handler
	handler := httpHdlr.NewHandler(
		service,
		insight.NewSystemService(loader, oc, storePinger),
		archive,
		bucket,
	)

	// Setup gin router
	r := gin.Default()

	// Register routes
	handler.RegisterRoutes(r)

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + viper.GetString("server.port"),
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error(err, "Failed to start server")
			return
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	// Parse shutdown timeout
	timeout, err := time.ParseDuration(viper.GetString("server.shutdown_timeout"))
	if err != nil {
		log.Error(err, "Invalid shutdown timeout, using default 5s")
		timeout = 5 * time.Second
	}

	// Create context with timeout for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Attempt graceful shutdown
	if err := srv.Shutdown(ctx); err != nil {
		log.Error(err, "Server forced to shutdown")
	}

	log.Info("Server exited")
}
