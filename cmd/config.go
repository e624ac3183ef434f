package cmd

import (
	"github.com/spf13/viper"

	"docsift/src/storage/minioctrl"
)

func settingDefaultConfig() {
	// Enable automatic environment variable binding
	viper.AutomaticEnv()

	// Map environment variables to Viper keys for the server
	viper.BindEnv("server.port", "SERVER_PORT")
	viper.BindEnv("server.shutdown_timeout", "SERVER_SHUTDOWN_TIMEOUT")

	// Map environment variables to Viper keys for Ollama
	viper.BindEnv("ollama.url", "OLLAMA_URL")
	viper.BindEnv("ollama.embedding_model", "OLLAMA_EMBEDDING_MODEL")
	viper.BindEnv("ollama.scoring_model", "OLLAMA_SCORING_MODEL")

	// Map environment variables to Viper keys for the page loader
	viper.BindEnv("pageloader.url", "PAGELOADER_URL")

	// Map environment variables to Viper keys for the chunk index
	viper.BindEnv("index.backend", "INDEX_BACKEND")
	viper.BindEnv("weaviate.url", "WEAVIATE_URL")

	// Map environment variables to Viper keys for MinIO
	viper.BindEnv("minio.endpoint", "MINIO_ENDPOINT")
	viper.BindEnv("minio.access_key", "MINIO_ACCESS_KEY")
	viper.BindEnv("minio.secret_key", "MINIO_SECRET_KEY")
	viper.BindEnv("minio.document_bucket", "MINIO_DOCUMENT_BUCKET")

	// Map environment variables to Viper keys for the pipeline
	viper.BindEnv("pipeline.retrieval_k", "PIPELINE_RETRIEVAL_K")
	viper.BindEnv("pipeline.score_threshold", "PIPELINE_SCORE_THRESHOLD")
	viper.BindEnv("pipeline.result_limit", "PIPELINE_RESULT_LIMIT")
	viper.BindEnv("pipeline.score_timeout", "PIPELINE_SCORE_TIMEOUT")
	viper.BindEnv("pipeline.chunk_size", "PIPELINE_CHUNK_SIZE")
	viper.BindEnv("pipeline.chunk_overlap", "PIPELINE_CHUNK_OVERLAP")

	// Set default values for the server
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.shutdown_timeout", "5s")

	// Set default values for Ollama
	viper.SetDefault("ollama.url", "http://ollama:11434/api")
	viper.SetDefault("ollama.embedding_model", "nomic-embed-text")
	viper.SetDefault("ollama.scoring_model", "llama3.2")

	// Set default values for the page loader
	viper.SetDefault("pageloader.url", "http://unstructured_api:8000")

	// Set default values for the chunk index
	viper.SetDefault("index.backend", "memory")
	viper.SetDefault("weaviate.url", "weaviate:8080")

	// Set default values for MinIO
	viper.SetDefault("minio.endpoint", "localhost:9000")
	viper.SetDefault("minio.access_key", "minioadmin")
	viper.SetDefault("minio.secret_key", "minioadmin")
	viper.SetDefault("minio.document_bucket", minioctrl.DocumentsBucket)

	// Set default values for the pipeline
	viper.SetDefault("pipeline.retrieval_k", 5)
	viper.SetDefault("pipeline.score_threshold", 0.4)
	viper.SetDefault("pipeline.result_limit", 7)
	viper.SetDefault("pipeline.score_timeout", "30s")
	viper.SetDefault("pipeline.chunk_size", 1500)
	viper.SetDefault("pipeline.chunk_overlap", 200)
}
