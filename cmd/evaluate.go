package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	memoryIndex "docsift/src/chunkindex/memory"
	"docsift/src/core/insight"
	"docsift/src/infrastructure/integrations/ollama"
	"docsift/src/infrastructure/integrations/pageloader"
)

// evaluateCmd represents the evaluate command
var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Replay a query set against a document directory and report hit rate",
	Long: `The evaluate command ingests every PDF in a directory, replays queries from
a JSONL file, and reports how often the expected documents appear in the results.

Each line of the query file is a JSON object:
  {"query": "...", "persona": "...", "expected_documents": ["a.pdf"]}`,
	Run: Evaluate,
}

func init() {
	rootCmd.AddCommand(evaluateCmd)
	evaluateCmd.Flags().StringP("docs", "d", "", "Directory containing PDF documents")
	evaluateCmd.MarkFlagRequired("docs")
	evaluateCmd.Flags().StringP("queries", "q", "", "Query JSONL file path")
	evaluateCmd.MarkFlagRequired("queries")
}

type evaluationCase struct {
	Query             string   `json:"query"`
	Persona           string   `json:"persona"`
	ExpectedDocuments []string `json:"expected_documents"`
}

func Evaluate(cmd *cobra.Command, args []string) {
	ctx := context.Background()
	docsDir, _ := cmd.Flags().GetString("docs")
	queriesPath, _ := cmd.Flags().GetString("queries")

	oc := ollama.NewClient(viper.GetString("ollama.url"), &http.Client{
		Timeout: 120 * time.Second,
	})
	embedder := ollama.NewEmbedder(oc, viper.GetString("ollama.embedding_model"))
	scorer := ollama.NewScorer(oc, viper.GetString("ollama.scoring_model"))
	loader := pageloader.NewService(viper.GetString("pageloader.url"), &http.Client{
		Timeout: 120 * time.Second,
	})
	splitter := ollama.NewSplitter(
		viper.GetInt("pipeline.chunk_size"),
		viper.GetInt("pipeline.chunk_overlap"),
	)

	service, err := insight.NewService(loader, splitter, memoryIndex.NewBuilder(embedder), scorer, insight.DefaultConfig())
	if err != nil {
		fmt.Printf("Failed to create insight service: %v\n", err)
		return
	}

	// Ingest every PDF in the directory
	pdfs, err := filepath.Glob(filepath.Join(docsDir, "*.pdf"))
	if err != nil || len(pdfs) == 0 {
		fmt.Printf("No PDF documents found in %s\n", docsDir)
		return
	}

	ingestBar := progressbar.Default(int64(len(pdfs)), "ingesting")
	var ingested int
	for _, path := range pdfs {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Printf("Failed to read %s: %v\n", path, err)
			ingestBar.Add(1)
			continue
		}
		if _, err := service.IngestDocument(ctx, filepath.Base(path), data); err != nil {
			fmt.Printf("Failed to ingest %s: %v\n", path, err)
			ingestBar.Add(1)
			continue
		}
		ingested++
		ingestBar.Add(1)
	}
	if ingested == 0 {
		fmt.Println("No documents could be ingested")
		return
	}

	// Open query file
	queryFile, err := os.Open(queriesPath)
	if err != nil {
		fmt.Printf("Failed to open query file: %v\n", err)
		return
	}
	defer queryFile.Close()

	cases := make([]evaluationCase, 0)
	scanner := bufio.NewScanner(queryFile)
	const maxCapacity = 4 * 1024 * 1024
	buf := make([]byte, maxCapacity)
	scanner.Buffer(buf, maxCapacity)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var c evaluationCase
		if err := json.Unmarshal([]byte(line), &c); err != nil {
			fmt.Printf("Failed to parse query line: %v\n", err)
			continue
		}
		cases = append(cases, c)
	}
	if err := scanner.Err(); err != nil {
		fmt.Printf("Error reading query file: %v\n", err)
		return
	}

	// Replay queries and score hits
	queryBar := progressbar.Default(int64(len(cases)), "querying")
	var totalScore float64
	var totalEvals int
	for _, c := range cases {
		result, err := service.Query(ctx, c.Query, c.Persona)
		queryBar.Add(1)
		if err != nil {
			fmt.Printf("Query failed: %v\n", err)
			continue
		}

		if len(c.ExpectedDocuments) == 0 {
			continue
		}

		returned := make(map[string]bool)
		for _, section := range result.ExtractedSections {
			returned[section.Document] = true
		}

		var matchCount int
		for _, expected := range c.ExpectedDocuments {
			if returned[expected] {
				matchCount++
			}
		}
		totalScore += float64(matchCount) / float64(len(c.ExpectedDocuments))
		totalEvals++
	}

	if totalEvals > 0 {
		averageScore := (totalScore / float64(totalEvals)) * 100
		fmt.Printf("Evaluation Results:\n")
		fmt.Printf("Documents ingested: %d\n", ingested)
		fmt.Printf("Total evaluations: %d\n", totalEvals)
		fmt.Printf("Average hit rate: %.2f%%\n", averageScore)
	} else {
		fmt.Println("No evaluations were processed")
	}
}
