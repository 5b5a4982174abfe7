// Copyright 2025 Vitalpoint Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/panjf2000/ants/v2"
	"github.com/urfave/cli/v2"

	"github.com/vitalpoint/docbase"
	"github.com/vitalpoint/docbase/ai"
	"github.com/vitalpoint/docbase/ai/local"
	"github.com/vitalpoint/docbase/rag"
	"github.com/vitalpoint/docbase/reindex"
)

func main() {
	// A missing .env is fine; flags and the environment still apply.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "docbase",
		Usage: "Document knowledge base for retrieval-augmented chat",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "data",
				Aliases: []string{"d"},
				Usage:   "Path to the document data directory",
				Value:   "./docbase-data",
				EnvVars: []string{"DOCBASE_DATA"},
			},
			&cli.StringFlag{
				Name:    "embedding-host",
				Usage:   "Embedding service host URL",
				Value:   "http://localhost:11434/v1",
				EnvVars: []string{"DOCBASE_EMBEDDING_HOST"},
			},
			&cli.StringFlag{
				Name:    "embedding-model",
				Usage:   "Embedding model name",
				Value:   "embeddinggemma",
				EnvVars: []string{"DOCBASE_EMBEDDING_MODEL"},
			},
			&cli.BoolFlag{
				Name:    "local-embedder",
				Usage:   "Use the built-in local embedder instead of a hosted model",
				EnvVars: []string{"DOCBASE_LOCAL_EMBEDDER"},
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "ingest",
				Usage:     "Ingest one or more files (pdf, txt)",
				ArgsUsage: "FILE [FILE...]",
				Action:    ingestCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Number of files to process concurrently",
						Value: 4,
					},
				},
			},
			{
				Name:      "add-url",
				Usage:     "Fetch and ingest a web page",
				ArgsUsage: "URL",
				Action:    addURLCommand,
			},
			{
				Name:      "search",
				Usage:     "Search stored documents",
				ArgsUsage: "QUERY",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "top-k",
						Aliases: []string{"k"},
						Usage:   "Number of results to return",
						Value:   5,
					},
				},
			},
			{
				Name:      "ask",
				Usage:     "Show the retrieval context and citations for a query",
				ArgsUsage: "QUERY",
				Action:    askCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "top-k",
						Aliases: []string{"k"},
						Usage:   "Number of chunks to retrieve",
						Value:   5,
					},
				},
			},
			{
				Name:   "list",
				Usage:  "List stored documents",
				Action: listCommand,
			},
			{
				Name:      "delete",
				Usage:     "Delete a document by ID",
				ArgsUsage: "DOCUMENT_ID",
				Action:    deleteCommand,
			},
			{
				Name:   "reindex",
				Usage:  "Re-embed every stored chunk with the current embedder",
				Action: reindexCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of chunks to embed in each batch",
						Value: 10,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N chunks",
						Value: 10,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed batches",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
				},
			},
			{
				Name:   "seed",
				Usage:  "Load the bundled sample wellness corpus",
				Action: seedCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// openKB builds a KnowledgeBase from the global flags.
func openKB(c *cli.Context) (*docbase.KnowledgeBase, error) {
	opts := []docbase.Option{}
	if c.Bool("local-embedder") {
		opts = append(opts, docbase.WithEmbedder(local.NewEmbedder()))
	} else {
		opts = append(opts, docbase.WithAIConfig(ai.NewConfig(
			ai.WithEmbeddingHost(c.String("embedding-host")),
			ai.WithEmbeddingModel(c.String("embedding-model")),
		)))
	}
	return docbase.New(c.String("data"), opts...)
}

func ingestCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("at least one file is required")
	}

	kb, err := openKB(c)
	if err != nil {
		return err
	}

	workers := c.Int("workers")
	if workers < 1 {
		workers = 1
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return err
	}
	defer pool.Release()

	ctx := context.Background()
	var wg sync.WaitGroup
	var mu sync.Mutex
	failures := 0

	for _, path := range c.Args().Slice() {
		path := path
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()

			data, err := os.ReadFile(path)
			if err == nil {
				_, err = kb.IngestFromFile(ctx, filepath.Base(path), data, "")
			}

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures++
				fmt.Fprintf(os.Stderr, "failed: %s: %v\n", path, err)
				return
			}
			fmt.Printf("ingested: %s\n", path)
		})
		if submitErr != nil {
			wg.Done()
			return submitErr
		}
	}
	wg.Wait()

	if failures > 0 {
		return fmt.Errorf("%d of %d files failed", failures, c.NArg())
	}
	return nil
}

func addURLCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("exactly one URL is required")
	}

	kb, err := openKB(c)
	if err != nil {
		return err
	}

	chunks, err := kb.IngestFromURL(context.Background(), c.Args().First())
	if err != nil {
		return err
	}
	fmt.Printf("ingested %q (%d chunks)\n", chunks[0].Title, len(chunks))
	return nil
}

func searchCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("a query is required")
	}
	query := strings.Join(c.Args().Slice(), " ")

	kb, err := openKB(c)
	if err != nil {
		return err
	}

	results, err := kb.Search(context.Background(), query, c.Int("top-k"))
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Println("no results")
		return nil
	}

	for i, result := range results {
		content := result.Chunk.Content
		if len(content) > 200 {
			content = content[:200] + "..."
		}
		fmt.Printf("%d. [%.3f] %s (chunk %d/%d)\n   %s\n",
			i+1, result.Score, result.Chunk.Title,
			result.Chunk.ChunkIndex+1, result.Chunk.TotalChunks, content)
	}
	return nil
}

func askCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("a query is required")
	}
	query := strings.Join(c.Args().Slice(), " ")

	kb, err := openKB(c)
	if err != nil {
		return err
	}

	contextText, found, chunks := kb.Retrieve(context.Background(), query, c.Int("top-k"))
	if !found {
		fmt.Println("no relevant documents found")
		return nil
	}

	fmt.Print(contextText)
	fmt.Println(rag.FormatCitations(chunks))
	return nil
}

func listCommand(c *cli.Context) error {
	kb, err := openKB(c)
	if err != nil {
		return err
	}

	docs, err := kb.Documents()
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		fmt.Println("no documents stored")
		return nil
	}

	for _, doc := range docs {
		fmt.Printf("%s  %-10s  %3d chunks  %s  (%s)\n",
			doc.ID, doc.Status, doc.TotalChunks,
			doc.Title, doc.DateAdded.Format("2006-01-02"))
	}
	return nil
}

func deleteCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("exactly one document ID is required")
	}

	kb, err := openKB(c)
	if err != nil {
		return err
	}

	removed, err := kb.Delete(c.Args().First())
	if err != nil {
		return err
	}
	fmt.Printf("deleted %d chunks\n", removed)
	return nil
}

func reindexCommand(c *cli.Context) error {
	kb, err := openKB(c)
	if err != nil {
		return err
	}

	config := &reindex.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
	}
	if config.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if config.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	return kb.NewReindexer(config, os.Stderr).Run(context.Background())
}

func seedCommand(c *cli.Context) error {
	kb, err := openKB(c)
	if err != nil {
		return err
	}

	ctx := context.Background()
	for _, doc := range sampleCorpus {
		chunks, err := kb.IngestFromFile(ctx, doc.filename, []byte(doc.content), "")
		if err != nil {
			return fmt.Errorf("seed %s: %w", doc.filename, err)
		}
		fmt.Printf("seeded %q (%d chunks)\n", chunks[0].Title, len(chunks))
	}
	return nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
