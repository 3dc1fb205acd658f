// Package main is the ARLook CLI entry point.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/LuLu1016/ARLook-GoogleMap/internal/advisor"
	"github.com/LuLu1016/ARLook-GoogleMap/internal/config"
	"github.com/LuLu1016/ARLook-GoogleMap/internal/llm"
	"github.com/LuLu1016/ARLook-GoogleMap/internal/pipeline"
	"github.com/LuLu1016/ARLook-GoogleMap/internal/reasoning"
	"github.com/LuLu1016/ARLook-GoogleMap/internal/retrieval"
	"github.com/LuLu1016/ARLook-GoogleMap/internal/routing"
	"github.com/LuLu1016/ARLook-GoogleMap/internal/server"
	"github.com/LuLu1016/ARLook-GoogleMap/internal/store"
	"github.com/LuLu1016/ARLook-GoogleMap/internal/watcher"
	"github.com/LuLu1016/ARLook-GoogleMap/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/arlook/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks
// for config.yaml in the current directory so that "arlook server" run from
// the project dir uses the project's config. Returns the config and the path
// that was actually loaded.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	// A .env next to the binary supplies OPENAI_API_KEY during development.
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	switch os.Args[1] {
	case "server":
		runServer()
	case "search":
		runSearch()
	case "version", "--version", "-v":
		fmt.Printf("arlook version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

// components holds everything the server and search commands need.
type components struct {
	Store     *store.MemoryStore
	DB        *store.SQLiteStore
	Retriever *retrieval.Retriever
	Pipeline  *pipeline.Pipeline
	LLMReady  bool
}

func (c *components) Close() {
	if c.DB != nil {
		_ = c.DB.Close()
	}
}

func initializeComponents(cfg *config.Config, logger *zap.Logger) (*components, error) {
	properties, err := store.Load(cfg.Data.Paths, cfg.Data.UseSampleData, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load property data: %w", err)
	}

	var db *store.SQLiteStore
	if cfg.Data.SQLitePath != "" {
		db, err = store.NewSQLiteStore(cfg.Data.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open property database: %w", err)
		}
		if len(properties) > 0 {
			if err := db.ReplaceAll(context.Background(), properties); err != nil {
				logger.Warn("Failed to persist listings to database", zap.Error(err))
			}
		} else {
			properties, err = db.GetAllProperties(context.Background())
			if err != nil {
				_ = db.Close()
				return nil, fmt.Errorf("failed to read property database: %w", err)
			}
		}
	}
	logger.Info("Property data loaded", zap.Int("count", len(properties)))

	memStore := store.NewMemoryStore(properties)

	var client llm.Client
	llmReady := false
	if c, err := llm.NewOpenAIClient(&cfg.LLM, logger); err != nil {
		logger.Warn("Language model unavailable, running retrieval-only", zap.Error(err))
	} else {
		client = c
		llmReady = true
	}

	var router routing.Router = routing.NewHeuristicRouter()
	if llmReady {
		router = routing.NewFallbackRouter(
			routing.NewLLMRouter(client, logger),
			routing.NewHeuristicRouter(),
			logger,
		)
	}

	retriever := retrieval.NewRetriever(router, &cfg.Search, logger)
	engine := reasoning.NewEngine(client, logger)
	assistant := advisor.New()
	pipe := pipeline.New(memStore, retriever, engine, assistant, client, logger)

	return &components{
		Store:     memStore,
		DB:        db,
		Retriever: retriever,
		Pipeline:  pipe,
		LLMReady:  llmReady,
	}, nil
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	comps, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer comps.Close()

	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	if cfg.Data.Watch && len(cfg.Data.Paths) > 0 {
		watchSvc := watcher.New(cfg.Data.Paths, func() {
			properties, err := store.Load(cfg.Data.Paths, cfg.Data.UseSampleData, logger)
			if err != nil {
				logger.Warn("Data reload failed", zap.Error(err))
				return
			}
			comps.Store.Replace(properties)
			comps.Retriever.InvalidateCache()
			if comps.DB != nil {
				if err := comps.DB.ReplaceAll(context.Background(), properties); err != nil {
					logger.Warn("Failed to persist reloaded listings", zap.Error(err))
				}
			}
			logger.Info("Property data reloaded", zap.Int("count", len(properties)))
		}, logger)
		if err := watchSvc.Start(watchCtx); err != nil {
			logger.Fatal("Failed to start data watcher", zap.Error(err))
		}
		defer watchSvc.Stop()
	}

	srv := server.NewServer(comps.Pipeline, comps.Store, &cfg.Server, comps.LLMReady, logger)
	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	watchCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

func runSearch() {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: arlook search [flags] <query>\n")
		os.Exit(1)
	}
	query := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if query == "" {
		fmt.Fprintf(os.Stderr, "Usage: arlook search [flags] <query>\n")
		os.Exit(1)
	}

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	comps, err := initializeComponents(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer comps.Close()

	result, err := comps.Pipeline.Search(context.Background(), query, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
		os.Exit(1)
	}

	switch *outputFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
	case "text":
		fmt.Printf("Strategy: %s (confidence %.2f)\n\n", result.SearchStrategy, result.Confidence)
		if len(result.Properties) == 0 {
			fmt.Println("No matching properties found.")
			return
		}
		for i, p := range result.Properties {
			fmt.Printf("%d. %s - $%.0f/person (match %.0f)\n", i+1, p.Name, p.Price, p.MatchScore)
			fmt.Printf("   %s\n", p.Address)
			if d, ok := p.WalkingDistance(); ok {
				fmt.Printf("   %d min walk to Wharton\n", d)
			}
			if len(p.Amenities) > 0 {
				fmt.Printf("   Amenities: %s\n", strings.Join(p.Amenities, ", "))
			}
			fmt.Printf("   %s\n", p.Explanation)
		}
	default:
		fmt.Printf("Unknown output format %q; use text or json\n", *outputFormat)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`ARLook - rental property assistant for University City, Philadelphia

Usage:
  arlook server [-config path] [-debug]    Start the HTTP API server
  arlook search [flags] <query>            Search listings from the command line
  arlook version                           Print version
  arlook help                              Show this help

Search flags:
  -config path     config file path
  -output format   text (default) or json

Examples:
  arlook server
  arlook search "2b2b near Wharton under $2000"
  arlook search -output json 附近有洗烘的房子`)
}
