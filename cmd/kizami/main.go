// Package main is the Kizami CLI entry point.
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

	"github.com/hyperjump/kizami/internal/config"
	"github.com/hyperjump/kizami/internal/pipeline"
	"github.com/hyperjump/kizami/internal/server"
	"github.com/hyperjump/kizami/internal/watcher"
	"github.com/hyperjump/kizami/pkg/utils"
	"go.uber.org/zap"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/kizami/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks
// for config.yaml in the current directory (for development); if that exists
// it is used, so that "kizami server" from the project dir uses the project's
// config (including debug).
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
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "process":
		runProcess()
	case "watch":
		runWatch()
	case "server":
		runServer()
	case "formats":
		runFormats()
	case "version", "--version", "-v":
		fmt.Printf("kizami version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

// applyChunkingFlags overrides config values with explicitly set flags.
func applyChunkingFlags(cfg *config.Config, strategy string, chunkSize, chunkOverlap int) {
	if strategy != "" {
		cfg.Chunking.Strategy = strategy
	}
	if chunkSize > 0 {
		cfg.Chunking.ChunkSize = chunkSize
	}
	if chunkOverlap >= 0 {
		cfg.Chunking.ChunkOverlap = chunkOverlap
	}
}

func newLogger(cfg *config.Config, debugFlag bool) *zap.Logger {
	logger, err := utils.NewLogger(cfg.Debug || debugFlag)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	return logger
}

// outputPath returns the JSON output file path for a processed source file.
func outputPath(dir, sourcePath string) string {
	base := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))
	return filepath.Join(dir, base+".chunks.json")
}

// writeResult writes a processing result as JSON to the output directory,
// or to stdout when dir is empty.
func writeResult(result *pipeline.Result, dir, sourcePath string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	if dir == "" {
		_, err = fmt.Fprintln(os.Stdout, string(data))
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(outputPath(dir, sourcePath), append(data, '\n'), 0644)
}

func runProcess() {
	fs := flag.NewFlagSet("process", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	strategy := fs.String("strategy", "", "chunking strategy: fixed_size or sentence (default: from config)")
	chunkSize := fs.Int("chunk-size", 0, "target chunk size in characters (default: from config)")
	chunkOverlap := fs.Int("chunk-overlap", -1, "overlap between chunks in characters (default: from config)")
	outputDir := fs.String("output", "", "directory for JSON output (default: stdout)")
	debug := fs.Bool("debug", false, "enable debug logging")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: kizami process [flags] <file> [file...]\n\n")
		fs.PrintDefaults()
	}
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fs.Usage()
		os.Exit(1)
	}

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	applyChunkingFlags(cfg, *strategy, *chunkSize, *chunkOverlap)
	logger := newLogger(cfg, *debug)
	defer logger.Sync()

	dir := *outputDir
	if dir == "" {
		dir = cfg.Output.Directory
	}

	opts := []pipeline.Option{}
	if cfg.Debug || *debug {
		opts = append(opts, pipeline.WithLogger(logger))
	}
	processor, err := pipeline.NewProcessor(&cfg.Chunking, nil, opts...)
	if err != nil {
		fmt.Printf("Failed to create processor: %v\n", err)
		os.Exit(1)
	}

	failed := 0
	for _, path := range fs.Args() {
		result, err := processor.ProcessFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to process %s: %v\n", path, err)
			failed++
			continue
		}
		for _, c := range result.Chunks {
			logger.Debug("chunk",
				zap.Int("chunk_id", c.ChunkID),
				zap.String("preview", utils.Preview(c.Content, 80)))
		}
		if err := writeResult(result, dir, path); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write output for %s: %v\n", path, err)
			failed++
			continue
		}
		fmt.Fprintf(os.Stderr, "%s: %d chunks (avg %.0f chars)\n",
			path, result.Stats.Count, result.Stats.AvgSize)
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func runWatch() {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	outputDir := fs.String("output", "", "directory for JSON output (default: from config)")
	debug := fs.Bool("debug", false, "enable debug logging (file events, chunk output)")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: kizami watch [flags]\n\nWatches configured directories and chunks files as they change.\n\n")
		fs.PrintDefaults()
	}
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger := newLogger(cfg, *debug)
	defer logger.Sync()
	debugMode := cfg.Debug || *debug

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	if len(cfg.Watch.Directories) == 0 {
		fmt.Println("No watch directories configured")
		os.Exit(1)
	}
	dir := *outputDir
	if dir == "" {
		dir = cfg.Output.Directory
	}
	if dir == "" {
		fmt.Println("No output directory configured (set output.directory or -output)")
		os.Exit(1)
	}

	processor, err := pipeline.NewProcessor(&cfg.Chunking, nil, pipeline.WithLogger(logger))
	if err != nil {
		fmt.Printf("Failed to create processor: %v\n", err)
		os.Exit(1)
	}

	watchOpts := []watcher.Option{}
	if debugMode {
		watchOpts = append(watchOpts, watcher.WithLogger(logger))
	}
	w := watcher.NewWatcher(
		cfg.Watch.Directories,
		cfg.Watch.Extensions,
		cfg.Watch.RecursiveOrDefault(),
		func(path string) {
			result, err := processor.ProcessFile(path)
			if err != nil {
				logger.Warn("watch process file failed", zap.String("path", path), zap.Error(err))
				return
			}
			if err := writeResult(result, dir, path); err != nil {
				logger.Warn("watch write output failed", zap.String("path", path), zap.Error(err))
				return
			}
			logger.Info("file chunked",
				zap.String("path", path),
				zap.Int("chunks", result.Stats.Count))
		},
		func(path string) {
			out := outputPath(dir, path)
			if err := os.Remove(out); err != nil && !os.IsNotExist(err) {
				logger.Warn("watch remove output failed", zap.String("path", out), zap.Error(err))
				return
			}
			logger.Info("file removed", zap.String("path", path))
		},
		watchOpts...,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		logger.Fatal("Failed to start watcher", zap.Error(err))
	}
	logger.Info("watching",
		zap.Strings("directories", cfg.Watch.Directories),
		zap.Strings("extensions", cfg.Watch.Extensions))

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	w.Stop()
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging (request handling, chunking)")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger := newLogger(cfg, *debug)
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", cfg.Debug || *debug),
	)

	opts := []pipeline.Option{}
	if cfg.Debug || *debug {
		opts = append(opts, pipeline.WithLogger(logger))
	}
	processor, err := pipeline.NewProcessor(&cfg.Chunking, nil, opts...)
	if err != nil {
		logger.Fatal("Failed to create processor", zap.Error(err))
	}

	srv := server.NewServer(processor, cfg, logger)
	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

func runFormats() {
	processor, err := pipeline.NewProcessor(&config.ChunkingConfig{
		ChunkSize:    config.DefaultChunkSize,
		ChunkOverlap: config.DefaultChunkOverlap,
		Strategy:     config.DefaultStrategy,
	}, nil)
	if err != nil {
		fmt.Printf("Failed to create processor: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Supported formats:")
	for _, f := range processor.Registry().SupportedFormats() {
		fmt.Printf("  %s\n", f)
	}
}

func printUsage() {
	fmt.Println(`kizami - document chunking pipeline

Usage:
  kizami process [flags] <file> [file...]   Chunk files and emit JSON
  kizami watch [flags]                      Watch directories and chunk on change
  kizami server [flags]                     Run the HTTP API
  kizami formats                            List supported file formats
  kizami version                            Print version
  kizami help                               Show this help

Run "kizami <command> -h" for command flags.`)
}
