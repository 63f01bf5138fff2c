package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"codescope/internal/analysis"
	"codescope/internal/artifact"
	"codescope/internal/chunker"
	"codescope/internal/config"
	"codescope/internal/depgraph"
	"codescope/internal/llm"
	"codescope/internal/logging"
	"codescope/internal/partition"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <source-file>",
	Short: "Partition a source file and run the full analysis pipeline",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if outputDir != "" {
		cfg.Output = outputDir
	}
	if debugMode {
		cfg.Debug = true
	}

	if err := logging.Initialize(cfg.Output, cfg.Debug); err != nil {
		return err
	}
	boot := logging.Get(logging.CategoryBoot)

	sourcePath := args[0]
	content, err := os.ReadFile(sourcePath)
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}

	// Stage 1: partition. A parse failure is fatal; nothing downstream
	// can run without units.
	extractor := partition.NewExtractor()
	units, posMap, err := extractor.Partition(ctx, sourcePath, content)
	if err != nil {
		return err
	}
	boot.Infof("partitioned %s into %d units", filepath.Base(sourcePath), len(units))

	store, err := artifact.NewRunStore(cfg.Output)
	if err != nil {
		return err
	}
	paths, err := store.WriteUnits(units)
	if err != nil {
		return err
	}
	if err := store.WritePositionMap(posMap); err != nil {
		return err
	}

	// Stage 2: dependency resolution.
	graph := depgraph.NewResolver().Resolve(ctx, units)
	if err := writeGraph(store.Root(), graph); err != nil {
		return err
	}

	// Stage 3: analysis.
	client, err := buildClient(ctx, cfg)
	if err != nil {
		return err
	}
	boot.Infof("backend: %s", client.Provider())

	orch := analysis.NewOrchestrator(client, orchestratorConfig(cfg))
	results := orch.Run(ctx, analysis.NewInput(units, graph, paths, store))

	for _, r := range results {
		if err := store.WriteAnalysis(r.Category, r.Content); err != nil {
			return err
		}
	}

	fmt.Printf("Analyzed %s: %d units, %d dependency edges\n",
		filepath.Base(sourcePath), len(units), len(graph.Edges))
	for _, r := range results {
		fmt.Printf("  %-12s %s\n", r.Category, r.Status)
	}
	fmt.Printf("Artifacts in %s\n", store.Root())
	return nil
}

// buildClient resolves the provider once; everything downstream depends
// only on the llm.Client interface.
func buildClient(ctx context.Context, cfg *config.Config) (llm.Client, error) {
	cc := llm.DetectProvider()
	if cfg.LLM.Provider != "" {
		cc = &llm.ClientConfig{
			Provider: llm.Provider(cfg.LLM.Provider),
			APIKey:   cfg.LLM.APIKey,
		}
	}
	cc.Model = cfg.LLM.Model
	if cfg.LLM.BaseURL != "" {
		cc.BaseURL = cfg.LLM.BaseURL
	}
	cc.Temperature = cfg.LLM.Temperature
	cc.MaxTokens = cfg.LLM.MaxTokens
	cc.Timeout = config.Duration(cfg.LLM.Timeout, 0)
	return llm.NewClient(ctx, cc)
}

func orchestratorConfig(cfg *config.Config) analysis.Config {
	out := analysis.DefaultConfig()
	if cfg.Analysis.MaxRetries > 0 {
		out.MaxRetries = cfg.Analysis.MaxRetries
	}
	out.InterCallDelay = config.Duration(cfg.Analysis.InterCallDelay, out.InterCallDelay)
	out.RemoteTimeout = config.Duration(cfg.Analysis.RemoteTimeout, out.RemoteTimeout)
	out.LocalTimeout = config.Duration(cfg.Analysis.LocalTimeout, out.LocalTimeout)
	out.Chunker = chunker.Config{
		ChunkSize:        cfg.Chunker.ChunkSize,
		OverlapSize:      cfg.Chunker.OverlapSize,
		RecursionLimit:   cfg.Chunker.RecursionLimit,
		ContextThreshold: cfg.Chunker.ContextThreshold,
	}
	return out
}

func writeGraph(root string, graph *depgraph.Graph) error {
	data, err := json.MarshalIndent(graph, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal dependency graph: %w", err)
	}
	return os.WriteFile(filepath.Join(root, "depgraph.json"), data, 0o644)
}
