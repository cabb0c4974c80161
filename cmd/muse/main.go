package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/musekit/muse/internal/agent"
	"github.com/musekit/muse/internal/chat"
	"github.com/musekit/muse/internal/config"
	"github.com/musekit/muse/internal/imaging"
	"github.com/musekit/muse/internal/llm"
	"github.com/musekit/muse/internal/llm/anthropic"
	"github.com/musekit/muse/internal/llm/openai"
	"github.com/musekit/muse/internal/metrics"
	"github.com/musekit/muse/internal/observability"
	"github.com/musekit/muse/internal/pipeline"
	"github.com/spf13/cobra"
)

const (
	analystName = "Analysis Agent"
	creatorName = "Creative Agent"

	analystInstruction = "You are an image analyst. Describe the image you are given in one " +
		"concise, concrete caption. Mention the subject and the setting; do not speculate " +
		"beyond what is visible."
	creatorInstruction = "You are a poet. Take the image description from the conversation " +
		"and write a short, evocative poem inspired by it. Respond with the poem only."
)

func main() {
	var (
		imagePath  string
		configPath string
		jsonReport bool
	)

	rootCmd := &cobra.Command{
		Use:   "muse",
		Short: "Two-stage image-to-poem generation pipeline",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Caption an image and compose a poem from the caption",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(cmd.Context(), configPath, imagePath, jsonReport)
		},
	}

	runCmd.Flags().StringVar(&imagePath, "image", "", "Path to the source image")
	runCmd.Flags().StringVar(&configPath, "config", "configs/muse.yaml", "Config file path")
	runCmd.Flags().BoolVar(&jsonReport, "json", false, "Output metrics as JSON")
	_ = runCmd.MarkFlagRequired("image")

	providersCmd := &cobra.Command{
		Use:   "providers",
		Short: "List available LLM providers",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("Available LLM providers:")
			fmt.Println()
			for name, url := range llm.KnownProviders {
				fmt.Printf("  %-12s %s\n", name, url)
			}
			fmt.Println("  custom       (set base_url to any OpenAI-compatible endpoint)")
			fmt.Println()
			fmt.Println("Configure in muse.yaml or via environment:")
			fmt.Println("  MUSE_LLM_PROVIDER=ollama")
			fmt.Println("  MUSE_LLM_AGENTS_ANALYST_MODEL=gemma3:12b")
			fmt.Println("  MUSE_LLM_AGENTS_CREATOR_MODEL=gemma3:4b")
		},
	}

	rootCmd.AddCommand(runCmd, providersCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newFactory() *llm.ProviderFactory {
	factory := llm.NewFactory()
	factory.Register("anthropic", func(c llm.ProviderConfig) (llm.Provider, error) {
		return anthropic.New(c.APIKey, c.Model, c.BaseURL, c.Timeout), nil
	})
	// All OpenAI-compatible providers
	for _, p := range []struct{ name, url string }{
		{"openai", llm.KnownProviders["openai"]},
		{"ollama", llm.KnownProviders["ollama"]},
		{"vllm", llm.KnownProviders["vllm"]},
		{"groq", llm.KnownProviders["groq"]},
		{"together", llm.KnownProviders["together"]},
		{"custom", ""},
	} {
		p := p
		factory.Register(p.name, func(c llm.ProviderConfig) (llm.Provider, error) {
			base := c.BaseURL
			if base == "" {
				base = p.url
			}
			return openai.New(c.APIKey, c.Model, base, c.Timeout), nil
		})
	}
	return factory
}

func buildAgent(factory *llm.ProviderFactory, cfg *config.Config, key, name, instruction string) (*agent.Agent, error) {
	resolved := cfg.LLM.ResolveForAgent(key)
	provider, err := factory.Create(llm.ProviderConfig{
		Provider: resolved.Provider,
		APIKey:   resolved.APIKey,
		Model:    resolved.Model,
		BaseURL:  resolved.BaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("creating %s provider: %w", key, err)
	}

	var opts *llm.RequestOptions
	if cfg.LLM.Temperature > 0 || cfg.LLM.MaxTokens > 0 {
		opts = &llm.RequestOptions{}
		if cfg.LLM.Temperature > 0 {
			t := cfg.LLM.Temperature
			opts.Temperature = &t
		}
		if cfg.LLM.MaxTokens > 0 {
			mt := cfg.LLM.MaxTokens
			opts.MaxTokens = &mt
		}
	}

	return agent.New(name, instruction, provider, opts), nil
}

func runPipeline(ctx context.Context, configPath, imagePath string, jsonReport bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: config load failed (%v), using defaults\n", err)
		cfg = &config.Config{}
	}

	tp, err := observability.InitTracing(ctx, &observability.TracingConfig{
		ServiceName:  cfg.Tracing.ServiceName,
		Environment:  cfg.Tracing.Environment,
		OTLPEndpoint: cfg.Tracing.OTLPEndpoint,
		SampleRate:   cfg.Tracing.SampleRate,
	})
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = tp.Shutdown(shutdownCtx)
	}()

	factory := newFactory()

	analyst, err := buildAgent(factory, cfg, "analyst", analystName, analystInstruction)
	if err != nil {
		return err
	}
	creator, err := buildAgent(factory, cfg, "creator", creatorName, creatorInstruction)
	if err != nil {
		return err
	}

	uri, err := imaging.EncodeFile(imagePath)
	if err != nil {
		return err
	}
	fmt.Printf("Encoded %s (%d bytes inline)\n", imagePath, len(uri))

	m := metrics.New()
	runner := pipeline.New(
		[]*agent.Agent{analyst, creator},
		pipeline.WithMetrics(m),
		pipeline.WithObserver(func(stage string, msg chat.Message) {
			fmt.Printf("\n=== %s ===\n%s\n", stage, msg.Text())
		}),
	)

	ctx, span := observability.StartRunSpan(ctx, len(runner.Stages()))
	initial := chat.UserMessage(
		llm.ImagePart(uri.String()),
		llm.TextPart("Describe this image."),
	)
	_, runErr := runner.Run(ctx, initial)
	observability.RecordError(span, runErr)
	span.End()

	m.Finish()
	if jsonReport {
		data, _ := m.JSON()
		fmt.Println(string(data))
	} else {
		m.PrintSummary(os.Stdout)
	}

	return runErr
}
