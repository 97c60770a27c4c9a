package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/pagepress/internal/fetcher"
	"github.com/jmylchreest/pagepress/internal/llm"
	"github.com/jmylchreest/pagepress/internal/logger"
	"github.com/jmylchreest/pagepress/internal/wordclean"
	"github.com/jmylchreest/pagepress/pkg/config"
	"github.com/jmylchreest/pagepress/pkg/convert"
	"github.com/jmylchreest/pagepress/pkg/templates"
)

var convertCmd = &cobra.Command{
	Use:   "convert [input.html] [output.html]",
	Short: "Convert a Word-exported HTML document to a styled page",
	Long: `Convert a Word-exported HTML file (or a remote document with --url)
into a styled page.

Without an explicit output path the result is written to
<output-dir>/<input-stem>-converted.html, creating the directory on demand.

Examples:
  pagepress convert input/888-casino.html
  pagepress convert input/888-casino.html output/result.html
  pagepress convert --url "https://example.com/draft.html"
  pagepress convert input/draft.html --ai -p anthropic`,
	Args: cobra.MaximumNArgs(2),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	flags := convertCmd.Flags()

	flags.String("url", "", "fetch the input document from a URL instead of a file")
	flags.String("output-dir", "output", "directory for derived output paths")
	flags.StringP("template-type", "t", "", "override page-type detection (casino-review, sportsbook-review, crypto-comparison)")
	flags.String("platform", "", "override platform detection (config key)")
	flags.Bool("pre-clean", false, "normalize Word markup before rule-based extraction")

	// LLM settings
	flags.Bool("ai", false, "convert with an LLM, falling back to the rule-based pipeline")
	flags.StringP("provider", "p", "", "LLM provider: anthropic, openai, openrouter, ollama (auto-detects from env vars)")
	flags.StringP("model", "m", "", "model name (provider-specific)")
	flags.StringP("api-key", "k", "", "API key (or use env var)")
	flags.String("base-url", "", "custom API base URL")
	flags.Duration("timeout", 60*time.Second, "LLM/fetch request timeout")

	_ = viper.BindPFlag("provider", flags.Lookup("provider"))
	_ = viper.BindPFlag("model", flags.Lookup("model"))
	_ = viper.BindPFlag("api_key", flags.Lookup("api-key"))
	_ = viper.BindPFlag("base_url", flags.Lookup("base-url"))
}

func runConvert(cmd *cobra.Command, args []string) error {
	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	url, _ := cmd.Flags().GetString("url")
	if url == "" && len(args) == 0 {
		return cmd.Help()
	}

	timeout, _ := cmd.Flags().GetDuration("timeout")

	// Read the input document.
	var input, inputName string
	if url != "" {
		f := fetcher.NewStatic(fetcher.Config{Timeout: timeout})
		body, err := f.Fetch(ctx, url)
		if err != nil {
			logger.Error("failed to fetch input", "url", url, "error", err)
			return err
		}
		input = body
		inputName = filepath.Base(url)
	} else {
		data, err := os.ReadFile(args[0])
		if err != nil {
			logger.Error("failed to read input", "path", args[0], "error", err)
			return err
		}
		input = string(data)
		inputName = filepath.Base(args[0])
	}
	logInfo("Converting: %s", inputName)

	if preClean, _ := cmd.Flags().GetBool("pre-clean"); preClean {
		input = wordclean.New().Clean(input)
	}

	converter := buildConverter(cmd, timeout)

	templateType, _ := cmd.Flags().GetString("template-type")
	platform, _ := cmd.Flags().GetString("platform")

	result, err := converter.Convert(ctx, input, convert.Options{
		TemplateType: templateType,
		Platform:     platform,
	})
	if err != nil {
		logger.Error("conversion failed", "error", err)
		return err
	}

	outputPath, err := resolveOutputPath(cmd, args, inputName)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outputPath, []byte(result.HTML), 0o644); err != nil {
		logger.Error("failed to write output", "path", outputPath, "error", err)
		return err
	}

	logInfo("  ✓ Converted successfully to: %s (method: %s)", outputPath, result.Method)
	return nil
}

// buildConverter assembles the conversion chain: the rule-based pipeline,
// optionally fronted by an LLM converter when --ai is set and credentials
// resolve.
func buildConverter(cmd *cobra.Command, timeout time.Duration) convert.Converter {
	cfg := config.Load(viper.GetString("config_dir"))
	tpl := templates.NewStore(viper.GetString("templates_dir"))
	rules := convert.NewPipeline(cfg, tpl)

	if ai, _ := cmd.Flags().GetBool("ai"); !ai {
		return rules
	}

	providerName := viper.GetString("provider")
	apiKey := viper.GetString("api_key")
	if providerName == "" {
		providerName, apiKey = llm.DetectProvider()
	}
	if providerName == "" {
		logger.Warn("no LLM credentials found, using rule-based conversion")
		return rules
	}

	model := viper.GetString("model")
	if model == "" {
		model = llm.GetDefaultModel(providerName)
	}

	provider, err := llm.NewProvider(providerName, llm.ProviderConfig{
		APIKey:  apiKey,
		BaseURL: viper.GetString("base_url"),
		Model:   model,
		Timeout: timeout,
	})
	if err != nil {
		logger.Warn("failed to create LLM provider, using rule-based conversion", "error", err)
		return rules
	}

	logger.Debug("ai conversion enabled", "provider", providerName, "model", model)
	return convert.WithFallback(convert.NewAIConverter(provider, cfg, tpl), rules)
}

// resolveOutputPath honors an explicit second argument, otherwise derives
// <output-dir>/<stem>-converted.html and creates the directory on demand.
func resolveOutputPath(cmd *cobra.Command, args []string, inputName string) (string, error) {
	if len(args) > 1 {
		if dir := filepath.Dir(args[1]); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return "", fmt.Errorf("failed to create output directory: %w", err)
			}
		}
		return args[1], nil
	}

	outputDir, _ := cmd.Flags().GetString("output-dir")
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	stem := strings.TrimSuffix(inputName, filepath.Ext(inputName))
	return filepath.Join(outputDir, stem+"-converted.html"), nil
}
