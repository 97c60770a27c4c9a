package commands

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/pagepress/internal/llm"
	"github.com/jmylchreest/pagepress/internal/logger"
	"github.com/jmylchreest/pagepress/internal/server"
	"github.com/jmylchreest/pagepress/pkg/config"
	"github.com/jmylchreest/pagepress/pkg/convert"
	"github.com/jmylchreest/pagepress/pkg/templates"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the conversion HTTP API",
	Long: `Serve exposes POST /api/convert: a multipart upload with a "file" field
and optional "template_type" and "platform" fields, answered with a JSON
envelope carrying the converted HTML.

When LLM credentials are present in the environment the AI conversion path
is used first, with transparent fallback to the rule-based pipeline.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	flags := serveCmd.Flags()
	flags.String("listen", ":8080", "listen address")
	flags.Duration("timeout", 60*time.Second, "LLM request timeout")
}

func runServe(cmd *cobra.Command, args []string) error {
	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.Load(viper.GetString("config_dir"))
	tpl := templates.NewStore(viper.GetString("templates_dir"))
	rules := convert.NewPipeline(cfg, tpl)

	var converter convert.Converter = rules
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if providerName, apiKey := llm.DetectProvider(); providerName != "" {
		provider, err := llm.NewProvider(providerName, llm.ProviderConfig{
			APIKey:  apiKey,
			Model:   llm.GetDefaultModel(providerName),
			Timeout: timeout,
		})
		if err != nil {
			logger.Warn("failed to create LLM provider, serving rule-based only", "error", err)
		} else {
			logger.Info("ai conversion enabled", "provider", providerName)
			converter = convert.WithFallback(convert.NewAIConverter(provider, cfg, tpl), rules)
		}
	}

	listen, _ := cmd.Flags().GetString("listen")
	srv := &http.Server{
		Addr:              listen,
		Handler:           server.New(converter).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", listen)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		return srv.Shutdown(shutdownCtx)
	}
}
