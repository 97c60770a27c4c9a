package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/pagepress/internal/logger"
	"github.com/jmylchreest/pagepress/internal/output"
	"github.com/jmylchreest/pagepress/pkg/classify"
	"github.com/jmylchreest/pagepress/pkg/config"
	"github.com/jmylchreest/pagepress/pkg/extract"
)

// inspectReport is the per-document result printed by the inspect command.
type inspectReport struct {
	File     string          `json:"file" yaml:"file"`
	PageType string          `json:"page_type" yaml:"page_type"`
	Platform string          `json:"platform,omitempty" yaml:"platform,omitempty"`
	Summary  extract.Summary `json:"summary" yaml:"summary"`
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <input.html> [more.html...]",
	Short: "Show what the extractor and classifier see in a document",
	Long: `Inspect runs extraction and classification over one or more documents
and prints the structured result without rendering anything.

Useful for checking why a document classifies the way it does, or which
paragraphs and tables survive extraction.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	flags := inspectCmd.Flags()
	flags.StringP("output", "o", "", "output file (default: stdout)")
	flags.String("format", "json", "output format: json, jsonl, yaml")
}

func runInspect(cmd *cobra.Command, args []string) error {
	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
	})

	cfg := config.Load(viper.GetString("config_dir"))

	var candidates []classify.Candidate
	for _, p := range cfg.Platforms() {
		candidates = append(candidates, classify.Candidate{Key: p.Key, Name: p.Name})
	}

	dest := os.Stdout
	if path, _ := cmd.Flags().GetString("output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		dest = f
	}

	format, _ := cmd.Flags().GetString("format")
	writer, err := output.NewWriter(dest, output.Format(format))
	if err != nil {
		return err
	}

	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		html := string(data)

		summary := extract.Scan(html)
		platform, _ := classify.DetectPlatform(html, candidates)

		report := inspectReport{
			File:     path,
			PageType: classify.DetectPageType(html, summary.Headings),
			Platform: platform,
			Summary:  summary,
		}
		if err := writer.Write(report); err != nil {
			return err
		}
	}

	return writer.Flush()
}
