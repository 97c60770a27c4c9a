// Package commands implements the CLI commands for pagepress.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "pagepress",
	Short: "Convert Word-exported review HTML into styled pages",
	Long: `Pagepress converts semi-structured, Word-exported HTML documents
(casino and sportsbook review articles) into normalized, styled pages.

Content is extracted with tolerant pattern scans, classified, and rendered
into a page template with configuration-driven affiliate links, platform
metadata, and disclaimers. An optional LLM conversion path can be enabled;
it always falls back to the deterministic rule-based pipeline.

Examples:
  # Convert a Word export
  pagepress convert input/888-casino.html

  # Convert with an explicit platform and template
  pagepress convert input/draft.html --platform 888casino \
      --template-type casino-review

  # Dump what the extractor sees
  pagepress inspect input/888-casino.html --format yaml

  # Run the conversion API
  pagepress serve --listen :8080`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default $HOME/.pagepress.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress progress output")
	rootCmd.PersistentFlags().String("config-dir", "config", "directory with affiliate/platform/image JSON config")
	rootCmd.PersistentFlags().String("templates-dir", "templates", "directory with page templates and components")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	_ = viper.BindPFlag("config_dir", rootCmd.PersistentFlags().Lookup("config-dir"))
	_ = viper.BindPFlag("templates_dir", rootCmd.PersistentFlags().Lookup("templates-dir"))
}

func initConfig() {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".pagepress")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("PAGEPRESS")
	viper.AutomaticEnv()

	_ = viper.BindEnv("api_key", "ANTHROPIC_API_KEY", "OPENAI_API_KEY", "OPENROUTER_API_KEY")

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// logInfo prints an info message to stderr (unless quiet mode).
func logInfo(format string, args ...any) {
	if !viper.GetBool("quiet") {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
