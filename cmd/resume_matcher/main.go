// Package main provides the resume_matcher command line interface.
package main

import (
	"fmt"
	"os"

	"github.com/jonathan/resume-matcher/internal/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "resume_matcher",
	Short: "Resume and job description matcher",
	Long: `Resume Matcher scores resumes against job descriptions: skill extraction against a curated taxonomy,
semantic similarity over Gemini embeddings, skill gaps, ATS checks and evidence snippets.

Configuration is read from --config (YAML or JSON), RESUME_MATCHER_* environment variables and flags.`,
	SilenceUsage: true,
}

// settings collects persistent flag bindings; commands load config through it.
var settings = viper.New()

var (
	configPath   string
	outputFormat string
)

const (
	formatText = "text"
	formatJSON = "json"
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", formatText, "Output format: text or json")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().Bool("json-logs", false, "Write logs as JSON")
	rootCmd.PersistentFlags().String("data-dir", "", "Directory for resume and analysis records")

	_ = settings.BindPFlag(config.KeyDebug, rootCmd.PersistentFlags().Lookup("debug"))
	_ = settings.BindPFlag(config.KeyLogJSON, rootCmd.PersistentFlags().Lookup("json-logs"))
	_ = settings.BindPFlag(config.KeyDataDir, rootCmd.PersistentFlags().Lookup("data-dir"))
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
