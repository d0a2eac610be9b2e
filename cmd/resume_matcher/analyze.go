package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/resume-matcher/internal/pipeline"
	"github.com/jonathan/resume-matcher/internal/types"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Match a stored resume against a job description",
	Long: `Score a stored resume against one job description and store the report.

The report combines semantic similarity, skill overlap, the skill gap, ATS checks and evidence
snippets. Requires GEMINI_API_KEY for embeddings.`,
	RunE: runAnalyze,
}

var (
	analyzeResumeID string
	analyzeJDFile   string
	analyzeVerbose  bool
)

func init() {
	analyzeCmd.Flags().StringVar(&analyzeResumeID, "resume-id", "", "ID returned by upload-resume (required)")
	analyzeCmd.Flags().StringVarP(&analyzeJDFile, "jd-file", "j", "", "Path to the job description file (required)")
	analyzeCmd.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Print pipeline progress to stderr")

	analyzeCmd.MarkFlagRequired("resume-id")
	analyzeCmd.MarkFlagRequired("jd-file")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	jdText, err := readInputText(analyzeJDFile)
	if err != nil {
		return err
	}

	var opts []pipeline.Option
	if analyzeVerbose {
		opts = append(opts, pipeline.WithProgress(progressPrinter))
	}
	m, err := a.matcher(ctx, true, opts...)
	if err != nil {
		return err
	}

	report, err := m.Analyze(ctx, types.AnalyzeRequest{
		ResumeID:           analyzeResumeID,
		JobDescriptionText: jdText,
	})
	if err != nil {
		return fmt.Errorf("failed to analyze resume: %w", err)
	}

	if jsonOutput() {
		return writeJSON(os.Stdout, report)
	}
	a.printer.PrintMatchReport(report)
	return nil
}
