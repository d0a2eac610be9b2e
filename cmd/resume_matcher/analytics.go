package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Summarize stored analyses",
	Long:  "Report the number of analyses, average scores, the most frequently missing required skills and the most recent runs.",
	RunE:  runAnalytics,
}

var showReportCmd = &cobra.Command{
	Use:   "show-report",
	Short: "Print a stored match report",
	RunE:  runShowReport,
}

var showAnalysisID string

func init() {
	showReportCmd.Flags().StringVar(&showAnalysisID, "analysis-id", "", "ID of a stored analysis (required)")
	showReportCmd.MarkFlagRequired("analysis-id")

	rootCmd.AddCommand(analyticsCmd)
	rootCmd.AddCommand(showReportCmd)
}

func runAnalytics(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	m, err := a.matcher(ctx, false)
	if err != nil {
		return err
	}

	summary, err := m.Analytics(ctx)
	if err != nil {
		return fmt.Errorf("failed to compute analytics: %w", err)
	}

	if jsonOutput() {
		return writeJSON(os.Stdout, summary)
	}
	a.printer.PrintAnalytics(summary)
	return nil
}

func runShowReport(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	m, err := a.matcher(ctx, false)
	if err != nil {
		return err
	}

	report, err := m.Report(ctx, showAnalysisID)
	if err != nil {
		return err
	}

	if jsonOutput() {
		return writeJSON(os.Stdout, report)
	}
	a.printer.PrintMatchReport(report)
	return nil
}
