package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/resume-matcher/internal/pipeline"
	"github.com/jonathan/resume-matcher/internal/types"
	"github.com/spf13/cobra"
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Rank several job descriptions against one stored resume",
	Long: `Score a stored resume against up to 20 job descriptions and rank them by final match score.

Pass --jd-file once per job description. Titles given with --title are matched to files by
position; missing titles fall back to the first line of the job description.`,
	RunE: runCompare,
}

var (
	compareResumeID string
	compareJDFiles  []string
	compareTitles   []string
	compareVerbose  bool
)

func init() {
	compareCmd.Flags().StringVar(&compareResumeID, "resume-id", "", "ID returned by upload-resume (required)")
	compareCmd.Flags().StringArrayVarP(&compareJDFiles, "jd-file", "j", nil, "Path to a job description file (repeatable, required)")
	compareCmd.Flags().StringArrayVar(&compareTitles, "title", nil, "Title for the job description at the same position (repeatable)")
	compareCmd.Flags().BoolVarP(&compareVerbose, "verbose", "v", false, "Print pipeline progress to stderr")

	compareCmd.MarkFlagRequired("resume-id")
	compareCmd.MarkFlagRequired("jd-file")

	rootCmd.AddCommand(compareCmd)
}

// compareItems pairs job description texts with titles by position.
func compareItems(texts, titles []string) ([]types.CompareJobItem, error) {
	if len(titles) > len(texts) {
		return nil, fmt.Errorf("got %d titles for %d job descriptions", len(titles), len(texts))
	}
	items := make([]types.CompareJobItem, len(texts))
	for i, text := range texts {
		items[i].Text = text
		if i < len(titles) {
			items[i].Title = titles[i]
		}
	}
	return items, nil
}

func runCompare(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	texts := make([]string, 0, len(compareJDFiles))
	for _, path := range compareJDFiles {
		text, err := readInputText(path)
		if err != nil {
			return err
		}
		texts = append(texts, text)
	}
	items, err := compareItems(texts, compareTitles)
	if err != nil {
		return err
	}

	var opts []pipeline.Option
	if compareVerbose {
		opts = append(opts, pipeline.WithProgress(progressPrinter))
	}
	m, err := a.matcher(ctx, true, opts...)
	if err != nil {
		return err
	}

	resp, err := m.Compare(ctx, types.CompareRequest{
		ResumeID:        compareResumeID,
		JobDescriptions: items,
	})
	if err != nil {
		return fmt.Errorf("failed to compare job descriptions: %w", err)
	}

	if jsonOutput() {
		return writeJSON(os.Stdout, resp)
	}
	a.printer.PrintCompare(resp)
	return nil
}
