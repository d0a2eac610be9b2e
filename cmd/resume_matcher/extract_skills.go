package main

import (
	"os"

	"github.com/jonathan/resume-matcher/internal/cleaning"
	"github.com/jonathan/resume-matcher/internal/extraction"
	"github.com/spf13/cobra"
)

var extractSkillsCmd = &cobra.Command{
	Use:   "extract-skills",
	Short: "Extract canonical skills from a resume or any text file",
	Long:  "Clean a text, Markdown or HTML file and list the taxonomy skills found in it, with confidence scores and context snippets.",
	RunE:  runExtractSkills,
}

var extractTextFile string

func init() {
	extractSkillsCmd.Flags().StringVarP(&extractTextFile, "text-file", "t", "", "Path to the input file (required)")

	extractSkillsCmd.MarkFlagRequired("text-file")

	rootCmd.AddCommand(extractSkillsCmd)
}

func runExtractSkills(_ *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	text, err := readInputText(extractTextFile)
	if err != nil {
		return err
	}

	skills := extraction.ExtractSkillsWithConfidence(cleaning.Clean(text), a.taxonomy,
		extraction.WithMaxSnippets(a.cfg.MaxSnippets))

	if jsonOutput() {
		return writeJSON(os.Stdout, skills)
	}
	a.printer.PrintExtractedSkills(skills)
	return nil
}
