package main

import (
	"os"

	"github.com/jonathan/resume-matcher/internal/jd"
	"github.com/spf13/cobra"
)

var processJDCmd = &cobra.Command{
	Use:   "process-jd",
	Short: "Extract required and preferred skills from a job description",
	Long:  "Split a job description into required and preferred sections and report skills, role keywords and the inferred experience level.",
	RunE:  runProcessJD,
}

var processJDFile string

func init() {
	processJDCmd.Flags().StringVarP(&processJDFile, "jd-file", "j", "", "Path to the job description file (required)")

	processJDCmd.MarkFlagRequired("jd-file")

	rootCmd.AddCommand(processJDCmd)
}

func runProcessJD(_ *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	text, err := readInputText(processJDFile)
	if err != nil {
		return err
	}

	signals := jd.ProcessJobDescription(text, a.taxonomy)

	if jsonOutput() {
		return writeJSON(os.Stdout, signals)
	}
	a.printer.PrintJobSignals(signals)
	return nil
}
