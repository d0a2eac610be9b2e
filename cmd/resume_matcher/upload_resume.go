package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/resume-matcher/internal/types"
	"github.com/spf13/cobra"
)

var uploadResumeCmd = &cobra.Command{
	Use:   "upload-resume",
	Short: "Store a resume and its extracted summary",
	Long:  "Read a text, Markdown or HTML resume, clean it, extract skills, education and experience lines, and store the record for later analyses.",
	RunE:  runUploadResume,
}

var (
	uploadFile     string
	uploadFilename string
)

func init() {
	uploadResumeCmd.Flags().StringVarP(&uploadFile, "file", "f", "", "Path to the resume file (required)")
	uploadResumeCmd.Flags().StringVar(&uploadFilename, "filename", "", "Filename to record (defaults to the base name of --file)")

	uploadResumeCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(uploadResumeCmd)
}

func runUploadResume(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	text, err := readInputText(uploadFile)
	if err != nil {
		return err
	}

	m, err := a.matcher(ctx, false)
	if err != nil {
		return err
	}

	filename := uploadFilename
	if filename == "" {
		filename = filepath.Base(uploadFile)
	}

	record, err := m.UploadResume(ctx, types.UploadResumeRequest{Filename: filename, Text: text})
	if err != nil {
		return fmt.Errorf("failed to upload resume: %w", err)
	}

	if jsonOutput() {
		return writeJSON(os.Stdout, record)
	}
	fmt.Fprintf(os.Stdout, "Stored resume %s (%s)\n", record.ResumeID, record.Filename)
	a.printer.PrintExtractedSkills(record.Extracted.SkillsDetailed)
	return nil
}
