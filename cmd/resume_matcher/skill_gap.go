package main

import (
	"os"

	"github.com/jonathan/resume-matcher/internal/ats"
	"github.com/jonathan/resume-matcher/internal/cleaning"
	"github.com/jonathan/resume-matcher/internal/extraction"
	"github.com/jonathan/resume-matcher/internal/gap"
	"github.com/jonathan/resume-matcher/internal/jd"
	"github.com/jonathan/resume-matcher/internal/types"
	"github.com/spf13/cobra"
)

var skillGapCmd = &cobra.Command{
	Use:   "skill-gap",
	Short: "Compare resume skills with job description skills",
	Long:  "Extract skills from a resume file and a job description file and report matching, missing required and nice-to-have skills.",
	RunE:  runSkillGap,
}

var atsCmd = &cobra.Command{
	Use:   "ats",
	Short: "Run ATS keyword and structure checks for a resume",
	Long:  "Check keyword coverage of the job description skills, expected resume sections and formatting red flags.",
	RunE:  runATS,
}

var (
	gapResumeFile string
	gapJDFile     string
	atsResumeFile string
	atsJDFile     string
)

func init() {
	skillGapCmd.Flags().StringVarP(&gapResumeFile, "resume-file", "r", "", "Path to the resume file (required)")
	skillGapCmd.Flags().StringVarP(&gapJDFile, "jd-file", "j", "", "Path to the job description file (required)")
	skillGapCmd.MarkFlagRequired("resume-file")
	skillGapCmd.MarkFlagRequired("jd-file")

	atsCmd.Flags().StringVarP(&atsResumeFile, "resume-file", "r", "", "Path to the resume file (required)")
	atsCmd.Flags().StringVarP(&atsJDFile, "jd-file", "j", "", "Path to the job description file (required)")
	atsCmd.MarkFlagRequired("resume-file")
	atsCmd.MarkFlagRequired("jd-file")

	rootCmd.AddCommand(skillGapCmd)
	rootCmd.AddCommand(atsCmd)
}

// resumeAndJob reads both files and returns the cleaned resume text, its skills and the
// job description signals.
func resumeAndJob(a *app, resumePath, jdPath string) (string, []string, *types.JobDescriptionSignals, error) {
	resumeText, err := readInputText(resumePath)
	if err != nil {
		return "", nil, nil, err
	}
	jdText, err := readInputText(jdPath)
	if err != nil {
		return "", nil, nil, err
	}

	cleaned := cleaning.Clean(resumeText)
	skills := extraction.ExtractSkills(cleaned, a.taxonomy)
	return cleaned, skills, jd.ProcessJobDescription(jdText, a.taxonomy), nil
}

func runSkillGap(_ *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	_, skills, signals, err := resumeAndJob(a, gapResumeFile, gapJDFile)
	if err != nil {
		return err
	}

	skillGap := gap.ComputeSkillGap(skills, signals.RequiredSkills, signals.PreferredSkills)

	if jsonOutput() {
		return writeJSON(os.Stdout, skillGap)
	}
	a.printer.PrintSkillGap(&skillGap)
	return nil
}

func runATS(_ *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	resumeText, skills, signals, err := resumeAndJob(a, atsResumeFile, atsJDFile)
	if err != nil {
		return err
	}

	report := ats.ComputeReport(resumeText, skills, signals.RequiredSkills, signals.PreferredSkills)

	if jsonOutput() {
		return writeJSON(os.Stdout, report)
	}
	a.printer.PrintAtsReport(report)
	return nil
}
