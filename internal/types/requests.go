package types

import (
	"github.com/go-playground/validator/v10"
)

// MaxCompareJobs bounds the number of job descriptions in one comparison.
const MaxCompareJobs = 20

// UploadResumeRequest registers already extracted resume text.
type UploadResumeRequest struct {
	Filename string `json:"filename" validate:"required"`
	Text     string `json:"text" validate:"required"`
}

// AnalyzeRequest matches a stored resume against one job description.
type AnalyzeRequest struct {
	ResumeID           string `json:"resume_id" validate:"required"`
	JobDescriptionText string `json:"job_description_text" validate:"required,min=50"`
}

// CompareJobItem is a single job description in a comparison.
type CompareJobItem struct {
	Title string `json:"title,omitempty"`
	Text  string `json:"text" validate:"required,min=50"`
}

// CompareRequest matches a stored resume against several job descriptions.
type CompareRequest struct {
	ResumeID        string           `json:"resume_id" validate:"required"`
	JobDescriptions []CompareJobItem `json:"job_descriptions" validate:"required,min=1,max=20,dive"`
}

// Validate validates the UploadResumeRequest using the validator.
func (r *UploadResumeRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the AnalyzeRequest using the validator.
func (r *AnalyzeRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the CompareRequest using the validator.
func (r *CompareRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
