package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/jonathan/resume-matcher/internal/schemas"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a JSON record against a schema",
	Long: `Validate a JSON file against a JSON Schema.

--schema accepts a schema file path or one of the built-in names: match_report, resume_record.`,
	RunE: runValidate,
}

var (
	validateSchema string
	validateJSON   string
)

func init() {
	validateCmd.Flags().StringVar(&validateSchema, "schema", "", "Schema file path or built-in schema name (required)")
	validateCmd.Flags().StringVar(&validateJSON, "json", "", "Path to the JSON file to validate (required)")

	validateCmd.MarkFlagRequired("schema")
	validateCmd.MarkFlagRequired("json")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, _ []string) error {
	var err error
	if schema, ok := schemas.Embedded(validateSchema); ok {
		var content []byte
		content, err = os.ReadFile(validateJSON)
		if err != nil {
			return fmt.Errorf("failed to read JSON file: %w", err)
		}
		err = schemas.ValidateJSONString(schema, string(content))
	} else {
		err = schemas.ValidateJSON(validateSchema, validateJSON)
	}

	if err == nil {
		_, _ = fmt.Fprintf(os.Stdout, "Validation passed: %s\n", validateJSON)
		return nil
	}

	var validationErr *schemas.ValidationError
	if errors.As(err, &validationErr) {
		_, _ = fmt.Fprintf(os.Stdout, "Validation failed: %s", validationErr.Error())
		return fmt.Errorf("validation found %d error(s)", len(validationErr.Errors))
	}
	return err
}
