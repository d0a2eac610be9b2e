// Package schemas embeds the JSON Schemas for stored records.
package schemas

import _ "embed"

// MatchReport is the JSON Schema of an analysis record.
//
//go:embed match_report.schema.json
var MatchReport string

// ResumeRecord is the JSON Schema of a stored resume.
//
//go:embed resume_record.schema.json
var ResumeRecord string
