package schemas

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xeipuuv/gojsonschema"
)

func TestSchemas_ValidJSONSchema(t *testing.T) {
	tests := map[string]string{
		"match_report":  MatchReport,
		"resume_record": ResumeRecord,
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			var v map[string]any
			require.NoError(t, json.Unmarshal([]byte(content), &v))
			assert.Equal(t, "http://json-schema.org/draft-07/schema#", v["$schema"])

			_, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(content))
			assert.NoError(t, err)
		})
	}
}
