package model

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed resume.schema.json
var resumeSchema string

var resumeSchemaLoader = gojsonschema.NewStringLoader(resumeSchema)

// ValidateResumeJSON checks raw against the ResumeContent JSON schema.
func ValidateResumeJSON(raw string) error {
	res, err := gojsonschema.Validate(resumeSchemaLoader, gojsonschema.NewStringLoader(raw))
	if err != nil {
		return fmt.Errorf("load resume document: %w", err)
	}
	if res.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("schema validation failed: %s", strings.Join(msgs, "; "))
}
