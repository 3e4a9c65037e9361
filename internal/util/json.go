package util

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
)

var (
	fencedJSON = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")
	objectJSON = regexp.MustCompile(`(?s)\{.*\}`)
	arrayJSON  = regexp.MustCompile(`(?s)\[.*\]`)
)

// ExtractJSON pulls the JSON payload out of free-form LLM output. It prefers a fenced
// code block, then the outermost object, then the outermost array.
func ExtractJSON(text string) (string, error) {
	candidates := []string{}
	if m := fencedJSON.FindStringSubmatch(text); m != nil {
		candidates = append(candidates, m[1])
	}
	candidates = append(candidates, text)

	for _, c := range candidates {
		c = strings.TrimSpace(c)
		if gjson.Valid(c) && (strings.HasPrefix(c, "{") || strings.HasPrefix(c, "[")) {
			return c, nil
		}
		if m := objectJSON.FindString(c); m != "" && gjson.Valid(m) {
			return m, nil
		}
		if m := arrayJSON.FindString(c); m != "" && gjson.Valid(m) {
			return m, nil
		}
	}
	return "", fmt.Errorf("no valid JSON found in model output")
}
