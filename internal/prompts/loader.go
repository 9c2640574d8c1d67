// Package prompts holds the career-advice prompt templates. They are
// embedded at compile time and parsed once on first use.
package prompts

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
)

//go:embed career.json
var careerJSON []byte

var careerPrompts = sync.OnceValues(func() (map[string]string, error) {
	var templates map[string]string
	if err := json.Unmarshal(careerJSON, &templates); err != nil {
		return nil, fmt.Errorf("failed to parse career prompts: %w", err)
	}
	return templates, nil
})

// Keys returns the available advice prompt keys, sorted.
func Keys() ([]string, error) {
	templates, err := careerPrompts()
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(templates))
	for key := range templates {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

// Require returns an error naming every key that has no template.
func Require(keys ...string) error {
	templates, err := careerPrompts()
	if err != nil {
		return err
	}
	var missing []string
	for _, key := range keys {
		if _, ok := templates[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing advice prompts: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Advice renders the prompt for key with the target role and the
// comma-separated skill gap filled in.
func Advice(key, targetRole string, skillGap []string) (string, error) {
	templates, err := careerPrompts()
	if err != nil {
		return "", err
	}
	template, ok := templates[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found", key)
	}
	return fill(template, map[string]string{
		"TargetRole": targetRole,
		"SkillGap":   strings.Join(skillGap, ", "),
	}), nil
}

// fill replaces {{.Key}} placeholders with values from data. Unknown
// placeholders are left as they are.
func fill(template string, data map[string]string) string {
	for key, value := range data {
		template = strings.ReplaceAll(template, "{{."+key+"}}", value)
	}
	return template
}
