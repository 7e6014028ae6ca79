package kubeyaml

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Summary identifies one manifest document for apply logs.
type Summary struct {
	Kind      string
	Name      string
	Namespace string
}

func (s Summary) String() string {
	if s.Namespace != "" {
		return fmt.Sprintf("%s/%s (namespace %s)", s.Kind, s.Name, s.Namespace)
	}
	return fmt.Sprintf("%s/%s", s.Kind, s.Name)
}

// Split cuts a multi-document manifest on "---" separator lines. Documents
// that are empty or contain only comments are dropped, so agent output with
// stray separators still applies cleanly.
func Split(manifest string) []string {
	var docs []string
	var current []string

	flush := func() {
		doc := strings.TrimSpace(strings.Join(current, "\n"))
		current = current[:0]
		if doc == "" || commentOnly(doc) {
			return
		}
		docs = append(docs, doc)
	}

	for _, line := range strings.Split(manifest, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "---" || strings.HasPrefix(trimmed, "--- ") {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()
	return docs
}

func commentOnly(doc string) bool {
	for _, line := range strings.Split(doc, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		return false
	}
	return true
}

type manifestHeader struct {
	Kind     string `yaml:"kind"`
	Metadata struct {
		Name      string `yaml:"name"`
		Namespace string `yaml:"namespace"`
	} `yaml:"metadata"`
}

// Inspect reads the identifying fields of a single manifest document.
func Inspect(doc string) (Summary, error) {
	var header manifestHeader
	if err := yaml.Unmarshal([]byte(doc), &header); err != nil {
		return Summary{}, fmt.Errorf("manifest parse failed: %w", err)
	}
	return Summary{
		Kind:      header.Kind,
		Name:      header.Metadata.Name,
		Namespace: header.Metadata.Namespace,
	}, nil
}
