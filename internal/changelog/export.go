package changelog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format selects a changelog rendering.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
)

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "markdown", "md":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown changelog format %q (want markdown, json or yaml)", s)
	}
}

// Render encodes l in the given format.
func Render(l *Log, f Format) ([]byte, error) {
	switch f {
	case FormatJSON:
		return JSON(l)
	case FormatYAML:
		return YAML(l)
	default:
		return []byte(Markdown(l)), nil
	}
}

func JSON(l *Log) ([]byte, error) {
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding changelog json: %w", err)
	}
	return append(data, '\n'), nil
}

func YAML(l *Log) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(l); err != nil {
		return nil, fmt.Errorf("encoding changelog yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding changelog yaml: %w", err)
	}
	return buf.Bytes(), nil
}
