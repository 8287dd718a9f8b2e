package service

import (
	"os"
	"strings"

	"github.com/alexanderramin/tally/internal/domain"
)

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func descriptions(tasks []domain.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Description
	}
	return out
}

// normalizeTags strips a leading '#' and drops blanks.
func normalizeTags(tags []string) []string {
	var out []string
	for _, tag := range tags {
		tag = strings.TrimPrefix(strings.TrimSpace(tag), "#")
		if tag != "" {
			out = append(out, tag)
		}
	}
	return out
}

// TagName is the git tag for v: "v" followed by the version.
func TagName(v domain.Version) string {
	return "v" + v.String()
}
