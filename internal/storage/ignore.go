package storage

import (
	"regexp"
	"strings"
)

type ignoreKind int

const (
	ignoreSubstring ignoreKind = iota
	ignoreGlob
	ignoreTag
)

type ignoreRule struct {
	kind    ignoreKind
	pattern string
	glob    *regexp.Regexp
}

// IgnoreRules decides which commit items scan should skip. Rules are read
// from .tally/ignore, one per line, all matched case-insensitively:
//
//	#wip          tasks tagged wip
//	bump *deps*   descriptions matching a glob, * matches anything
//	typo          descriptions containing the text
//
// Blank lines and lines starting with "# " are comments.
type IgnoreRules struct {
	rules []ignoreRule
}

// LoadIgnoreRules reads path. A missing or unreadable file has no rules.
func LoadIgnoreRules(path string) *IgnoreRules {
	data, ok, err := readFile(path)
	if err != nil || !ok {
		return &IgnoreRules{}
	}
	return ParseIgnoreRules(string(data))
}

func ParseIgnoreRules(content string) *IgnoreRules {
	r := &IgnoreRules{}
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if rule, ok := parseIgnoreRule(line); ok {
			r.rules = append(r.rules, rule)
		}
	}
	return r
}

func parseIgnoreRule(line string) (ignoreRule, bool) {
	lower := strings.ToLower(line)

	if tag, ok := strings.CutPrefix(lower, "#"); ok {
		if tag == "" || strings.ContainsAny(tag, " \t#") {
			return ignoreRule{}, false
		}
		return ignoreRule{kind: ignoreTag, pattern: tag}, true
	}

	if strings.Contains(lower, "*") {
		parts := strings.Split(lower, "*")
		for i, p := range parts {
			parts[i] = regexp.QuoteMeta(p)
		}
		re := regexp.MustCompile("^" + strings.Join(parts, ".*") + "$")
		return ignoreRule{kind: ignoreGlob, pattern: lower, glob: re}, true
	}

	return ignoreRule{kind: ignoreSubstring, pattern: lower}, true
}

func (r *IgnoreRules) Len() int { return len(r.rules) }

// IsIgnored reports whether any rule matches the description or tags.
func (r *IgnoreRules) IsIgnored(description string, tags []string) bool {
	desc := strings.ToLower(description)
	for _, rule := range r.rules {
		switch rule.kind {
		case ignoreSubstring:
			if strings.Contains(desc, rule.pattern) {
				return true
			}
		case ignoreGlob:
			if rule.glob.MatchString(desc) {
				return true
			}
		case ignoreTag:
			for _, t := range tags {
				if strings.EqualFold(t, rule.pattern) {
					return true
				}
			}
		}
	}
	return false
}
