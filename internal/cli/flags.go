package cli

import (
	"strings"

	"github.com/spf13/pflag"

	"github.com/alexanderramin/tally/internal/domain"
)

// priorityFlag is a --priority value restricted to low, medium and high.
// The zero value means "not given".
type priorityFlag struct {
	value domain.Priority
}

var _ pflag.Value = (*priorityFlag)(nil)

func (f *priorityFlag) String() string { return string(f.value) }

func (f *priorityFlag) Set(s string) error {
	p, err := domain.ParsePriority(s)
	if err != nil {
		return err
	}
	f.value = p
	return nil
}

func (f *priorityFlag) Type() string { return "priority" }

// versionFlag is an optional semantic version.
type versionFlag struct {
	value *domain.Version
}

var _ pflag.Value = (*versionFlag)(nil)

func (f *versionFlag) String() string {
	if f.value == nil {
		return ""
	}
	return f.value.String()
}

func (f *versionFlag) Set(s string) error {
	v, err := domain.ParseVersion(s)
	if err != nil {
		return err
	}
	f.value = &v
	return nil
}

func (f *versionFlag) Type() string { return "version" }

// splitTags accepts "a,b" and "#a #b" alike.
func splitTags(values []string) []string {
	var out []string
	for _, v := range values {
		for _, field := range strings.FieldsFunc(v, func(r rune) bool { return r == ',' || r == ' ' }) {
			if tag := strings.TrimPrefix(field, "#"); tag != "" {
				out = append(out, tag)
			}
		}
	}
	return out
}
