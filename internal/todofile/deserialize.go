package todofile

import (
	"bufio"
	"strings"
	"time"

	"github.com/alexanderramin/tally/internal/domain"
)

const taskStart = "- ["

var headerPrefixes = []string{"TODO —", "TODO -"}

// Deserialize parses TODO.md content into a List. Errors are *domain.ParseError.
func Deserialize(content string) (*domain.List, error) {
	lines := splitLines(content)
	if len(lines) == 0 {
		return nil, &domain.ParseError{Field: "header", Msg: "Empty TODO file"}
	}

	name, version, err := parseHeader(lines[0])
	if err != nil {
		return nil, err
	}

	i := 1
	var created, modified *time.Time
meta:
	for ; i < len(lines); i++ {
		line := lines[i]
		switch {
		case strings.HasPrefix(line, "@created:"):
			d, err := parseDateLine(line)
			if err != nil {
				return nil, err
			}
			created = &d
		case strings.HasPrefix(line, "@modified:"):
			d, err := parseDateLine(line)
			if err != nil {
				return nil, err
			}
			modified = &d
		case strings.TrimSpace(line) == "":
			continue
		default:
			break meta
		}
	}
	if created == nil {
		return nil, &domain.ParseError{Field: "created", Msg: "Missing @created metadata"}
	}
	if modified == nil {
		return nil, &domain.ParseError{Field: "modified", Msg: "Missing @modified metadata"}
	}

	tasks, err := parseTasks(lines[i:])
	if err != nil {
		return nil, err
	}

	return &domain.List{
		ProjectName:    name,
		ProjectVersion: version,
		CreatedAt:      *created,
		ModifiedAt:     *modified,
		Tasks:          tasks,
	}, nil
}

func splitLines(content string) []string {
	var lines []string
	sc := bufio.NewScanner(strings.NewReader(content))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines
}

func parseHeader(line string) (string, domain.Version, error) {
	rest := strings.TrimSpace(strings.TrimLeft(line, "#"))

	matched := false
	for _, p := range headerPrefixes {
		if after, ok := strings.CutPrefix(rest, p); ok {
			rest = strings.TrimSpace(after)
			matched = true
			break
		}
	}
	if !matched {
		return "", domain.Version{}, &domain.ParseError{
			Field: "header",
			Line:  line,
			Msg:   "Invalid header format: expected 'TODO — PROJECT vVERSION'",
		}
	}

	at := strings.LastIndex(rest, " v")
	if at < 0 {
		return "", domain.Version{}, &domain.ParseError{Field: "header", Line: line, Msg: "No version found in header"}
	}

	version, err := domain.ParseVersion(rest[at+2:])
	if err != nil {
		return "", domain.Version{}, &domain.ParseError{
			Field: "header",
			Line:  line,
			Msg:   "Failed to parse version in header",
			Err:   err,
		}
	}
	return strings.TrimSpace(rest[:at]), version, nil
}

func parseDateLine(line string) (time.Time, error) {
	_, value, ok := strings.Cut(line, ":")
	if !ok {
		return time.Time{}, &domain.ParseError{Field: "date", Line: line, Msg: "Invalid date line format"}
	}
	d, err := time.Parse(dateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, &domain.ParseError{Field: "date", Line: line, Msg: "Failed to parse date", Err: err}
	}
	return d, nil
}

// parseTasks collects task blocks from the section body. Section headings
// and stray text outside a block are skipped.
func parseTasks(lines []string) ([]domain.Task, error) {
	var tasks []domain.Task
	var block []string

	flush := func() error {
		if len(block) == 0 {
			return nil
		}
		t, err := parseTask(block)
		if err != nil {
			return err
		}
		tasks = append(tasks, t)
		block = nil
		return nil
	}

	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, taskStart):
			if err := flush(); err != nil {
				return nil, err
			}
			block = []string{line}
		case strings.HasPrefix(strings.TrimSpace(line), "## "):
			if err := flush(); err != nil {
				return nil, err
			}
		case len(block) > 0 && strings.TrimSpace(line) != "":
			block = append(block, line)
		}
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return tasks, nil
}

func parseTask(block []string) (domain.Task, error) {
	first := block[0]

	rest := strings.TrimPrefix(first, taskStart)
	box, content, ok := strings.Cut(rest, "]")
	if !ok {
		return domain.Task{}, &domain.ParseError{Field: "task", Line: first, Msg: "Malformed task checkbox"}
	}
	completed := strings.EqualFold(strings.TrimSpace(box), "x")

	desc, priority, tags := parseTaskContent(content)
	if desc == "" {
		return domain.Task{}, &domain.ParseError{Field: "description", Line: first, Msg: "Task has no description"}
	}

	t := domain.Task{
		Description: desc,
		Priority:    priority,
		Tags:        tags,
		Completed:   completed,
	}

	hasCreated := false
	for _, raw := range block[1:] {
		line := strings.TrimSpace(raw)
		key, value, _ := strings.Cut(line, " ")
		value = strings.TrimSpace(value)

		var err error
		switch key {
		case "@created":
			t.CreatedAt, err = parseDatetime(line, value)
			hasCreated = true
		case "@created_version":
			t.CreatedVersion, err = parseMetaVersion(line, value)
		case "@created_commit":
			t.CreatedCommit = value
		case "@completed":
			var at time.Time
			at, err = parseDatetime(line, value)
			t.CompletedAt = &at
		case "@completed_version":
			t.CompletedVersion, err = parseMetaVersion(line, value)
		case "@completed_commit":
			t.CompletedCommit = value
		}
		if err != nil {
			return domain.Task{}, err
		}
	}

	if !hasCreated {
		return domain.Task{}, &domain.ParseError{Field: "created", Line: first, Msg: "Task missing @created timestamp"}
	}

	// A checkbox ticked by hand has no @completed line yet.
	switch {
	case t.Completed && t.CompletedAt == nil:
		at := t.CreatedAt
		t.CompletedAt = &at
	case !t.Completed:
		t.CompletedAt = nil
		t.CompletedVersion = nil
		t.CompletedCommit = ""
	}

	return t, nil
}

func parseTaskContent(content string) (string, domain.Priority, []string) {
	priority := domain.PriorityMedium
	var words, tags []string

	for _, tok := range strings.Fields(content) {
		switch {
		case strings.HasPrefix(tok, "#"):
			tag := strings.TrimLeft(tok, "#")
			if tag != "" && !containsString(tags, tag) {
				tags = append(tags, tag)
			}
		case tok == "(high)":
			priority = domain.PriorityHigh
		case tok == "(low)":
			priority = domain.PriorityLow
		case tok == "(medium)":
			priority = domain.PriorityMedium
		default:
			words = append(words, tok)
		}
	}
	return strings.Join(words, " "), priority, tags
}

func parseDatetime(line, value string) (time.Time, error) {
	t, err := time.Parse(datetimeLayout, value)
	if err != nil {
		return time.Time{}, &domain.ParseError{Field: "datetime", Line: line, Msg: "Failed to parse datetime", Err: err}
	}
	return t, nil
}

func parseMetaVersion(line, value string) (*domain.Version, error) {
	v, err := domain.ParseVersion(value)
	if err != nil {
		return nil, &domain.ParseError{Field: "version", Line: line, Msg: "Failed to parse version", Err: err}
	}
	return &v, nil
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
