package gitops

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	fieldSep  = "\x1f"
	recordSep = "\x1e"
	logFormat = "--pretty=format:%h%x1f%ct%x1f%B%x1e"
)

// DefaultScanDepth is how many commits scan reads.
const DefaultScanDepth = 50

// Commit is one entry of git log.
type Commit struct {
	Hash string
	Date time.Time
	Body string
}

// DoneItems extracts the items listed under prefix in the commit body.
func (c Commit) DoneItems(prefix string) []string {
	return ExtractDoneItems(c.Body, prefix)
}

// Git runs commands in one working tree.
type Git struct {
	dir    string
	runner Runner
}

func New(dir string, runner Runner) *Git {
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Git{dir: dir, runner: runner}
}

// CommitFiles commits only the given paths.
func (g *Git) CommitFiles(ctx context.Context, message string, paths ...string) error {
	args := append([]string{"commit", "-m", message, "--"}, paths...)
	if _, err := g.runner.Run(ctx, g.dir, args...); err != nil {
		return fmt.Errorf("committing %s: %w", strings.Join(paths, ", "), err)
	}
	return nil
}

// CreateTag creates an annotated tag at HEAD.
func (g *Git) CreateTag(ctx context.Context, name, message string) error {
	if _, err := g.runner.Run(ctx, g.dir, "tag", "-a", name, "-m", message); err != nil {
		return fmt.Errorf("creating tag %s: %w", name, err)
	}
	return nil
}

// RecentCommits returns up to n commits, newest first.
func (g *Git) RecentCommits(ctx context.Context, n int) ([]Commit, error) {
	if n <= 0 {
		n = DefaultScanDepth
	}
	out, err := g.runner.Run(ctx, g.dir, "log", logFormat, "-n", strconv.Itoa(n))
	if err != nil {
		return nil, fmt.Errorf("reading git log: %w", err)
	}
	return ParseLog(out), nil
}

// ParseLog splits output produced with the %h %ct %B record format. An
// unparseable timestamp becomes the Unix epoch.
func ParseLog(raw string) []Commit {
	var commits []Commit
	for _, record := range strings.Split(raw, recordSep) {
		record = strings.TrimSpace(record)
		if record == "" {
			continue
		}
		parts := strings.SplitN(record, fieldSep, 3)
		c := Commit{Hash: strings.TrimSpace(parts[0]), Date: time.Unix(0, 0).UTC()}
		if len(parts) > 1 {
			if ts, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64); err == nil {
				c.Date = time.Unix(ts, 0).UTC()
			}
		}
		if len(parts) > 2 {
			c.Body = strings.TrimSpace(parts[2])
		}
		commits = append(commits, c)
	}
	return commits
}

// ExtractDoneItems reads the section introduced by a line equal to prefix
// (case-insensitive). Items may be bulleted with - or *. The section ends at
// a blank line or at the next line ending in ':'. A line of the form
// "prefix item" contributes a single item.
func ExtractDoneItems(message, prefix string) []string {
	if prefix == "" {
		return nil
	}
	var items []string
	inSection := false

	for _, line := range strings.Split(message, "\n") {
		trimmed := strings.TrimSpace(line)

		if strings.EqualFold(trimmed, prefix) {
			inSection = true
			continue
		}

		if inSection {
			if trimmed == "" || strings.HasSuffix(trimmed, ":") {
				inSection = false
				continue
			}
			if item := strings.TrimSpace(strings.TrimLeft(trimmed, "-*")); item != "" {
				items = append(items, item)
			}
			continue
		}

		if len(trimmed) > len(prefix) && strings.EqualFold(trimmed[:len(prefix)], prefix) {
			if item := strings.TrimSpace(trimmed[len(prefix):]); item != "" {
				items = append(items, item)
			}
		}
	}
	return items
}
